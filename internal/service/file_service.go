package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/port"
)

// UploadAttachmentInput is the DTO for attaching a file to an invoice.
type UploadAttachmentInput struct {
	InvoiceID   uuid.UUID
	UploadedBy  uuid.UUID
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileService defines the invoice attachment contract.
type FileService interface {
	Upload(ctx context.Context, input UploadAttachmentInput) (*domain.Attachment, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Attachment, error)
	DownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileService struct {
	repo        port.AttachmentRepository
	invoiceRepo port.InvoiceRepository
	storage     port.ObjectStorage
	cfg         config.S3Config
}

// NewFileService creates a new FileService implementation.
func NewFileService(
	repo port.AttachmentRepository,
	invoiceRepo port.InvoiceRepository,
	storage port.ObjectStorage,
	cfg config.S3Config,
) FileService {
	return &fileService{
		repo:        repo,
		invoiceRepo: invoiceRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

// Upload validates the file type and size, stores the object, then records
// the metadata. Only PDF, JPEG, and PNG are accepted.
func (s *fileService) Upload(ctx context.Context, input UploadAttachmentInput) (*domain.Attachment, error) {
	fileType, ok := domain.AllowedContentTypes[input.ContentType]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if input.Size > s.cfg.MaxFileSizeMB*1024*1024 {
		return nil, domain.ErrFileTooLarge
	}

	if _, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID); err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("%s.%s", uuid.New(), fileType)
	key := fmt.Sprintf("invoices/%s/%s", input.InvoiceID, fileName)

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        input.Body,
		ContentType: input.ContentType,
		Size:        input.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("fileService.Upload: %w", err)
	}

	att := &domain.Attachment{
		InvoiceID:    input.InvoiceID,
		UploadedBy:   input.UploadedBy,
		FileName:     fileName,
		OriginalName: input.FileName,
		FileType:     fileType,
		FileSize:     input.Size,
		S3Bucket:     s.cfg.Bucket,
		S3Key:        key,
		ContentType:  input.ContentType,
	}
	if err := s.repo.Create(ctx, att); err != nil {
		// Orphaned object; best effort cleanup.
		if delErr := s.storage.Delete(ctx, s.cfg.Bucket, key); delErr != nil {
			log.Printf("attachment cleanup failed for %s: %v", key, delErr)
		}
		return nil, err
	}
	return att, nil
}

func (s *fileService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Attachment, error) {
	return s.repo.ListByInvoice(ctx, invoiceID)
}

func (s *fileService) DownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	att, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, att.S3Bucket, att.S3Key, s.cfg.PresignExpiry)
}

func (s *fileService) Delete(ctx context.Context, id uuid.UUID) error {
	att, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, att.S3Bucket, att.S3Key); err != nil {
		return fmt.Errorf("fileService.Delete: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
