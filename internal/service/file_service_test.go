package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/port"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func testS3Config() config.S3Config {
	return config.S3Config{
		Bucket:        "gstbill-attachments",
		MaxFileSizeMB: 5,
		PresignExpiry: 900,
	}
}

func TestFileService_Upload(t *testing.T) {
	invoiceID := uuid.New()
	userID := uuid.New()

	repo := new(mocks.MockAttachmentRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)

	invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(&domain.Invoice{ID: invoiceID}, nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "gstbill-attachments" &&
			strings.HasPrefix(in.Key, "invoices/"+invoiceID.String()+"/") &&
			strings.HasSuffix(in.Key, ".pdf")
	})).Return(&port.UploadOutput{}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Attachment")).Return(nil)

	svc := service.NewFileService(repo, invoiceRepo, storage, testS3Config())
	att, err := svc.Upload(context.Background(), service.UploadAttachmentInput{
		InvoiceID:   invoiceID,
		UploadedBy:  userID,
		FileName:    "signed-invoice.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		Body:        bytes.NewReader([]byte("%PDF-1.4")),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.FileTypePDF, att.FileType)
	assert.Equal(t, "signed-invoice.pdf", att.OriginalName)
	assert.Equal(t, "gstbill-attachments", att.S3Bucket)
	assert.Equal(t, userID, att.UploadedBy)
	storage.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestFileService_Upload_UnsupportedType(t *testing.T) {
	svc := service.NewFileService(
		new(mocks.MockAttachmentRepo),
		new(mocks.MockInvoiceRepo),
		new(mocks.MockObjectStorage),
		testS3Config(),
	)

	_, err := svc.Upload(context.Background(), service.UploadAttachmentInput{
		InvoiceID:   uuid.New(),
		ContentType: "application/zip",
		Size:        10,
	})

	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFileService_Upload_TooLarge(t *testing.T) {
	svc := service.NewFileService(
		new(mocks.MockAttachmentRepo),
		new(mocks.MockInvoiceRepo),
		new(mocks.MockObjectStorage),
		testS3Config(),
	)

	_, err := svc.Upload(context.Background(), service.UploadAttachmentInput{
		InvoiceID:   uuid.New(),
		ContentType: "image/png",
		Size:        6 * 1024 * 1024,
	})

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestFileService_Upload_InvoiceMissing(t *testing.T) {
	invoiceID := uuid.New()
	invoiceRepo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)
	invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(nil, domain.ErrNotFound)

	svc := service.NewFileService(new(mocks.MockAttachmentRepo), invoiceRepo, storage, testS3Config())
	_, err := svc.Upload(context.Background(), service.UploadAttachmentInput{
		InvoiceID:   invoiceID,
		ContentType: "image/jpeg",
		Size:        100,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	storage.AssertNotCalled(t, "Upload")
}

func TestFileService_Upload_CleansUpOnMetadataFailure(t *testing.T) {
	invoiceID := uuid.New()

	repo := new(mocks.MockAttachmentRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	storage := new(mocks.MockObjectStorage)

	invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(&domain.Invoice{ID: invoiceID}, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	storage.On("Delete", mock.Anything, "gstbill-attachments", mock.AnythingOfType("string")).Return(nil)

	svc := service.NewFileService(repo, invoiceRepo, storage, testS3Config())
	_, err := svc.Upload(context.Background(), service.UploadAttachmentInput{
		InvoiceID:   invoiceID,
		ContentType: "image/png",
		Size:        512,
		Body:        bytes.NewReader([]byte("png")),
	})

	require.Error(t, err)
	storage.AssertCalled(t, "Delete", mock.Anything, "gstbill-attachments", mock.AnythingOfType("string"))
}

func TestFileService_DownloadURL(t *testing.T) {
	att := &domain.Attachment{
		ID:       uuid.New(),
		S3Bucket: "gstbill-attachments",
		S3Key:    "invoices/x/y.pdf",
	}

	repo := new(mocks.MockAttachmentRepo)
	storage := new(mocks.MockObjectStorage)
	repo.On("GetByID", mock.Anything, att.ID).Return(att, nil)
	storage.On("GetPresignedURL", mock.Anything, att.S3Bucket, att.S3Key, int64(900)).
		Return("https://s3.example/presigned", nil)

	svc := service.NewFileService(repo, new(mocks.MockInvoiceRepo), storage, testS3Config())
	url, err := svc.DownloadURL(context.Background(), att.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://s3.example/presigned", url)
}

func TestFileService_Delete(t *testing.T) {
	att := &domain.Attachment{
		ID:       uuid.New(),
		S3Bucket: "gstbill-attachments",
		S3Key:    "invoices/x/y.png",
	}

	repo := new(mocks.MockAttachmentRepo)
	storage := new(mocks.MockObjectStorage)
	repo.On("GetByID", mock.Anything, att.ID).Return(att, nil)
	storage.On("Delete", mock.Anything, att.S3Bucket, att.S3Key).Return(nil)
	repo.On("Delete", mock.Anything, att.ID).Return(nil)

	svc := service.NewFileService(repo, new(mocks.MockInvoiceRepo), storage, testS3Config())
	require.NoError(t, svc.Delete(context.Background(), att.ID))
	repo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileService_Delete_StorageFailureKeepsRecord(t *testing.T) {
	att := &domain.Attachment{
		ID:       uuid.New(),
		S3Bucket: "gstbill-attachments",
		S3Key:    "invoices/x/y.png",
	}

	repo := new(mocks.MockAttachmentRepo)
	storage := new(mocks.MockObjectStorage)
	repo.On("GetByID", mock.Anything, att.ID).Return(att, nil)
	storage.On("Delete", mock.Anything, att.S3Bucket, att.S3Key).Return(errors.New("access denied"))

	svc := service.NewFileService(repo, new(mocks.MockInvoiceRepo), storage, testS3Config())
	err := svc.Delete(context.Background(), att.ID)

	require.Error(t, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, att.ID)
}
