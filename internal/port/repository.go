package port

import (
	"context"

	"github.com/google/uuid"

	"gstbill/internal/domain"
)

// UserRepository defines the contract for user account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SellerRepository defines the contract for seller persistence.
// GetByOwner resolves the seller linked to a login account; it returns
// domain.ErrNotFound when the user owns no seller.
type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	GetByOwner(ctx context.Context, userID uuid.UUID) (*domain.Seller, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Seller, int, error)
	Update(ctx context.Context, seller *domain.Seller) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BuyerRepository defines the contract for buyer persistence.
type BuyerRepository interface {
	Create(ctx context.Context, buyer *domain.Buyer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Buyer, error)
	GetByOwner(ctx context.Context, userID uuid.UUID) (*domain.Buyer, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Buyer, int, error)
	Update(ctx context.Context, buyer *domain.Buyer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository defines the contract for product catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, sellerID *uuid.UUID, search string, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttachmentRepository defines the contract for invoice attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, att *domain.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
