package port

import (
	"context"

	"gstbill/internal/domain"
)

// EmailSender defines the contract for outbound invoice notifications.
type EmailSender interface {
	// SendInvoiceIssued notifies the buyer that an invoice was issued to
	// them. Called when an invoice transitions to sent.
	SendInvoiceIssued(ctx context.Context, toEmail, toName string, inv *domain.Invoice) error
}
