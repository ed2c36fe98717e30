package noop

import (
	"context"
	"log"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceIssued(_ context.Context, toEmail, toName string, inv *domain.Invoice) error {
	log.Printf("[NOOP EMAIL] Invoice %s issued to %s (%s), amount Rs. %s",
		inv.InvoiceNumber, toName, toEmail, inv.Total.StringFixed(2))
	return nil
}
