package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUserInactive           = errors.New("user is inactive")
	ErrDuplicateEmail         = errors.New("email already exists")
	ErrDuplicateUsername      = errors.New("username already exists")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrNumberSpaceExhausted   = errors.New("invoice number space exhausted")
	ErrInvoiceNotDraft        = errors.New("only draft invoices can be deleted")
	ErrInvalidStatusChange    = errors.New("invalid invoice status transition")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
)

// ValidationError reports a malformed or out-of-range input field.
// ItemIndex is -1 for invoice-level violations, otherwise the zero-based
// index of the offending line item.
type ValidationError struct {
	Field     string `json:"field"`
	ItemIndex int    `json:"item_index"`
	Message   string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.ItemIndex >= 0 {
		return fmt.Sprintf("items[%d].%s: %s", e.ItemIndex, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds an invoice-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, ItemIndex: -1, Message: message}
}

// NewItemValidationError builds a validation error for a specific line item.
func NewItemValidationError(index int, field, message string) *ValidationError {
	return &ValidationError{Field: field, ItemIndex: index, Message: message}
}

// DuplicateInvoiceNumberError carries the number that collided.
type DuplicateInvoiceNumberError struct {
	Number string
}

func (e *DuplicateInvoiceNumberError) Error() string {
	return fmt.Sprintf("invoice number %q already exists", e.Number)
}

func (e *DuplicateInvoiceNumberError) Unwrap() error { return ErrDuplicateInvoiceNumber }

// NumberSpaceExhaustedError is returned when bounded retry during number
// generation runs out of candidates for a seller-month prefix.
type NumberSpaceExhaustedError struct {
	SellerID uuid.UUID
	Prefix   string
}

func (e *NumberSpaceExhaustedError) Error() string {
	return fmt.Sprintf("no free invoice number for seller %s under prefix %s", e.SellerID, e.Prefix)
}

func (e *NumberSpaceExhaustedError) Unwrap() error { return ErrNumberSpaceExhausted }
