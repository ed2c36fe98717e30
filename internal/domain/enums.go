package domain

// UserRole defines the account roles.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleSeller UserRole = "seller"
	RoleBuyer  UserRole = "buyer"
)

// Valid reports whether r is a known role.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleSeller || r == RoleBuyer
}

// TaxType identifies the jurisdiction split applied to an invoice.
// An invoice carries exactly one tax type; items never mix treatments.
type TaxType string

const (
	// TaxTypeCGSTSGST splits the tax equally between central and state GST.
	// Applies to intra-state supplies.
	TaxTypeCGSTSGST TaxType = "cgst_sgst"
	// TaxTypeIGST applies integrated GST in full. Inter-state supplies.
	TaxTypeIGST TaxType = "igst"
)

// Valid reports whether t is a known tax type.
func (t TaxType) Valid() bool {
	return t == TaxTypeCGSTSGST || t == TaxTypeIGST
}

// InvoiceStatus represents the invoice lifecycle.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next.
// Lifecycle: draft -> sent -> paid/cancelled. Draft may be cancelled directly.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return next == InvoiceStatusSent || next == InvoiceStatusCancelled
	case InvoiceStatusSent:
		return next == InvoiceStatusPaid || next == InvoiceStatusCancelled
	default:
		return false
	}
}

// FileType represents the allowed attachment types.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// DefaultUnit is used when a line item does not name a unit of measure.
const DefaultUnit = "NOS"
