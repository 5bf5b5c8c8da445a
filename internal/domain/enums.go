package domain

import "strings"

// DocumentType tags which sales document a record represents.
type DocumentType string

const (
	DocumentTypePurchaseOrder   DocumentType = "Purchase Order"
	DocumentTypeProformaInvoice DocumentType = "Proforma Invoice"
	DocumentTypeTaxInvoice      DocumentType = "Tax Invoice"
	DocumentTypeQuotation       DocumentType = "Quotation"
	DocumentTypeReceipt         DocumentType = "Receipt"
)

// DocumentTypes lists every supported document type.
var DocumentTypes = []DocumentType{
	DocumentTypePurchaseOrder,
	DocumentTypeProformaInvoice,
	DocumentTypeTaxInvoice,
	DocumentTypeQuotation,
	DocumentTypeReceipt,
}

var documentTypeAliases = map[string]DocumentType{
	"purchase order":   DocumentTypePurchaseOrder,
	"purchase_order":   DocumentTypePurchaseOrder,
	"po":               DocumentTypePurchaseOrder,
	"proforma invoice": DocumentTypeProformaInvoice,
	"proforma_invoice": DocumentTypeProformaInvoice,
	"proforma":         DocumentTypeProformaInvoice,
	"pi":               DocumentTypeProformaInvoice,
	"tax invoice":      DocumentTypeTaxInvoice,
	"tax_invoice":      DocumentTypeTaxInvoice,
	"invoice":          DocumentTypeTaxInvoice,
	"quotation":        DocumentTypeQuotation,
	"quote":            DocumentTypeQuotation,
	"receipt":          DocumentTypeReceipt,
}

// ParseDocumentType accepts the display name or a common short form.
func ParseDocumentType(s string) (DocumentType, bool) {
	t, ok := documentTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// NumberPrefix is the prefix used when a document number is generated.
func (t DocumentType) NumberPrefix() string {
	switch t {
	case DocumentTypePurchaseOrder:
		return "PO"
	case DocumentTypeProformaInvoice:
		return "PI"
	case DocumentTypeTaxInvoice:
		return "INV"
	case DocumentTypeQuotation:
		return "QTN"
	case DocumentTypeReceipt:
		return "RCP"
	default:
		return "DOC"
	}
}

// UsesSupplier reports whether the counterparty of t is a supplier rather than a buyer.
func (t DocumentType) UsesSupplier() bool {
	return t == DocumentTypePurchaseOrder
}

// Document status values.
const (
	StatusPending       = "Pending"
	StatusApproved      = "Approved"
	StatusReceived      = "Received"
	StatusCancelled     = "Cancelled"
	StatusDraft         = "Draft"
	StatusSent          = "Sent"
	StatusAccepted      = "Accepted"
	StatusRejected      = "Rejected"
	StatusConverted     = "Converted"
	StatusUnpaid        = "Unpaid"
	StatusPartiallyPaid = "Partially Paid"
	StatusPaid          = "Paid"
	StatusExpired       = "Expired"
)

// StatusAll disables status filtering in list queries.
const StatusAll = "all"

// documentStatuses holds each type's status enumeration; the first entry is the default.
var documentStatuses = map[DocumentType][]string{
	DocumentTypePurchaseOrder:   {StatusPending, StatusApproved, StatusReceived, StatusCancelled},
	DocumentTypeProformaInvoice: {StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusConverted},
	DocumentTypeTaxInvoice:      {StatusUnpaid, StatusPartiallyPaid, StatusPaid, StatusCancelled},
	DocumentTypeQuotation:       {StatusDraft, StatusSent, StatusAccepted, StatusRejected, StatusExpired, StatusConverted},
	DocumentTypeReceipt:         {StatusReceived, StatusCancelled},
}

// Statuses returns the status enumeration for t.
func (t DocumentType) Statuses() []string {
	return documentStatuses[t]
}

// DefaultStatus returns the status a new document of type t starts in.
func (t DocumentType) DefaultStatus() string {
	if s := documentStatuses[t]; len(s) > 0 {
		return s[0]
	}
	return StatusDraft
}

// ValidStatus reports whether status belongs to t's enumeration.
func (t DocumentType) ValidStatus(status string) bool {
	for _, s := range documentStatuses[t] {
		if s == status {
			return true
		}
	}
	return false
}

// conversions lists the document types each type may be converted into.
var conversions = map[DocumentType][]DocumentType{
	DocumentTypeQuotation:       {DocumentTypeProformaInvoice, DocumentTypeTaxInvoice},
	DocumentTypeProformaInvoice: {DocumentTypeTaxInvoice},
}

// CanConvertTo reports whether a document of type t may be converted into target.
func (t DocumentType) CanConvertTo(target DocumentType) bool {
	for _, c := range conversions[t] {
		if c == target {
			return true
		}
	}
	return false
}

// CounterpartyKind distinguishes clients from vendors.
type CounterpartyKind string

const (
	CounterpartyClient CounterpartyKind = "client"
	CounterpartyVendor CounterpartyKind = "vendor"
)

// Counterparty status values.
const (
	CounterpartyActive   = "Active"
	CounterpartyInactive = "Inactive"
)

// Inventory stock status values.
const (
	StockInStock    = "In Stock"
	StockLow        = "Low Stock"
	StockOutOfStock = "Out of Stock"
)
