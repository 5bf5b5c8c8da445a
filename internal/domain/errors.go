package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrDocumentNotFound        = errors.New("document not found")
	ErrCounterpartyNotFound    = errors.New("counterparty not found")
	ErrInventoryItemNotFound   = errors.New("inventory item not found")
	ErrDuplicateDocumentNumber = errors.New("document number already exists for this document type")
	ErrDuplicateSKU            = errors.New("sku already exists")
	ErrInvalidDocumentType     = errors.New("invalid document type")
	ErrInvalidStatus           = errors.New("status is not valid for this document type")
	ErrInvalidConversion       = errors.New("document cannot be converted to the requested type")
	ErrInvalidRecord           = errors.New("record does not match the expected format")
	ErrInvalidExportFormat     = errors.New("unsupported export format")
	ErrNameRequired            = errors.New("name is required")
	ErrSKURequired             = errors.New("sku is required")
	ErrInvalidGSTIN            = errors.New("gstin is not in the 15-character GST format")
	ErrInvalidQuantity         = errors.New("quantities and prices must not be negative")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrStorageDisabled         = errors.New("object storage is not configured")
	ErrUploadFailed            = errors.New("upload to object storage failed")
)
