package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docdesk/internal/domain"
)

func TestParseDocumentType(t *testing.T) {
	for in, want := range map[string]domain.DocumentType{
		"Purchase Order":   domain.DocumentTypePurchaseOrder,
		"po":               domain.DocumentTypePurchaseOrder,
		" proforma ":       domain.DocumentTypeProformaInvoice,
		"TAX_INVOICE":      domain.DocumentTypeTaxInvoice,
		"quote":            domain.DocumentTypeQuotation,
		"Receipt":          domain.DocumentTypeReceipt,
	} {
		got, ok := domain.ParseDocumentType(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := domain.ParseDocumentType("delivery challan")
	assert.False(t, ok)
}

func TestDocumentType_Statuses(t *testing.T) {
	assert.Equal(t, domain.StatusPending, domain.DocumentTypePurchaseOrder.DefaultStatus())
	assert.Equal(t, domain.StatusDraft, domain.DocumentTypeProformaInvoice.DefaultStatus())
	assert.True(t, domain.DocumentTypeProformaInvoice.ValidStatus("Converted"))
	assert.False(t, domain.DocumentTypePurchaseOrder.ValidStatus("Converted"))
	assert.False(t, domain.DocumentTypePurchaseOrder.ValidStatus("pending"))
	for _, dt := range domain.DocumentTypes {
		assert.NotEmpty(t, dt.Statuses(), dt)
	}
}

func TestDocumentType_CanConvertTo(t *testing.T) {
	assert.True(t, domain.DocumentTypeProformaInvoice.CanConvertTo(domain.DocumentTypeTaxInvoice))
	assert.True(t, domain.DocumentTypeQuotation.CanConvertTo(domain.DocumentTypeProformaInvoice))
	assert.False(t, domain.DocumentTypeTaxInvoice.CanConvertTo(domain.DocumentTypeProformaInvoice))
	assert.False(t, domain.DocumentTypePurchaseOrder.CanConvertTo(domain.DocumentTypeTaxInvoice))
}

func TestDocumentData_SearchFields(t *testing.T) {
	po := domain.DocumentData{
		DocumentType:   domain.DocumentTypePurchaseOrder,
		DocumentNumber: "PO-0001",
		Supplier:       &domain.Party{Name: "Acme Valves"},
		Consignee:      &domain.Party{Name: "ignored"},
	}
	assert.Equal(t, []string{"PO-0001", "", "Acme Valves"}, po.SearchFields())

	inv := domain.DocumentData{
		DocumentType:    domain.DocumentTypeTaxInvoice,
		DocumentNumber:  "INV-0007",
		ReferenceNumber: "PI-0003",
		Consignee:       &domain.Party{Name: "Site Office"},
		Buyer:           &domain.Party{Name: "Kovai Pumps"},
	}
	assert.Equal(t, []string{"INV-0007", "PI-0003", "Site Office", "Kovai Pumps"}, inv.SearchFields())
	assert.Equal(t, "Site Office", inv.Counterparty().Name)

	inv.Consignee = nil
	assert.Equal(t, "Kovai Pumps", inv.Counterparty().Name)
}

func TestInventoryItem_StockStatus(t *testing.T) {
	assert.Equal(t, domain.StockOutOfStock, domain.InventoryItem{Quantity: 0}.StockStatus())
	assert.Equal(t, domain.StockLow, domain.InventoryItem{Quantity: 5, ReorderLevel: 5}.StockStatus())
	assert.Equal(t, domain.StockInStock, domain.InventoryItem{Quantity: 6, ReorderLevel: 5}.StockStatus())
}
