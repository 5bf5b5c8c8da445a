package normalize_test

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docdesk/internal/domain"
	"docdesk/internal/normalize"
	"docdesk/internal/tax"
)

func newNormalizer(roundOff bool) *normalize.Normalizer {
	return normalize.New(normalize.Options{
		Company:         domain.Company{Name: "Sakthi Engineering", StateCode: "33"},
		Rules:           tax.DefaultRules(),
		RoundOffToRupee: roundOff,
	}, zerolog.Nop())
}

func decode(t *testing.T, dt domain.DocumentType, raw string) normalize.Record {
	t.Helper()
	rec, err := normalize.DecodeRecord(dt, []byte(raw))
	require.NoError(t, err)
	return rec
}

func TestNormalize_IntraStateInvoice(t *testing.T) {
	rec := decode(t, domain.DocumentTypeTaxInvoice, `{
		"invoiceNumber": "INV-0001",
		"customerName": "Kovai Pumps",
		"customerGstin": "33AABCK1234F1Z5",
		"items": [{"name": "Impeller", "qty": "10", "rate": 4900, "hsn": "8413"}],
		"deliveryCharges": 1500
	}`)

	res := newNormalizer(false).Normalize(rec)
	doc := res.Document

	assert.Equal(t, domain.DocumentTypeTaxInvoice, doc.DocumentType)
	assert.Equal(t, "INV-0001", doc.DocumentNumber)
	assert.Equal(t, domain.StatusUnpaid, doc.Status)
	assert.Equal(t, "Sakthi Engineering", doc.Company.Name)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, "Impeller", doc.Items[0].Description)
	assert.Equal(t, "8413", doc.Items[0].HSNSAC)
	assert.Equal(t, "Nos", doc.Items[0].Unit)
	assert.Equal(t, 49000.0, doc.Items[0].Amount)

	assert.Equal(t, 49000.0, doc.Subtotal)
	assert.Equal(t, 4410.0, doc.CGST)
	assert.Equal(t, 4410.0, doc.SGST)
	assert.Equal(t, 0.0, doc.IGST)
	assert.Equal(t, 59320.0, doc.GrandTotal)
	assert.Equal(t, "Fifty Nine Thousand Three Hundred Twenty Rupees Only", doc.AmountInWords)
	assert.Equal(t, "Eight Thousand Eight Hundred Twenty Rupees Only", doc.TaxAmountInWords)

	require.NotNil(t, doc.Consignee)
	assert.Equal(t, "33", doc.Consignee.StateCode)
	assert.Equal(t, "Tamil Nadu", doc.Consignee.State)
	assert.Contains(t, res.Defaulted, "items[0].unit")
	assert.Contains(t, res.Defaulted, "subtotal")
	assert.NotContains(t, res.Defaulted, "consignee.stateCode")
}

func TestNormalize_InterStateInvoice(t *testing.T) {
	rec := decode(t, domain.DocumentTypeTaxInvoice, `{
		"invoiceNumber": "INV-0002",
		"buyer": {"name": "Bengaluru Motors", "state": "Karnataka"},
		"items": [{"description": "Motor", "quantity": 2, "unitPrice": 24500}],
		"deliveryCharges": 1500
	}`)

	doc := newNormalizer(false).Normalize(rec).Document
	assert.Equal(t, 0.0, doc.CGST)
	assert.Equal(t, 0.0, doc.SGST)
	assert.Equal(t, 8820.0, doc.IGST)
	assert.Equal(t, 59320.0, doc.GrandTotal)
	assert.Equal(t, "29", doc.Consignee.StateCode)
	assert.Equal(t, "Bengaluru Motors", doc.Buyer.Name)
}

func TestNormalize_ExplicitTaxesKept(t *testing.T) {
	rec := decode(t, domain.DocumentTypeProformaInvoice, `{
		"proformaNumber": "PI-0003",
		"customerName": "Erode Textiles",
		"customerStateCode": "33",
		"items": [{"description": "Loom part", "quantity": 1, "unitPrice": 1000}],
		"igst": 180
	}`)

	res := newNormalizer(false).Normalize(rec)
	assert.Equal(t, 180.0, res.Document.IGST)
	assert.Equal(t, 0.0, res.Document.CGST)
	assert.Equal(t, 1180.0, res.Document.GrandTotal)
	assert.NotContains(t, res.Defaulted, "taxes")
}

func TestNormalize_ConflictingTaxesRecomputed(t *testing.T) {
	rec := decode(t, domain.DocumentTypeQuotation, `{
		"quoteNumber": "QTN-0001",
		"customerName": "Erode Textiles",
		"customerStateCode": "33",
		"items": [{"description": "Spindle", "quantity": 1, "unitPrice": 1000}],
		"cgst": 90, "sgst": 90, "igst": 180
	}`)

	res := newNormalizer(false).Normalize(rec)
	assert.Equal(t, 90.0, res.Document.CGST)
	assert.Equal(t, 90.0, res.Document.SGST)
	assert.Equal(t, 0.0, res.Document.IGST)
	assert.Contains(t, res.Defaulted, "taxes")
}

func TestNormalize_CombinedTaxSplitWhenStateUnknown(t *testing.T) {
	rec := decode(t, domain.DocumentTypeTaxInvoice, `{
		"customerName": "Walk-in",
		"items": [{"description": "Gasket", "quantity": 1, "unitPrice": 100}],
		"taxTotal": 18.01
	}`)

	doc := newNormalizer(false).Normalize(rec).Document
	assert.Equal(t, 9.01, doc.CGST)
	assert.Equal(t, 9.0, doc.SGST)
	assert.Equal(t, 118.01, doc.GrandTotal)
}

func TestNormalize_UnknownStateUsesDefault(t *testing.T) {
	rec := decode(t, domain.DocumentTypeTaxInvoice, `{
		"items": [{"description": "Gasket", "quantity": 1, "unitPrice": 100}]
	}`)

	res := newNormalizer(false).Normalize(rec)
	assert.Equal(t, 9.0, res.Document.CGST)
	assert.Equal(t, 9.0, res.Document.SGST)
	assert.Contains(t, res.Defaulted, "consignee.stateCode")
	assert.Contains(t, res.Defaulted, "consignee.name")
	assert.Equal(t, "Customer", res.Document.Consignee.Name)
}

func TestNormalize_ItemDefaults(t *testing.T) {
	rec := decode(t, domain.DocumentTypePurchaseOrder, `{
		"poNumber": "PO-0009",
		"items": [
			{"qty": -3, "price": "abc"},
			{"itemName": "Bearing", "quantity": 0, "price": "1,250.50", "uom": "Pcs"}
		]
	}`)

	res := newNormalizer(false).Normalize(rec)
	doc := res.Document
	require.Len(t, doc.Items, 2)

	assert.Equal(t, "Item", doc.Items[0].Description)
	assert.Equal(t, 1.0, doc.Items[0].Quantity)
	assert.Equal(t, 0.0, doc.Items[0].UnitPrice)
	assert.Equal(t, "1", doc.Items[0].ID)

	assert.Equal(t, "Bearing", doc.Items[1].Description)
	assert.Equal(t, 1.0, doc.Items[1].Quantity)
	assert.Equal(t, 1250.5, doc.Items[1].UnitPrice)
	assert.Equal(t, "Pcs", doc.Items[1].Unit)

	assert.Equal(t, domain.StatusPending, doc.Status)
	assert.Equal(t, "Supplier", doc.Supplier.Name)
	assert.Nil(t, doc.Consignee)
	assert.Contains(t, res.Defaulted, "items[0].quantity")
	assert.Contains(t, res.Defaulted, "items[0].unitPrice")
	assert.Contains(t, res.Defaulted, "supplier.name")
}

func TestNormalize_AliasPriority(t *testing.T) {
	rec := decode(t, domain.DocumentTypeProformaInvoice, `{
		"documentNumber": "PI-0100",
		"proformaNumber": "PI-0200",
		"customerName": "First Choice",
		"consigneeName": "Second Choice",
		"buyerName": "Billing Office",
		"items": [{"description": "A", "name": "B", "unitPrice": 10, "price": 20, "amount": 0}]
	}`)

	doc := newNormalizer(false).Normalize(rec).Document
	assert.Equal(t, "PI-0100", doc.DocumentNumber)
	assert.Equal(t, "First Choice", doc.Consignee.Name)
	assert.Equal(t, "Billing Office", doc.Buyer.Name)
	assert.Equal(t, "A", doc.Items[0].Description)
	assert.Equal(t, 10.0, doc.Items[0].UnitPrice)
	assert.Equal(t, 0.0, doc.Items[0].Amount, "a zero amount is a supplied value")
}

func TestNormalize_NeverProducesNaN(t *testing.T) {
	inputs := []string{
		`{}`,
		`{"items": "not a list"}`,
		`{"items": [{"quantity": "NaN", "unitPrice": "Infinity", "amount": {}}], "subtotal": "x", "cgst": true}`,
		`{"items": [null, 1, "x"], "grandTotal": [1, 2]}`,
	}
	n := newNormalizer(true)
	for _, raw := range inputs {
		for _, dt := range domain.DocumentTypes {
			rec := decode(t, dt, raw)
			res := n.Normalize(rec)
			doc := res.Document

			assert.NotNil(t, doc.Items, raw)
			assert.NotNil(t, res.Defaulted, raw)
			for _, v := range []float64{doc.Subtotal, doc.Discount, doc.CGST, doc.SGST, doc.IGST, doc.RoundingOff, doc.GrandTotal} {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), raw)
			}
			assert.True(t, dt.ValidStatus(doc.Status), "%s %s", dt, doc.Status)
			assert.NotEmpty(t, doc.AmountInWords)
		}
	}
}

func TestNormalize_RoundOffToRupee(t *testing.T) {
	rec := decode(t, domain.DocumentTypeTaxInvoice, `{
		"customerStateCode": "33",
		"items": [{"description": "Seal", "quantity": 3, "unitPrice": 33.33}]
	}`)

	doc := newNormalizer(true).Normalize(rec).Document
	// 99.99 + 9.00 + 9.00 = 117.99
	assert.Equal(t, 0.01, doc.RoundingOff)
	assert.Equal(t, 118.0, doc.GrandTotal)
}

func TestNormalize_StaleGrandTotalReplaced(t *testing.T) {
	rec := decode(t, domain.DocumentTypeTaxInvoice, `{
		"customerStateCode": "33",
		"items": [{"description": "Seal", "quantity": 1, "unitPrice": 100}],
		"grandTotal": 500,
		"amountInWords": "Five Hundred Rupees Only"
	}`)

	res := newNormalizer(false).Normalize(rec)
	assert.Equal(t, 118.0, res.Document.GrandTotal)
	assert.Equal(t, "One Hundred Eighteen Rupees Only", res.Document.AmountInWords)
	assert.Contains(t, res.Defaulted, "grandTotal")
}

func TestNormalizeDocument_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"computed from state", `{
			"number": "X-1",
			"customerName": "Kovai Pumps",
			"customerGstin": "33AABCK1234F1Z5",
			"supplierName": "Coimbatore Castings",
			"supplierState": "Kerala",
			"items": [{"description": "Valve", "quantity": 4, "unitPrice": 1250, "discount": 100}],
			"remarks": "urgent"
		}`},
		{"explicit taxes", `{
			"number": "X-2",
			"customerName": "Kovai Pumps",
			"supplierName": "Coimbatore Castings",
			"items": [{"description": "Valve", "quantity": 4, "unitPrice": 1250}],
			"cgst": 450, "sgst": 450
		}`},
		{"combined tax", `{
			"number": "X-3",
			"customerName": "Walk-in",
			"supplierName": "Counter",
			"items": [{"description": "Gasket", "quantity": 1, "unitPrice": 100}],
			"taxTotal": 18.01
		}`},
		{"zero combined tax", `{
			"number": "X-4",
			"customerName": "Walk-in",
			"supplierName": "Counter",
			"items": [{"description": "Gasket", "quantity": 1, "unitPrice": 100}],
			"tax": 0
		}`},
	}

	n := newNormalizer(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, dt := range domain.DocumentTypes {
				first := n.Normalize(decode(t, dt, tt.raw)).Document
				second := n.NormalizeDocument(first)

				assert.Equal(t, first, second.Document, dt)
				assert.Empty(t, second.Defaulted, dt)
			}
		})
	}
}

func TestNormalize_ZeroCombinedTaxIsRecomputed(t *testing.T) {
	rec := decode(t, domain.DocumentTypeTaxInvoice, `{
		"customerName": "Walk-in",
		"items": [{"description": "Gasket", "quantity": 1, "unitPrice": 100}],
		"tax": 0
	}`)

	res := newNormalizer(false).Normalize(rec)
	assert.Equal(t, 9.0, res.Document.CGST)
	assert.Equal(t, 9.0, res.Document.SGST)
	assert.Equal(t, 118.0, res.Document.GrandTotal)
	assert.Contains(t, res.Defaulted, "taxes")
}

func TestNormalize_OverflowingItemAmount(t *testing.T) {
	rec := decode(t, domain.DocumentTypeTaxInvoice, `{
		"customerStateCode": "33",
		"items": [
			{"description": "Bulk", "quantity": 1e200, "unitPrice": 1e200},
			{"description": "Seal", "quantity": 2, "unitPrice": 50}
		]
	}`)

	res := newNormalizer(true).Normalize(rec)
	doc := res.Document
	for _, li := range doc.Items {
		assert.False(t, math.IsInf(li.Amount, 0) || math.IsNaN(li.Amount))
	}
	assert.Equal(t, 0.0, doc.Items[0].Amount)
	assert.Equal(t, 100.0, doc.Subtotal)
	assert.Equal(t, 118.0, doc.GrandTotal)
	assert.Contains(t, res.Defaulted, "items[0].amount")

	_, err := json.Marshal(doc)
	assert.NoError(t, err)
}

func TestNormalize_UnparseableNumbersAreReported(t *testing.T) {
	var buf bytes.Buffer
	n := normalize.New(normalize.Options{
		Company: domain.Company{Name: "Sakthi Engineering", StateCode: "33"},
		Rules:   tax.DefaultRules(),
	}, zerolog.New(&buf))

	rec := decode(t, domain.DocumentTypeTaxInvoice, `{
		"customerStateCode": "33",
		"items": [{"description": "Valve", "quantity": "abc", "qty": "3", "unitPrice": "12O0"}],
		"deliveryCharges": "free"
	}`)
	res := n.Normalize(rec)

	assert.Equal(t, 3.0, res.Document.Items[0].Quantity)
	assert.Equal(t, 0.0, res.Document.Items[0].UnitPrice)
	assert.Contains(t, res.Defaulted, "items[0].unitPrice")
	assert.Contains(t, res.Defaulted, "deliveryCharges")
	assert.NotContains(t, res.Defaulted, "items[0].quantity")
	assert.Contains(t, buf.String(), "ignored unparseable numeric values")
	assert.Contains(t, buf.String(), "items[0].quantity")
	assert.Contains(t, buf.String(), "items[0].unitPrice")
	assert.Contains(t, buf.String(), "deliveryCharges")
}

func TestNormalize_DiscountReducesTaxableValue(t *testing.T) {
	rec := decode(t, domain.DocumentTypeTaxInvoice, `{
		"customerStateCode": "33",
		"items": [{"description": "Valve", "quantity": 4, "unitPrice": 1250, "discount": 1000}]
	}`)

	doc := newNormalizer(false).Normalize(rec).Document
	assert.Equal(t, 5000.0, doc.Subtotal)
	assert.Equal(t, 1000.0, doc.Discount)
	assert.Equal(t, 360.0, doc.CGST)
	assert.Equal(t, 4720.0, doc.GrandTotal)
}

func TestDecodeRecord_Errors(t *testing.T) {
	_, err := normalize.DecodeRecord(domain.DocumentTypeTaxInvoice, []byte(`[1,2]`))
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)

	_, err = normalize.DecodeRecord(domain.DocumentTypeTaxInvoice, []byte(`{"items": [`))
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)

	_, err = normalize.DecodeRecord("Delivery Challan", []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
}

func TestDecodeRecord_ReceiptUsesInvoiceShape(t *testing.T) {
	rec := decode(t, domain.DocumentTypeReceipt, `{"receiptNumber": "RCP-0001"}`)
	require.NotNil(t, rec.TaxInvoice)

	doc := newNormalizer(false).Normalize(rec).Document
	assert.Equal(t, domain.DocumentTypeReceipt, doc.DocumentType)
	assert.Equal(t, "RCP-0001", doc.DocumentNumber)
	assert.Equal(t, domain.StatusReceived, doc.Status)
}
