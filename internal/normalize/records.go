package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"docdesk/internal/domain"
)

// SourceParty is a nested party object, e.g. {"buyer": {"name": ...}}.
type SourceParty struct {
	Name      Text `json:"name"`
	Address   Text `json:"address"`
	Contact   Text `json:"contact"`
	Phone     Text `json:"phone"`
	Email     Text `json:"email"`
	GSTIN     Text `json:"gstin"`
	State     Text `json:"state"`
	StateCode Text `json:"stateCode"`
}

func (p *SourceParty) orEmpty() SourceParty {
	if p == nil {
		return SourceParty{}
	}
	return *p
}

// CustomerFields are the flat customer* keys.
type CustomerFields struct {
	CustomerName      Text `json:"customerName"`
	CustomerAddress   Text `json:"customerAddress"`
	CustomerContact   Text `json:"customerContact"`
	CustomerPhone     Text `json:"customerPhone"`
	CustomerEmail     Text `json:"customerEmail"`
	CustomerGSTIN     Text `json:"customerGstin"`
	CustomerState     Text `json:"customerState"`
	CustomerStateCode Text `json:"customerStateCode"`
}

func (f CustomerFields) party() SourceParty {
	return SourceParty{f.CustomerName, f.CustomerAddress, f.CustomerContact, f.CustomerPhone,
		f.CustomerEmail, f.CustomerGSTIN, f.CustomerState, f.CustomerStateCode}
}

// ConsigneeFields are the flat consignee* keys.
type ConsigneeFields struct {
	ConsigneeName      Text `json:"consigneeName"`
	ConsigneeAddress   Text `json:"consigneeAddress"`
	ConsigneeContact   Text `json:"consigneeContact"`
	ConsigneePhone     Text `json:"consigneePhone"`
	ConsigneeEmail     Text `json:"consigneeEmail"`
	ConsigneeGSTIN     Text `json:"consigneeGstin"`
	ConsigneeState     Text `json:"consigneeState"`
	ConsigneeStateCode Text `json:"consigneeStateCode"`
}

func (f ConsigneeFields) party() SourceParty {
	return SourceParty{f.ConsigneeName, f.ConsigneeAddress, f.ConsigneeContact, f.ConsigneePhone,
		f.ConsigneeEmail, f.ConsigneeGSTIN, f.ConsigneeState, f.ConsigneeStateCode}
}

// BuyerFields are the flat buyer* keys.
type BuyerFields struct {
	BuyerName      Text `json:"buyerName"`
	BuyerAddress   Text `json:"buyerAddress"`
	BuyerContact   Text `json:"buyerContact"`
	BuyerPhone     Text `json:"buyerPhone"`
	BuyerEmail     Text `json:"buyerEmail"`
	BuyerGSTIN     Text `json:"buyerGstin"`
	BuyerState     Text `json:"buyerState"`
	BuyerStateCode Text `json:"buyerStateCode"`
}

func (f BuyerFields) party() SourceParty {
	return SourceParty{f.BuyerName, f.BuyerAddress, f.BuyerContact, f.BuyerPhone,
		f.BuyerEmail, f.BuyerGSTIN, f.BuyerState, f.BuyerStateCode}
}

// SupplierFields are the flat supplier* keys.
type SupplierFields struct {
	SupplierName      Text `json:"supplierName"`
	SupplierAddress   Text `json:"supplierAddress"`
	SupplierContact   Text `json:"supplierContact"`
	SupplierPhone     Text `json:"supplierPhone"`
	SupplierEmail     Text `json:"supplierEmail"`
	SupplierGSTIN     Text `json:"supplierGstin"`
	SupplierState     Text `json:"supplierState"`
	SupplierStateCode Text `json:"supplierStateCode"`
}

func (f SupplierFields) party() SourceParty {
	return SourceParty{f.SupplierName, f.SupplierAddress, f.SupplierContact, f.SupplierPhone,
		f.SupplierEmail, f.SupplierGSTIN, f.SupplierState, f.SupplierStateCode}
}

// SourceItem is a line item in any source shape.
type SourceItem struct {
	ID          Text   `json:"id"`
	HSNSAC      Text   `json:"hsnSac"`
	HSN         Text   `json:"hsn"`
	HSNCode     Text   `json:"hsnCode"`
	SAC         Text   `json:"sac"`
	Description Text   `json:"description"`
	Name        Text   `json:"name"`
	ItemName    Text   `json:"itemName"`
	Quantity    Number `json:"quantity"`
	Qty         Number `json:"qty"`
	Unit        Text   `json:"unit"`
	UOM         Text   `json:"uom"`
	UnitPrice   Number `json:"unitPrice"`
	Price       Number `json:"price"`
	Rate        Number `json:"rate"`
	Amount      Number `json:"amount"`
	Total       Number `json:"total"`
	Discount    Number `json:"discount"`
}

// SourceTotals are the monetary keys shared by every shape.
type SourceTotals struct {
	Subtotal         Number `json:"subtotal"`
	Discount         Number `json:"discount"`
	TaxRate          Number `json:"taxRate"`
	GSTRate          Number `json:"gstRate"`
	CGST             Number `json:"cgst"`
	SGST             Number `json:"sgst"`
	IGST             Number `json:"igst"`
	TaxTotal         Number `json:"taxTotal"`
	Tax              Number `json:"tax"`
	RoundingOff      Number `json:"roundingOff"`
	RoundOff         Number `json:"roundOff"`
	DeliveryCharges  Number `json:"deliveryCharges"`
	Freight          Number `json:"freight"`
	GrandTotal       Number `json:"grandTotal"`
	Total            Number `json:"total"`
	AmountInWords    Text   `json:"amountInWords"`
	TaxAmountInWords Text   `json:"taxAmountInWords"`
}

// SourceTerms are the descriptive keys shared by every shape.
type SourceTerms struct {
	ReferenceNumber Text `json:"referenceNumber"`
	ModeOfPayment   Text `json:"modeOfPayment"`
	PaymentTerms    Text `json:"paymentTerms"`
	Status          Text `json:"status"`
	Declaration     Text `json:"declaration"`
	Remarks         Text `json:"remarks"`
	Notes           Text `json:"notes"`
	TermsOfDelivery Text `json:"termsOfDelivery"`
	DeliveryTerms   Text `json:"deliveryTerms"`
	Warranty        Text `json:"warranty"`
}

// SalesParties are the party keys accepted by sales documents.
type SalesParties struct {
	CustomerFields
	ConsigneeFields
	BuyerFields
	Consignee *SourceParty `json:"consignee"`
	Buyer     *SourceParty `json:"buyer"`
}

// PurchaseOrderRecord is the source shape of a purchase order.
type PurchaseOrderRecord struct {
	ID             Text `json:"id"`
	DocumentNumber Text `json:"documentNumber"`
	PONumber       Text `json:"poNumber"`
	Number         Text `json:"number"`
	Date           Text `json:"date"`
	PODate         Text `json:"poDate"`
	SupplierFields
	Supplier *SourceParty `json:"supplier"`
	Items    []SourceItem `json:"items"`
	SourceTotals
	SourceTerms
}

// ProformaInvoiceRecord is the source shape of a proforma invoice.
type ProformaInvoiceRecord struct {
	ID             Text `json:"id"`
	DocumentNumber Text `json:"documentNumber"`
	ProformaNumber Text `json:"proformaNumber"`
	Number         Text `json:"number"`
	Date           Text `json:"date"`
	ProformaDate   Text `json:"proformaDate"`
	SalesParties
	Items []SourceItem `json:"items"`
	SourceTotals
	SourceTerms
}

// TaxInvoiceRecord is the source shape of a tax invoice. Receipts share it.
type TaxInvoiceRecord struct {
	ID             Text `json:"id"`
	DocumentNumber Text `json:"documentNumber"`
	InvoiceNumber  Text `json:"invoiceNumber"`
	ReceiptNumber  Text `json:"receiptNumber"`
	Number         Text `json:"number"`
	Date           Text `json:"date"`
	InvoiceDate    Text `json:"invoiceDate"`
	SalesParties
	Items []SourceItem `json:"items"`
	SourceTotals
	SourceTerms
}

// QuotationRecord is the source shape of a quotation.
type QuotationRecord struct {
	ID              Text `json:"id"`
	DocumentNumber  Text `json:"documentNumber"`
	QuotationNumber Text `json:"quotationNumber"`
	QuoteNumber     Text `json:"quoteNumber"`
	Number          Text `json:"number"`
	Date            Text `json:"date"`
	QuotationDate   Text `json:"quotationDate"`
	SalesParties
	Items []SourceItem `json:"items"`
	SourceTotals
	SourceTerms
}

// Record is a source record tagged with its document type. Exactly one
// variant pointer is set; Receipt records use TaxInvoice.
type Record struct {
	Type            domain.DocumentType
	PurchaseOrder   *PurchaseOrderRecord
	ProformaInvoice *ProformaInvoiceRecord
	TaxInvoice      *TaxInvoiceRecord
	Quotation       *QuotationRecord
}

// DecodeRecord decodes raw JSON into the variant for t. Fields with the wrong
// JSON type are skipped; only malformed JSON or an unknown type is an error.
func DecodeRecord(t domain.DocumentType, data []byte) (Record, error) {
	rec := Record{Type: t}
	var target any
	switch t {
	case domain.DocumentTypePurchaseOrder:
		rec.PurchaseOrder = &PurchaseOrderRecord{}
		target = rec.PurchaseOrder
	case domain.DocumentTypeProformaInvoice:
		rec.ProformaInvoice = &ProformaInvoiceRecord{}
		target = rec.ProformaInvoice
	case domain.DocumentTypeTaxInvoice, domain.DocumentTypeReceipt:
		rec.TaxInvoice = &TaxInvoiceRecord{}
		target = rec.TaxInvoice
	case domain.DocumentTypeQuotation:
		rec.Quotation = &QuotationRecord{}
		target = rec.Quotation
	default:
		return Record{}, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, t)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Record{}, fmt.Errorf("%w: expected a JSON object", domain.ErrInvalidRecord)
	}
	if err := json.Unmarshal(trimmed, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return Record{}, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
		}
	}
	return rec, nil
}
