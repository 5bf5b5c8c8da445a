package domain

import (
	"strings"
	"time"

	"docdesk/internal/money"
)

// Company is the fixed seller identity printed on every document.
type Company struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	GSTIN         string `json:"gstin"`
	PAN           string `json:"pan"`
	State         string `json:"state"`
	StateCode     string `json:"stateCode"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	IFSC          string `json:"ifsc"`
	Branch        string `json:"branch"`
}

// Party is a counterparty block on a document (consignee, buyer or supplier).
type Party struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
	GSTIN     string `json:"gstin"`
	State     string `json:"state"`
	StateCode string `json:"stateCode"`
}

// LineItem is a single row of a document.
type LineItem struct {
	ID          string  `json:"id"`
	HSNSAC      string  `json:"hsnSac"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
	Discount    float64 `json:"discount"`
}

// Totals holds the monetary summary of a document.
// GrandTotal = Subtotal - Discount + CGST + SGST + IGST + RoundingOff + DeliveryCharges.
type Totals struct {
	Subtotal        float64 `json:"subtotal"`
	Discount        float64 `json:"discount"`
	TaxRate         float64 `json:"taxRate"`
	CGST            float64 `json:"cgst"`
	SGST            float64 `json:"sgst"`
	IGST            float64 `json:"igst"`
	RoundingOff     float64 `json:"roundingOff"`
	DeliveryCharges float64 `json:"deliveryCharges"`
	GrandTotal      float64 `json:"grandTotal"`
}

// TaxTotal returns CGST + SGST + IGST, summed to paise.
func (t Totals) TaxTotal() float64 {
	return money.Sum(t.CGST, t.SGST, t.IGST)
}

// DocumentData is the canonical shape every document type is normalized into.
type DocumentData struct {
	ID              string       `json:"id"`
	DocumentType    DocumentType `json:"documentType"`
	DocumentNumber  string       `json:"documentNumber"`
	Date            string       `json:"date"`
	ReferenceNumber string       `json:"referenceNumber"`
	ModeOfPayment   string       `json:"modeOfPayment"`

	Company   Company `json:"company"`
	Consignee *Party  `json:"consignee,omitempty"`
	Buyer     *Party  `json:"buyer,omitempty"`
	Supplier  *Party  `json:"supplier,omitempty"`

	Items []LineItem `json:"items"`
	Totals

	AmountInWords    string `json:"amountInWords"`
	TaxAmountInWords string `json:"taxAmountInWords"`

	Status          string `json:"status"`
	Declaration     string `json:"declaration"`
	Remarks         string `json:"remarks"`
	TermsOfDelivery string `json:"termsOfDelivery"`
	Warranty        string `json:"warranty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Counterparty returns the party that decides the place of supply: the
// supplier for purchase orders, otherwise the consignee, falling back to the buyer.
func (d *DocumentData) Counterparty() *Party {
	if d.DocumentType.UsesSupplier() {
		return d.Supplier
	}
	if d.Consignee != nil {
		return d.Consignee
	}
	return d.Buyer
}

// SearchFields returns the identifying fields free-text search matches against,
// document numbers first, then counterparty names.
func (d DocumentData) SearchFields() []string {
	fields := []string{d.DocumentNumber, d.ReferenceNumber}
	if d.DocumentType.UsesSupplier() {
		if d.Supplier != nil {
			fields = append(fields, d.Supplier.Name)
		}
		return fields
	}
	if d.Consignee != nil {
		fields = append(fields, d.Consignee.Name)
	}
	if d.Buyer != nil {
		fields = append(fields, d.Buyer.Name)
	}
	return fields
}

// StatusTag returns the document status.
func (d DocumentData) StatusTag() string { return d.Status }

// Counterparty is a client or vendor master record.
type Counterparty struct {
	ID            string           `db:"id" json:"id"`
	Kind          CounterpartyKind `db:"kind" json:"kind"`
	Name          string           `db:"name" json:"name"`
	ContactPerson string           `db:"contact_person" json:"contactPerson"`
	Phone         string           `db:"phone" json:"phone"`
	Email         string           `db:"email" json:"email"`
	Address       string           `db:"address" json:"address"`
	GSTIN         string           `db:"gstin" json:"gstin"`
	State         string           `db:"state" json:"state"`
	StateCode     string           `db:"state_code" json:"stateCode"`
	Status        string           `db:"status" json:"status"`
	CreatedAt     time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updatedAt"`
}

// SearchFields returns the fields matched by free-text search.
func (c Counterparty) SearchFields() []string {
	return []string{c.Name, c.ContactPerson, c.GSTIN, c.Email, c.Phone}
}

// StatusTag returns the counterparty status.
func (c Counterparty) StatusTag() string { return c.Status }

// AsParty converts the master record into a document party block.
func (c *Counterparty) AsParty() Party {
	return Party{
		Name:      c.Name,
		Address:   c.Address,
		Contact:   strings.TrimSpace(c.ContactPerson + " " + c.Phone),
		Email:     c.Email,
		GSTIN:     c.GSTIN,
		State:     c.State,
		StateCode: c.StateCode,
	}
}

// InventoryItem is a stocked product or service.
type InventoryItem struct {
	ID           string    `db:"id" json:"id"`
	SKU          string    `db:"sku" json:"sku"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	HSNSAC       string    `db:"hsn_sac" json:"hsnSac"`
	Unit         string    `db:"unit" json:"unit"`
	UnitPrice    float64   `db:"unit_price" json:"unitPrice"`
	Quantity     float64   `db:"quantity" json:"quantity"`
	ReorderLevel float64   `db:"reorder_level" json:"reorderLevel"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// StockStatus derives the stock level label from quantity and reorder level.
func (i InventoryItem) StockStatus() string {
	switch {
	case i.Quantity <= 0:
		return StockOutOfStock
	case i.Quantity <= i.ReorderLevel:
		return StockLow
	default:
		return StockInStock
	}
}

// SearchFields returns the fields matched by free-text search.
func (i InventoryItem) SearchFields() []string {
	return []string{i.SKU, i.Name, i.Description, i.HSNSAC}
}

// StatusTag returns the derived stock status.
func (i InventoryItem) StatusTag() string { return i.StockStatus() }
