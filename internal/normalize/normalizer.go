// Package normalize maps the per-type source record shapes onto the canonical
// DocumentData. Normalization never fails: every missing or unparseable field
// falls back to a default and the fallback is reported in Result.Defaulted.
package normalize

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/rs/zerolog"

	"docdesk/internal/domain"
	"docdesk/internal/money"
	"docdesk/internal/tax"
)

const (
	defaultItemDescription = "Item"
	defaultItemUnit        = "Nos"
)

// Options configures a Normalizer.
type Options struct {
	Company domain.Company
	Rules   tax.Rules
	// RoundOffToRupee rounds every grand total to whole rupees and records the
	// adjustment in RoundingOff. When false a supplied adjustment is kept as is.
	RoundOffToRupee bool
}

// Normalizer turns source records into canonical documents.
type Normalizer struct {
	company  domain.Company
	rules    tax.Rules
	roundOff bool
	log      zerolog.Logger
}

// New creates a Normalizer. Zero rules fall back to tax.DefaultRules.
func New(opts Options, log zerolog.Logger) *Normalizer {
	rules := opts.Rules
	if rules.SellerStateCode == "" {
		rules = tax.DefaultRules()
	}
	return &Normalizer{
		company:  opts.Company,
		rules:    rules,
		roundOff: opts.RoundOffToRupee,
		log:      log.With().Str("component", "normalizer").Logger(),
	}
}

// Rules returns the GST rules the normalizer applies.
func (n *Normalizer) Rules() tax.Rules { return n.rules }

// Result is a normalized document plus the canonical fields that were not
// supplied by the source and had to be defaulted or derived.
type Result struct {
	Document  domain.DocumentData `json:"document"`
	Defaulted []string            `json:"defaulted"`
}

type tracker struct {
	fields   []string
	rejected []string
}

func (t *tracker) mark(field string) {
	if slices.Contains(t.fields, field) {
		return
	}
	t.fields = append(t.fields, field)
}

func (t *tracker) text(field, def string, vals ...Text) string {
	if v, ok := firstText(vals...); ok {
		return v
	}
	t.mark(field)
	return def
}

// lookup resolves a numeric alias list, remembering fields where a value was
// supplied but could not be parsed. Such a field counts as defaulted when no
// other alias resolves.
func (t *tracker) lookup(field string, vals ...Number) (float64, bool) {
	v, ok := firstNumber(vals...)
	if anyInvalid(vals...) {
		t.rejected = append(t.rejected, field)
		if !ok {
			t.mark(field)
		}
	}
	return v, ok
}

func (t *tracker) number(field string, def float64, vals ...Number) float64 {
	if v, ok := t.lookup(field, vals...); ok {
		return v
	}
	t.mark(field)
	return def
}

func optional(vals ...Text) string {
	v, _ := firstText(vals...)
	return v
}

// header is a variant after its type-specific aliases have been resolved.
type header struct {
	id        string
	number    string
	date      string
	consignee *domain.Party
	buyer     *domain.Party
	supplier  *domain.Party
	items     []SourceItem
	totals    SourceTotals
	terms     SourceTerms
}

func purchaseOrderHeader(r *PurchaseOrderRecord, tr *tracker) header {
	return header{
		id:       optional(r.ID),
		number:   tr.text("documentNumber", "", r.DocumentNumber, r.PONumber, r.Number),
		date:     optional(r.Date, r.PODate),
		supplier: supplierParty(r.SupplierFields, r.Supplier, tr),
		items:    r.Items,
		totals:   r.SourceTotals,
		terms:    r.SourceTerms,
	}
}

func proformaInvoiceHeader(r *ProformaInvoiceRecord, tr *tracker) header {
	h := header{
		id:     optional(r.ID),
		number: tr.text("documentNumber", "", r.DocumentNumber, r.ProformaNumber, r.Number),
		date:   optional(r.Date, r.ProformaDate),
		items:  r.Items,
		totals: r.SourceTotals,
		terms:  r.SourceTerms,
	}
	h.consignee, h.buyer = salesParties(r.SalesParties, tr)
	return h
}

func taxInvoiceHeader(r *TaxInvoiceRecord, tr *tracker) header {
	h := header{
		id:     optional(r.ID),
		number: tr.text("documentNumber", "", r.DocumentNumber, r.InvoiceNumber, r.ReceiptNumber, r.Number),
		date:   optional(r.Date, r.InvoiceDate),
		items:  r.Items,
		totals: r.SourceTotals,
		terms:  r.SourceTerms,
	}
	h.consignee, h.buyer = salesParties(r.SalesParties, tr)
	return h
}

func quotationHeader(r *QuotationRecord, tr *tracker) header {
	h := header{
		id:     optional(r.ID),
		number: tr.text("documentNumber", "", r.DocumentNumber, r.QuotationNumber, r.QuoteNumber, r.Number),
		date:   optional(r.Date, r.QuotationDate),
		items:  r.Items,
		totals: r.SourceTotals,
		terms:  r.SourceTerms,
	}
	h.consignee, h.buyer = salesParties(r.SalesParties, tr)
	return h
}

// Normalize maps rec onto the canonical shape.
func (n *Normalizer) Normalize(rec Record) Result {
	tr := &tracker{}
	docType := rec.Type

	var h header
	switch {
	case rec.PurchaseOrder != nil:
		h = purchaseOrderHeader(rec.PurchaseOrder, tr)
		docType = domain.DocumentTypePurchaseOrder
	case rec.ProformaInvoice != nil:
		h = proformaInvoiceHeader(rec.ProformaInvoice, tr)
		docType = domain.DocumentTypeProformaInvoice
	case rec.TaxInvoice != nil:
		h = taxInvoiceHeader(rec.TaxInvoice, tr)
		if docType != domain.DocumentTypeReceipt {
			docType = domain.DocumentTypeTaxInvoice
		}
	case rec.Quotation != nil:
		h = quotationHeader(rec.Quotation, tr)
		docType = domain.DocumentTypeQuotation
	default:
		tr.mark("record")
		if docType.UsesSupplier() {
			h.supplier = supplierParty(SupplierFields{}, nil, tr)
		} else {
			h.consignee, h.buyer = salesParties(SalesParties{}, tr)
		}
	}

	doc := n.build(docType, h, tr)
	if len(tr.rejected) > 0 {
		n.log.Warn().
			Str("document_type", string(doc.DocumentType)).
			Str("document_number", doc.DocumentNumber).
			Strs("fields", tr.rejected).
			Msg("ignored unparseable numeric values")
	}
	if len(tr.fields) > 0 {
		n.log.Debug().
			Str("document_type", string(doc.DocumentType)).
			Str("document_number", doc.DocumentNumber).
			Strs("defaulted", tr.fields).
			Msg("normalized document with defaults")
	}
	return Result{Document: doc, Defaulted: nonNil(tr.fields)}
}

// NormalizeDocument re-normalizes an already canonical document, recomputing
// derived totals. Identity and timestamps are preserved.
func (n *Normalizer) NormalizeDocument(doc domain.DocumentData) Result {
	res := n.Normalize(FromDocument(doc))
	res.Document.CreatedAt = doc.CreatedAt
	res.Document.UpdatedAt = doc.UpdatedAt
	return res
}

// FromDocument expresses a canonical document as the source variant of its type.
func FromDocument(doc domain.DocumentData) Record {
	items := make([]SourceItem, 0, len(doc.Items))
	for _, li := range doc.Items {
		items = append(items, SourceItem{
			ID:          T(li.ID),
			HSNSAC:      T(li.HSNSAC),
			Description: T(li.Description),
			Quantity:    N(li.Quantity),
			Unit:        T(li.Unit),
			UnitPrice:   N(li.UnitPrice),
			Amount:      N(li.Amount),
			Discount:    N(li.Discount),
		})
	}
	totals := SourceTotals{
		Subtotal:         N(doc.Subtotal),
		Discount:         N(doc.Discount),
		TaxRate:          N(doc.TaxRate),
		CGST:             N(doc.CGST),
		SGST:             N(doc.SGST),
		IGST:             N(doc.IGST),
		RoundingOff:      N(doc.RoundingOff),
		DeliveryCharges:  N(doc.DeliveryCharges),
		GrandTotal:       N(doc.GrandTotal),
		AmountInWords:    T(doc.AmountInWords),
		TaxAmountInWords: T(doc.TaxAmountInWords),
	}
	terms := SourceTerms{
		ReferenceNumber: T(doc.ReferenceNumber),
		ModeOfPayment:   T(doc.ModeOfPayment),
		Status:          T(doc.Status),
		Declaration:     T(doc.Declaration),
		Remarks:         T(doc.Remarks),
		TermsOfDelivery: T(doc.TermsOfDelivery),
		Warranty:        T(doc.Warranty),
	}
	sales := SalesParties{Consignee: sourceParty(doc.Consignee), Buyer: sourceParty(doc.Buyer)}

	rec := Record{Type: doc.DocumentType}
	switch doc.DocumentType {
	case domain.DocumentTypePurchaseOrder:
		rec.PurchaseOrder = &PurchaseOrderRecord{
			ID: T(doc.ID), DocumentNumber: T(doc.DocumentNumber), Date: T(doc.Date),
			Supplier: sourceParty(doc.Supplier), Items: items, SourceTotals: totals, SourceTerms: terms,
		}
	case domain.DocumentTypeProformaInvoice:
		rec.ProformaInvoice = &ProformaInvoiceRecord{
			ID: T(doc.ID), DocumentNumber: T(doc.DocumentNumber), Date: T(doc.Date),
			SalesParties: sales, Items: items, SourceTotals: totals, SourceTerms: terms,
		}
	case domain.DocumentTypeQuotation:
		rec.Quotation = &QuotationRecord{
			ID: T(doc.ID), DocumentNumber: T(doc.DocumentNumber), Date: T(doc.Date),
			SalesParties: sales, Items: items, SourceTotals: totals, SourceTerms: terms,
		}
	default:
		rec.TaxInvoice = &TaxInvoiceRecord{
			ID: T(doc.ID), DocumentNumber: T(doc.DocumentNumber), Date: T(doc.Date),
			SalesParties: sales, Items: items, SourceTotals: totals, SourceTerms: terms,
		}
	}
	return rec
}

func (n *Normalizer) build(docType domain.DocumentType, h header, tr *tracker) domain.DocumentData {
	doc := domain.DocumentData{
		ID:              h.id,
		DocumentType:    docType,
		DocumentNumber:  h.number,
		Date:            h.date,
		ReferenceNumber: optional(h.terms.ReferenceNumber),
		ModeOfPayment:   optional(h.terms.ModeOfPayment, h.terms.PaymentTerms),
		Company:         n.company,
		Consignee:       h.consignee,
		Buyer:           h.buyer,
		Supplier:        h.supplier,
		Declaration:     optional(h.terms.Declaration),
		Remarks:         optional(h.terms.Remarks, h.terms.Notes),
		TermsOfDelivery: optional(h.terms.TermsOfDelivery, h.terms.DeliveryTerms),
		Warranty:        optional(h.terms.Warranty),
	}

	status := optional(h.terms.Status)
	if !docType.ValidStatus(status) {
		if status != "" {
			n.log.Warn().Str("status", status).Str("document_type", string(docType)).Msg("unknown status replaced with default")
		}
		tr.mark("status")
		status = docType.DefaultStatus()
	}
	doc.Status = status

	doc.Items = make([]domain.LineItem, 0, len(h.items))
	for i, it := range h.items {
		doc.Items = append(doc.Items, normalizeItem(i, it, tr))
	}

	n.applyTotals(&doc, h.totals, tr)
	return doc
}

func normalizeItem(i int, it SourceItem, tr *tracker) domain.LineItem {
	path := fmt.Sprintf("items[%d]", i)
	li := domain.LineItem{
		ID:          optional(it.ID),
		HSNSAC:      optional(it.HSNSAC, it.HSN, it.HSNCode, it.SAC),
		Description: tr.text(path+".description", defaultItemDescription, it.Description, it.Name, it.ItemName),
		Unit:        tr.text(path+".unit", defaultItemUnit, it.Unit, it.UOM),
	}
	if li.ID == "" {
		li.ID = strconv.Itoa(i + 1)
	}

	qty, ok := tr.lookup(path+".quantity", it.Quantity, it.Qty)
	if !ok || qty <= 0 {
		tr.mark(path + ".quantity")
		qty = 1
	}
	li.Quantity = qty
	li.UnitPrice = money.Round(tr.number(path+".unitPrice", 0, it.UnitPrice, it.Price, it.Rate))

	if amount, ok := tr.lookup(path+".amount", it.Amount, it.Total); ok {
		li.Amount = money.Round(amount)
	} else {
		tr.mark(path + ".amount")
		li.Amount, _ = money.Product(qty, li.UnitPrice)
	}
	if d, ok := tr.lookup(path+".discount", it.Discount); ok {
		li.Discount = money.Round(d)
	}
	return li
}

func (n *Normalizer) applyTotals(doc *domain.DocumentData, src SourceTotals, tr *tracker) {
	if v, ok := tr.lookup("subtotal", src.Subtotal); ok {
		doc.Subtotal = money.Round(v)
	} else {
		tr.mark("subtotal")
		amounts := make([]float64, 0, len(doc.Items))
		for _, li := range doc.Items {
			amounts = append(amounts, li.Amount)
		}
		doc.Subtotal = money.Sum(amounts...)
	}

	if v, ok := tr.lookup("discount", src.Discount); ok {
		doc.Discount = money.Round(v)
	} else {
		discounts := make([]float64, 0, len(doc.Items))
		for _, li := range doc.Items {
			discounts = append(discounts, li.Discount)
		}
		doc.Discount = money.Sum(discounts...)
	}

	if v, ok := tr.lookup("deliveryCharges", src.DeliveryCharges, src.Freight); ok {
		doc.DeliveryCharges = money.Round(v)
	}

	taxesKept := n.applyTaxes(doc, src, tr)

	preRound := money.Sum(doc.Subtotal, -doc.Discount, doc.CGST, doc.SGST, doc.IGST, doc.DeliveryCharges)
	if n.roundOff {
		doc.RoundingOff = money.RoundOff(preRound)
	} else if v, ok := tr.lookup("roundingOff", src.RoundingOff, src.RoundOff); ok {
		doc.RoundingOff = money.Round(v)
	}
	doc.GrandTotal = money.Sum(preRound, doc.RoundingOff)

	totalAgrees := false
	if given, ok := tr.lookup("grandTotal", src.GrandTotal, src.Total); ok {
		totalAgrees = money.ApproxEqual(given, doc.GrandTotal)
		if !totalAgrees {
			n.log.Warn().
				Float64("supplied", given).
				Float64("computed", doc.GrandTotal).
				Str("document_number", doc.DocumentNumber).
				Msg("supplied grand total replaced with computed total")
			tr.mark("grandTotal")
		}
	}

	words, supplied := firstText(src.AmountInWords)
	if !supplied {
		tr.mark("amountInWords")
	}
	if !supplied || !totalAgrees {
		words = money.AmountInWords(doc.GrandTotal)
	}
	doc.AmountInWords = words

	taxWords, supplied := firstText(src.TaxAmountInWords)
	if !supplied {
		tr.mark("taxAmountInWords")
	}
	if !supplied || !taxesKept {
		taxWords = money.AmountInWords(doc.TaxTotal())
	}
	doc.TaxAmountInWords = taxWords
}

// applyTaxes fills the tax rate and CGST/SGST/IGST. Supplied amounts are kept
// when they are mutually exclusive; otherwise the GST rules decide from the
// counterparty location, a supplied combined tax is split in halves, or the
// default buyer state is assumed. It reports whether supplied amounts were kept.
func (n *Normalizer) applyTaxes(doc *domain.DocumentData, src SourceTotals, tr *tracker) bool {
	rate, ok := tr.lookup("taxRate", src.TaxRate, src.GSTRate)
	if !ok || rate < 0 {
		tr.mark("taxRate")
		rate = n.rules.Rate
	}
	doc.TaxRate = rate

	taxable := money.Sum(doc.Subtotal, -doc.Discount)
	place, field := n.place(doc)

	cgst, cgstOK := tr.lookup("cgst", src.CGST)
	sgst, sgstOK := tr.lookup("sgst", src.SGST)
	igst, igstOK := tr.lookup("igst", src.IGST)
	if !cgstOK && sgstOK {
		cgst = sgst
	}
	if !sgstOK && cgstOK {
		sgst = cgst
	}
	supplied := cgstOK || sgstOK || igstOK
	placeholder := supplied && cgst == 0 && sgst == 0 && igst == 0 && taxable > 0 && rate > 0

	switch {
	case supplied && !placeholder && (cgst != 0 || sgst != 0) && igst != 0:
		n.log.Warn().
			Str("document_number", doc.DocumentNumber).
			Msg("both intra-state and inter-state tax supplied; recomputing")
		tr.mark("taxes")
		n.setTaxes(doc, n.rules.Compute(taxable, place, rate))
		return false
	case supplied && !placeholder:
		doc.CGST = money.Round(cgst)
		doc.SGST = money.Round(sgst)
		doc.IGST = money.Round(igst)
		return true
	case n.rules.Known(place):
		tr.mark("taxes")
		n.setTaxes(doc, n.rules.Compute(taxable, place, rate))
	default:
		// A zero combined tax on a positive taxable value is a placeholder,
		// same as all-zero split amounts.
		combined, ok := tr.lookup("taxTotal", src.TaxTotal, src.Tax)
		if ok && !(combined == 0 && taxable > 0 && rate > 0) {
			tr.mark("taxes")
			doc.CGST, doc.SGST = tax.SplitCombined(combined)
			doc.IGST = 0
			return false
		}
		tr.mark("taxes")
		tr.mark(field + ".stateCode")
		n.setTaxes(doc, n.rules.Compute(taxable, place, rate))
	}
	return false
}

func (n *Normalizer) setTaxes(doc *domain.DocumentData, b tax.Breakdown) {
	doc.CGST = b.CGST
	doc.SGST = b.SGST
	doc.IGST = b.IGST
}

// place fills in derivable party state codes and names, then returns the
// counterparty location used for the GST decision.
func (n *Normalizer) place(doc *domain.DocumentData) (tax.Place, string) {
	for _, p := range []*domain.Party{doc.Consignee, doc.Buyer, doc.Supplier} {
		completeState(p)
	}
	field := "consignee"
	if doc.DocumentType.UsesSupplier() {
		field = "supplier"
	}
	party := doc.Counterparty()
	if party == nil {
		return tax.Place{}, field
	}
	return tax.Place{StateCode: party.StateCode, State: party.State, GSTIN: party.GSTIN}, field
}

func completeState(p *domain.Party) {
	if p == nil {
		return
	}
	if p.StateCode == "" {
		if code, ok := tax.StateCodeFromGSTIN(p.GSTIN); ok {
			p.StateCode = code
		} else if code, ok := tax.StateCodeFor(p.State); ok {
			p.StateCode = code
		}
	} else if len(p.StateCode) == 1 {
		p.StateCode = "0" + p.StateCode
	}
	if p.State == "" && p.StateCode != "" {
		p.State, _ = tax.StateName(p.StateCode)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
