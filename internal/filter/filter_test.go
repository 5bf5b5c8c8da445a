package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docdesk/internal/domain"
	"docdesk/internal/filter"
)

func sampleDocs() []domain.DocumentData {
	return []domain.DocumentData{
		{
			ID: "1", DocumentType: domain.DocumentTypePurchaseOrder, DocumentNumber: "PO-0001",
			Supplier: &domain.Party{Name: "Coimbatore Castings"}, Status: domain.StatusPending,
		},
		{
			ID: "2", DocumentType: domain.DocumentTypeProformaInvoice, DocumentNumber: "PI-0001",
			Consignee: &domain.Party{Name: "Sri Lakshmi Mills"}, Status: domain.StatusDraft,
		},
		{
			ID: "3", DocumentType: domain.DocumentTypeTaxInvoice, DocumentNumber: "INV-0001",
			ReferenceNumber: "PI-0001", Buyer: &domain.Party{Name: "Sri Lakshmi Mills"}, Status: domain.StatusUnpaid,
		},
		{
			ID: "4", DocumentType: domain.DocumentTypeQuotation, DocumentNumber: "QTN-0004",
			Buyer: &domain.Party{Name: "Bharat Pumps"}, Status: domain.StatusDraft,
		},
	}
}

func ids(docs []domain.DocumentData) []string {
	out := make([]string, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].ID)
	}
	return out
}

func TestDocuments_EmptyQueryAllStatus(t *testing.T) {
	docs := sampleDocs()
	got := filter.Documents(docs, "", "all")
	assert.Equal(t, docs, got)

	got = filter.Documents(docs, "   ", "")
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(got))
}

func TestDocuments_UnknownStatus(t *testing.T) {
	got := filter.Documents(sampleDocs(), "", "Archived")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDocuments_TextMatch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"document number", "po-0001", []string{"1"}},
		{"reference number", "PI-0001", []string{"2", "3"}},
		{"counterparty name case-insensitive", "lakshmi", []string{"2", "3"}},
		{"supplier name", "CASTINGS", []string{"1"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(filter.Documents(sampleDocs(), tt.query, "all")))
		})
	}
}

func TestDocuments_StatusIsCaseSensitive(t *testing.T) {
	assert.Equal(t, []string{"2", "4"}, ids(filter.Documents(sampleDocs(), "", "Draft")))
	assert.Empty(t, filter.Documents(sampleDocs(), "", "draft"))
}

func TestDocuments_QueryAndStatusAreAnded(t *testing.T) {
	assert.Equal(t, []string{"2"}, ids(filter.Documents(sampleDocs(), "lakshmi", "Draft")))
	assert.Empty(t, filter.Documents(sampleDocs(), "bharat", "Unpaid"))
}

func TestApply_Counterparties(t *testing.T) {
	parties := []domain.Counterparty{
		{ID: "a", Name: "Acme", GSTIN: "33AABCA1111A1Z1", Status: domain.CounterpartyActive},
		{ID: "b", Name: "Bolt Works", Status: domain.CounterpartyInactive},
	}
	got := filter.Apply(parties, "33aabca", domain.StatusAll)
	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)

	got = filter.Apply(parties, "", domain.CounterpartyInactive)
	assert.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestApply_InventoryStockStatus(t *testing.T) {
	items := []domain.InventoryItem{
		{ID: "x", Name: "Gate Valve", Quantity: 0},
		{ID: "y", Name: "Ball Valve", Quantity: 40, ReorderLevel: 10},
	}
	got := filter.Apply(items, "valve", domain.StockOutOfStock)
	assert.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
}
