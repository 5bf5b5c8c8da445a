package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docdesk/internal/domain"
	"docdesk/internal/normalize"
	"docdesk/internal/repository/memory"
	"docdesk/internal/service"
	"docdesk/internal/tax"
	"docdesk/internal/validator"
	"docdesk/mocks"
)

var testCompany = domain.Company{
	Name:      "Sakthi Engineering",
	GSTIN:     "33AABCS1234F1Z5",
	State:     "Tamil Nadu",
	StateCode: "33",
}

func newDocumentService(repo *mocks.MockDocumentRepo) service.DocumentService {
	n := normalize.New(normalize.Options{Company: testCompany, Rules: tax.DefaultRules()}, zerolog.Nop())
	return service.NewDocumentService(repo, n, validator.NewDefaultEngine("33", zerolog.Nop()), zerolog.Nop())
}

const quotationRecord = `{
	"customerName": "Kovai Pumps",
	"customerState": "Tamil Nadu",
	"items": [{"description": "Centrifugal pump", "quantity": 2, "unitPrice": 24500, "hsnSac": "8413"}],
	"deliveryCharges": 1500
}`

func TestDocumentService_Create_AssignsNumberAndID(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	repo.On("NextSequence", mock.Anything, domain.DocumentTypeQuotation).Return(7, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DocumentData")).Return(nil)

	res, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType: "quotation",
		Record:       json.RawMessage(quotationRecord),
	})

	require.NoError(t, err)
	doc := res.Document
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "QTN-0007", doc.DocumentNumber)
	assert.NotEmpty(t, doc.Date)
	assert.Equal(t, domain.StatusDraft, doc.Status)
	assert.Equal(t, 59320.0, doc.GrandTotal)
	repo.AssertExpectations(t)
}

func TestDocumentService_Create_RetriesTakenNumber(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	repo.On("NextSequence", mock.Anything, domain.DocumentTypeQuotation).Return(1, nil).Once()
	repo.On("NextSequence", mock.Anything, domain.DocumentTypeQuotation).Return(2, nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateDocumentNumber).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	res, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType: "Quotation",
		Record:       json.RawMessage(quotationRecord),
	})

	require.NoError(t, err)
	assert.Equal(t, "QTN-0002", res.Document.DocumentNumber)
	repo.AssertExpectations(t)
}

func TestDocumentService_Create_SuppliedNumberNotRegenerated(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateDocumentNumber)

	_, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType: "Tax Invoice",
		Record:       json.RawMessage(`{"invoiceNumber": "INV-9", "items": []}`),
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateDocumentNumber)
	repo.AssertNotCalled(t, "NextSequence", mock.Anything, mock.Anything)
}

func TestDocumentService_Create_InvalidInput(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	_, err := svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType: "Delivery Challan",
		Record:       json.RawMessage(`{}`),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)

	_, err = svc.Create(context.Background(), &service.CreateDocumentInput{
		DocumentType: "po",
		Record:       json.RawMessage(`[1, 2]`),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDocumentService_Preview_DoesNotPersist(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	res, err := svc.Preview(context.Background(), &service.CreateDocumentInput{
		DocumentType: "po",
		Record:       json.RawMessage(`{"poNumber": "PO-1", "items": [{"qty": 0, "price": 10}]}`),
	})

	require.NoError(t, err)
	assert.Equal(t, "PO-1", res.Document.DocumentNumber)
	assert.Equal(t, "Supplier", res.Document.Supplier.Name)
	assert.Contains(t, res.Defaulted, "supplier.name")
	assert.Contains(t, res.Defaulted, "items[0].quantity")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDocumentService_UpdateStatus(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	doc := &domain.DocumentData{ID: "d1", DocumentType: domain.DocumentTypePurchaseOrder, Status: domain.StatusPending}
	repo.On("GetByID", mock.Anything, "d1").Return(doc, nil)
	repo.On("Update", mock.Anything, doc).Return(nil).Once()

	_, err := svc.UpdateStatus(context.Background(), "d1", domain.StatusPaid)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	updated, err := svc.UpdateStatus(context.Background(), "d1", domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Status)
	repo.AssertExpectations(t)
}

func TestDocumentService_Update_KeepsIdentity(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	existing := &domain.DocumentData{
		ID: "d1", DocumentType: domain.DocumentTypeProformaInvoice,
		DocumentNumber: "PI-0004", Date: "2026-01-05",
	}
	repo.On("GetByID", mock.Anything, "d1").Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.DocumentData) bool {
		return d.ID == "d1" && d.DocumentNumber == "PI-0004" && d.Date == "2026-01-05"
	})).Return(nil)

	res, err := svc.Update(context.Background(), "d1", json.RawMessage(`{
		"consignee": {"name": "Hosur Motors", "gstin": "29AABCH1234F1Z5"},
		"items": [{"description": "Valve", "quantity": 1, "unitPrice": 1000}]
	}`))

	require.NoError(t, err)
	assert.Equal(t, domain.DocumentTypeProformaInvoice, res.Document.DocumentType)
	assert.Equal(t, 180.0, res.Document.IGST)
	assert.Equal(t, 1180.0, res.Document.GrandTotal)
	repo.AssertExpectations(t)
}

func TestDocumentService_Convert(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	quote := &domain.DocumentData{
		ID: "q1", DocumentType: domain.DocumentTypeQuotation, DocumentNumber: "QTN-0001",
		Status:    domain.StatusAccepted,
		Consignee: &domain.Party{Name: "Kovai Pumps", StateCode: "33"},
		Items:     []domain.LineItem{{ID: "1", Description: "Pump", Quantity: 1, UnitPrice: 1000, Amount: 1000}},
		Totals:    domain.Totals{Subtotal: 1000, TaxRate: 18, CGST: 90, SGST: 90, GrandTotal: 1180},
	}
	repo.On("GetByID", mock.Anything, "q1").Return(quote, nil)
	repo.On("NextSequence", mock.Anything, domain.DocumentTypeTaxInvoice).Return(3, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.DocumentData")).Return(nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(d *domain.DocumentData) bool {
		return d.ID == "q1" && d.Status == domain.StatusConverted
	})).Return(nil)

	inv, err := svc.Convert(context.Background(), "q1", "tax invoice")

	require.NoError(t, err)
	assert.Equal(t, domain.DocumentTypeTaxInvoice, inv.DocumentType)
	assert.Equal(t, "INV-0003", inv.DocumentNumber)
	assert.Equal(t, "QTN-0001", inv.ReferenceNumber)
	assert.Equal(t, domain.StatusUnpaid, inv.Status)
	assert.NotEqual(t, "q1", inv.ID)
	assert.Equal(t, 1180.0, inv.GrandTotal)
	repo.AssertExpectations(t)
}

func TestDocumentService_Convert_NotAllowed(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	inv := &domain.DocumentData{ID: "i1", DocumentType: domain.DocumentTypeTaxInvoice}
	repo.On("GetByID", mock.Anything, "i1").Return(inv, nil)

	_, err := svc.Convert(context.Background(), "i1", "quotation")
	assert.ErrorIs(t, err, domain.ErrInvalidConversion)

	_, err = svc.Convert(context.Background(), "i1", "nonsense")
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDocumentService_List_Filters(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	docs := []domain.DocumentData{
		{DocumentNumber: "QTN-0001", Status: domain.StatusDraft, Consignee: &domain.Party{Name: "Kovai Pumps"}},
		{DocumentNumber: "QTN-0002", Status: domain.StatusSent, Consignee: &domain.Party{Name: "Hosur Motors"}},
	}
	repo.On("List", mock.Anything, domain.DocumentTypeQuotation).Return(docs, nil)

	got, err := svc.List(context.Background(), &service.ListDocumentsInput{DocumentType: "quote", Query: "hosur", Status: "all"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "QTN-0002", got[0].DocumentNumber)

	_, err = svc.List(context.Background(), &service.ListDocumentsInput{DocumentType: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
}

func TestDocumentService_Validate(t *testing.T) {
	repo := new(mocks.MockDocumentRepo)
	svc := newDocumentService(repo)

	doc := &domain.DocumentData{
		ID: "d1", DocumentType: domain.DocumentTypeTaxInvoice, DocumentNumber: "INV-1",
		Status: domain.StatusUnpaid, Company: testCompany,
		Consignee: &domain.Party{Name: "Hosur Motors", StateCode: "29"},
		Items:     []domain.LineItem{{Description: "Valve", Quantity: 1, UnitPrice: 1000, Amount: 1000}},
		Totals:    domain.Totals{Subtotal: 1000, TaxRate: 18, CGST: 90, SGST: 90, GrandTotal: 1180},
	}
	repo.On("GetByID", mock.Anything, "d1").Return(doc, nil)

	report, err := svc.Validate(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationStatusInvalid, report.Status)

	var keys []string
	for _, issue := range report.Issues {
		keys = append(keys, issue.RuleKey)
	}
	assert.Contains(t, keys, "xf.tax.type")
}

// The two 59320 scenarios run end to end against the in-memory store.
func TestDocumentService_EndToEnd_IntraAndInterState(t *testing.T) {
	n := normalize.New(normalize.Options{Company: testCompany, Rules: tax.DefaultRules()}, zerolog.Nop())
	svc := service.NewDocumentService(memory.NewDocumentRepo(), n, validator.NewDefaultEngine("33", zerolog.Nop()), zerolog.Nop())
	ctx := context.Background()

	intra, err := svc.Create(ctx, &service.CreateDocumentInput{
		DocumentType: "Tax Invoice",
		Record: json.RawMessage(`{
			"consigneeName": "Kovai Pumps", "consigneeStateCode": "33",
			"items": [{"description": "Pump", "quantity": 2, "unitPrice": 24500}],
			"deliveryCharges": 1500
		}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", intra.Document.DocumentNumber)
	assert.Equal(t, 4410.0, intra.Document.CGST)
	assert.Equal(t, 59320.0, intra.Document.GrandTotal)

	inter, err := svc.Create(ctx, &service.CreateDocumentInput{
		DocumentType: "Tax Invoice",
		Record: json.RawMessage(`{
			"buyer": {"name": "Bengaluru Flow", "gstin": "29AABCB1234F1Z5"},
			"items": [{"description": "Pump", "quantity": 2, "unitPrice": 24500}],
			"deliveryCharges": 1500
		}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", inter.Document.DocumentNumber)
	assert.Equal(t, 8820.0, inter.Document.IGST)
	assert.Equal(t, 0.0, inter.Document.CGST)
	assert.Equal(t, 59320.0, inter.Document.GrandTotal)

	stored, err := svc.GetByID(ctx, inter.Document.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bengaluru Flow", stored.Consignee.Name)

	report, err := svc.Validate(ctx, intra.Document.ID)
	require.NoError(t, err)
	assert.Zero(t, report.Summary.Errors)

	all, err := svc.List(ctx, &service.ListDocumentsInput{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(ctx, intra.Document.ID))
	_, err = svc.GetByID(ctx, intra.Document.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}
