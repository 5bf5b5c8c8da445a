package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docdesk/internal/domain"
	"docdesk/internal/handler"
	"docdesk/internal/normalize"
	"docdesk/internal/tax"
	"docdesk/mocks"
)

func newToolsHandler() (*handler.ToolsHandler, *mocks.MockDocumentService) {
	mockSvc := new(mocks.MockDocumentService)
	return handler.NewToolsHandler(mockSvc, tax.DefaultRules()), mockSvc
}

func TestToolsHandler_Normalize(t *testing.T) {
	h, mockSvc := newToolsHandler()

	mockSvc.On("Preview", mock.Anything, mock.Anything).
		Return(&normalize.Result{Document: domain.DocumentData{DocumentType: domain.DocumentTypeQuotation}}, nil)

	w, c := newRequest(http.MethodPost, "/api/v1/normalize", map[string]interface{}{
		"documentType": "Quotation",
		"record":       map[string]interface{}{"quoteNumber": "Q-1"},
	})
	h.Normalize(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestToolsHandler_Normalize_InvalidType(t *testing.T) {
	h, mockSvc := newToolsHandler()

	mockSvc.On("Preview", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidDocumentType)

	w, c := newRequest(http.MethodPost, "/api/v1/normalize", map[string]interface{}{
		"documentType": "Memo",
		"record":       map[string]interface{}{},
	})
	h.Normalize(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DOCUMENT_TYPE", decode(t, w).Error.Code)
}

func TestToolsHandler_ComputeTax(t *testing.T) {
	tests := []struct {
		name      string
		body      map[string]interface{}
		wantCGST  float64
		wantIGST  float64
		wantTotal float64
	}{
		{
			name:      "same state splits",
			body:      map[string]interface{}{"subtotal": 50000, "stateCode": "33"},
			wantCGST:  4500,
			wantTotal: 59000,
		},
		{
			name:      "other state uses IGST",
			body:      map[string]interface{}{"subtotal": 50000, "gstin": "29ABCDE1234F1Z5"},
			wantIGST:  9000,
			wantTotal: 59000,
		},
		{
			name:      "explicit rate and discount",
			body:      map[string]interface{}{"subtotal": 1100, "discount": 100, "stateCode": "27", "rate": 12},
			wantIGST:  120,
			wantTotal: 1120,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newToolsHandler()

			w, c := newRequest(http.MethodPost, "/api/v1/tax/compute", tt.body)
			h.ComputeTax(c)

			require.Equal(t, http.StatusOK, w.Code)
			data := decode(t, w).Data.(map[string]interface{})
			assert.InDelta(t, tt.wantCGST, data["cgst"], 0.001)
			assert.InDelta(t, tt.wantIGST, data["igst"], 0.001)
			assert.InDelta(t, tt.wantTotal, data["grandTotal"], 0.001)
		})
	}
}

func TestToolsHandler_Words(t *testing.T) {
	h, _ := newToolsHandler()

	w, c := newRequest(http.MethodGet, "/api/v1/words?amount=59320", nil)
	h.Words(c)

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "Fifty Nine Thousand Three Hundred Twenty", data["words"])
	assert.Equal(t, "Fifty Nine Thousand Three Hundred Twenty Rupees Only", data["amountInWords"])
}

func TestToolsHandler_Words_Invalid(t *testing.T) {
	h, _ := newToolsHandler()

	w, c := newRequest(http.MethodGet, "/api/v1/words?amount=abc", nil)
	h.Words(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_AMOUNT", decode(t, w).Error.Code)
}
