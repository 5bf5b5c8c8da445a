package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"docdesk/internal/domain"
	"docdesk/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{fmt.Errorf("documentRepo.GetByID: %w", domain.ErrDocumentNotFound), http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{domain.ErrCounterpartyNotFound, http.StatusNotFound, "COUNTERPARTY_NOT_FOUND"},
		{domain.ErrInventoryItemNotFound, http.StatusNotFound, "INVENTORY_ITEM_NOT_FOUND"},
		{domain.ErrDuplicateDocumentNumber, http.StatusConflict, "DUPLICATE_DOCUMENT_NUMBER"},
		{domain.ErrDuplicateSKU, http.StatusConflict, "DUPLICATE_SKU"},
		{domain.ErrInvalidDocumentType, http.StatusBadRequest, "INVALID_DOCUMENT_TYPE"},
		{domain.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
		{domain.ErrInvalidConversion, http.StatusBadRequest, "INVALID_CONVERSION"},
		{domain.ErrInvalidRecord, http.StatusBadRequest, "INVALID_RECORD"},
		{domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrStorageDisabled, http.StatusServiceUnavailable, "STORAGE_DISABLED"},
		{fmt.Errorf("%w: timeout", domain.ErrUploadFailed), http.StatusBadGateway, "UPLOAD_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestHandleError_InternalHidesDetail(t *testing.T) {
	w, c := newRequest(http.MethodGet, "/", nil)

	handler.HandleError(c, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.NotContains(t, resp.Error.Message, "connection refused")
}
