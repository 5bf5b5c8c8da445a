package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"docdesk/internal/money"
	"docdesk/internal/service"
	"docdesk/internal/tax"
)

// ToolsHandler serves the stateless helpers: normalization preview, GST
// computation and amount-to-words.
type ToolsHandler struct {
	documentService service.DocumentService
	rules           tax.Rules
}

// NewToolsHandler creates a new ToolsHandler.
func NewToolsHandler(documentService service.DocumentService, rules tax.Rules) *ToolsHandler {
	return &ToolsHandler{documentService: documentService, rules: rules}
}

// TaxRequest is the body of POST /tax/compute.
type TaxRequest struct {
	Subtotal  float64  `json:"subtotal"`
	Discount  float64  `json:"discount"`
	StateCode string   `json:"stateCode"`
	State     string   `json:"state"`
	GSTIN     string   `json:"gstin"`
	Rate      *float64 `json:"rate"`
}

// TaxResponse is the GST breakdown with the resulting totals.
type TaxResponse struct {
	tax.Breakdown
	StateSource tax.StateSource `json:"stateSource"`
	TaxTotal    float64         `json:"taxTotal"`
	GrandTotal  float64         `json:"grandTotal"`
}

// WordsResponse is the body returned by GET /words.
type WordsResponse struct {
	Amount        float64 `json:"amount"`
	Words         string  `json:"words"`
	AmountInWords string  `json:"amountInWords"`
}

// Normalize handles POST /api/v1/normalize
// @Summary Preview normalization
// @Description Normalize a raw record into a canonical document without storing it
// @Tags tools
// @Accept json
// @Produce json
// @Param request body service.CreateDocumentInput true "Document type and raw record"
// @Success 200 {object} APIResponse{data=normalize.Result} "Normalized document"
// @Failure 400 {object} APIResponse "Invalid document type or record"
// @Router /normalize [post]
func (h *ToolsHandler) Normalize(c *gin.Context) {
	var req service.CreateDocumentInput
	if err := c.ShouldBindJSON(&req); err != nil || req.DocumentType == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "documentType and record are required")
		return
	}

	result, err := h.documentService.Preview(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ComputeTax handles POST /api/v1/tax/compute
// @Summary Compute GST
// @Description Split GST into CGST+SGST or IGST for the buyer location
// @Tags tools
// @Accept json
// @Produce json
// @Param request body TaxRequest true "Taxable value and buyer location"
// @Success 200 {object} APIResponse{data=TaxResponse} "Tax breakdown"
// @Failure 400 {object} APIResponse "Invalid request"
// @Router /tax/compute [post]
func (h *ToolsHandler) ComputeTax(c *gin.Context) {
	var req TaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	rate := h.rules.Rate
	if req.Rate != nil {
		rate = *req.Rate
	}
	place := tax.Place{StateCode: req.StateCode, State: req.State, GSTIN: strings.ToUpper(strings.TrimSpace(req.GSTIN))}
	taxable := money.Sum(req.Subtotal, -req.Discount)
	b := h.rules.Compute(taxable, place, rate)
	_, src := h.rules.ResolveStateCode(place)

	RespondOK(c, TaxResponse{
		Breakdown:   b,
		StateSource: src,
		TaxTotal:    b.Total(),
		GrandTotal:  money.Sum(b.TaxableValue, b.Total()),
	})
}

// Words handles GET /api/v1/words
// @Summary Amount in words
// @Description Spell an amount using Indian numbering
// @Tags tools
// @Produce json
// @Param amount query number true "Amount"
// @Success 200 {object} APIResponse{data=WordsResponse} "Amount in words"
// @Failure 400 {object} APIResponse "Invalid amount"
// @Router /words [get]
func (h *ToolsHandler) Words(c *gin.Context) {
	raw := strings.ReplaceAll(strings.TrimSpace(c.Query("amount")), ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_AMOUNT", "amount must be a number")
		return
	}

	RespondOK(c, WordsResponse{
		Amount:        amount,
		Words:         money.Words(amount),
		AmountInWords: money.AmountInWords(amount),
	})
}
