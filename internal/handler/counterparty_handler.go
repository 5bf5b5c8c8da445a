package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docdesk/internal/domain"
	"docdesk/internal/service"
)

// CounterpartyHandler handles client or vendor endpoints. One handler is
// mounted per kind.
type CounterpartyHandler struct {
	counterpartyService service.CounterpartyService
	kind                domain.CounterpartyKind
}

// NewCounterpartyHandler creates a new CounterpartyHandler for kind.
func NewCounterpartyHandler(counterpartyService service.CounterpartyService, kind domain.CounterpartyKind) *CounterpartyHandler {
	return &CounterpartyHandler{counterpartyService: counterpartyService, kind: kind}
}

// Create handles POST /api/v1/clients and /api/v1/vendors
// @Summary Create a client or vendor
// @Tags counterparties
// @Accept json
// @Produce json
// @Param request body service.CounterpartyInput true "Counterparty details"
// @Success 201 {object} APIResponse{data=domain.Counterparty} "Counterparty created"
// @Failure 400 {object} APIResponse "Invalid request"
// @Router /clients [post]
// @Router /vendors [post]
func (h *CounterpartyHandler) Create(c *gin.Context) {
	var req service.CounterpartyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	cp, err := h.counterpartyService.Create(c.Request.Context(), h.kind, &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, cp)
}

// GetByID handles GET /api/v1/clients/:id and /api/v1/vendors/:id
func (h *CounterpartyHandler) GetByID(c *gin.Context) {
	cp, err := h.counterpartyService.GetByID(c.Request.Context(), h.kind, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cp)
}

// List handles GET /api/v1/clients and /api/v1/vendors
// @Summary List clients or vendors
// @Tags counterparties
// @Produce json
// @Param q query string false "Search text"
// @Param status query string false "Active, Inactive or all"
// @Success 200 {object} APIResponse{data=[]domain.Counterparty,meta=PagMeta} "Counterparties"
// @Router /clients [get]
// @Router /vendors [get]
func (h *CounterpartyHandler) List(c *gin.Context) {
	items, err := h.counterpartyService.List(c.Request.Context(), h.kind, c.Query("q"), c.Query("status"))
	if err != nil {
		HandleError(c, err)
		return
	}

	respondPage(c, items)
}

// Update handles PUT /api/v1/clients/:id and /api/v1/vendors/:id
func (h *CounterpartyHandler) Update(c *gin.Context) {
	var req service.CounterpartyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	cp, err := h.counterpartyService.Update(c.Request.Context(), h.kind, c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cp)
}

// Delete handles DELETE /api/v1/clients/:id and /api/v1/vendors/:id
func (h *CounterpartyHandler) Delete(c *gin.Context) {
	if err := h.counterpartyService.Delete(c.Request.Context(), h.kind, c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": string(h.kind) + " deleted"})
}
