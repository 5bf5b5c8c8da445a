package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"docdesk/internal/export"
	"docdesk/internal/service"
)

// maxImportSize caps the stock sheet accepted by Import.
const maxImportSize = 10 << 20

// InventoryHandler handles inventory endpoints.
type InventoryHandler struct {
	inventoryService service.InventoryService
	exportService    service.ExportService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService service.InventoryService, exportService service.ExportService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, exportService: exportService}
}

// Create handles POST /api/v1/inventory
// @Summary Create an inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body service.InventoryInput true "Item details"
// @Success 201 {object} APIResponse{data=domain.InventoryItem} "Item created"
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 409 {object} APIResponse "SKU already exists"
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var req service.InventoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// GetByID handles GET /api/v1/inventory/:id
func (h *InventoryHandler) GetByID(c *gin.Context) {
	item, err := h.inventoryService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// List handles GET /api/v1/inventory
// @Summary List inventory
// @Tags inventory
// @Produce json
// @Param q query string false "Search text"
// @Param status query string false "In Stock, Low Stock, Out of Stock or all"
// @Success 200 {object} APIResponse{data=[]domain.InventoryItem,meta=PagMeta} "Inventory items"
// @Router /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.inventoryService.List(c.Request.Context(), c.Query("q"), c.Query("status"))
	if err != nil {
		HandleError(c, err)
		return
	}

	respondPage(c, items)
}

// Update handles PUT /api/v1/inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	var req service.InventoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.inventoryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "inventory item deleted"})
}

// AdjustStock handles PATCH /api/v1/inventory/:id/stock
// @Summary Adjust stock
// @Description Add a signed delta to the stock quantity
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} APIResponse{data=domain.InventoryItem} "Updated item"
// @Failure 404 {object} APIResponse "Item not found"
// @Failure 409 {object} APIResponse "Insufficient stock"
// @Router /inventory/{id}/stock [patch]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req struct {
		Delta *float64 `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "delta is required")
		return
	}

	item, err := h.inventoryService.AdjustStock(c.Request.Context(), c.Param("id"), *req.Delta)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Export handles GET /api/v1/inventory/export
// @Summary Export inventory
// @Tags inventory
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "Inventory workbook"
// @Router /inventory/export [get]
func (h *InventoryHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	name, err := h.exportService.ExportInventory(c.Request.Context(), &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	attachment(c, name, export.XLSXContentType, buf.Bytes())
}

// Import handles POST /api/v1/inventory/import
// @Summary Import inventory
// @Description Upsert items by SKU from an uploaded stock sheet
// @Tags inventory
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "XLSX stock sheet"
// @Success 200 {object} APIResponse{data=service.ImportSummary} "Import summary"
// @Failure 400 {object} APIResponse "Missing or unreadable sheet"
// @Router /inventory/import [post]
func (h *InventoryHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "file is required")
		return
	}
	if header.Size > maxImportSize {
		RespondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "stock sheet exceeds 10 MB")
		return
	}

	f, err := header.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}
	defer f.Close()

	rows, err := export.ReadInventorySheet(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SHEET", err.Error())
		return
	}

	summary, err := h.inventoryService.Import(c.Request.Context(), rows)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}
