package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docdesk/internal/export"
	"docdesk/internal/service"
)

// DocumentHandler handles document endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	exportService   service.ExportService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, exportService service.ExportService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, exportService: exportService}
}

func listInput(c *gin.Context) *service.ListDocumentsInput {
	return &service.ListDocumentsInput{
		DocumentType: c.Query("type"),
		Query:        c.Query("q"),
		Status:       c.Query("status"),
	}
}

// Create handles POST /api/v1/documents
// @Summary Create a document
// @Description Normalize a raw record, assign a document number and store it
// @Tags documents
// @Accept json
// @Produce json
// @Param request body service.CreateDocumentInput true "Document type and raw record"
// @Success 201 {object} APIResponse{data=normalize.Result} "Document created"
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 409 {object} APIResponse "Document number already exists"
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req service.CreateDocumentInput
	if err := c.ShouldBindJSON(&req); err != nil || req.DocumentType == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "documentType and record are required")
		return
	}

	result, err := h.documentService.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse{data=domain.DocumentData} "Document details"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	doc, err := h.documentService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// List handles GET /api/v1/documents
// @Summary List documents
// @Description List documents filtered by type, free-text query and status
// @Tags documents
// @Produce json
// @Param type query string false "Document type"
// @Param q query string false "Search text"
// @Param status query string false "Status, or all"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination, 0 for all" default(0)
// @Success 200 {object} APIResponse{data=[]domain.DocumentData,meta=PagMeta} "List of documents"
// @Failure 400 {object} APIResponse "Invalid document type"
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.documentService.List(c.Request.Context(), listInput(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	respondPage(c, docs)
}

// Update handles PUT /api/v1/documents/:id
// @Summary Replace a document
// @Description Re-normalize the document from a new raw record of the same type
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse{data=normalize.Result} "Updated document"
// @Failure 400 {object} APIResponse "Invalid record"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	var req struct {
		Record json.RawMessage `json:"record"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Record) == 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "record is required")
		return
	}

	result, err := h.documentService.Update(c.Request.Context(), c.Param("id"), req.Record)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// UpdateStatus handles PATCH /api/v1/documents/:id/status
// @Summary Change document status
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse{data=domain.DocumentData} "Updated document"
// @Failure 400 {object} APIResponse "Status not valid for the document type"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	doc, err := h.documentService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Convert handles POST /api/v1/documents/:id/convert
// @Summary Convert a document
// @Description Create a new document of the target type from an existing one
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Source document ID"
// @Success 201 {object} APIResponse{data=domain.DocumentData} "Converted document"
// @Failure 400 {object} APIResponse "Conversion not allowed"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id}/convert [post]
func (h *DocumentHandler) Convert(c *gin.Context) {
	var req struct {
		TargetType string `json:"targetType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "targetType is required")
		return
	}

	doc, err := h.documentService.Convert(c.Request.Context(), c.Param("id"), req.TargetType)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, doc)
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete a document
// @Tags documents
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse "Document deleted"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "document deleted"})
}

// Validation handles GET /api/v1/documents/:id/validation
// @Summary Validate a document
// @Description Run the validation rules against a stored document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse{data=validator.Report} "Validation report"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id}/validation [get]
func (h *DocumentHandler) Validation(c *gin.Context) {
	report, err := h.documentService.Validate(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Workbook handles GET /api/v1/documents/:id/xlsx
// @Summary Download a document workbook
// @Tags documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Document ID"
// @Success 200 {file} file "Document workbook"
// @Failure 404 {object} APIResponse "Document not found"
// @Router /documents/{id}/xlsx [get]
func (h *DocumentHandler) Workbook(c *gin.Context) {
	var buf bytes.Buffer
	name, err := h.exportService.DocumentWorkbook(c.Request.Context(), c.Param("id"), &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	attachment(c, name, export.XLSXContentType, buf.Bytes())
}

// Archive handles POST /api/v1/documents/:id/archive
// @Summary Archive a document workbook
// @Description Upload the document workbook to object storage and return a presigned URL
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 201 {object} APIResponse{data=service.ArchiveResult} "Archived workbook"
// @Failure 404 {object} APIResponse "Document not found"
// @Failure 503 {object} APIResponse "Object storage not configured"
// @Router /documents/{id}/archive [post]
func (h *DocumentHandler) Archive(c *gin.Context) {
	result, err := h.exportService.Archive(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Export handles GET /api/v1/documents/export
// @Summary Export documents
// @Description Download the filtered document list as CSV or XLSX
// @Tags documents
// @Produce text/csv
// @Param format query string false "csv or xlsx" default(csv)
// @Param type query string false "Document type"
// @Param q query string false "Search text"
// @Param status query string false "Status, or all"
// @Success 200 {file} file "Exported documents"
// @Failure 400 {object} APIResponse "Invalid format or document type"
// @Router /documents/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", service.FormatCSV)

	var buf bytes.Buffer
	name, err := h.exportService.ExportDocuments(c.Request.Context(), listInput(c), format, &buf)
	if err != nil {
		HandleError(c, err)
		return
	}

	contentType := "text/csv; charset=utf-8"
	if strings.HasSuffix(name, "."+service.FormatXLSX) {
		contentType = export.XLSXContentType
	}
	attachment(c, name, contentType, buf.Bytes())
}
