package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"docdesk/internal/handler"
	"docdesk/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health    *handler.HealthHandler
	Documents *handler.DocumentHandler
	Tools     *handler.ToolsHandler
	Clients   *handler.CounterpartyHandler
	Vendors   *handler.CounterpartyHandler
	Inventory *handler.InventoryHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string, log zerolog.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")

	// Documents. The static export route is registered before /:id.
	docs := v1.Group("/documents")
	docs.POST("", h.Documents.Create)
	docs.GET("", h.Documents.List)
	docs.GET("/export", h.Documents.Export)
	docs.GET("/:id", h.Documents.GetByID)
	docs.PUT("/:id", h.Documents.Update)
	docs.DELETE("/:id", h.Documents.Delete)
	docs.PATCH("/:id/status", h.Documents.UpdateStatus)
	docs.POST("/:id/convert", h.Documents.Convert)
	docs.GET("/:id/validation", h.Documents.Validation)
	docs.GET("/:id/xlsx", h.Documents.Workbook)
	docs.POST("/:id/archive", h.Documents.Archive)

	// Stateless tools
	v1.POST("/normalize", h.Tools.Normalize)
	v1.POST("/tax/compute", h.Tools.ComputeTax)
	v1.GET("/words", h.Tools.Words)

	mountCounterparties(v1.Group("/clients"), h.Clients)
	mountCounterparties(v1.Group("/vendors"), h.Vendors)

	inv := v1.Group("/inventory")
	inv.POST("", h.Inventory.Create)
	inv.GET("", h.Inventory.List)
	inv.GET("/export", h.Inventory.Export)
	inv.POST("/import", h.Inventory.Import)
	inv.GET("/:id", h.Inventory.GetByID)
	inv.PUT("/:id", h.Inventory.Update)
	inv.DELETE("/:id", h.Inventory.Delete)
	inv.PATCH("/:id/stock", h.Inventory.AdjustStock)

	return r
}

func mountCounterparties(g *gin.RouterGroup, h *handler.CounterpartyHandler) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
