package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gstkit/internal/handler"
	"gstkit/internal/middleware"
	"gstkit/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	GST      *handler.GSTHandler
	HRA      *handler.HRAHandler
	EWayBill *handler.EWayBillHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, corsOrigins []string, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(authSvc))

	v1.POST("/gstin/validate", h.GST.ValidateGSTIN)
	v1.POST("/gstin/check-digit", h.GST.CheckDigit)
	v1.GET("/states", h.GST.States)
	v1.POST("/regional-details", h.GST.RegionalDetails)
	v1.GET("/invoices/:name/tax-breakup", h.GST.TaxBreakup)

	hra := v1.Group("/hra")
	hra.POST("/exemption", h.HRA.DeclarationExemption)
	hra.POST("/exemption/period", h.HRA.PeriodExemption)

	v1.GET("/ewaybill", h.EWayBill.Download)

	return r
}
