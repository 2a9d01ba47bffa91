package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/middleware"
	"github.com/SscSPs/farm_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// metricsHandler may be nil when metrics are disabled.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	db Pinger,
	metricsHandler http.Handler,
) {
	r.GET("/health", getHealth(db))

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(middleware.AuthOptions{
		JWTSecret:      cfg.JWTSecret,
		Issuer:         cfg.JWTIssuer,
		AllowAnonymous: cfg.AllowAnonymous,
	}))

	RegisterMaterialRoutes(v1, services.Material)
	RegisterProjectRoutes(v1, services.Budget, services.Procurement)
	RegisterReportingRoutes(v1, services.Reporting)
}
