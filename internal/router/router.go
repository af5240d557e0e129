package router

import (
	"github.com/gin-gonic/gin"

	"ciptpag/internal/config"
	"ciptpag/internal/domain"
	"ciptpag/internal/handler"
	"ciptpag/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	jwtCfg *config.JWTConfig,
	conciliacaoH *handler.ConciliacaoHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Reconciliation routes - require valid portal JWT
	conciliacoes := v1.Group("/conciliacoes")
	conciliacoes.Use(middleware.AuthMiddleware(jwtCfg))
	conciliacoes.POST("", middleware.RequireRole(domain.RoleAdmin), conciliacaoH.Executar)
	conciliacoes.GET("", middleware.RequireRole(domain.RoleAdmin, domain.RoleOperador), conciliacaoH.Listar)
	conciliacoes.GET("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleOperador), conciliacaoH.BuscarPorID)
	conciliacoes.GET("/:id/export", middleware.RequireRole(domain.RoleAdmin, domain.RoleOperador), conciliacaoH.Exportar)

	return r
}
