package handlers

import (
	"net/http"

	"github.com/SscSPs/survey_workspace_app/cmd/docs"
	portssvc "github.com/SscSPs/survey_workspace_app/internal/core/ports/services"
	"github.com/SscSPs/survey_workspace_app/internal/middleware"
	"github.com/SscSPs/survey_workspace_app/internal/platform/analytics"
	"github.com/SscSPs/survey_workspace_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteOptions carries the optional infrastructure wired around the API.
// Nil limiters disable rate limiting.
type RouteOptions struct {
	APILimiter  *limiter.Limiter
	AuthLimiter *limiter.Limiter
	Analytics   *analytics.Client
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api/v1", rateLimit(opts.APILimiter))

	// Public routes
	registerAuthRoutes(api, services, rateLimit(opts.AuthLimiter))
	registerPublicInvitationRoutes(api, services.Workspace)

	setupAPIV1Routes(api, cfg, services, opts)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the authenticated part of /api/v1.
func setupAPIV1Routes(
	api *gin.RouterGroup,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	v1 := api.Group("", middleware.AuthMiddleware(cfg.JWTSecret), middleware.AnalyticsMiddleware(opts.Analytics))

	registerUserRoutes(v1, service.User)
	registerWorkspaceRoutes(v1, service.Workspace)
	registerSurveyAccessRoutes(v1, service.SurveyAccess)
	registerNotificationRoutes(v1, service.Notification)
}

func rateLimit(l *limiter.Limiter) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(l)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
