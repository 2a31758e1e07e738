package routes

import (
	"talento_backend/internal/auth"
	"talento_backend/internal/handlers"
	"talento_backend/internal/middleware"
	"talento_backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts all HTTP routes. Public endpoints live directly
// under /api/v1; everything user-scoped sits behind the auth middleware.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	issuer *auth.TokenIssuer,
) {
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	appHandlers.HealthHandler.RegisterRoutes(ginRouter)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ContactHandler.RegisterRoutes(api)
		appHandlers.AssessmentHandler.RegisterRoutes(api)
		appHandlers.JobsHandler.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(issuer))
	{
		appHandlers.AuthHandler.RegisterProtectedRoutes(protected)
		appHandlers.UserHandler.RegisterRoutes(protected)
		appHandlers.PaymentHandler.RegisterRoutes(protected)
		appHandlers.SubscriptionHandler.RegisterRoutes(protected)
		appHandlers.ResumeHandler.RegisterRoutes(protected)
		appHandlers.JobsHandler.RegisterSavedRoutes(protected)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRoles(models.UserRoleAdmin))
	{
		appHandlers.AdminHandler.RegisterRoutes(admin)
	}
}
