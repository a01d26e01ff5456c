// server/internal/api/routes/routes.go
package routes

import (
	"time"

	"pr-tracker-api-server/config"
	"pr-tracker-api-server/internal/api/handlers"
	"pr-tracker-api-server/internal/api/middleware"
	"pr-tracker-api-server/internal/auth"
	"pr-tracker-api-server/internal/cache"
	"pr-tracker-api-server/internal/logger"
	"pr-tracker-api-server/internal/models"
	"pr-tracker-api-server/internal/notify"
	"pr-tracker-api-server/internal/socket"
	"pr-tracker-api-server/internal/supply"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the components the router hands to its handlers.
type Deps struct {
	Config   config.Config
	Logger   *zap.Logger
	Issuer   *auth.Issuer
	Users    handlers.UserLookup
	Source   handlers.RequestSource
	Notifier *notify.Channel
	Supply   *supply.Service
	Cache    cache.Cache
	Exporter handlers.Exporter
	Hub      *socket.Hub
}

// SetupRouter wires middleware and routes under /api/v1.
func SetupRouter(d Deps) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(d.Logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     d.Config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	writeLimit, err := middleware.RateLimit(d.Config.RateLimit.Rate)
	if err != nil {
		return nil, err
	}

	userHandler := &handlers.UserHandler{Users: d.Users, Issuer: d.Issuer}
	webSocketHandler := &handlers.WebSocketHandler{Hub: d.Hub, Issuer: d.Issuer, Logger: d.Logger}
	purchaseRequestHandler := &handlers.PurchaseRequestHandler{Source: d.Source}
	viewHandler := &handlers.ViewHandler{
		Source:   d.Source,
		Cache:    d.Cache,
		TTL:      cache.TTL(d.Config.Redis.ViewTTLSeconds),
		Exporter: d.Exporter,
		Logger:   d.Logger,
	}
	notificationHandler := &handlers.NotificationHandler{Channel: d.Notifier}
	supplyInputHandler := &handlers.SupplyInputHandler{Service: d.Supply, Source: d.Source, Logger: d.Logger}

	apiV1 := router.Group("/api/v1")
	{
		// === Unauthenticated ===
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", userHandler.Login)
		}

		// === Authenticated ===
		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate(d.Issuer))
		{
			protected.GET("/sync/status", purchaseRequestHandler.GetSyncStatus)

			purchaseRequests := protected.Group("/purchase-requests")
			{
				purchaseRequests.GET("", purchaseRequestHandler.GetAllPurchaseRequests)
				purchaseRequests.GET("/:id", purchaseRequestHandler.GetPurchaseRequest)
			}

			viewGroup := protected.Group("/views")
			{
				viewGroup.GET("/pipeline", viewHandler.GetPipeline)
				viewGroup.GET("/in-transit", viewHandler.GetInTransit)
				viewGroup.GET("/business", viewHandler.GetBusiness)
				viewGroup.GET("/summary", viewHandler.GetSummary)
				viewGroup.POST("/export", middleware.Authorize(models.RoleSupplyOps, models.RoleAdmin, models.RoleSuperAdmin), viewHandler.ExportView)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", notificationHandler.GetNotification)
				notifications.POST("/dismiss", notificationHandler.DismissNotification)
			}

			supplyInputs := protected.Group("/supply-inputs")
			{
				supplyInputs.GET("", supplyInputHandler.GetAllSupplyInputs)
				supplyInputs.GET("/views", supplyInputHandler.GetSupplyInputViews)
				supplyInputs.GET("/:id", supplyInputHandler.GetSupplyInput)
				supplyInputs.GET("/:id/context", supplyInputHandler.GetSupplyInputContext)

				// Writes are limited to Supply Ops and admins.
				writes := supplyInputs.Group("")
				writes.Use(middleware.Authorize(models.RoleSupplyOps, models.RoleAdmin, models.RoleSuperAdmin))
				writes.Use(writeLimit)
				{
					writes.POST("", supplyInputHandler.CreateSupplyInput)
					writes.POST("/form", supplyInputHandler.CreateSupplyInputFromForm)
					writes.POST("/bulk", supplyInputHandler.BulkSupplyInputs)
					writes.PATCH("/:id", supplyInputHandler.UpdateSupplyInput)
				}
			}
		}
	}

	return router, nil
}
