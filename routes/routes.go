package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/handson-platform/handson-backend/config"
	"github.com/handson-platform/handson-backend/internal/activity"
	"github.com/handson-platform/handson-backend/internal/auth"
	"github.com/handson-platform/handson-backend/internal/event"
	"github.com/handson-platform/handson-backend/internal/helprequest"
	"github.com/handson-platform/handson-backend/internal/notification"
	"github.com/handson-platform/handson-backend/internal/participation"
	"github.com/handson-platform/handson-backend/internal/profile"
	"github.com/handson-platform/handson-backend/internal/reports"
	"github.com/handson-platform/handson-backend/middleware"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires repositories, services and handlers and registers every route.
func Setup(r *gin.Engine, cfg *config.Config, db *gorm.DB, logger *zap.Logger) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())
	api.Use(middleware.Metrics())

	// ========== Profiles ==========
	profileRepo := profile.NewRepository(db)
	profileSvc := profile.NewService(profileRepo, logger)
	profileHandler := profile.NewHandler(profileSvc)

	// ========== Activity Feed ==========
	activityRepo := activity.NewRepository(db)
	activitySvc := activity.NewService(activityRepo, logger)
	activityHandler := activity.NewHandler(activitySvc)

	// ========== Auth ==========
	provider := auth.NewGoTrueProvider(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	authSvc := auth.NewService(provider, profileSvc, cfg, logger)
	authHandler := auth.NewHandler(authSvc)

	// ========== Events ==========
	eventRepo := event.NewRepository(db)
	eventSvc := event.NewService(eventRepo, logger)
	eventHandler := event.NewHandler(eventSvc)

	// ========== Participation ==========
	participationRepo := participation.NewRepository(db)
	participationSvc := participation.NewService(participationRepo, activitySvc, logger)
	participationHandler := participation.NewHandler(participationSvc)

	// ========== Help Requests ==========
	helpRepo := helprequest.NewRepository(db)
	helpSvc := helprequest.NewService(helpRepo, profileSvc, activitySvc, logger)
	helpHandler := helprequest.NewHandler(helpSvc)

	// ========== Notifications ==========
	notificationRepo := notification.NewRepository(db)
	notificationSvc := notification.NewService(notificationRepo, logger)
	notificationHandler := notification.NewHandler(notificationSvc)
	notification.StartKafkaConsumer(cfg, notificationSvc, logger)

	// ========== Reports ==========
	reportsRepo := reports.NewRepository(db)
	reportsExporter := reports.NewReportExporter()
	reportsSvc := reports.NewReportService(reportsRepo, reportsExporter, logger)
	reportsHandler := reports.NewHandler(reportsSvc)

	// ========== Public routes ==========
	userGroup := api.Group("/users")
	{
		userGroup.POST("/register", authHandler.Register)
		userGroup.POST("/login", authHandler.Login)
		userGroup.POST("/google-login", authHandler.GoogleLogin)
		userGroup.POST("/logout", authHandler.Logout)
	}

	api.GET("/events", eventHandler.ListEvents)
	api.GET("/events/:id", eventHandler.GetEventByID)

	api.GET("/help-requests", helpHandler.ListHelpRequests)
	api.GET("/help-requests/:id", helpHandler.GetHelpRequestByID)
	api.GET("/help-requests/:id/helpers", helpHandler.ListHelpers)
	api.GET("/help-requests/:id/comments", helpHandler.ListComments)

	// ========== Protected routes ==========
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/users/profile", profileHandler.GetProfile)
		protected.PUT("/users/profile", profileHandler.UpdateProfile)
		protected.GET("/users/volunteer-history", activityHandler.GetVolunteerHistory)

		protected.POST("/events", eventHandler.CreateEvent)
		protected.PUT("/events/:id", eventHandler.UpdateEvent)
		protected.DELETE("/events/:id", eventHandler.DeleteEvent)

		protected.POST("/events/:id/register", participationHandler.Register)
		protected.POST("/events/:id/cancel", participationHandler.Cancel)
		protected.GET("/events/:id/registration-status", participationHandler.RegistrationStatus)
		protected.GET("/events/user/registered", participationHandler.ListUserEvents)

		protected.POST("/help-requests", helpHandler.CreateHelpRequest)
		protected.PUT("/help-requests/:id", helpHandler.UpdateHelpRequest)
		protected.DELETE("/help-requests/:id", helpHandler.DeleteHelpRequest)
		protected.POST("/help-requests/:id/offer-help", helpHandler.OfferHelp)
		protected.POST("/help-requests/:id/comments", helpHandler.AddComment)

		protected.GET("/notifications/inapp", notificationHandler.ListInApp)
		protected.PUT("/notifications/inapp/:id/read", notificationHandler.MarkInAppRead)
		protected.GET("/notifications/stream", notificationHandler.StreamInApp)

		protected.GET("/reports/events", reportsHandler.GetEventsReport)
		protected.GET("/reports/help-requests", reportsHandler.GetHelpRequestsReport)
		protected.GET("/reports/my-activities", reportsHandler.GetMyActivitiesReport)
	}
}
