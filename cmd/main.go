package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/handson-platform/handson-backend/config"
	"github.com/handson-platform/handson-backend/database"
	"github.com/handson-platform/handson-backend/internal/activity"
	"github.com/handson-platform/handson-backend/internal/event"
	"github.com/handson-platform/handson-backend/internal/helprequest"
	"github.com/handson-platform/handson-backend/internal/logging"
	"github.com/handson-platform/handson-backend/internal/notification"
	"github.com/handson-platform/handson-backend/internal/participation"
	"github.com/handson-platform/handson-backend/internal/profile"
	"github.com/handson-platform/handson-backend/routes"
	"github.com/handson-platform/handson-backend/utils"
)

// @title HandsOn API
// @version 1.0
// @description Community volunteering platform: events, help requests and impact tracking.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db := database.Connect(cfg)

	if err := utils.InitRedis(cfg); err != nil {
		logger.Warn("redis unavailable, token blacklist and live notifications disabled", zap.Error(err))
	}
	utils.InitializeKafka(cfg)

	if err := db.AutoMigrate(
		&profile.Profile{},
		&event.Event{},
		&participation.Participant{},
		&helprequest.HelpRequest{},
		&helprequest.Helper{},
		&helprequest.Comment{},
		&activity.Activity{},
		&notification.InAppNotification{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.Setup(router, cfg, db, logger)

	addr := ":" + cfg.Port
	logger.Info("starting server on " + addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
