package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"workbridge/internal/config"
	"workbridge/internal/database"
	"workbridge/internal/handlers"
	"workbridge/internal/logger"
	"workbridge/internal/middleware"
	"workbridge/internal/routes"
	"workbridge/internal/services"
)

// Run boots the marketplace server: config, logging, database, DI
// wiring, HTTP routes.
func Run() {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("database connection failed", "error", err)
	}

	router := SetupRouter(db, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "addr", addr, "env", cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

// SetupRouter builds the full gin engine over an existing database
// handle. Split from Run so tests can drive the API in-process.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))

	serviceContainer := services.NewServiceContainer(db, cfg)
	appHandlers := handlers.NewAppHandlers(serviceContainer)
	routes.Setup(router, appHandlers)

	return router
}
