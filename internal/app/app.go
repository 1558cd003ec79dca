package app

import (
	"context"
	"fmt"

	"giftlist_backend/database"
	"giftlist_backend/internal/config"
	"giftlist_backend/internal/handlers"
	"giftlist_backend/internal/logger"
	"giftlist_backend/internal/middleware"
	"giftlist_backend/internal/repositories"
	"giftlist_backend/internal/routes"
	"giftlist_backend/internal/services"
	"giftlist_backend/internal/validator"
	"giftlist_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ginRouter := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает сервисы, хэндлеры, планировщик и gin-роутер.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := services.NewServiceContainer(gormDB)

	v := validator.New()
	appHandlers := handlers.NewAppHandlers(serviceContainer, v)

	eventWorker := workers.NewEventWorker(
		repositories.NewEventRepository(gormDB),
		repositories.NewUserRepository(gormDB),
		serviceContainer.GiftService,
		serviceContainer.NotificationService,
		cfg.SweepPeriod(),
	)
	eventWorker.Start(ctx)
	logger.Info("Event lifecycle worker started", "period", cfg.SweepPeriod())

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())

	return ginRouter
}
