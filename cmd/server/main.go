package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bazaar.backend/internal/config"
	"bazaar.backend/internal/domain/entities"
	"bazaar.backend/internal/infrastructure/embedding"
	"bazaar.backend/internal/infrastructure/repositories"
	"bazaar.backend/internal/infrastructure/storage"
	"bazaar.backend/internal/interfaces/http/handlers"
	"bazaar.backend/internal/interfaces/http/middleware"
	"bazaar.backend/internal/usecases"
	"bazaar.backend/pkg/jwt"
	"bazaar.backend/pkg/logger"
	"bazaar.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	ensureSuperAdmin = usecases.EnsureSuperAdmin
	runServer        = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB         = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	itemRepo := repositories.NewItemRepository(db, cfg.Search.Mode)

	// Initialize outbound clients
	uploader := storage.NewUploader(cfg.Storage.UploadURL, cfg.Storage.Folder)
	embedder := embedding.NewClient(cfg.Embedding.URL, cfg.Embedding.APIKey)

	// Seed the super admin account before serving traffic. A failure here is
	// not fatal: the rest of the API works without it.
	if err := ensureSuperAdmin(context.Background(), userRepo, cfg.SuperAdmin.Email, cfg.SuperAdmin.Password); err != nil {
		logger.Warn(context.Background(), "Super admin bootstrap failed", zap.Error(err))
	}

	// Initialize usecases
	catalog := entities.NewCatalog()
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	itemUsecase := usecases.NewItemUsecase(itemRepo, uploader, catalog)
	catalogUsecase := usecases.NewCatalogUsecase(itemRepo, catalog)
	favoriteUsecase := usecases.NewFavoriteUsecase(userRepo, itemRepo)
	adminUsecase := usecases.NewAdminUsecase(userRepo, itemRepo)
	searchUsecase := usecases.NewSearchUsecase(itemRepo, embedder)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	itemHandler := handlers.NewItemHandler(itemUsecase, catalogUsecase)
	sellerHandler := handlers.NewSellerHandler(catalogUsecase, favoriteUsecase)
	adminHandler := handlers.NewAdminHandler(adminUsecase)
	searchHandler := handlers.NewSearchHandler(searchUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	r.GET("/metrics", middleware.MetricsHandler())
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		itemHandler:    itemHandler,
		sellerHandler:  sellerHandler,
		adminHandler:   adminHandler,
		searchHandler:  searchHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService),
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
	}()

	// Start server
	log.Printf("🚀 Bazaar Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
