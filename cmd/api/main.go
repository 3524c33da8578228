package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mkarlsen/tenant-auth-api/internal/api"
	"github.com/mkarlsen/tenant-auth-api/internal/config"
	"github.com/mkarlsen/tenant-auth-api/internal/db"
	"github.com/mkarlsen/tenant-auth-api/internal/middleware"
	"github.com/mkarlsen/tenant-auth-api/internal/repository/postgres"
	"github.com/mkarlsen/tenant-auth-api/internal/service"
	"github.com/mkarlsen/tenant-auth-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	database, err := config.NewDatabase(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer config.CloseDatabase(database)

	appLogger.Info("Database connection established")

	// Initialize Redis
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	// Session factory routes every unit of work to one schema
	sessions, err := db.NewSessionFactory(database, cfg.SharedSchema)
	if err != nil {
		appLogger.Fatal("Failed to create session factory", err)
	}

	// Initialize repositories and services
	directory := postgres.NewDirectoryRepository(sessions)
	authenticator := service.NewAuthenticator(directory.User())
	resolver := service.NewTenantResolver(directory.User())

	tokenService, err := service.NewTokenService(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create token service", err)
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService, resolver, sessions, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)

	// Initialize server
	server := api.NewServer(
		authenticator,
		tokenService,
		authMiddleware,
		rateLimitMiddleware,
		cfg,
		appLogger,
	)

	// Initialize router
	router := gin.Default()
	server.SetupRoutes(router)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	// Shutdown the HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
