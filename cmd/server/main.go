package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coffee-shop/internal/api"
	"coffee-shop/internal/auth"
	"coffee-shop/internal/database"
	"coffee-shop/pkg/config"
	"coffee-shop/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs/server.yaml")
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	appLogger := logger.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	appLogger.SetFormatter(cfg.Logging.Format)
	appLogger.Info("Starting coffee-shop API - mode: %s", cfg.Server.Mode)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations: %v", err)
	}

	keys := auth.NewHTTPKeySetProvider(
		cfg.Auth.Domain,
		cfg.Auth.JWKSTimeout,
		cfg.Auth.JWKSCacheTTL,
	)

	services := api.NewServices(db, appLogger, cfg, keys)

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	api.SetupRoutes(router, services)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Server failed: %v", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown: %v", err)
	}

	appLogger.Info("Server stopped")
}
