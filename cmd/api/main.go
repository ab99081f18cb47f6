package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"hsa-ledger/internal/catalog"
	"hsa-ledger/internal/config"
	"hsa-ledger/internal/handler"
	"hsa-ledger/internal/middleware"
	"hsa-ledger/internal/repository"
	"hsa-ledger/internal/service"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize layers
	repo := repository.NewRepository()
	cat := catalog.New()
	svc := service.NewService(repo, cat, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	api := r.PathPrefix("/api").Subrouter()
	h.RegisterRoutes(api)

	// Cross-origin access is restricted to the local frontend origins
	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	// Periodic ledger stats reporter
	c := cron.New()
	if _, err := c.AddFunc(cfg.StatsCron, func() {
		stats := svc.Stats()
		logger.WithFields(logrus.Fields{
			"users":        stats.Users,
			"accounts":     stats.Accounts,
			"cards":        stats.Cards,
			"transactions": stats.Transactions,
			"approved":     stats.Approved,
			"declined":     stats.Declined,
		}).Info("Ledger stats")
	}); err != nil {
		logger.Fatalf("Failed to schedule stats reporter: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      cors(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
}
