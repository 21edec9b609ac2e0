package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ewaste-tracking-backend/config"
	"ewaste-tracking-backend/internal/api"
	"ewaste-tracking-backend/internal/db"
	"ewaste-tracking-backend/internal/intake"
	"ewaste-tracking-backend/internal/qr"
	"ewaste-tracking-backend/internal/store"
	"ewaste-tracking-backend/internal/tracking"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "ewaste-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Seed the staff records the intake endpoint resolves callers against.
	if err := db.SeedEmployees(gormDB, cfg.Employees); err != nil {
		logger.Fatalf("failed to seed employees: %v", err)
	}
	if len(cfg.Employees) > 0 {
		logger.Printf("seeded %d employee record(s)", len(cfg.Employees))
	}

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	renderer, err := qr.NewPNGRenderer(cfg.Tracking.QRDir)
	if err != nil {
		logger.Fatalf("failed to initialize qr renderer: %v", err)
	}
	binder := qr.NewBinder(cfg.Tracking.BaseTrackURL, renderer)

	intakeSvc := intake.NewService(appStore, binder, cfg.Tracking)
	trackingSvc := tracking.NewService(appStore)

	// Initialize router
	router := api.NewRouter(cfg, intakeSvc, trackingSvc)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
