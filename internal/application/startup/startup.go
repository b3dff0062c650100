// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AtRiskMedia/defensesim-go/internal/application/container"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/persistence/kv"
	"github.com/AtRiskMedia/defensesim-go/internal/infrastructure/security"
	"github.com/AtRiskMedia/defensesim-go/internal/presentation/http/server"
	"github.com/AtRiskMedia/defensesim-go/pkg/config"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("DefenseSim workshop backend starting...")

	// Step 1: Initialize channeled logging
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Startup().Info("Channeled logging initialized")

	if err := ensureJWTSecret(logger); err != nil {
		return fmt.Errorf("failed to provision JWT secret: %w", err)
	}

	// Step 2: Open the key-value store
	logger.Startup().Info("Opening key-value store", "driver", config.KVDriver, "path", config.KVPath)
	startStoreTime := time.Now()

	store, err := kv.NewSQLStore(config.KVDriver, config.KVPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open key-value store: %w", err)
	}
	logger.LogStartupPhase("kv_store", time.Since(startStoreTime), true)

	// Step 3: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(store, logger)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 4: Start the ops activity broadcaster
	go appContainer.OpsBroadcaster.Run(ctx)
	logger.Startup().Info("Ops activity broadcaster started", "interval", config.OpsActivityInterval)

	// Step 5: Start HTTP server
	logger.Startup().Info("Starting HTTP server...")
	startServerTime := time.Now()

	port := config.Port
	httpServer := server.New(port, appContainer)

	logger.Startup().Info("HTTP server initialized", "port", port, "duration", time.Since(startServerTime))

	// Step 6: Setup graceful shutdown
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	totalStartupTime := time.Since(start)
	logger.Startup().Info("Application startup complete",
		"totalDuration", totalStartupTime,
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	// Cancel background tasks
	cancelBackgroundTasks()

	// Stop server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	// Close the store
	logger.Shutdown().Info("Closing key-value store...")
	if err := store.Close(); err != nil {
		logger.Shutdown().Error("Error closing key-value store", "error", err.Error())
	} else {
		logger.Shutdown().Info("Key-value store closed successfully")
	}

	elapsed := time.Since(start)
	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", elapsed,
		"shutdownDuration", time.Since(shutdownStart))

	return logger.Close()
}

// ensureJWTSecret generates an ephemeral signing secret when JWT_SECRET is
// unset. Ops tokens signed with a generated secret do not survive restarts.
func ensureJWTSecret(logger *logging.ChanneledLogger) error {
	if config.JWTSecret != "" {
		return nil
	}
	key, err := security.GenerateSecureKey(64)
	if err != nil {
		return err
	}
	config.JWTSecret = key
	logger.Startup().Warn("JWT_SECRET not configured, generated an ephemeral secret for this run")
	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
