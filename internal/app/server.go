package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fisker/itops-backend/internal/api/router"
	"github.com/fisker/itops-backend/pkg/config"
	"github.com/fisker/itops-backend/pkg/database"
	"github.com/fisker/itops-backend/pkg/logger"
	pkgredis "github.com/fisker/itops-backend/pkg/redis"
)

// StartServer 启动 HTTP 服务器
func StartServer(
	cfg *config.Config,
	handlers *Handlers,
	services *Services,
	backgroundServices *BackgroundServices,
) {
	// Setup router
	r := router.Setup(
		handlers.Auth,
		handlers.User,
		handlers.Asset,
		handlers.Ticket,
		handlers.Procurement,
		handlers.Vendor,
		handlers.Incident,
		handlers.License,
		handlers.Dashboard,
		handlers.OperationLog,
		services.Auth,
		cfg.Server.Mode,
	)

	// Start expiration service (延迟启动，确保数据库连接完全就绪)
	ctx := context.Background()
	go func() {
		time.Sleep(3 * time.Second)
		if err := backgroundServices.Expiration.Start(ctx); err != nil {
			logger.Warnf("Failed to start expiration service: %v", err)
		} else {
			logger.Infof("Expiration Service started")
			logger.Infof("   Checking for expiring licenses and warranties")
		}
	}()

	// Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.APIPort)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	logger.Infof("IT-Ops API server listening on %s", addr)

	// Start HTTP server in goroutine
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Infof("Shutting down gracefully...")

	// Create shutdown context with 10s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// 1. Shutdown HTTP server
	logger.Infof("  → Stopping HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Infof("  Warning: HTTP server shutdown error: %v", err)
	} else {
		logger.Infof("  ✓ HTTP server stopped")
	}

	// 2. Stop Expiration Service
	logger.Infof("  → Stopping expiration service...")
	backgroundServices.Expiration.Stop()
	logger.Infof("  ✓ Expiration service stopped")

	// 3. Close Redis connection
	if pkgredis.IsEnabled() {
		logger.Infof("  → Closing Redis connection...")
		if err := pkgredis.Close(); err != nil {
			logger.Infof("  Warning: Redis close error: %v", err)
		} else {
			logger.Infof("  ✓ Redis connection closed")
		}
	}

	// 4. Close database connection
	logger.Infof("  → Closing database connection...")
	if err := database.Close(); err != nil {
		logger.Infof("  Warning: Database close error: %v", err)
	} else {
		logger.Infof("  ✓ Database connection closed")
	}

	logger.Infof("Shutdown complete")
	logger.Sync()
}
