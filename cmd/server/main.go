package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-workbench/internal/config"
	"pdf-workbench/internal/handler"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialise: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Expired reorder sessions are purged in the background
	ttl := container.Config.GetSessionTTL()
	container.ReorderService.StartJanitor(ctx, max(ttl/4, time.Minute))

	// Handlers
	maxFileSize := container.Config.GetMaxFileSize()
	reorderHandler := handler.NewReorderHandler(
		container.ReorderService,
		container.ExportService,
		container.Logger,
		maxFileSize,
	)
	comparisonHandler := handler.NewComparisonHandler(
		container.ComparisonService,
		container.Logger,
		maxFileSize,
	)
	toolsHandler := handler.NewToolsHandler(container.Logger)
	authHandler := handler.NewAuthHandler(container.SupabaseClient)

	authMiddleware := handler.NewAuthMiddleware(
		container.AuthService,
		container.Logger,
	)

	// Router
	router := handler.NewRouter(
		authHandler,
		reorderHandler,
		comparisonHandler,
		toolsHandler,
		authMiddleware.Middleware,
		container.Config.GetAllowedOrigins(),
	)

	// start server
	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           handler.RequestLogger(container.Logger)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	<-ctx.Done()

	container.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}
