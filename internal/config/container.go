package config

import (
	"fmt"

	"pdf-workbench/internal/domain"
	"pdf-workbench/internal/infra/supabase"
	"pdf-workbench/internal/repository"
	"pdf-workbench/internal/service"
	"pdf-workbench/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config            domain.Config
	Logger            domain.Logger
	SupabaseClient    domain.SupabaseClient
	SessionRepository domain.SessionRepository
	ThumbnailCache    domain.ThumbnailCache
	Rasterizer        domain.Rasterizer
	Assembler         domain.PageAssembler
	AuthService       domain.AuthService
	ReorderService    *service.ReorderManager
	ComparisonService *service.ComparisonEngine
	ExportService     domain.ExportService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	cfg := NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel())

	// Supabase is optional: without it the export endpoint reports 409
	supabaseClient := supabase.NewSupabaseClient(cfg, appLogger)
	if err := supabaseClient.Initialize(); err != nil {
		appLogger.Warn("Supabase disabled, export unavailable", "reason", err.Error())
	}

	thumbnails, err := repository.OpenThumbnailCache(appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open thumbnail cache: %w", err)
	}
	sessions := repository.NewSessionRepository()

	rasterizer := service.NewFitzRasterizer(appLogger)
	assembler := service.NewPDFCPUAssembler(appLogger)

	return &Container{
		Config:            cfg,
		Logger:            appLogger,
		SupabaseClient:    supabaseClient,
		SessionRepository: sessions,
		ThumbnailCache:    thumbnails,
		Rasterizer:        rasterizer,
		Assembler:         assembler,
		AuthService:       service.NewAuthService(supabaseClient, appLogger),
		ReorderService: service.NewReorderService(
			rasterizer,
			assembler,
			sessions,
			thumbnails,
			appLogger,
			cfg.GetThumbnailWidth(),
			cfg.GetSessionTTL(),
		),
		ComparisonService: service.NewComparisonService(
			rasterizer,
			appLogger,
			cfg.GetRenderWidth(),
			cfg.GetDiffThreshold(),
			cfg.GetDiffAlpha(),
		),
		ExportService: service.NewExportService(supabaseClient, cfg.GetExportBucket(), appLogger),
	}, nil
}

// Close releases resources held by the container
func (c *Container) Close() error {
	return c.ThumbnailCache.Close()
}
