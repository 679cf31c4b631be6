package config

import (
	"strings"
	"time"

	"pdf-workbench/internal/domain"

	"github.com/spf13/viper"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort     string
	MaxFileSize    int64
	LogLevel       string
	SupabaseURL    string
	SupabaseKey    string
	ExportBucket   string
	RenderWidth    int
	ThumbnailWidth int
	DiffThreshold  uint8
	DiffAlpha      uint8
	SessionTTL     time.Duration
	AllowedOrigins []string
}

// NewConfig creates a new configuration instance from the environment with default values
func NewConfig() domain.Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MAX_FILE_SIZE", 50*1024*1024) // 50MB default
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("EXPORT_BUCKET", "documents")
	v.SetDefault("RENDER_WIDTH", domain.DefaultRenderWidth)
	v.SetDefault("THUMBNAIL_WIDTH", 160)
	v.SetDefault("DIFF_THRESHOLD", domain.DefaultDiffThreshold)
	v.SetDefault("DIFF_ALPHA", domain.DefaultDiffAlpha)
	v.SetDefault("SESSION_TTL", 30*time.Minute)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173,http://localhost:3000")

	// Cloud Run (and many PaaS) provide the listening port via PORT.
	// Keep SERVER_PORT for local/dev compatibility.
	port := v.GetString("PORT")
	if port == "" {
		port = v.GetString("SERVER_PORT")
	}
	if port == "" {
		port = "8080"
	}

	return &AppConfig{
		ServerPort:     port,
		MaxFileSize:    positiveInt64(v, "MAX_FILE_SIZE", 50*1024*1024),
		LogLevel:       stringOrDefault(v, "LOG_LEVEL", "info"),
		SupabaseURL:    v.GetString("SUPABASE_URL"),
		SupabaseKey:    v.GetString("SUPABASE_ANON_KEY"),
		ExportBucket:   stringOrDefault(v, "EXPORT_BUCKET", "documents"),
		RenderWidth:    int(positiveInt64(v, "RENDER_WIDTH", domain.DefaultRenderWidth)),
		ThumbnailWidth: int(positiveInt64(v, "THUMBNAIL_WIDTH", 160)),
		DiffThreshold:  byteOrDefault(v, "DIFF_THRESHOLD", domain.DefaultDiffThreshold),
		DiffAlpha:      byteOrDefault(v, "DIFF_ALPHA", domain.DefaultDiffAlpha),
		SessionTTL:     durationOrDefault(v, "SESSION_TTL", 30*time.Minute),
		AllowedOrigins: splitList(stringOrDefault(v, "ALLOWED_ORIGINS", "")),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed upload size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetExportBucket returns the storage bucket rebuilt documents are exported to
func (c *AppConfig) GetExportBucket() string {
	return c.ExportBucket
}

// GetRenderWidth returns the pixel width comparison pages are rendered at
func (c *AppConfig) GetRenderWidth() int {
	return c.RenderWidth
}

// GetThumbnailWidth returns the pixel width of page thumbnails
func (c *AppConfig) GetThumbnailWidth() int {
	return c.ThumbnailWidth
}

// GetDiffThreshold returns the per-channel difference threshold
func (c *AppConfig) GetDiffThreshold() uint8 {
	return c.DiffThreshold
}

// GetDiffAlpha returns the alpha of the difference overlay
func (c *AppConfig) GetDiffAlpha() uint8 {
	return c.DiffAlpha
}

// GetSessionTTL returns how long an idle reorder session is kept
func (c *AppConfig) GetSessionTTL() time.Duration {
	return c.SessionTTL
}

// GetAllowedOrigins returns the CORS origins
func (c *AppConfig) GetAllowedOrigins() []string {
	return c.AllowedOrigins
}

// Helper functions for environment variable handling.
// viper's typed getters return zero on parse failure, so invalid values fall
// back to the defaults here.
func stringOrDefault(v *viper.Viper, key, defaultValue string) string {
	if value := strings.TrimSpace(v.GetString(key)); value != "" {
		return value
	}
	return defaultValue
}

func positiveInt64(v *viper.Viper, key string, defaultValue int64) int64 {
	if value := v.GetInt64(key); value > 0 {
		return value
	}
	return defaultValue
}

func byteOrDefault(v *viper.Viper, key string, defaultValue uint8) uint8 {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return defaultValue
	}
	value := v.GetInt(key)
	if value < 0 || value > 255 || (value == 0 && raw != "0") {
		return defaultValue
	}
	return uint8(value)
}

func durationOrDefault(v *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	if value := v.GetDuration(key); value > 0 {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
