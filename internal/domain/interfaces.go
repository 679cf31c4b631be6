package domain

import (
	"context"
	"image"
	"time"
)

// Rasterizer opens documents for page rendering
type Rasterizer interface {
	Open(data []byte) (RasterDocument, error)
}

// RasterDocument is an opened document that can render its pages to bitmaps
type RasterDocument interface {
	NumPage() int
	// RenderPage renders page pageIndex (0-based) so that the bitmap is exactly
	// targetWidth pixels wide, keeping the page aspect ratio.
	RenderPage(ctx context.Context, pageIndex int, targetWidth int) (*image.RGBA, error)
	Close() error
}

// PageAssembler rebuilds documents from a subset or permutation of their pages
type PageAssembler interface {
	PageCount(ctx context.Context, source []byte) (int, error)
	// Build copies the pages of source in the given order of 0-based indices.
	Build(ctx context.Context, source []byte, order []int) ([]byte, error)
}

// ThumbnailCache stores encoded page thumbnails for a session
type ThumbnailCache interface {
	Put(sessionID string, originalIndex int, png []byte) error
	Get(sessionID string, originalIndex int) ([]byte, error)
	Release(sessionID string) error
	Close() error
}

// SessionRepository holds the live reorder sessions
type SessionRepository interface {
	Create(session *ReorderSession) error
	Get(id string) (*ReorderSession, error)
	Delete(id string) error
	PurgeExpired(now time.Time) []string
	Count() int
}

// ReorderService exposes the page order model of a loaded document
type ReorderService interface {
	Load(ctx context.Context, filename string, data []byte) (*SessionState, error)
	State(sessionID string) (*SessionState, error)
	Reverse(sessionID string) (*SessionState, error)
	Reset(sessionID string) (*SessionState, error)
	Move(sessionID string, source, target int, insertAfter bool) (*SessionState, bool, error)
	Thumbnail(sessionID string, originalIndex int) ([]byte, error)
	Build(ctx context.Context, sessionID string) (*BuiltDocument, error)
	Close(sessionID string) error
}

// ComparisonService runs the visual comparison of two documents
type ComparisonService interface {
	CompareFiles(ctx context.Context, files [][]byte, each func(ComparisonPage) error) error
}

// ExportService uploads rebuilt documents to remote storage
type ExportService interface {
	Export(ctx context.Context, userID string, sessionID string, data []byte) (string, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetExportBucket() string
	GetRenderWidth() int
	GetThumbnailWidth() int
	GetDiffThreshold() uint8
	GetDiffAlpha() uint8
	GetSessionTTL() time.Duration
	GetAllowedOrigins() []string
}
