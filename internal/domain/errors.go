package domain

import "errors"

// Domain errors
var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrNotInitialized     = errors.New("page order not initialized")
	ErrThumbnailNotFound  = errors.New("thumbnail not found")
	ErrInvalidFile        = errors.New("invalid file")
	ErrEmptyDocument      = errors.New("document has no pages")
	ErrExportDisabled     = errors.New("export storage not configured")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUnknownTool        = errors.New("unknown tool")
	ErrPageOutOfRange     = errors.New("page index out of range")
	ErrWrongDocumentCount = errors.New("exactly two documents are required")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
