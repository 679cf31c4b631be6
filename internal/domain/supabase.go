package domain

import "io"

// SupabaseClient is the subset of Supabase used by the service: token
// validation for exports and object storage uploads.
type SupabaseClient interface {
	Initialize() error
	Ready() bool
	ValidateToken(token string) (*SupabaseUser, error)
	UploadObject(bucket, path string, data io.Reader, contentType string) error
}
