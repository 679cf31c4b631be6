package service

import (
	"bytes"
	"context"
	"path"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"
)

const pdfContentType = "application/pdf"

// StorageExporter uploads rebuilt documents to a Supabase storage bucket
// under <user id>/<session id>.pdf.
type StorageExporter struct {
	client domain.SupabaseClient
	bucket string
	logger domain.Logger
}

func NewExportService(client domain.SupabaseClient, bucket string, logger domain.Logger) *StorageExporter {
	return &StorageExporter{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Export uploads data and returns the object path within the bucket
func (s *StorageExporter) Export(ctx context.Context, userID string, sessionID string, data []byte) (string, error) {
	if !s.client.Ready() {
		return "", apperrors.NewPreconditionError("Export storage is not configured", domain.ErrExportDisabled)
	}
	if userID == "" || sessionID == "" {
		return "", apperrors.NewValidationError("User and session are required")
	}
	if len(data) == 0 {
		return "", apperrors.NewValidationError("Nothing to export", domain.ErrEmptyDocument.Error())
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	objectPath := path.Join(userID, sessionID+".pdf")
	if err := s.client.UploadObject(s.bucket, objectPath, bytes.NewReader(data), pdfContentType); err != nil {
		s.logger.Error("Export upload failed", err, "bucket", s.bucket, "path", objectPath)
		return "", apperrors.NewNetworkError("Failed to upload document", err)
	}

	s.logger.Info("Document exported", "bucket", s.bucket, "path", objectPath, "bytes", len(data))
	return objectPath, nil
}
