package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"time"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"

	"github.com/google/uuid"
)

// DefaultThumbnailWidth is the width of sort-view thumbnails in pixels
const DefaultThumbnailWidth = 160

var thumbnailEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// ReorderManager owns the reorder sessions: it renders thumbnails when a
// document is loaded, applies order operations and assembles the result.
type ReorderManager struct {
	rasterizer     domain.Rasterizer
	assembler      domain.PageAssembler
	sessions       domain.SessionRepository
	thumbnails     domain.ThumbnailCache
	logger         domain.Logger
	thumbnailWidth int
	ttl            time.Duration
	now            func() time.Time
}

// NewReorderService creates a reorder manager. A ttl of zero keeps sessions
// until they are closed.
func NewReorderService(
	rasterizer domain.Rasterizer,
	assembler domain.PageAssembler,
	sessions domain.SessionRepository,
	thumbnails domain.ThumbnailCache,
	logger domain.Logger,
	thumbnailWidth int,
	ttl time.Duration,
) *ReorderManager {
	if thumbnailWidth <= 0 {
		thumbnailWidth = DefaultThumbnailWidth
	}
	return &ReorderManager{
		rasterizer:     rasterizer,
		assembler:      assembler,
		sessions:       sessions,
		thumbnails:     thumbnails,
		logger:         logger,
		thumbnailWidth: thumbnailWidth,
		ttl:            ttl,
		now:            time.Now,
	}
}

// Load opens a document, renders one thumbnail per page and starts a session
// with the identity order. Nothing is kept if any page fails to render.
func (s *ReorderManager) Load(ctx context.Context, filename string, data []byte) (*domain.SessionState, error) {
	if len(data) == 0 {
		return nil, apperrors.NewValidationError("File is empty")
	}

	doc, err := s.rasterizer.Open(data)
	if err != nil {
		s.logger.Error("Failed to open document for reordering", err, "filename", filename)
		return nil, apperrors.NewProcessingError("Failed to load PDF", err)
	}
	defer doc.Close()

	id := uuid.New().String()
	pageCount := doc.NumPage()
	s.logger.Info("Loading document for reordering", "session_id", id, "filename", filename, "pages", pageCount)

	if err := s.renderThumbnails(ctx, id, doc, pageCount); err != nil {
		if releaseErr := s.thumbnails.Release(id); releaseErr != nil {
			s.logger.Warn("Failed to release thumbnails", "session_id", id, "error", releaseErr.Error())
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, apperrors.NewProcessingError("Failed to render page thumbnails", err)
	}

	order := domain.NewPageOrder()
	order.Initialize(pageCount)

	now := s.now()
	session := &domain.ReorderSession{
		ID:        id,
		Filename:  filename,
		Source:    data,
		PageCount: pageCount,
		Order:     order,
		CreatedAt: now,
	}
	if s.ttl > 0 {
		session.ExpiresAt = now.Add(s.ttl)
	}
	if err := s.sessions.Create(session); err != nil {
		if releaseErr := s.thumbnails.Release(id); releaseErr != nil {
			s.logger.Warn("Failed to release thumbnails", "session_id", id, "error", releaseErr.Error())
		}
		return nil, apperrors.NewInternalError("Failed to store session", err)
	}

	session.Lock()
	defer session.Unlock()
	return session.Snapshot(), nil
}

func (s *ReorderManager) renderThumbnails(ctx context.Context, id string, doc domain.RasterDocument, pageCount int) error {
	var buf bytes.Buffer
	for i := 0; i < pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := doc.RenderPage(ctx, i, s.thumbnailWidth)
		if err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
		buf.Reset()
		if err := thumbnailEncoder.Encode(&buf, img); err != nil {
			return fmt.Errorf("encode page %d: %w", i+1, err)
		}
		if err := s.thumbnails.Put(id, i, bytes.Clone(buf.Bytes())); err != nil {
			return fmt.Errorf("cache page %d: %w", i+1, err)
		}
	}
	return nil
}

// session looks up a live session and slides its expiry forward
func (s *ReorderManager) session(id string) (*domain.ReorderSession, error) {
	session, err := s.sessions.Get(id)
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return nil, apperrors.NewNotFoundError("Session expired, please load the document again", err)
	case err != nil:
		return nil, apperrors.NewNotFoundError("Session not found", err)
	}
	if s.ttl > 0 {
		session.Lock()
		session.ExpiresAt = s.now().Add(s.ttl)
		session.Unlock()
	}
	return session, nil
}

func (s *ReorderManager) withSession(id string, fn func(order *domain.PageOrder)) (*domain.SessionState, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}
	session.Lock()
	defer session.Unlock()
	fn(session.Order)
	return session.Snapshot(), nil
}

// State returns the current order of a session
func (s *ReorderManager) State(id string) (*domain.SessionState, error) {
	return s.withSession(id, func(*domain.PageOrder) {})
}

// Reverse flips the current display order
func (s *ReorderManager) Reverse(id string) (*domain.SessionState, error) {
	return s.withSession(id, func(order *domain.PageOrder) {
		order.Reverse()
		s.logger.Debug("Order reversed", "session_id", id, "reversed", order.Reversed())
	})
}

// Reset restores the original page order
func (s *ReorderManager) Reset(id string) (*domain.SessionState, error) {
	return s.withSession(id, func(order *domain.PageOrder) {
		order.Reset()
	})
}

// Move applies a drag-and-drop move. Invalid positions leave the order as it
// is; the returned flag says whether the order changed.
func (s *ReorderManager) Move(id string, source, target int, insertAfter bool) (*domain.SessionState, bool, error) {
	var applied bool
	state, err := s.withSession(id, func(order *domain.PageOrder) {
		applied = order.MoveEntry(source, target, insertAfter)
	})
	if err != nil {
		return nil, false, err
	}
	if !applied {
		s.logger.Debug("Move ignored", "session_id", id, "source", source, "target", target)
	}
	return state, applied, nil
}

// Thumbnail returns the PNG thumbnail of an original page
func (s *ReorderManager) Thumbnail(id string, originalIndex int) ([]byte, error) {
	if _, err := s.session(id); err != nil {
		return nil, err
	}
	data, err := s.thumbnails.Get(id, originalIndex)
	if err != nil {
		return nil, apperrors.NewNotFoundError("Thumbnail not found", err)
	}
	return data, nil
}

// Build assembles a new document with the pages in the session's order. An
// order that is not a permutation of the pages is replaced by the original
// order rather than producing a corrupt document.
func (s *ReorderManager) Build(ctx context.Context, id string) (*domain.BuiltDocument, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.Lock()
	order := session.Order.FinalOrder()
	pageCount := session.PageCount
	source := session.Source
	filename := session.Filename
	session.Unlock()

	order, err = domain.OrderForBuild(order, pageCount)
	if err != nil {
		s.logger.Warn("Invalid page order, using original order", "session_id", id, "reason", err.Error())
	}

	out, err := s.assembler.Build(ctx, source, order)
	if err != nil {
		s.logger.Error("Failed to assemble document", err, "session_id", id)
		return nil, apperrors.NewProcessingError("Failed to build reordered PDF", err)
	}
	s.logger.Info("Reordered document built", "session_id", id, "pages", len(order), "bytes", len(out))
	return &domain.BuiltDocument{Filename: filename, Data: out, Pages: len(order)}, nil
}

// Close ends a session and drops its thumbnails
func (s *ReorderManager) Close(id string) error {
	if err := s.sessions.Delete(id); err != nil {
		return apperrors.NewNotFoundError("Session not found", err)
	}
	if err := s.thumbnails.Release(id); err != nil {
		s.logger.Warn("Failed to release thumbnails", "session_id", id, "error", err.Error())
	}
	s.logger.Info("Session closed", "session_id", id)
	return nil
}

// PurgeExpired removes sessions past their expiry and returns how many went
func (s *ReorderManager) PurgeExpired() int {
	ids := s.sessions.PurgeExpired(s.now())
	for _, id := range ids {
		if err := s.thumbnails.Release(id); err != nil {
			s.logger.Warn("Failed to release thumbnails", "session_id", id, "error", err.Error())
		}
	}
	if len(ids) > 0 {
		s.logger.Info("Expired sessions purged", "count", len(ids), "remaining", s.sessions.Count())
	}
	return len(ids)
}

// StartJanitor purges expired sessions every interval until ctx is done
func (s *ReorderManager) StartJanitor(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.PurgeExpired()
			}
		}
	}()
}
