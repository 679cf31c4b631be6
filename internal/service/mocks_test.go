package service

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"strings"
	"sync"
	"time"

	"pdf-workbench/internal/domain"
)

// Mock implementations for testing

type MockLogger struct {
	mu       sync.Mutex
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{messages: []string{}}
}

func (m *MockLogger) record(line string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{})  { m.record("INFO: " + msg) }
func (m *MockLogger) Debug(msg string, args ...interface{}) { m.record("DEBUG: " + msg) }
func (m *MockLogger) Warn(msg string, args ...interface{})  { m.record("WARN: " + msg) }
func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.record("ERROR: " + msg + " - " + err.Error())
}

func (m *MockLogger) Contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, line := range m.messages {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// fakePage describes how MockRasterizer renders one page: a solid colour at a
// given aspect ratio (height per unit width).
type fakePage struct {
	fill   color.RGBA
	aspect float64
	fail   bool
}

// MockRasterizer "parses" documents by name: the bytes are looked up in docs.
type MockRasterizer struct {
	mu      sync.Mutex
	docs    map[string][]fakePage
	opened  int
	closed  int
	renders int
}

func NewMockRasterizer() *MockRasterizer {
	return &MockRasterizer{docs: make(map[string][]fakePage)}
}

func (m *MockRasterizer) Add(name string, pages ...fakePage) []byte {
	m.docs[name] = pages
	return []byte(name)
}

// AddPlain registers a document of n white A4-ish pages
func (m *MockRasterizer) AddPlain(name string, n int) []byte {
	pages := make([]fakePage, n)
	for i := range pages {
		pages[i] = fakePage{fill: color.RGBA{R: 255, G: 255, B: 255, A: 255}, aspect: 1.414}
	}
	return m.Add(name, pages...)
}

func (m *MockRasterizer) Open(data []byte) (domain.RasterDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pages, ok := m.docs[string(data)]
	if !ok {
		return nil, errors.New("not a PDF")
	}
	m.opened++
	return &mockRasterDocument{parent: m, pages: pages}, nil
}

func (m *MockRasterizer) Stats() (opened, closed, renders int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opened, m.closed, m.renders
}

type mockRasterDocument struct {
	parent *MockRasterizer
	pages  []fakePage
}

func (d *mockRasterDocument) NumPage() int { return len(d.pages) }

func (d *mockRasterDocument) RenderPage(ctx context.Context, pageIndex int, targetWidth int) (*image.RGBA, error) {
	d.parent.mu.Lock()
	d.parent.renders++
	d.parent.mu.Unlock()

	if pageIndex < 0 || pageIndex >= len(d.pages) {
		return nil, domain.ErrPageOutOfRange
	}
	p := d.pages[pageIndex]
	if p.fail {
		return nil, errors.New("render failed")
	}
	h := int(float64(targetWidth) * p.aspect)
	img := image.NewRGBA(image.Rect(0, 0, targetWidth, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = p.fill.R, p.fill.G, p.fill.B, p.fill.A
	}
	return img, nil
}

func (d *mockRasterDocument) Close() error {
	d.parent.mu.Lock()
	defer d.parent.mu.Unlock()
	d.parent.closed++
	return nil
}

// MockAssembler records the order it was asked to build
type MockAssembler struct {
	mu        sync.Mutex
	lastOrder []int
	err       error
}

func (m *MockAssembler) PageCount(ctx context.Context, source []byte) (int, error) {
	return 0, errors.New("not used")
}

func (m *MockAssembler) Build(ctx context.Context, source []byte, order []int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.lastOrder = append([]int(nil), order...)
	return []byte("%PDF-rebuilt"), nil
}

// MockThumbnailCache keeps thumbnails in a map
type MockThumbnailCache struct {
	mu         sync.Mutex
	items      map[string][]byte
	releaseErr error
}

func NewMockThumbnailCache() *MockThumbnailCache {
	return &MockThumbnailCache{items: make(map[string][]byte)}
}

func thumbKey(sessionID string, idx int) string {
	return sessionID + "/" + string(rune('a'+idx))
}

func (m *MockThumbnailCache) Put(sessionID string, idx int, png []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[thumbKey(sessionID, idx)] = png
	return nil
}

func (m *MockThumbnailCache) Get(sessionID string, idx int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[thumbKey(sessionID, idx)]
	if !ok {
		return nil, domain.ErrThumbnailNotFound
	}
	return v, nil
}

func (m *MockThumbnailCache) Release(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.releaseErr != nil {
		return m.releaseErr
	}
	for k := range m.items {
		if strings.HasPrefix(k, sessionID+"/") {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *MockThumbnailCache) Close() error { return nil }

func (m *MockThumbnailCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// MockSessionRepository is an unsynchronised map-backed repository
type MockSessionRepository struct {
	sessions  map[string]*domain.ReorderSession
	createErr error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]*domain.ReorderSession)}
}

func (m *MockSessionRepository) Create(s *domain.ReorderSession) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *MockSessionRepository) Get(id string) (*domain.ReorderSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *MockSessionRepository) Delete(id string) error {
	if _, ok := m.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionRepository) PurgeExpired(now time.Time) []string {
	var ids []string
	for id, s := range m.sessions {
		if s.Expired(now) {
			ids = append(ids, id)
			delete(m.sessions, id)
		}
	}
	return ids
}

func (m *MockSessionRepository) Count() int { return len(m.sessions) }

// MockSupabaseClient records uploads
type MockSupabaseClient struct {
	ready      bool
	uploadErr  error
	bucket     string
	path       string
	body       []byte
	contentTyp string
}

func (m *MockSupabaseClient) Initialize() error { return nil }
func (m *MockSupabaseClient) Ready() bool       { return m.ready }

func (m *MockSupabaseClient) ValidateToken(token string) (*domain.SupabaseUser, error) {
	if token == "valid-token" {
		return &domain.SupabaseUser{ID: "user-123", Email: "test@example.com"}, nil
	}
	return nil, domain.ErrInvalidToken
}

func (m *MockSupabaseClient) UploadObject(bucket, path string, data io.Reader, contentType string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.bucket, m.path, m.body, m.contentTyp = bucket, path, body, contentType
	return nil
}
