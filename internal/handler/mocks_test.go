package handler

import (
	"bytes"
	"context"
	"image"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"
)

type mockReorderService struct {
	state       *domain.SessionState
	loadedName  string
	loadedBytes []byte
	built       []byte
	closed      []string
	lookups     int
	lastMove    [3]int
	applied     bool
	err         error
}

func newMockReorderService() *mockReorderService {
	return &mockReorderService{
		state: &domain.SessionState{
			SessionID:    "sess-1",
			Filename:     "scan.pdf",
			PageCount:    3,
			Order:        []int{0, 1, 2},
			ReverseLabel: "Reverse Order (Back to Front)",
			State:        "ready",
		},
		built:   []byte("%PDF-1.7 rebuilt"),
		applied: true,
	}
}

func (m *mockReorderService) lookup(id string) (*domain.SessionState, error) {
	m.lookups++
	if m.err != nil {
		return nil, m.err
	}
	if id != m.state.SessionID {
		return nil, apperrors.NewNotFoundError("Session not found", domain.ErrSessionNotFound)
	}
	return m.state, nil
}

func (m *mockReorderService) Load(ctx context.Context, filename string, data []byte) (*domain.SessionState, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.loadedName, m.loadedBytes = filename, data
	return m.state, nil
}

func (m *mockReorderService) State(id string) (*domain.SessionState, error) { return m.lookup(id) }

func (m *mockReorderService) Reverse(id string) (*domain.SessionState, error) {
	s, err := m.lookup(id)
	if err == nil {
		s.Order = []int{2, 1, 0}
		s.Reversed = true
		s.ReverseLabel = "Reverse Order (Front to Back)"
	}
	return s, err
}

func (m *mockReorderService) Reset(id string) (*domain.SessionState, error) {
	s, err := m.lookup(id)
	if err == nil {
		s.Order = []int{0, 1, 2}
		s.Reversed = false
	}
	return s, err
}

func (m *mockReorderService) Move(id string, source, target int, insertAfter bool) (*domain.SessionState, bool, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, false, err
	}
	after := 0
	if insertAfter {
		after = 1
	}
	m.lastMove = [3]int{source, target, after}
	return s, m.applied, nil
}

func (m *mockReorderService) Thumbnail(id string, originalIndex int) ([]byte, error) {
	if _, err := m.lookup(id); err != nil {
		return nil, err
	}
	if originalIndex >= m.state.PageCount {
		return nil, apperrors.NewNotFoundError("Thumbnail not found", domain.ErrThumbnailNotFound)
	}
	return []byte("\x89PNG thumb"), nil
}

func (m *mockReorderService) Build(ctx context.Context, id string) (*domain.BuiltDocument, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return &domain.BuiltDocument{Filename: s.Filename, Data: m.built, Pages: s.PageCount}, nil
}

func (m *mockReorderService) Close(id string) error {
	if _, err := m.lookup(id); err != nil {
		return err
	}
	m.closed = append(m.closed, id)
	return nil
}

type mockExportService struct {
	userID    string
	sessionID string
	data      []byte
	err       error
}

func (m *mockExportService) Export(ctx context.Context, userID, sessionID string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.userID, m.sessionID, m.data = userID, sessionID, data
	return userID + "/" + sessionID + ".pdf", nil
}

type mockComparisonService struct {
	rows     []domain.ComparisonPage
	received [][]byte
	err      error
}

func (m *mockComparisonService) CompareFiles(ctx context.Context, files [][]byte, each func(domain.ComparisonPage) error) error {
	m.received = files
	if len(files) != 2 {
		return apperrors.NewValidationError("Please select exactly two PDF files to compare")
	}
	for _, row := range m.rows {
		if err := each(row); err != nil {
			return err
		}
	}
	return m.err
}

func tinyRGBA() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, 2, 2))
}

type uploadPart struct {
	field    string
	filename string
	content  string
}

func multipartRequest(t *testing.T, method, target string, parts ...uploadPart) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.field, p.filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		fw.Write([]byte(p.content))
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type testServer struct {
	reorder *mockReorderService
	export  *mockExportService
	compare *mockComparisonService
	auth    *mockAuthService
	handler http.Handler
}

func newTestServer() *testServer {
	s := &testServer{
		reorder: newMockReorderService(),
		export:  &mockExportService{},
		compare: &mockComparisonService{},
		auth:    &mockAuthService{user: &domain.SupabaseUser{ID: "user-1"}},
	}
	logger := NewMockHandlerLogger()
	s.handler = NewRouter(
		NewAuthHandler(&stubSupabaseClient{ready: true}),
		NewReorderHandler(s.reorder, s.export, logger, 1<<20),
		NewComparisonHandler(s.compare, logger, 1<<20),
		NewToolsHandler(logger),
		NewAuthMiddleware(s.auth, logger).Middleware,
		nil,
	)
	return s
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}
