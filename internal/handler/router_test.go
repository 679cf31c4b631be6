package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pdf-workbench/internal/domain"
)

func TestNewRouter_Health(t *testing.T) {
	s := newTestServer()

	rr := s.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/compare", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := s.do(req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected origin to be allowed, got %q", got)
	}
}

func TestNewRouter_ExportRequiresAuth(t *testing.T) {
	s := newTestServer()

	rr := s.do(httptest.NewRequest(http.MethodPost, "/api/v1/reorder/sess-1/export", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	if s.export.sessionID != "" {
		t.Fatalf("export must not run without a token")
	}
}

func TestToolsHandler_Related(t *testing.T) {
	s := newTestServer()

	rr := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/tools/sort-pages/related", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp struct {
		Tool    string               `json:"tool"`
		Related []domain.RelatedTool `json:"related"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Tool != "sort-pages" || len(resp.Related) == 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	for _, tool := range resp.Related {
		if tool.Name == "" || tool.URL == "" {
			t.Fatalf("incomplete related tool: %+v", tool)
		}
	}
}

func TestToolsHandler_UnknownTool(t *testing.T) {
	s := newTestServer()

	rr := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/tools/defrag-disk/related", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestToolsHandler_List(t *testing.T) {
	s := newTestServer()

	rr := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/tools", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"compress-pdf"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}
