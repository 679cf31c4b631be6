package handler

import (
	"errors"
	"net/http"

	"pdf-workbench/internal/domain"

	"github.com/gorilla/mux"
)

// ToolsHandler serves the related-tools catalog
type ToolsHandler struct {
	logger domain.Logger
}

func NewToolsHandler(logger domain.Logger) *ToolsHandler {
	return &ToolsHandler{logger: logger}
}

type relatedToolsResponse struct {
	Tool    string               `json:"tool"`
	Related []domain.RelatedTool `json:"related"`
}

// Related handles GET /tools/{tool}/related
func (h *ToolsHandler) Related(w http.ResponseWriter, r *http.Request) {
	tool := mux.Vars(r)["tool"]
	related, err := domain.RelatedTools(tool)
	if errors.Is(err, domain.ErrUnknownTool) {
		writeError(w, http.StatusNotFound, "Unknown tool")
		return
	}
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, relatedToolsResponse{Tool: tool, Related: related})
}

// List handles GET /tools
func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tools": domain.ToolSlugs()})
}
