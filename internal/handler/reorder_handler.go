package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pdf-workbench/internal/domain"
	apperrors "pdf-workbench/pkg/errors"

	"github.com/gorilla/mux"
)

// ReorderHandler exposes the sort pages tool
type ReorderHandler struct {
	reorderService domain.ReorderService
	exportService  domain.ExportService
	logger         domain.Logger
	maxFileSize    int64
}

// NewReorderHandler creates a new reorder handler
func NewReorderHandler(
	reorderService domain.ReorderService,
	exportService domain.ExportService,
	logger domain.Logger,
	maxFileSize int64,
) *ReorderHandler {
	return &ReorderHandler{
		reorderService: reorderService,
		exportService:  exportService,
		logger:         logger,
		maxFileSize:    maxFileSize,
	}
}

type moveRequest struct {
	Source      *int `json:"source"`
	Target      *int `json:"target"`
	InsertAfter bool `json:"insert_after"`
}

type moveResponse struct {
	*domain.SessionState
	Applied bool `json:"applied"`
}

type exportResponse struct {
	SessionID string `json:"session_id"`
	Path      string `json:"path"`
	Size      int    `json:"size"`
}

// Load handles POST /reorder
func (h *ReorderHandler) Load(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(w, r, h.maxFileSize, 1); err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}

	name, data, err := readPDF(header, h.maxFileSize)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	state, err := h.reorderService.Load(r.Context(), name, data)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

// State handles GET /reorder/{id}
func (h *ReorderHandler) State(w http.ResponseWriter, r *http.Request) {
	state, err := h.reorderService.State(mux.Vars(r)["id"])
	h.respondState(w, state, err)
}

// Reverse handles POST /reorder/{id}/reverse
func (h *ReorderHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	state, err := h.reorderService.Reverse(mux.Vars(r)["id"])
	h.respondState(w, state, err)
}

// Reset handles POST /reorder/{id}/reset
func (h *ReorderHandler) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := h.reorderService.Reset(mux.Vars(r)["id"])
	h.respondState(w, state, err)
}

// Move handles POST /reorder/{id}/move
func (h *ReorderHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Source == nil || req.Target == nil {
		writeError(w, http.StatusBadRequest, "source and target are required")
		return
	}

	state, applied, err := h.reorderService.Move(mux.Vars(r)["id"], *req.Source, *req.Target, req.InsertAfter)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, moveResponse{SessionState: state, Applied: applied})
}

// Thumbnail handles GET /reorder/{id}/pages/{index}/thumbnail
func (h *ReorderHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "Invalid page index")
		return
	}

	data, err := h.reorderService.Thumbnail(vars["id"], index)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Build handles POST /reorder/{id}/build
func (h *ReorderHandler) Build(w http.ResponseWriter, r *http.Request) {
	built, err := h.reorderService.Build(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reorderedName(built.Filename)))
	w.Header().Set("Content-Length", strconv.Itoa(len(built.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(built.Data)
}

// Export handles POST /reorder/{id}/export
func (h *ReorderHandler) Export(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id := mux.Vars(r)["id"]
	built, err := h.reorderService.Build(r.Context(), id)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}

	path, err := h.exportService.Export(r.Context(), user.ID, id, built.Data)
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, exportResponse{SessionID: id, Path: path, Size: len(built.Data)})
}

// Close handles DELETE /reorder/{id}
func (h *ReorderHandler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.reorderService.Close(mux.Vars(r)["id"]); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ReorderHandler) respondState(w http.ResponseWriter, state *domain.SessionState, err error) {
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	if state == nil {
		writeAppError(w, h.logger, apperrors.NewInternalError("Missing session state", nil))
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// reorderedName turns "scan.pdf" into "scan-reordered.pdf"
func reorderedName(filename string) string {
	base := strings.TrimSuffix(filename, ".pdf")
	base = strings.TrimSuffix(base, ".PDF")
	if base == "" {
		base = "document"
	}
	return base + "-reordered.pdf"
}
