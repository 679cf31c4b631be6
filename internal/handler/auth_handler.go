package handler

import (
	"net/http"

	"pdf-workbench/internal/domain"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	supabaseClient domain.SupabaseClient
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(supabaseClient domain.SupabaseClient) *AuthHandler {
	return &AuthHandler{supabaseClient: supabaseClient}
}

type authStatusResponse struct {
	ExportEnabled bool                 `json:"export_enabled"`
	User          *domain.SupabaseUser `json:"user,omitempty"`
}

// ValidateToken returns the user behind the bearer token. The client calls it
// before offering export.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}
	writeJSON(w, http.StatusOK, authStatusResponse{ExportEnabled: h.supabaseClient.Ready(), User: user})
}

// Status reports whether export is available, without requiring a token
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, authStatusResponse{ExportEnabled: h.supabaseClient.Ready()})
}
