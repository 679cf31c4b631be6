package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

var defaultAllowedOrigins = []string{
	"http://localhost:5173", // SvelteKit dev server
	"http://localhost:4173", // SvelteKit preview
	"http://localhost:3000", // Alternative dev port
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	authHandler *AuthHandler,
	reorderHandler *ReorderHandler,
	comparisonHandler *ComparisonHandler,
	toolsHandler *ToolsHandler,
	authMiddleware func(http.Handler) http.Handler,
	allowedOrigins []string,
) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-workbench"}`))
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Sort pages tool
	api.HandleFunc("/reorder", reorderHandler.Load).Methods("POST")
	api.HandleFunc("/reorder/{id}", reorderHandler.State).Methods("GET")
	api.HandleFunc("/reorder/{id}", reorderHandler.Close).Methods("DELETE")
	api.HandleFunc("/reorder/{id}/reverse", reorderHandler.Reverse).Methods("POST")
	api.HandleFunc("/reorder/{id}/reset", reorderHandler.Reset).Methods("POST")
	api.HandleFunc("/reorder/{id}/move", reorderHandler.Move).Methods("POST")
	api.HandleFunc("/reorder/{id}/pages/{index:[0-9]+}/thumbnail", reorderHandler.Thumbnail).Methods("GET")
	api.HandleFunc("/reorder/{id}/build", reorderHandler.Build).Methods("POST")

	// Compare tool
	api.HandleFunc("/compare", comparisonHandler.Compare).Methods("POST")

	// Export availability
	api.HandleFunc("/auth/status", authHandler.Status).Methods("GET")

	// Related tools
	api.HandleFunc("/tools", toolsHandler.List).Methods("GET")
	api.HandleFunc("/tools/{tool}/related", toolsHandler.Related).Methods("GET")

	// Protected routes (require authentication)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/auth/validate", authHandler.ValidateToken).Methods("GET")
	protected.HandleFunc("/reorder/{id}/export", reorderHandler.Export).Methods("POST")

	if len(allowedOrigins) == 0 {
		allowedOrigins = defaultAllowedOrigins
	}

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
