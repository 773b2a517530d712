package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/service"
)

type Router struct {
	services        *service.Services
	logger          *log.Logger
	maxRequestBytes int64
}

func NewRouter(services *service.Services, logger *log.Logger, maxRequestBytes int64) http.Handler {
	rt := &Router{services: services, logger: logger, maxRequestBytes: maxRequestBytes}
	mux := chi.NewRouter()
	mux.Use(corsMiddleware)

	mux.Get("/health", rt.handleHealth)
	mux.Get("/support", rt.handleSupport)

	mux.Post("/accounts", rt.handleRegister)
	mux.Put("/accounts", rt.handleUpdateAccount)
	mux.Post("/accounts/login", rt.handleLogin)
	mux.Post("/accounts/request-password-reset", rt.handleRequestPasswordReset)

	mux.Get("/ranking", rt.handleGetRanking)
	mux.Post("/ranking", rt.handleSubmitScore)

	mux.Get("/contents", rt.handleListContents)
	mux.Get("/contents/{id}", rt.handleGetContent)
	mux.Get("/contents/{id}/description", rt.handleContentDescription)
	mux.Put("/contents/{id}/downloaded", rt.handleContentDownloaded)

	mux.Get("/votes", rt.handleListVotes)
	mux.Get("/contents/{id}/vote", rt.handleContentVotes)
	mux.Post("/contents/{id}/vote", rt.handleCastVote)
	mux.Put("/contents/{id}/vote", rt.handleEditVote)

	mux.Get("/likes/{userId}", rt.handleUserLikes)
	mux.Put("/likes/{userId}", rt.handleLike)

	return mux
}

// successMessage mirrors the generic OK body used by endpoints that have
// nothing better to return.
var successMessage = map[string]string{"message": "Operation was successful."}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a size-limited JSON body into v; on failure it writes the
// 400 itself and reports false.
func (rt *Router) decodeJSON(w http.ResponseWriter, req *http.Request, v any) bool {
	if rt.maxRequestBytes > 0 {
		req.Body = http.MaxBytesReader(w, req.Body, rt.maxRequestBytes)
	}
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return false
	}
	return true
}

func (rt *Router) internalError(w http.ResponseWriter, err error) {
	if rt.logger != nil {
		rt.logger.Printf("internal error: %v", err)
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}
