package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/service"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

// Debug listing of every vote in the store.
func (rt *Router) handleListVotes(w http.ResponseWriter, req *http.Request) {
	votes, err := rt.services.Votes.ListAll(req.Context())
	if err != nil {
		rt.internalError(w, err)
		return
	}
	if votes == nil {
		votes = []models.Vote{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"votes": votes})
}

func (rt *Router) handleContentVotes(w http.ResponseWriter, req *http.Request) {
	id, ok := contentID(w, req)
	if !ok {
		return
	}
	votes, err := rt.services.Votes.ListByContent(req.Context(), id)
	if err != nil {
		rt.internalError(w, err)
		return
	}
	if votes == nil {
		votes = []models.Vote{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"votes": votes})
}

func (rt *Router) handleCastVote(w http.ResponseWriter, req *http.Request) {
	id, ok := contentID(w, req)
	if !ok {
		return
	}
	var vote models.Vote
	if !rt.decodeJSON(w, req, &vote) {
		return
	}
	err := rt.services.Votes.Cast(req.Context(), id, vote)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
	case err != nil:
		rt.internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, successMessage)
	}
}

func (rt *Router) handleEditVote(w http.ResponseWriter, req *http.Request) {
	id, ok := contentID(w, req)
	if !ok {
		return
	}
	var vote models.Vote
	if !rt.decodeJSON(w, req, &vote) {
		return
	}
	err := rt.services.Votes.Edit(req.Context(), id, vote)
	switch {
	case errors.Is(err, service.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id and userId are required"})
	case err != nil:
		rt.internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, successMessage)
	}
}

func (rt *Router) handleUserLikes(w http.ResponseWriter, req *http.Request) {
	likes, err := rt.services.Votes.LikesByUser(req.Context(), chi.URLParam(req, "userId"))
	if err != nil {
		rt.internalError(w, err)
		return
	}
	if likes == nil {
		likes = []models.Like{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"likes": likes})
}

func (rt *Router) handleLike(w http.ResponseWriter, req *http.Request) {
	var body struct {
		VoteID int64 `json:"voteId"`
	}
	if !rt.decodeJSON(w, req, &body) {
		return
	}
	if err := rt.services.Votes.Like(req.Context(), chi.URLParam(req, "userId"), body.VoteID); err != nil {
		rt.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successMessage)
}
