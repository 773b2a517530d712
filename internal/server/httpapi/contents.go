package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/repository"
	"github.com/MI11435/DankagLike-Custom-Server/internal/shared/models"
)

func contentID(w http.ResponseWriter, req *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(req, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid content id"})
		return 0, false
	}
	return id, true
}

func (rt *Router) handleListContents(w http.ResponseWriter, req *http.Request) {
	list, err := rt.services.Contents.List(req.Context())
	if err != nil {
		rt.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contents": list})
}

// handleGetContent keeps the historical list-of-at-most-one response shape.
func (rt *Router) handleGetContent(w http.ResponseWriter, req *http.Request) {
	id, ok := contentID(w, req)
	if !ok {
		return
	}
	contents := []models.Content{}
	c, err := rt.services.Contents.Get(req.Context(), id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		rt.internalError(w, err)
		return
	default:
		contents = append(contents, c)
	}
	writeJSON(w, http.StatusOK, map[string]any{"contents": contents})
}

func (rt *Router) handleContentDescription(w http.ResponseWriter, req *http.Request) {
	id, ok := contentID(w, req)
	if !ok {
		return
	}
	description, downloadURL, imageURL, err := rt.services.Contents.Description(req.Context(), id)
	if err != nil {
		rt.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"description": description,
		"downloadUrl": downloadURL,
		"imageUrl":    imageURL,
	})
}

func (rt *Router) handleContentDownloaded(w http.ResponseWriter, req *http.Request) {
	id, ok := contentID(w, req)
	if !ok {
		return
	}
	if err := rt.services.Contents.MarkDownloaded(req.Context(), id); err != nil {
		rt.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successMessage)
}
