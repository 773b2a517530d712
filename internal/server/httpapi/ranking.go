package httpapi

import (
	"errors"
	"net/http"

	"github.com/MI11435/DankagLike-Custom-Server/internal/server/service"
)

func (rt *Router) handleGetRanking(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	ranking, err := rt.services.Ranking.Top(req.Context(), q.Get("chartHash"), q.Get("difficulty"))
	switch {
	case errors.Is(err, service.ErrMissingParameters):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "chartHash and difficulty are required"})
	case err != nil:
		rt.internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"ranking": ranking})
	}
}

func (rt *Router) handleSubmitScore(w http.ResponseWriter, req *http.Request) {
	var sub service.Submission
	if !rt.decodeJSON(w, req, &sub) {
		return
	}
	outcome, err := rt.services.Ranking.Submit(req.Context(), sub)
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Your account login token is invalid"})
	case errors.Is(err, service.ErrBanned):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "You cannot perform this action because your account is banned."})
	case errors.Is(err, service.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "songTitle, chartHash, accountId, accountToken, score, and maxScore are required"})
	case err != nil:
		rt.internalError(w, err)
	default:
		status := http.StatusOK
		if outcome.Created() {
			status = http.StatusCreated
		}
		writeJSON(w, status, map[string]string{"message": submitMessage(outcome)})
	}
}

func submitMessage(outcome service.SubmitOutcome) string {
	switch outcome {
	case service.OutcomeCreatedPerfect:
		return "Ranking created successfully. ALL BRILLIANT!!!"
	case service.OutcomeCreated:
		return "Ranking created successfully."
	case service.OutcomeUpdatedPerfect:
		return "Ranking updated successfully. ALL BRILLIANT!!!"
	case service.OutcomeUpdated:
		return "Ranking updated successfully."
	default:
		return "No ranking update needed."
	}
}
