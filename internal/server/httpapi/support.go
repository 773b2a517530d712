package httpapi

import "net/http"

func (rt *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSupport advertises which feature groups this deployment serves, so the
// game client can hide unsupported screens.
func (rt *Router) handleSupport(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"contents": true,
		"accounts": true,
		"ranking":  true,
		"options": map[string]any{
			"requireAccountEmail": false,
		},
	})
}
