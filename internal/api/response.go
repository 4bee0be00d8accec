// Helper functions for sending standardized JSON responses.

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TMKSpace/anime-tmkspace/internal/animego"
)

// RespondWithJSON writes a JSON response with the given status code and payload.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to marshal response")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithError writes a standardized JSON error response.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithResolverError maps the resolver error kinds onto HTTP
// statuses: blocked content is 451, an empty result is 404, everything
// the upstream site caused is a 502.
func respondWithResolverError(w http.ResponseWriter, err error) {
	var blocked *animego.ContentBlockedError
	if errors.As(err, &blocked) {
		RespondWithJSON(w, http.StatusUnavailableForLegalReasons, map[string]string{
			"error":  "content is blocked",
			"reason": blocked.Reason,
		})
		return
	}
	if errors.Is(err, animego.ErrNoResults) {
		RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	RespondWithError(w, http.StatusBadGateway, err.Error())
}
