package ui

import (
	"encoding/json"
	"net/http"

	"datastory/domain/core"
)

func (a *App) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("[ui] encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]string{"error": message})
}

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case core.IsNotFoundError(err):
		return http.StatusNotFound
	case core.IsInputError(err):
		return http.StatusBadRequest
	case core.IsCollaboratorError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
