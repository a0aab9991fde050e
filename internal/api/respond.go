package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondJSONError(w http.ResponseWriter, message string, status int) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondFieldErrors(w http.ResponseWriter, status int, errs map[string]string) {
	respondJSON(w, status, map[string]any{"errors": errs})
}

func extractPathParam(path, prefix string) string {
	param := strings.TrimPrefix(path, prefix)
	return strings.TrimSuffix(param, "/")
}
