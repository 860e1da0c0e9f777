package rest

import (
	"encoding/json"
	"net/http"

	"listing-admin-service/internal/core/domain"
)

// WriteJSONError отправляет ошибку в стандартном формате {"error": message}
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeValidationError отправляет ошибку вместе со списком проблем формы
func writeValidationError(w http.ResponseWriter, message string, issues []domain.ValidationIssue) {
	RespondWithJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: message, Issues: issues})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
