package response

import (
	"encoding/json"
	"net/http"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Can't change response at this point, just log
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Error writes an error response with a machine-readable code and a
// human-readable message
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, entity.ErrorResponse{Error: code, Message: message})
}

// ValidationError writes a 400 response carrying per-field messages
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	JSON(w, http.StatusBadRequest, entity.ErrorResponse{
		Error:   "validation_failed",
		Message: "One or more fields are invalid",
		Fields:  fields,
	})
}

// Success writes a success response
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created writes a 201 Created response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
