package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	tferr "github.com/talentflow/talentflow/internal/errors"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}

// Error writes an error response, mapping domain errors to HTTP status codes.
func Error(w http.ResponseWriter, err error) {
	JSON(w, StatusFor(err), ErrorResponse{Error: errorMessage(err)})
}

// StatusFor maps a domain error to its HTTP status code.
func StatusFor(err error) int {
	var notFound *tferr.NotFoundError
	var notInit *tferr.NotInitializedError
	var alreadyExists *tferr.AlreadyExistsError
	var conflict *tferr.ConflictError
	var validation *tferr.ValidationError
	var precondition *tferr.PreconditionError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &notInit):
		return http.StatusServiceUnavailable
	case errors.As(err, &alreadyExists), errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &validation), errors.As(err, &precondition):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errorMessage(err error) string {
	var notInit *tferr.NotInitializedError
	if errors.As(err, &notInit) {
		return "TalentFlow is not initialized in this directory (run 'talentflow init')"
	}
	return err.Error()
}

// BadRequest writes a 400 error with the given message.
func BadRequest(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadRequest, ErrorResponse{Error: message})
}
