package handlers

import (
	"errors"
	"net/http"

	"howyouknow-backend/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// statusFor maps core errors to HTTP statuses: state conflicts are 409,
// unknown sessions 404, validation failures 400, anything else (storage
// failures included) 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidSessionState):
		return http.StatusConflict
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNoPartnerLinked),
		errors.Is(err, services.ErrNoQuestionsAvailable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
