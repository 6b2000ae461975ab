// Package server provides the HTTP REST API for the interview service.
package server

import (
	"net/http"

	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/schemas"
)

// HTTPStatus maps a service error to its HTTP status code. Anything
// unrecognized is a 500.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *interview.ErrValidation, *interview.ErrMissingIdentity:
		return http.StatusBadRequest
	case *interview.ErrQuotaExceeded:
		return http.StatusForbidden
	case *interview.ErrNotFound:
		return http.StatusNotFound
	case *schemas.ValidationError:
		return http.StatusBadRequest
	case *interview.ErrGenerationFailed, *interview.ErrMissingQuestions, *interview.ErrStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text returned to callers. Storage and generation
// detail stays in the logs.
func publicMessage(err error) string {
	switch err.(type) {
	case *interview.ErrGenerationFailed:
		return "Failed to generate interview questions. Please try again."
	case *interview.ErrStorage:
		return "Internal server error"
	default:
		return err.Error()
	}
}
