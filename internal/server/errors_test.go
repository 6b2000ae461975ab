package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/schemas"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &interview.ErrValidation{Field: "jobRole"}, http.StatusBadRequest},
		{"missing identity", &interview.ErrMissingIdentity{}, http.StatusBadRequest},
		{"quota", &interview.ErrQuotaExceeded{Limit: 3}, http.StatusForbidden},
		{"not found", &interview.ErrNotFound{Resource: "interview"}, http.StatusNotFound},
		{"generation failed", &interview.ErrGenerationFailed{Cause: errors.New("429")}, http.StatusInternalServerError},
		{"missing questions", &interview.ErrMissingQuestions{}, http.StatusInternalServerError},
		{"storage", &interview.ErrStorage{Op: "x", Cause: errors.New("down")}, http.StatusInternalServerError},
		{"schema", &schemas.ValidationError{}, http.StatusBadRequest},
		{"unknown", errors.New("anything"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestPublicMessage_HidesInternals(t *testing.T) {
	gen := &interview.ErrGenerationFailed{Cause: errors.New("googleapi 429 RESOURCE_EXHAUSTED")}
	assert.NotContains(t, publicMessage(gen), "429")

	st := &interview.ErrStorage{Op: "session create", Cause: errors.New("pg password")}
	assert.Equal(t, "Internal server error", publicMessage(st))

	quota := &interview.ErrQuotaExceeded{Limit: 3}
	assert.Contains(t, publicMessage(quota), "Upgrade to Premium")
}
