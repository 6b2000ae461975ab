// Package interview implements the interview session lifecycle: creation
// under the monthly quota policy, question generation, answer submission and
// scoring, and the administrative escape hatches.
package interview

import (
	"fmt"
)

// ErrValidation indicates missing or malformed required input.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrMissingIdentity indicates no account id could be resolved for the caller.
type ErrMissingIdentity struct{}

func (e *ErrMissingIdentity) Error() string {
	return "an account id is required to create an interview"
}

// ErrNotFound indicates an unknown session or account id.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrQuotaExceeded indicates the Free-plan monthly creation cap was hit.
type ErrQuotaExceeded struct {
	Limit int
}

func (e *ErrQuotaExceeded) Error() string {
	return fmt.Sprintf("Free plan users can only take %d mock interviews per month. Upgrade to Premium for unlimited access.", e.Limit)
}

// ErrGenerationFailed indicates question generation failed after retries.
// The session stays in its previous status, so the operation is retryable.
type ErrGenerationFailed struct {
	Cause error
}

func (e *ErrGenerationFailed) Error() string {
	return fmt.Sprintf("question generation failed: %v", e.Cause)
}

func (e *ErrGenerationFailed) Unwrap() error { return e.Cause }

// ErrMissingQuestions indicates a submission against a session that has no
// generated questions yet.
type ErrMissingQuestions struct{}

func (e *ErrMissingQuestions) Error() string {
	return "interview has no questions; call start before submitting answers"
}

// ErrStorage indicates a persistence-layer failure, surfaced opaquely.
type ErrStorage struct {
	Op    string
	Cause error
}

func (e *ErrStorage) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Cause)
}

func (e *ErrStorage) Unwrap() error { return e.Cause }
