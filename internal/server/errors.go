package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/batch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrRunNotFound indicates an unknown rank run ID
type ErrRunNotFound struct {
	RunID string
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("rank run not found: %s", e.RunID)
}

// ErrPersistenceDisabled is returned by run lookups when no database is configured.
var ErrPersistenceDisabled = errors.New("persistence is not configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation  *ErrValidation
		notFound    *ErrRunNotFound
		invalid     *matching.InvalidInputError
		scoring     *matching.ScoringError
		timeout     *batch.BatchTimeoutError
		unsupported *ingestion.UnsupportedSourceError
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validation), errors.As(err, &invalid), errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, ErrPersistenceDisabled):
		return http.StatusNotImplemented
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &scoring):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
