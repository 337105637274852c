// Package apperror holds the error kinds shared by the requesters and the
// HTTP layer. Components wrap these with fmt.Errorf("...: %w", ...) and
// callers classify with errors.Is.
package apperror

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidInput means the caller sent empty or unusable input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfigurationMissing means a credential needed for an upstream call is absent.
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrUpstreamFailure covers any failure reported by an external service.
	ErrUpstreamFailure = errors.New("upstream failure")
	// ErrExtractionFailed means a document could not be turned into text.
	ErrExtractionFailed = errors.New("extraction failed")
)

// HTTPStatus maps an error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrExtractionFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
