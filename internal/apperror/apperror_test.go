package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid input", fmt.Errorf("summarize: %w", ErrInvalidInput), http.StatusBadRequest},
		{"missing config", fmt.Errorf("summarize: %w", ErrConfigurationMissing), http.StatusInternalServerError},
		{"upstream", fmt.Errorf("tts: %w", ErrUpstreamFailure), http.StatusInternalServerError},
		{"extraction", fmt.Errorf("pdf: %w", ErrExtractionFailed), http.StatusUnprocessableEntity},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
