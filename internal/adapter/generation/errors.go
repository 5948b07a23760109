package generation

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"notes-assistant/internal/domain"
)

var quotaMarkers = []string{"resource_exhausted", "quota", "rate limit", "rate_limit", "too many requests"}

func isQuotaMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, m := range quotaMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// classify turns a backend failure into ErrQuotaExceeded or a *GenerationError.
// status is the HTTP status when the SDK exposes one, otherwise 0.
func classify(backend string, status int, message string, err error) error {
	if status == http.StatusTooManyRequests || isQuotaMessage(message) {
		return fmt.Errorf("%s: %w: %w", backend, domain.ErrQuotaExceeded, err)
	}
	if message == "" && err != nil {
		message = err.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		message = "request timed out"
	}
	return &domain.GenerationError{Backend: backend, Message: message, Err: err}
}
