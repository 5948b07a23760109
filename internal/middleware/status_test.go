package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"notes-assistant/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"wrapped domain error", fmt.Errorf("handler: %w", domain.NewNoActiveQuizError()), http.StatusConflict},
		{"quota", domain.NewQuotaExceededError(nil), http.StatusTooManyRequests},
		{"fiber error", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}
