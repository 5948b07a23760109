package generation

import (
	"context"
	"errors"
	"time"

	"notes-assistant/internal/domain"
	"notes-assistant/internal/logger"

	"go.uber.org/zap"
)

// LoggingClient logs every generation call with its latency and outcome.
type LoggingClient struct {
	inner domain.GenerationClient
}

func WithLogging(c domain.GenerationClient) domain.GenerationClient {
	return &LoggingClient{inner: c}
}

func (l *LoggingClient) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	text, err := l.inner.Generate(ctx, prompt)

	fields := []zap.Field{
		zap.String("backend", l.inner.Name()),
		zap.Int("prompt_chars", len(prompt)),
		zap.Duration("latency", time.Since(start)),
	}
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		logger.Get().Warn("Generation refused: quota exceeded", append(fields, zap.Error(err))...)
	case err != nil:
		logger.Get().Error("Generation failed", append(fields, zap.Error(err))...)
	default:
		logger.Get().Info("Generation completed", append(fields, zap.Int("response_chars", len(text)))...)
	}
	return text, err
}

func (l *LoggingClient) Name() string {
	return l.inner.Name()
}

// TimeoutClient bounds each call. The backend's own error is kept if it
// reports the deadline itself.
type TimeoutClient struct {
	inner   domain.GenerationClient
	timeout time.Duration
}

// WithTimeout wraps c so each call gets at most d; d <= 0 returns c unchanged.
func WithTimeout(c domain.GenerationClient, d time.Duration) domain.GenerationClient {
	if d <= 0 {
		return c
	}
	return &TimeoutClient{inner: c, timeout: d}
}

func (t *TimeoutClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	text, err := t.inner.Generate(ctx, prompt)
	if err != nil && ctx.Err() != nil && !isClassified(err) {
		return "", classify(t.inner.Name(), 0, "", ctx.Err())
	}
	return text, err
}

func (t *TimeoutClient) Name() string {
	return t.inner.Name()
}

func isClassified(err error) bool {
	var ge *domain.GenerationError
	return errors.Is(err, domain.ErrQuotaExceeded) || errors.As(err, &ge)
}
