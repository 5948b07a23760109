package service

import (
	"context"
	"errors"
	"time"

	"notes-assistant/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockGenerationClient ---
type MockGenerationClient struct {
	mock.Mock
}

func (m *MockGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockGenerationClient) Name() string {
	return "mock-generation"
}

// --- ManualMockCache ---
type ManualMockCache struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value string, ttl time.Duration) error
	HGetFunc   func(ctx context.Context, key, field string) (string, error)
	HSetFunc   func(ctx context.Context, key string, field string, value string) error
	ExpireFunc func(ctx context.Context, key string, expiration time.Duration) error
	PingFunc   func(ctx context.Context) error
}

func (m *ManualMockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return "", errors.New("GetFunc not set")
}

func (m *ManualMockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	return errors.New("SetFunc not set")
}

func (m *ManualMockCache) HGet(ctx context.Context, key, field string) (string, error) {
	if m.HGetFunc != nil {
		return m.HGetFunc(ctx, key, field)
	}
	return "", errors.New("HGetFunc not set")
}

func (m *ManualMockCache) HSet(ctx context.Context, key string, field string, value string) error {
	if m.HSetFunc != nil {
		return m.HSetFunc(ctx, key, field, value)
	}
	return errors.New("HSetFunc not set")
}

func (m *ManualMockCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	if m.ExpireFunc != nil {
		return m.ExpireFunc(ctx, key, expiration)
	}
	return errors.New("ExpireFunc not set")
}

func (m *ManualMockCache) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// --- recordingWriter ---
type recordingWriter struct {
	writes map[string]string
	err    error
}

func (w *recordingWriter) Write(_ context.Context, sessionID string, kind domain.ArtifactKind, text string) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	if w.writes == nil {
		w.writes = map[string]string{}
	}
	w.writes[sessionID+"/"+string(kind)] = text
	return string(kind) + ".txt", nil
}
