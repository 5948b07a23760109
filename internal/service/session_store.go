package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"notes-assistant/internal/cache"
	"notes-assistant/internal/domain"
	"notes-assistant/internal/logger"

	"go.uber.org/zap"
)

// SessionStore persists per-session quiz state and the last generated texts.
type SessionStore interface {
	// LoadQuiz returns the stored quiz, or a fresh empty one when none exists.
	LoadQuiz(ctx context.Context, sessionID string) (*domain.QuizSession, error)
	SaveQuiz(ctx context.Context, sessionID string, quiz *domain.QuizSession) error
	SaveArtifact(ctx context.Context, sessionID string, kind domain.ArtifactKind, text string) error
	// LastArtifact returns ARTIFACT_NOT_FOUND when kind was never generated.
	LastArtifact(ctx context.Context, sessionID string, kind domain.ArtifactKind) (string, error)
}

type cacheSessionStore struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewSessionStore creates a SessionStore over the cache port. Every write
// refreshes the key's TTL.
func NewSessionStore(c domain.Cache, ttl time.Duration) SessionStore {
	return &cacheSessionStore{cache: c, ttl: ttl}
}

func (s *cacheSessionStore) LoadQuiz(ctx context.Context, sessionID string) (*domain.QuizSession, error) {
	key := cache.QuizSessionKey(sessionID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("No stored quiz for session", zap.String("key", key))
			return domain.NewQuizSession(), nil
		}
		logger.Get().Error("Failed to load quiz session", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to load quiz session for key %s", key), err)
	}

	quiz := domain.NewQuizSession()
	if err := json.Unmarshal([]byte(data), quiz); err != nil {
		logger.Get().Error("Failed to unmarshal quiz session", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to decode quiz session for key %s", key), err)
	}
	if quiz.UserAnswers == nil {
		quiz.UserAnswers = map[int]string{}
	}
	if quiz.Items == nil {
		quiz.Items = []domain.QuizItem{}
	}
	return quiz, nil
}

func (s *cacheSessionStore) SaveQuiz(ctx context.Context, sessionID string, quiz *domain.QuizSession) error {
	if quiz == nil {
		return domain.NewInvalidInputError("cannot store nil quiz session")
	}
	key := cache.QuizSessionKey(sessionID)
	data, err := json.Marshal(quiz)
	if err != nil {
		return domain.NewInternalError("failed to encode quiz session", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to store quiz session", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to store quiz session for key %s", key), err)
	}
	logger.Get().Debug("Stored quiz session",
		zap.String("key", key),
		zap.Int("items", len(quiz.Items)),
		zap.String("state", string(quiz.State())))
	return nil
}

func (s *cacheSessionStore) SaveArtifact(ctx context.Context, sessionID string, kind domain.ArtifactKind, text string) error {
	key := cache.ArtifactKey(sessionID)
	if err := s.cache.HSet(ctx, key, string(kind), text); err != nil {
		logger.Get().Error("Failed to store artifact", zap.Error(err), zap.String("key", key), zap.String("kind", string(kind)))
		return domain.NewInternalError(fmt.Sprintf("failed to store %s for key %s", kind, key), err)
	}
	if err := s.cache.Expire(ctx, key, s.ttl); err != nil {
		// The text is stored; only its lifetime failed to refresh.
		logger.Get().Warn("Failed to set artifact TTL", zap.Error(err), zap.String("key", key))
	}
	return nil
}

func (s *cacheSessionStore) LastArtifact(ctx context.Context, sessionID string, kind domain.ArtifactKind) (string, error) {
	key := cache.ArtifactKey(sessionID)
	text, err := s.cache.HGet(ctx, key, string(kind))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return "", domain.NewArtifactNotFoundError(kind)
		}
		logger.Get().Error("Failed to load artifact", zap.Error(err), zap.String("key", key))
		return "", domain.NewInternalError(fmt.Sprintf("failed to load %s for key %s", kind, key), err)
	}
	return text, nil
}
