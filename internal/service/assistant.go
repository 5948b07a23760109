package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"notes-assistant/internal/domain"
	"notes-assistant/internal/logger"
	"notes-assistant/internal/mcq"
	"notes-assistant/internal/prompt"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// sessionLockStripes bounds the lock table used to serialize quiz updates of one session.
const sessionLockStripes = 64

// AssistantService runs the three assistant actions and owns quiz interaction.
type AssistantService interface {
	GenerateNotes(ctx context.Context, sessionID, topic string) (string, error)
	Summarize(ctx context.Context, sessionID, notes string) (string, error)
	// GenerateQuiz replaces the session's quiz with freshly parsed items.
	GenerateQuiz(ctx context.Context, sessionID, notes string) (*domain.QuizSession, error)
	GetQuiz(ctx context.Context, sessionID string) (*domain.QuizSession, error)
	SelectAnswer(ctx context.Context, sessionID string, index int, option string) (*domain.QuizSession, error)
	SubmitQuiz(ctx context.Context, sessionID string) (*domain.QuizSession, *domain.QuizResult, error)
	LastArtifact(ctx context.Context, sessionID string, kind domain.ArtifactKind) (string, error)
}

type assistantService struct {
	client  domain.GenerationClient
	store   SessionStore
	writer  ArtifactWriter
	flight  singleflight.Group
	locks   [sessionLockStripes]sync.Mutex
	nowFunc func() time.Time
}

// NewAssistantService wires the generation backend to session storage.
// writer may be nil when artifact files are disabled.
func NewAssistantService(client domain.GenerationClient, store SessionStore, writer ArtifactWriter) AssistantService {
	if writer == nil {
		writer = NewNoopArtifactWriter()
	}
	return &assistantService{
		client:  client,
		store:   store,
		writer:  writer,
		nowFunc: time.Now,
	}
}

func (s *assistantService) GenerateNotes(ctx context.Context, sessionID, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", domain.NewEmptyInputError("a topic")
	}
	text, err := s.generate(ctx, sessionID, prompt.NewRequest(domain.ModeNotes, topic))
	if err != nil {
		return "", err
	}
	s.keepArtifact(ctx, sessionID, domain.ArtifactNotes, text)
	return text, nil
}

func (s *assistantService) Summarize(ctx context.Context, sessionID, notes string) (string, error) {
	if strings.TrimSpace(notes) == "" {
		return "", domain.NewEmptyInputError("notes")
	}
	text, err := s.generate(ctx, sessionID, prompt.NewRequest(domain.ModeSummary, notes))
	if err != nil {
		return "", err
	}
	s.keepArtifact(ctx, sessionID, domain.ArtifactSummary, text)
	return text, nil
}

func (s *assistantService) GenerateQuiz(ctx context.Context, sessionID, notes string) (*domain.QuizSession, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, domain.NewEmptyInputError("notes")
	}
	req := prompt.NewRequest(domain.ModeQuiz, notes)
	raw, err := s.generate(ctx, sessionID, req)
	if err != nil {
		return nil, err
	}

	items := mcq.Parse(raw)
	unanswered := 0
	for _, item := range items {
		if !item.HasAnswer() {
			unanswered++
		}
	}
	logger.Get().Info("Parsed quiz",
		zap.String("sessionID", sessionID),
		zap.Int("requested", req.TargetCount),
		zap.Int("parsed", len(items)),
		zap.Int("unanswered", unanswered))

	quiz := domain.NewQuizSession()
	quiz.Load(items, s.nowFunc())

	unlock := s.lock(sessionID)
	defer unlock()
	if err := s.store.SaveQuiz(ctx, sessionID, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *assistantService) GetQuiz(ctx context.Context, sessionID string) (*domain.QuizSession, error) {
	return s.store.LoadQuiz(ctx, sessionID)
}

func (s *assistantService) SelectAnswer(ctx context.Context, sessionID string, index int, option string) (*domain.QuizSession, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	quiz, err := s.store.LoadQuiz(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := quiz.Select(index, option); err != nil {
		return nil, err
	}
	if err := s.store.SaveQuiz(ctx, sessionID, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *assistantService) SubmitQuiz(ctx context.Context, sessionID string) (*domain.QuizSession, *domain.QuizResult, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	quiz, err := s.store.LoadQuiz(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	alreadyRevealed := quiz.State() == domain.QuizStateRevealed
	result, err := quiz.Submit()
	if err != nil {
		return nil, nil, err
	}
	if !alreadyRevealed {
		if err := s.store.SaveQuiz(ctx, sessionID, quiz); err != nil {
			return nil, nil, err
		}
		logger.Get().Info("Quiz submitted",
			zap.String("sessionID", sessionID),
			zap.Int("score", result.Score),
			zap.Int("total", result.Total))
	}
	return quiz, result, nil
}

func (s *assistantService) LastArtifact(ctx context.Context, sessionID string, kind domain.ArtifactKind) (string, error) {
	if !kind.Valid() {
		return "", domain.NewInvalidInputError(fmt.Sprintf("unknown download %q", kind)).WithContext("kind", string(kind))
	}
	return s.store.LastArtifact(ctx, sessionID, kind)
}

// generate sends one prompt to the backend. Identical requests of a session
// that overlap in time share a single backend call.
func (s *assistantService) generate(ctx context.Context, sessionID string, req domain.GenerationRequest) (string, error) {
	p, err := prompt.Build(req)
	if err != nil {
		return "", domain.NewInvalidInputError(err.Error())
	}

	// The shared call is detached from the caller that started it so a
	// cancelled leader does not fail the callers that joined. The client's
	// own timeout still bounds it.
	key := flightKey(sessionID, req.Mode, p)
	detached := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key, func() (interface{}, error) {
		return s.client.Generate(detached, p)
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Shared {
			logger.Get().Debug("Joined in-flight generation", zap.String("sessionID", sessionID), zap.String("mode", string(req.Mode)))
		}
		if res.Err != nil {
			return "", toDomainError(res.Err)
		}
		return res.Val.(string), nil
	}
}

// keepArtifact records text as the session's latest download. Failures are
// logged only; the generated text is still returned to the caller.
func (s *assistantService) keepArtifact(ctx context.Context, sessionID string, kind domain.ArtifactKind, text string) {
	if err := s.store.SaveArtifact(ctx, sessionID, kind, text); err != nil {
		logger.Get().Warn("Could not keep generated text for download", zap.Error(err), zap.String("kind", string(kind)))
	}
	if _, err := s.writer.Write(ctx, sessionID, kind, text); err != nil {
		logger.Get().Warn("Could not write artifact file", zap.Error(err), zap.String("kind", string(kind)))
	}
}

func (s *assistantService) lock(sessionID string) func() {
	m := &s.locks[xxhash.Sum64String(sessionID)%sessionLockStripes]
	m.Lock()
	return m.Unlock
}

func flightKey(sessionID string, mode domain.Mode, prompt string) string {
	return sessionID + ":" + string(mode) + ":" + strconv.FormatUint(xxhash.Sum64String(prompt), 16)
}

// toDomainError maps generation failures onto the user-facing taxonomy.
func toDomainError(err error) error {
	var de *domain.DomainError
	switch {
	case errors.As(err, &de):
		return de
	case errors.Is(err, domain.ErrQuotaExceeded):
		return domain.NewQuotaExceededError(err)
	default:
		return domain.NewGenerationFailedError(err)
	}
}
