package domain

import (
	"fmt"
	"strings"
	"time"
)

// OptionCount is the fixed number of options per quiz item (A–D).
const OptionCount = 4

// QuizItem is one parsed multiple-choice question. Answer is the bare letter
// the model marked as correct; empty means the block had no Answer line.
type QuizItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer,omitempty"`
}

// HasAnswer reports whether the model supplied an answer code.
func (q QuizItem) HasAnswer() bool {
	return q.Answer != ""
}

// IsCorrect grades a selection by prefix match against the answer code:
// "B) Paris" is correct for answer "B".
func (q QuizItem) IsCorrect(selection string) bool {
	return selection != "" && q.Answer != "" && strings.HasPrefix(selection, q.Answer)
}

func (q QuizItem) hasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// QuizState is derived from a session's items and reveal flag.
type QuizState string

const (
	QuizStateEmpty    QuizState = "empty"
	QuizStateActive   QuizState = "active"
	QuizStateRevealed QuizState = "revealed"
)

// QuizSession holds one user's current quiz. It is owned by the caller and
// passed explicitly; nothing about it is global.
type QuizSession struct {
	Items       []QuizItem     `json:"items"`
	UserAnswers map[int]string `json:"user_answers"`
	Revealed    bool           `json:"revealed"`
	GeneratedAt time.Time      `json:"generated_at,omitempty"`
}

// NewQuizSession returns a session in the Empty state.
func NewQuizSession() *QuizSession {
	return &QuizSession{
		Items:       []QuizItem{},
		UserAnswers: map[int]string{},
	}
}

// Load replaces the whole session with freshly parsed items. Previous answers
// and the reveal flag never carry over.
func (s *QuizSession) Load(items []QuizItem, at time.Time) {
	if items == nil {
		items = []QuizItem{}
	}
	s.Items = items
	s.UserAnswers = map[int]string{}
	s.Revealed = false
	s.GeneratedAt = at
}

func (s *QuizSession) State() QuizState {
	switch {
	case len(s.Items) == 0:
		return QuizStateEmpty
	case s.Revealed:
		return QuizStateRevealed
	default:
		return QuizStateActive
	}
}

// Select records option as the answer for item index, overwriting any earlier
// choice. Only allowed while the quiz is Active.
func (s *QuizSession) Select(index int, option string) error {
	switch s.State() {
	case QuizStateEmpty:
		return NewNoActiveQuizError()
	case QuizStateRevealed:
		return NewQuizAlreadySubmittedError()
	}
	if index < 0 || index >= len(s.Items) {
		return NewInvalidInputError(fmt.Sprintf("question index %d is out of range (0-%d)", index, len(s.Items)-1)).
			WithContext("index", index)
	}
	if !s.Items[index].hasOption(option) {
		return NewInvalidInputError(fmt.Sprintf("%q is not an option of question %d", option, index+1)).
			WithContext("index", index)
	}
	if s.UserAnswers == nil {
		s.UserAnswers = map[int]string{}
	}
	s.UserAnswers[index] = option
	return nil
}

// Selection returns the recorded option for index, or "" when unset.
func (s *QuizSession) Selection(index int) string {
	return s.UserAnswers[index]
}

// Submit moves Active to Revealed and grades the quiz. Submitting a revealed
// quiz again returns the same result.
func (s *QuizSession) Submit() (*QuizResult, error) {
	if s.State() == QuizStateEmpty {
		return nil, NewNoActiveQuizError()
	}
	s.Revealed = true
	return s.Grade(), nil
}

// Grade scores every item against the current selections without changing state.
func (s *QuizSession) Grade() *QuizResult {
	result := &QuizResult{
		Total: len(s.Items),
		Items: make([]GradedItem, 0, len(s.Items)),
	}
	for i, item := range s.Items {
		selected := s.Selection(i)
		correct := item.IsCorrect(selected)
		if correct {
			result.Score++
		}
		result.Items = append(result.Items, GradedItem{
			Index:    i,
			Question: item.Question,
			Selected: selected,
			Answer:   item.Answer,
			Correct:  correct,
		})
	}
	return result
}

// QuizResult is the outcome of grading a session.
type QuizResult struct {
	Score int          `json:"score"`
	Total int          `json:"total"`
	Items []GradedItem `json:"items"`
}

type GradedItem struct {
	Index    int    `json:"index"`
	Question string `json:"question"`
	Selected string `json:"selected"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
}
