package dto

import (
	"time"

	"notes-assistant/internal/domain"
)

// NotesRequest represents the request body for generating notes.
type NotesRequest struct {
	Topic string `json:"topic"`
}

// SourceTextRequest carries pasted notes for summaries and quizzes.
type SourceTextRequest struct {
	Notes string `json:"notes"`
}

// SelectAnswerRequest represents one option choice.
type SelectAnswerRequest struct {
	Option string `json:"option"`
}

// TextResponse carries generated notes or a summary.
type TextResponse struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// QuizItemView is one question as shown to the user. Answer stays empty
// until the quiz is revealed.
type QuizItemView struct {
	Index    int      `json:"index"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Selected string   `json:"selected,omitempty"`
	Answer   string   `json:"answer,omitempty"`
	Correct  *bool    `json:"correct,omitempty"`
}

// QuizResponse is the user-facing view of a quiz session.
type QuizResponse struct {
	State       string         `json:"state"`
	Items       []QuizItemView `json:"items"`
	Score       *int           `json:"score,omitempty"`
	Total       int            `json:"total"`
	GeneratedAt *time.Time     `json:"generated_at,omitempty"`
}

// NewQuizResponse builds the view of session. Answers and grading appear
// only once the session is revealed.
func NewQuizResponse(session *domain.QuizSession) *QuizResponse {
	resp := &QuizResponse{
		State: string(session.State()),
		Items: make([]QuizItemView, 0, len(session.Items)),
		Total: len(session.Items),
	}
	if !session.GeneratedAt.IsZero() {
		at := session.GeneratedAt
		resp.GeneratedAt = &at
	}

	revealed := session.State() == domain.QuizStateRevealed
	for i, item := range session.Items {
		view := QuizItemView{
			Index:    i,
			Question: item.Question,
			Options:  item.Options,
			Selected: session.Selection(i),
		}
		if revealed {
			correct := item.IsCorrect(view.Selected)
			view.Answer = item.Answer
			view.Correct = &correct
		}
		resp.Items = append(resp.Items, view)
	}
	if revealed {
		score := session.Grade().Score
		resp.Score = &score
	}
	return resp
}
