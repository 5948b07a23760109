package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"notes-assistant/internal/domain"
)

const (
	// MaxTopicLength bounds the topic of a notes request, in characters.
	MaxTopicLength = 500
	// MaxOptionLength bounds a submitted option, in characters.
	MaxOptionLength = 2000
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateTopic rejects blank or oversized topics.
func (v *Validator) ValidateTopic(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return domain.NewEmptyInputError("a topic")
	}
	if n := utf8.RuneCountInString(topic); n > MaxTopicLength {
		return domain.NewInvalidInputError(fmt.Sprintf("topic is too long (%d characters, max %d)", n, MaxTopicLength)).
			WithContext("field", "topic")
	}
	return nil
}

// ValidateAnswerIndex parses a zero-based question index from a path parameter.
// Range against the current quiz is checked by the quiz itself.
func (v *Validator) ValidateAnswerIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, domain.NewInvalidInputError(fmt.Sprintf("question index must be a non-negative integer, got %q", raw)).
			WithContext("field", "index")
	}
	return index, nil
}

// ValidateOption rejects blank or oversized option selections.
func (v *Validator) ValidateOption(option string) error {
	if strings.TrimSpace(option) == "" {
		return domain.NewInvalidInputError("option is required").WithContext("field", "option")
	}
	if utf8.RuneCountInString(option) > MaxOptionLength {
		return domain.NewInvalidInputError("option is too long").WithContext("field", "option")
	}
	return nil
}

// ValidateArtifactKind accepts "notes" and "summary", with or without a ".txt" suffix.
func (v *Validator) ValidateArtifactKind(raw string) (domain.ArtifactKind, error) {
	kind := domain.ArtifactKind(strings.TrimSuffix(strings.ToLower(raw), ".txt"))
	if !kind.Valid() {
		return "", domain.NewInvalidInputError(fmt.Sprintf("unknown download %q", raw)).WithContext("kind", raw)
	}
	return kind, nil
}
