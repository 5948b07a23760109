package domain

import (
	"context"
	"errors"
	"fmt"
)

// Mode selects which of the three assistant actions a request performs.
type Mode string

const (
	ModeNotes   Mode = "notes"
	ModeSummary Mode = "summary"
	ModeQuiz    Mode = "quiz"
)

// Valid reports whether m is one of the three assistant actions.
func (m Mode) Valid() bool {
	switch m {
	case ModeNotes, ModeSummary, ModeQuiz:
		return true
	}
	return false
}

// GenerationRequest is the ephemeral input of one assistant action.
// TargetCount is only meaningful for ModeQuiz.
type GenerationRequest struct {
	Mode        Mode
	SourceText  string
	TargetCount int
}

// GenerationClient is the boundary to the hosted text-generation backend.
// Implementations return ErrQuotaExceeded when the backend refuses for rate or
// quota reasons and a *GenerationError for anything else.
type GenerationClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Name identifies the backend and model, for logs.
	Name() string
}

// ErrQuotaExceeded is returned by GenerationClient implementations on 429/quota refusals.
var ErrQuotaExceeded = errors.New("generation quota exceeded")

// GenerationError is any non-quota failure of the generation backend.
type GenerationError struct {
	Backend string
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Backend, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ArtifactKind names a downloadable generated text.
type ArtifactKind string

const (
	ArtifactNotes   ArtifactKind = "notes"
	ArtifactSummary ArtifactKind = "summary"
)

func (k ArtifactKind) Valid() bool {
	return k == ArtifactNotes || k == ArtifactSummary
}

// Filename is the name offered for download and used on disk.
func (k ArtifactKind) Filename() string {
	return string(k) + ".txt"
}
