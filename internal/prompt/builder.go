// Package prompt builds the instruction strings sent to the generation backend.
package prompt

import (
	"fmt"
	"strings"

	"notes-assistant/internal/domain"
)

const (
	MinQuestions     = 10
	MaxQuestions     = 20
	wordsPerQuestion = 80
)

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// TargetCount is the number of questions to request for a notes blob:
// one per 80 words, clamped to [10, 20].
func TargetCount(wordCount int) int {
	return max(MinQuestions, min(MaxQuestions, wordCount/wordsPerQuestion))
}

// NewRequest fills in the derived fields of a GenerationRequest.
func NewRequest(mode domain.Mode, sourceText string) domain.GenerationRequest {
	req := domain.GenerationRequest{Mode: mode, SourceText: sourceText}
	if mode == domain.ModeQuiz {
		req.TargetCount = TargetCount(WordCount(sourceText))
	}
	return req
}

// Build returns the exact prompt for req.
func Build(req domain.GenerationRequest) (string, error) {
	if !req.Mode.Valid() {
		return "", fmt.Errorf("unknown generation mode %q", req.Mode)
	}
	switch req.Mode {
	case domain.ModeNotes:
		return Notes(req.SourceText), nil
	case domain.ModeSummary:
		return Summary(req.SourceText), nil
	}
	count := req.TargetCount
	if count == 0 {
		count = TargetCount(WordCount(req.SourceText))
	}
	return Quiz(req.SourceText, count), nil
}

func Notes(topic string) string {
	return fmt.Sprintf("Write detailed, structured notes on %s.", topic)
}

func Summary(notes string) string {
	return "Summarize the following notes:\n\n" + notes
}

// Quiz asks for count MCQs in the grammar mcq.Parse understands.
func Quiz(notes string, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From these notes, generate %d multiple-choice questions (MCQs). ", count)
	b.WriteString("Each question should have 4 options (A, B, C, D). ")
	b.WriteString("Clearly mark the correct answer with 'Answer: X'. ")
	b.WriteString("Format exactly like:\n\n")
	b.WriteString("Q1. Question text?\nA) ...\nB) ...\nC) ...\nD) ...\nAnswer: B\n\n")
	b.WriteString("Notes:\n")
	b.WriteString(notes)
	return b.String()
}
