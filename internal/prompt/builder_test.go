package prompt

import (
	"strings"
	"testing"

	"notes-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetCount(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 10},
		{500, 10},
		{799, 10},
		{880, 11},
		{1000, 12},
		{1600, 20},
		{1679, 20},
		{2000, 20},
		{100000, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TargetCount(tt.words), "TargetCount(%d)", tt.words)
	}
}

func TestTargetCount_MatchesClampFormula(t *testing.T) {
	for w := 0; w <= 2500; w++ {
		want := w / 80
		if want < 10 {
			want = 10
		}
		if want > 20 {
			want = 20
		}
		require.Equal(t, want, TargetCount(w), "w=%d", w)
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   \n\t"))
	assert.Equal(t, 4, WordCount("cells are\n the  units"))
}

func TestNotesAndSummary(t *testing.T) {
	assert.Equal(t, "Write detailed, structured notes on photosynthesis.", Notes("photosynthesis"))
	assert.Equal(t, "Summarize the following notes:\n\nmitochondria make ATP", Summary("mitochondria make ATP"))
}

func TestQuiz_SpecifiesCountAndGrammar(t *testing.T) {
	p := Quiz("some notes", 12)

	assert.Contains(t, p, "generate 12 multiple-choice questions")
	assert.Contains(t, p, "4 options (A, B, C, D)")
	assert.Contains(t, p, "'Answer: X'")
	assert.Contains(t, p, "Q1. Question text?\nA) ...\nB) ...\nC) ...\nD) ...\nAnswer: B")
	assert.True(t, strings.HasSuffix(p, "Notes:\nsome notes"))
}

func TestBuild(t *testing.T) {
	notes := strings.Repeat("word ", 1000)
	req := NewRequest(domain.ModeQuiz, notes)
	assert.Equal(t, 12, req.TargetCount)

	p, err := Build(req)
	require.NoError(t, err)
	assert.Contains(t, p, "generate 12 multiple-choice")

	p, err = Build(NewRequest(domain.ModeNotes, "gravity"))
	require.NoError(t, err)
	assert.Equal(t, Notes("gravity"), p)

	assert.Zero(t, NewRequest(domain.ModeSummary, notes).TargetCount)

	_, err = Build(domain.GenerationRequest{Mode: "poem"})
	assert.Error(t, err)
}
