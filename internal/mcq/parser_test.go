package mcq

import (
	"testing"

	"notes-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleBlock(t *testing.T) {
	items := Parse("Q1. What is 2+2?\nA) 3\nB) 4\nC) 5\nD) 6\nAnswer: B")

	require.Len(t, items, 1)
	assert.Equal(t, domain.QuizItem{
		Question: "What is 2+2?",
		Options:  []string{"A) 3", "B) 4", "C) 5", "D) 6"},
		Answer:   "B",
	}, items[0])
}

func TestParse_DropsPreamble(t *testing.T) {
	raw := "Sure! Here are your questions about Q-learning.\n\n" +
		"Q1. What is 2+2?\nA) 3\nB) 4\nC) 5\nD) 6\nAnswer: B\n\n" +
		"Q2. Capital of France?\nA) Berlin\nB) Paris\nC) Rome\nD) Madrid\nAnswer: B\n"

	items := Parse(raw)
	require.Len(t, items, 2)
	assert.Equal(t, "What is 2+2?", items[0].Question)
	assert.Equal(t, "Capital of France?", items[1].Question)
	for _, item := range items {
		assert.NotContains(t, item.Question, "Sure!")
		for _, opt := range item.Options {
			assert.NotContains(t, opt, "Sure!")
		}
	}
}

func TestParse_ShortBlockDropped(t *testing.T) {
	raw := "Q1. Only five lines?\nA) 1\nB) 2\nC) 3\nAnswer: A\n" +
		"Q2. Six lines\nA) 1\nB) 2\nC) 3\nD) 4\nAnswer: D\n"

	items := Parse(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "Six lines", items[0].Question)
	assert.Equal(t, "D", items[0].Answer)
}

func TestParse_MissingAnswerKeepsItem(t *testing.T) {
	items := Parse("Q1. Pick one\nA) x\nB) y\nC) z\nD) w\nExplanation: none given")

	require.Len(t, items, 1)
	assert.Empty(t, items[0].Answer)
	assert.False(t, items[0].HasAnswer())
	assert.False(t, items[0].IsCorrect("A) x"))
}

func TestParse_AnswerFoundAnywhere(t *testing.T) {
	items := Parse("Q7. Odd layout\nAnswer:  C \nA) x\nB) y\nC) z\nD) w")

	require.Len(t, items, 1)
	assert.Equal(t, "C", items[0].Answer)
	// Positional slicing: the Answer line lands among the options.
	assert.Equal(t, []string{"Answer:  C ", "A) x", "B) y", "C) z"}, items[0].Options)
}

func TestParse_AnswerSplitsOnFirstColon(t *testing.T) {
	items := Parse("Q1. Time?\nA) 1\nB) 2\nC) 3\nD) 4\nAnswer: B: 12:30")
	require.Len(t, items, 1)
	assert.Equal(t, "B: 12:30", items[0].Answer)
}

func TestParse_BlankLinesAndCRLF(t *testing.T) {
	raw := "Q1. Spaced out\r\n\r\nA) 1\r\nB) 2\r\n   \r\nC) 3\r\nD) 4\r\nAnswer: A\r\n"

	items := Parse(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "Spaced out", items[0].Question)
	assert.Equal(t, []string{"A) 1", "B) 2", "C) 3", "D) 4"}, items[0].Options)
	assert.Equal(t, "A", items[0].Answer)
}

func TestParse_MultiDigitMarkers(t *testing.T) {
	raw := "Q11. Eleven\nA) a\nB) b\nC) c\nD) d\nAnswer: A\nQ12. Twelve\nA) a\nB) b\nC) c\nD) d\nAnswer: D"

	items := Parse(raw)
	require.Len(t, items, 2)
	assert.Equal(t, "Eleven", items[0].Question)
	assert.Equal(t, "D", items[1].Answer)
}

func TestParse_Degenerate(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("no questions here"))
	assert.Empty(t, Parse("Q1."))
	assert.NotNil(t, Parse(""))
}

func TestParse_OneBadBlockDoesNotAbortBatch(t *testing.T) {
	raw := "Q1. Good\nA) a\nB) b\nC) c\nD) d\nAnswer: A\n" +
		"Q2. Broken\nA) a\n" +
		"Q3. Also good\nA) a\nB) b\nC) c\nD) d\nAnswer: C\n"

	items := Parse(raw)
	require.Len(t, items, 2)
	assert.Equal(t, "Good", items[0].Question)
	assert.Equal(t, "Also good", items[1].Question)
}

func TestParse_Idempotent(t *testing.T) {
	raw := "intro\nQ1. What is 2+2?\nA) 3\nB) 4\nC) 5\nD) 6\nAnswer: B\nQ2. x\nA) 1\nB) 2\nC) 3\nD) 4\n"
	assert.Equal(t, Parse(raw), Parse(raw))
}
