package dto

import (
	"testing"
	"time"

	"notes-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *domain.QuizSession {
	s := domain.NewQuizSession()
	s.Load([]domain.QuizItem{
		{Question: "What is 2+2?", Options: []string{"A) 3", "B) 4", "C) 5", "D) 6"}, Answer: "B"},
		{Question: "Capital of France?", Options: []string{"A) Paris", "B) Rome", "C) Oslo", "D) Bern"}, Answer: "A"},
	}, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	return s
}

func TestNewQuizResponse_HidesAnswersWhileActive(t *testing.T) {
	s := sampleSession()
	require.NoError(t, s.Select(0, "B) 4"))

	resp := NewQuizResponse(s)

	assert.Equal(t, "active", resp.State)
	assert.Equal(t, 2, resp.Total)
	assert.Nil(t, resp.Score)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "B) 4", resp.Items[0].Selected)
	for _, item := range resp.Items {
		assert.Empty(t, item.Answer)
		assert.Nil(t, item.Correct)
	}
	require.NotNil(t, resp.GeneratedAt)
}

func TestNewQuizResponse_RevealedShowsGrading(t *testing.T) {
	s := sampleSession()
	require.NoError(t, s.Select(0, "B) 4"))
	require.NoError(t, s.Select(1, "B) Rome"))
	_, err := s.Submit()
	require.NoError(t, err)

	resp := NewQuizResponse(s)

	assert.Equal(t, "revealed", resp.State)
	require.NotNil(t, resp.Score)
	assert.Equal(t, 1, *resp.Score)
	assert.Equal(t, "B", resp.Items[0].Answer)
	assert.True(t, *resp.Items[0].Correct)
	assert.Equal(t, "A", resp.Items[1].Answer)
	assert.False(t, *resp.Items[1].Correct)
}

func TestNewQuizResponse_Empty(t *testing.T) {
	resp := NewQuizResponse(domain.NewQuizSession())

	assert.Equal(t, "empty", resp.State)
	assert.Empty(t, resp.Items)
	assert.NotNil(t, resp.Items)
	assert.Nil(t, resp.GeneratedAt)
}
