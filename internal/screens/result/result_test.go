package result

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lectora/internal/quiz"
	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screens/shared/sharedtest"
)

func newResult(t *testing.T, lang string, answers []string) *ResultScreen {
	t.Helper()
	env, _, qz, _ := sharedtest.NewEnv()
	env.Lang = lang
	q, err := qz.Start(context.Background(), "ana@example.com", reading.LevelBasic)
	require.NoError(t, err)
	out, err := qz.Submit(context.Background(), q.ID, "ana@example.com", answers)
	require.NoError(t, err)
	return New(env, q, out)
}

func outcomeFor(s *ResultScreen) *quiz.Outcome { return s.outcome }

func TestHeadlinePerfect(t *testing.T) {
	s := newResult(t, "es", []string{"A0", "B1", "C2", "D3", "A4"})
	score, fb := s.Headline()
	assert.Equal(t, "5/5", score)
	assert.Equal(t, "¡Bien hecho!", fb)
	assert.True(t, outcomeFor(s).Result.Perfect())
}

func TestHeadlineRetryEnglish(t *testing.T) {
	s := newResult(t, "en", []string{"A0", "B1", "C2", "D3", "B4"})
	score, fb := s.Headline()
	assert.Equal(t, "4/5", score)
	assert.Equal(t, "Try again.", fb)
}

func TestReviewShowsKeyAndExplanations(t *testing.T) {
	s := newResult(t, "es", []string{"A0", "B1", "C2", "D3", ""})
	view := s.View(100, 60)
	assert.Contains(t, view, "Puntaje: 4/5")
	assert.Contains(t, view, "Intenta de nuevo.")
	assert.Contains(t, view, "(sin respuesta)")
	assert.Contains(t, view, "Correcta: ")
	assert.Contains(t, view, "Porque 5")
}

func TestEnterPopsAndHGoesHome(t *testing.T) {
	s := newResult(t, "es", []string{"A0"})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopToRootMsg{}, cmd())
}

func TestKeyHints(t *testing.T) {
	s := newResult(t, "es", nil)
	assert.Len(t, s.KeyHints(), 3)
}
