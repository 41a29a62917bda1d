package practice

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lectora/internal/llm"
	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screens/shared/sharedtest"
)

// drive feeds msg to s and then every message its commands produce,
// returning the messages that s did not consume itself.
func drive(s *PracticeScreen, msg tea.Msg) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		switch m.(type) {
		case router.ReplaceScreenMsg, router.PushScreenMsg, router.PopScreenMsg:
			out = append(out, m)
			continue
		}
		_, cmd := s.Update(m)
		for _, next := range sharedtest.Run(cmd) {
			if _, ok := next.(quizReadyMsg); ok {
				queue = append(queue, next)
				continue
			}
			if _, ok := next.(submittedMsg); ok {
				queue = append(queue, next)
				continue
			}
			switch next.(type) {
			case router.ReplaceScreenMsg, router.PushScreenMsg, router.PopScreenMsg:
				out = append(out, next)
			}
		}
	}
	return out
}

func newReady(t *testing.T) (*PracticeScreen, *sharedtest.Quizzes) {
	t.Helper()
	env, acc, qz, _ := sharedtest.NewEnv()
	sharedtest.SignIn(env, acc, "ana@example.com")
	s := New(env, reading.LevelBasic)
	for _, m := range sharedtest.Run(s.Init()) {
		drive(s, m)
	}
	require.Equal(t, phaseAnswering, s.phase)
	return s, qz
}

func TestLoadingView(t *testing.T) {
	env, acc, _, _ := sharedtest.NewEnv()
	sharedtest.SignIn(env, acc, "ana@example.com")
	s := New(env, reading.LevelAdvanced)
	s.Init()
	assert.Contains(t, s.View(80, 20), "Generando")
	assert.Equal(t, "Práctica · Avanzado", s.Title())
}

func TestQuizLoadsPassageAndQuestions(t *testing.T) {
	s, qz := newReady(t)
	assert.Equal(t, 1, qz.Starts)
	require.Len(t, s.choices, 5)

	view := s.View(100, 30)
	assert.Contains(t, view, "El faro")
	assert.Contains(t, view, "1. Pregunta 1")
	assert.Contains(t, view, "Respondidas")
	assert.Contains(t, view, " 0/5")
}

func TestAnsweringAdvancesAndSubmits(t *testing.T) {
	s, qz := newReady(t)

	// Answer key is A, B, C, D, A; answer the last one wrong.
	for _, k := range []rune{'a', 'b', 'c', 'd', 'b'} {
		drive(s, sharedtest.Key(k))
	}
	assert.Equal(t, len(s.choices), s.focus, "focus moves to the submit button")
	assert.Contains(t, s.View(100, 30), "Entregar")

	out := drive(s, sharedtest.Key(tea.KeyEnter))
	require.Len(t, out, 1)
	rep, ok := out[0].(router.ReplaceScreenMsg)
	require.True(t, ok, "got %T", out[0])
	assert.Equal(t, "Resultado", rep.Screen.Title())

	require.Len(t, qz.Submitted, 1)
	assert.Equal(t, []string{"A0", "B1", "C2", "D3", "B4"}, qz.Submitted[0])
}

func TestSubmitRequiresAllAnswers(t *testing.T) {
	s, qz := newReady(t)
	drive(s, sharedtest.Key('a'))
	drive(s, sharedtest.Key(tea.KeyTab))
	drive(s, sharedtest.Key(tea.KeyTab))
	drive(s, sharedtest.Key(tea.KeyTab))
	drive(s, sharedtest.Key(tea.KeyTab))
	require.Equal(t, len(s.choices), s.focus)

	out := drive(s, sharedtest.Key(tea.KeyEnter))
	assert.Empty(t, out)
	assert.Empty(t, qz.Submitted)
	assert.Contains(t, s.View(100, 30), "Faltan 4")
}

func TestFocusWrapsBackwards(t *testing.T) {
	s, _ := newReady(t)
	drive(s, tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	assert.Equal(t, len(s.choices), s.focus)
}

func TestGenerationFailureAndRetry(t *testing.T) {
	env, acc, qz, _ := sharedtest.NewEnv()
	sharedtest.SignIn(env, acc, "ana@example.com")
	qz.StartErr = errors.New("provider down")

	s := New(env, reading.LevelBasic)
	for _, m := range sharedtest.Run(s.Init()) {
		drive(s, m)
	}
	require.Equal(t, phaseFailed, s.phase)
	assert.Contains(t, s.View(80, 20), "provider down")

	qz.StartErr = nil
	drive(s, sharedtest.Key('r'))
	assert.Equal(t, phaseAnswering, s.phase)
	assert.Equal(t, 2, qz.Starts)
}

func TestStartErrorMessages(t *testing.T) {
	assert.Contains(t, startError(&llm.ErrProviderUnavailable{}), "no está disponible")
	assert.Contains(t, startError(&llm.ErrRateLimit{Err: errors.New("429")}), "Inténtalo de nuevo")
	assert.Equal(t, "No se pudo generar el texto: boom", startError(errors.New("boom")))
}

func TestSubmitFailureKeepsAnswers(t *testing.T) {
	s, qz := newReady(t)
	qz.SubmitErr = errors.New("db locked")
	for _, k := range []rune{'a', 'a', 'a', 'a', 'a'} {
		drive(s, sharedtest.Key(k))
	}
	out := drive(s, sharedtest.Key(tea.KeyEnter))
	assert.Empty(t, out)
	assert.Equal(t, phaseAnswering, s.phase)
	assert.Equal(t, "A0", s.choices[0].Chosen())
	assert.Contains(t, s.View(100, 30), "db locked")
}
