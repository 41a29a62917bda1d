package welcome

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screen"
)

type homeStub struct{}

func (homeStub) Init() tea.Cmd                           { return nil }
func (h homeStub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return h, nil }
func (homeStub) View(int, int) string                    { return "home" }
func (homeStub) Title() string                           { return "Inicio" }

func newWelcome() (*WelcomeScreen, *int) {
	built := 0
	return New(func() screen.Screen {
		built++
		return homeStub{}
	}), &built
}

func advance(w *WelcomeScreen, ticks int) {
	for range ticks {
		w.Update(tickMsg(time.Now()))
	}
}

func TestAnimationStages(t *testing.T) {
	w, _ := newWelcome()
	assert.NotContains(t, w.View(80, 24), Tagline)

	advance(w, 5)
	assert.Equal(t, showMarks, w.elapsed)
	assert.NotContains(t, w.View(80, 24), Tagline)

	advance(w, 10)
	assert.Equal(t, showBanner, w.elapsed)
	view := w.View(80, 24)
	assert.Contains(t, view, Tagline)
	assert.Contains(t, view, prompt)
}

func TestClockStopsAtSettle(t *testing.T) {
	w, built := newWelcome()
	advance(w, 100)
	assert.Equal(t, settle, w.elapsed)
	assert.Zero(t, *built, "the splash waits for a key")
}

func TestAnyKeyReplacesScreenOnce(t *testing.T) {
	for _, ticks := range []int{0, 3, 60} {
		w, built := newWelcome()
		advance(w, ticks)

		_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
		require.NotNil(t, cmd)
		msg, ok := cmd().(router.ReplaceScreenMsg)
		require.True(t, ok)
		assert.Equal(t, "Inicio", msg.Screen.Title())

		_, cmd = w.Update(tea.KeyPressMsg{Code: 'x'})
		assert.Nil(t, cmd)
		assert.Equal(t, 1, *built)
	}
}

func TestBannerFallsBackWhenNarrow(t *testing.T) {
	assert.Contains(t, RenderBanner(40), bannerCompact)
	assert.NotContains(t, RenderBanner(bannerWidth), bannerCompact)
}
