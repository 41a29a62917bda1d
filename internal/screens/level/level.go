// Package level lets a student pick the difficulty of the next quiz.
package level

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screen"
	"github.com/abhisek/lectora/internal/screens/practice"
	"github.com/abhisek/lectora/internal/screens/shared"
	"github.com/abhisek/lectora/internal/ui/components"
	"github.com/abhisek/lectora/internal/ui/layout"
	"github.com/abhisek/lectora/internal/ui/theme"
)

var blurbs = map[reading.Level]string{
	reading.LevelBasic:        "Textos cortos y vocabulario cotidiano",
	reading.LevelIntermediate: "Párrafos más largos e ideas implícitas",
	reading.LevelAdvanced:     "Argumentos, matices y léxico académico",
}

// LevelScreen is a menu of reading levels.
type LevelScreen struct {
	env  *shared.Env
	menu components.Menu
}

var _ screen.Screen = (*LevelScreen)(nil)
var _ screen.KeyHintProvider = (*LevelScreen)(nil)

// New creates a LevelScreen.
func New(env *shared.Env) *LevelScreen {
	items := make([]components.MenuItem, len(reading.AllLevels))
	for i, l := range reading.AllLevels {
		items[i] = components.MenuItem{
			Label: l.Label(env.Lang),
			Action: func() tea.Cmd {
				return router.Go(practice.New(env, l))
			},
		}
	}
	return &LevelScreen{env: env, menu: components.NewMenu(items)}
}

func (s *LevelScreen) Init() tea.Cmd {
	return nil
}

func (s *LevelScreen) Title() string {
	return "Elige un nivel"
}

func (s *LevelScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Comenzar"},
		{Key: "Esc", Description: "Volver"},
	}
}

// Selected returns the highlighted level.
func (s *LevelScreen) Selected() reading.Level {
	return reading.AllLevels[s.menu.Selected]
}

func (s *LevelScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LevelScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 50)
	blurb := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(blurbs[s.Selected()])
	return components.Center(components.Card(s.menu.View(), cw)+"\n\n"+blurb, width, height)
}
