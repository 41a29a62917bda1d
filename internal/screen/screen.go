// Package screen defines what the router stacks: one full-window view of
// the tutor such as login, level select or a running quiz.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectora/internal/ui/layout"
)

// Screen is one routable view. The app draws the header and footer; a
// screen only fills the space between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders into a width x height body.
	View(width, height int) string

	// Title is shown in the header, e.g. "Práctica · Básico".
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
