package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/ui/theme"
)

// Letters label options in order.
var Letters = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector. The choice can change until
// Reveal locks it and marks the correct option.
type MultiChoice struct {
	Question     string
	Options      []string
	Selected     int
	ChosenIndex  int
	CorrectIndex int
	Focused      bool
	locked       bool
}

// NewMultiChoice creates a new multiple-choice component with nothing chosen.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.locked {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter", "space", " ":
		m.ChosenIndex = m.Selected
	default:
		if len(key) == 1 {
			idx := strings.Index("abcdef", strings.ToLower(key))
			if idx >= 0 && idx < len(m.Options) {
				m.Selected = idx
				m.ChosenIndex = idx
			}
		}
	}

	return m, nil
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.ChosenIndex >= 0 && m.ChosenIndex < len(m.Options)
}

// Chosen returns the chosen option's text, or "".
func (m MultiChoice) Chosen() string {
	if !m.Answered() {
		return ""
	}
	return m.Options[m.ChosenIndex]
}

// Reveal locks the component and marks the correct option.
func (m *MultiChoice) Reveal(correctIndex int) {
	m.locked = true
	m.CorrectIndex = correctIndex
}

// IsCorrect returns true if the revealed answer matches the choice.
func (m MultiChoice) IsCorrect() bool {
	return m.locked && m.Answered() && m.ChosenIndex == m.CorrectIndex
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	qs := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if !m.Focused && !m.locked {
		qs = qs.Foreground(theme.TextDim)
	}
	s := qs.Render(m.Question) + "\n"

	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(Letters) {
			label = Letters[i]
		}

		mark := "( )"
		if i == m.ChosenIndex {
			mark = "(•)"
		}
		prefix := "  "
		if m.Focused && i == m.Selected && !m.locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.locked && i == m.CorrectIndex:
			style = style.Foreground(theme.Success).Bold(true)
		case m.locked && i == m.ChosenIndex:
			style = style.Foreground(theme.Error).Bold(true)
		case m.locked:
			style = style.Foreground(theme.TextDim)
		case m.Focused && i == m.Selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case !m.Focused:
			style = style.Foreground(theme.TextDim)
		}
		s += style.Render(line) + "\n"
	}

	return s
}
