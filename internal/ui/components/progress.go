package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/ui/theme"
)

// Meter draws Done out of Total as a bar followed by the count.
type Meter struct {
	Label string
	Done  int
	Total int
	Width int

	// Graded colors the bar by how good the ratio is instead of using
	// the neutral fill.
	Graded bool
}

// NewMeter creates a neutral meter.
func NewMeter(label string, done, total, width int) Meter {
	return Meter{Label: label, Done: done, Total: total, Width: width}
}

// Ratio returns Done/Total clamped to [0, 1].
func (m Meter) Ratio() float64 {
	if m.Total <= 0 {
		return 0
	}
	return min(max(float64(m.Done)/float64(m.Total), 0), 1)
}

func (m Meter) fill() lipgloss.Style {
	if !m.Graded {
		return theme.ProgressFilled
	}
	switch r := m.Ratio(); {
	case r >= 1:
		return theme.ProgressFilled.Foreground(theme.Success)
	case r >= 0.6:
		return theme.ProgressFilled.Foreground(theme.Accent)
	default:
		return theme.ProgressFilled.Foreground(theme.Error)
	}
}

// View renders the meter.
func (m Meter) View() string {
	var b strings.Builder
	if m.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label))
		b.WriteString("  ")
	}
	count := fmt.Sprintf(" %d/%d", m.Done, m.Total)

	cells := max(m.Width-lipgloss.Width(b.String())-len(count), 4)
	filled := int(float64(cells) * m.Ratio())

	b.WriteString(m.fill().Render(strings.Repeat("━", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat("─", cells-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(count))
	return b.String()
}
