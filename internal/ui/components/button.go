package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectora/internal/ui/theme"
)

// Button fires OnPress on enter or space while it has focus.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Active || b.OnPress == nil {
		return b, nil
	}
	switch k.String() {
	case "enter", "space":
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	if !b.Active {
		return theme.ButtonInactive.Render("  " + b.Label)
	}
	return theme.ButtonActive.Render("▸ " + b.Label)
}
