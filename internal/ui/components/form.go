package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Form groups text inputs. Tab and arrow keys move focus; Enter on the
// last field reports Submitted.
type Form struct {
	Fields    []TextInput
	focus     int
	Submitted bool
}

// NewForm creates a form and focuses its first field.
func NewForm(fields ...TextInput) Form {
	f := Form{Fields: fields}
	if len(f.Fields) > 0 {
		f.Fields[0].Focus()
	}
	return f
}

// Init starts the cursor on the focused field.
func (f *Form) Init() tea.Cmd {
	if len(f.Fields) == 0 {
		return nil
	}
	return f.Fields[f.focus].Focus()
}

// FocusIndex returns the focused field index.
func (f Form) FocusIndex() int {
	return f.focus
}

// Update routes keys to the focused field. Submitted is reset on each call.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	f.Submitted = false
	if len(f.Fields) == 0 {
		return f, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return f, f.move(1)
		case "shift+tab", "up":
			return f, f.move(-1)
		case "enter":
			if f.focus == len(f.Fields)-1 {
				f.Submitted = true
				return f, nil
			}
			return f, f.move(1)
		}
	}
	var cmd tea.Cmd
	f.Fields[f.focus], cmd = f.Fields[f.focus].Update(msg)
	return f, cmd
}

func (f *Form) move(delta int) tea.Cmd {
	f.Fields[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.Fields)) % len(f.Fields)
	return f.Fields[f.focus].Focus()
}

// Value returns field i's value.
func (f Form) Value(i int) string {
	if i < 0 || i >= len(f.Fields) {
		return ""
	}
	return f.Fields[i].Value()
}

// Reset clears every field and focuses the first.
func (f *Form) Reset() tea.Cmd {
	for i := range f.Fields {
		f.Fields[i].Reset()
		f.Fields[i].Blur()
	}
	f.focus = 0
	f.Submitted = false
	return f.Init()
}

// View renders the fields one under another.
func (f Form) View() string {
	parts := make([]string, len(f.Fields))
	for i, fld := range f.Fields {
		parts[i] = fld.View()
	}
	return strings.Join(parts, "\n\n")
}
