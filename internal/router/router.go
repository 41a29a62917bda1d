// Package router keeps the TUI's screen stack. Screens never touch the
// stack directly; they return one of the navigation commands below and the
// app model feeds the resulting message back through Update.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectora/internal/screen"
)

// PushScreenMsg opens Screen on top of the current one.
type PushScreenMsg struct{ Screen screen.Screen }

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the current screen for Screen.
type ReplaceScreenMsg struct{ Screen screen.Screen }

// PopToRootMsg closes everything above the first screen. A non-nil Screen
// then takes the first screen's place.
type PopToRootMsg struct{ Screen screen.Screen }

// Go returns a command that pushes s.
func Go(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Back returns a command that pops the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return PopScreenMsg{} }
}

// Swap returns a command that replaces the current screen with s.
func Swap(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Home returns a command that unwinds to the first screen, replacing it
// with s when s is not nil.
func Home(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PopToRootMsg{Screen: s} }
}

// Router is a stack of screens. The first screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(first screen.Screen) *Router {
	return &Router{stack: []screen.Screen{first}}
}

func (r *Router) top() int { return len(r.stack) - 1 }

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the current screen unless it is the first one.
func (r *Router) Pop() tea.Cmd {
	if r.top() > 0 {
		r.stack[r.top()] = nil
		r.stack = r.stack[:r.top()]
	}
	return nil
}

// Replace swaps the current screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		r.stack = append(r.stack, s)
	} else {
		r.stack[r.top()] = s
	}
	return s.Init()
}

// PopToRoot keeps only the first screen, then replaces it with s if given.
func (r *Router) PopToRoot(s screen.Screen) tea.Cmd {
	for r.top() > 0 {
		r.Pop()
	}
	if s == nil {
		return nil
	}
	return r.Replace(s)
}

// Active is the screen currently shown, or nil for an empty stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case PushScreenMsg:
		return r.Push(m.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(m.Screen)
	case PopToRootMsg:
		return r.PopToRoot(m.Screen)
	}

	cur := r.Active()
	if cur == nil {
		return nil
	}
	next, cmd := cur.Update(msg)
	r.stack[r.top()] = next
	return cmd
}

// View renders the active screen into a width x height area.
func (r *Router) View(width, height int) string {
	if cur := r.Active(); cur != nil {
		return cur.View(width, height)
	}
	return ""
}
