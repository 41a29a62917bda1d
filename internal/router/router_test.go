package router

import (
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectora/internal/screen"
)

type fakeScreen struct {
	name  string
	inits int
	seen  []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd { s.inits++; return nil }
func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	return s, nil
}
func (s *fakeScreen) View(w, h int) string { return s.name }
func (s *fakeScreen) Title() string        { return s.name }

func names(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func expectStack(t *testing.T, r *Router, want ...string) {
	t.Helper()
	if got := names(r); !slices.Equal(got, want) {
		t.Fatalf("stack = %v, want %v", got, want)
	}
}

func TestNavigationMessages(t *testing.T) {
	home := &fakeScreen{name: "home"}
	level := &fakeScreen{name: "level"}
	practice := &fakeScreen{name: "practice"}
	result := &fakeScreen{name: "result"}

	r := New(home)
	r.Update(Go(level)())
	r.Update(Go(practice)())
	expectStack(t, r, "home", "level", "practice")

	r.Update(Swap(result)())
	expectStack(t, r, "home", "level", "result")
	if result.inits != 1 {
		t.Errorf("swapped screen Init ran %d times, want 1", result.inits)
	}

	r.Update(Back()())
	expectStack(t, r, "home", "level")
	if got := r.View(80, 24); got != "level" {
		t.Errorf("View = %q, want %q", got, "level")
	}

	r.Update(Home(nil)())
	expectStack(t, r, "home")
	if home.inits != 0 {
		t.Error("unwinding must not re-init the first screen")
	}
}

func TestFirstScreenIsNeverPopped(t *testing.T) {
	r := New(&fakeScreen{name: "welcome"})
	r.Pop()
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "welcome" {
		t.Errorf("expected active 'welcome', got %q", r.Active().Title())
	}
}

func TestHomeWithReplacement(t *testing.T) {
	r := New(&fakeScreen{name: "home"})
	r.Push(&fakeScreen{name: "admin"})
	r.Push(&fakeScreen{name: "user form"})

	login := &fakeScreen{name: "login"}
	r.Update(PopToRootMsg{Screen: login})
	expectStack(t, r, "login")
	if login.inits != 1 {
		t.Errorf("replacement Init ran %d times, want 1", login.inits)
	}
}

func TestOtherMessagesReachActiveScreen(t *testing.T) {
	bottom := &fakeScreen{name: "home"}
	top := &fakeScreen{name: "report"}
	r := New(bottom)
	r.Push(top)

	type ping struct{}
	r.Update(ping{})
	if len(top.seen) != 1 {
		t.Errorf("active screen saw %d messages, want 1", len(top.seen))
	}
	if len(bottom.seen) != 0 {
		t.Errorf("covered screen saw %d messages, want 0", len(bottom.seen))
	}
}

func TestEmptyRouter(t *testing.T) {
	r := &Router{}
	if r.Active() != nil {
		t.Error("expected no active screen")
	}
	if got := r.View(10, 10); got != "" {
		t.Errorf("View = %q, want empty", got)
	}
	if cmd := r.Update(struct{}{}); cmd != nil {
		t.Error("expected nil cmd")
	}

	r.Replace(&fakeScreen{name: "only"})
	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
}
