// Package welcome is the splash screen shown when the TUI starts.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screen"
	"github.com/abhisek/lectora/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond

	// The book is drawn first, marks appear beside it at showMarks, and
	// the banner with the prompt at showBanner. The clock stops at settle.
	showMarks  = 500 * time.Millisecond
	showBanner = 1500 * time.Millisecond
	settle     = 4500 * time.Millisecond
)

const bookArt = `   __________   __________
  /  ~~~~~~  \ /  ~~~~~~  \
 |  ~~~~ ~~~  |  ~~~ ~~~~  |
 |  ~~ ~~~~~  |  ~~~~~ ~~  |
 |  ~~~~~ ~~  |  ~~ ~~~~~  |
 |  ~~~ ~~~~  |  ~~~~ ~~~  |
 |____________|____________|`

var marks = []string{"✎", "✦"}

// Tagline is shown under the banner.
const Tagline = "Leer para comprender"

const prompt = "pulsa cualquier tecla para continuar"

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// WelcomeScreen animates until a key is pressed, then replaces itself
// with the screen built by next. It never moves on by itself.
type WelcomeScreen struct {
	next    func() screen.Screen
	elapsed time.Duration
	frame   int
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		w.frame++
		w.elapsed = min(w.elapsed+tickInterval, settle)
		return w, tick()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		return w, router.Swap(w.next())
	}
	return w, nil
}

// decorate puts alternating marks on the first, middle and last lines of
// the book.
func (w *WelcomeScreen) decorate(book string) string {
	a := lipgloss.NewStyle().Foreground(theme.Accent).Render(marks[w.frame%len(marks)])
	b := lipgloss.NewStyle().Foreground(theme.Secondary).Render(marks[w.frame%len(marks)])
	lines := strings.Split(book, "\n")
	for i, pair := range map[int][2]string{0: {a, b}, 3: {b, a}, 6: {a, b}} {
		if i < len(lines) {
			lines[i] = pair[0] + "  " + lines[i] + "  " + pair[1]
		}
	}
	return strings.Join(lines, "\n")
}

func (w *WelcomeScreen) View(width, height int) string {
	book := lipgloss.NewStyle().Foreground(theme.Secondary).Render(bookArt)
	if w.elapsed >= showMarks {
		book = w.decorate(book)
	}

	parts := []string{book}
	if w.elapsed >= showBanner {
		parts = append(parts,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(Tagline),
			"",
			theme.Hint.Render(prompt),
		)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}
