package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screen"
	"github.com/abhisek/lectora/internal/screens/admin"
	"github.com/abhisek/lectora/internal/screens/level"
	"github.com/abhisek/lectora/internal/screens/login"
	"github.com/abhisek/lectora/internal/screens/report"
	"github.com/abhisek/lectora/internal/screens/shared"
	"github.com/abhisek/lectora/internal/ui/components"
	"github.com/abhisek/lectora/internal/ui/layout"
	"github.com/abhisek/lectora/internal/ui/theme"
)

const logoutIndex = 3

// HomeScreen is the main menu.
type HomeScreen struct {
	env  *shared.Env
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *shared.Env) *HomeScreen {
	h := &HomeScreen{env: env}

	items := []components.MenuItem{
		{Label: "Practicar", Action: func() tea.Cmd {
			return h.open(false, func() screen.Screen { return level.New(env) })
		}},
		{Label: "Administración", Action: func() tea.Cmd {
			return h.open(true, func() screen.Screen { return admin.New(env) })
		}},
		{Label: "Progreso", Action: func() tea.Cmd {
			return h.open(false, func() screen.Screen { return report.New(env) })
		}},
		{Label: "Cerrar sesión", Action: func() tea.Cmd {
			env.User = nil
			h.sync()
			return nil
		}},
		{Label: "Salir", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	h.sync()
	return h
}

// open pushes next, asking for credentials first when nobody (or, for
// admin screens, no admin) is signed in.
func (h *HomeScreen) open(adminOnly bool, next func() screen.Screen) tea.Cmd {
	if h.env.SignedIn() && (!adminOnly || h.env.User.IsAdmin()) {
		return router.Go(next())
	}
	return router.Go(login.New(h.env, adminOnly, next))
}

func (h *HomeScreen) sync() {
	h.menu.Items[logoutIndex].Disabled = !h.env.SignedIn()
	if h.menu.Items[h.menu.Selected].Disabled {
		h.menu.Selected = 0
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	h.sync()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Inicio"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.sync()
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	h.sync()
	cw := min(components.ContentWidth(width), 44)

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render("L E C T O R A"))
	sections = append(sections, theme.Subtitle.Width(cw).Render("Comprensión lectora con textos nuevos en cada intento"))

	status := "Sin sesión iniciada"
	if h.env.SignedIn() {
		status = "Sesión: " + h.env.User.Email
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(status))

	sections = append(sections, components.Card(h.menu.View(), cw))

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}
