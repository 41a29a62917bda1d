// Package admin holds the user administration screens.
package admin

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screen"
	"github.com/abhisek/lectora/internal/screens/report"
	"github.com/abhisek/lectora/internal/screens/shared"
	"github.com/abhisek/lectora/internal/ui/components"
	"github.com/abhisek/lectora/internal/ui/layout"
)

// AdminScreen is the administration menu.
type AdminScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*AdminScreen)(nil)
var _ screen.KeyHintProvider = (*AdminScreen)(nil)

var push = router.Go

// New creates an AdminScreen.
func New(env *shared.Env) *AdminScreen {
	items := []components.MenuItem{
		{Label: "Agregar usuario", Action: func() tea.Cmd { return push(NewUserForm(env, ModeAdd)) }},
		{Label: "Cambiar contraseña", Action: func() tea.Cmd { return push(NewUserForm(env, ModePassword)) }},
		{Label: "Eliminar usuario", Action: func() tea.Cmd { return push(NewUserForm(env, ModeDelete)) }},
		{Label: "Lista de usuarios", Action: func() tea.Cmd { return push(NewUserList(env)) }},
		{Label: "Progreso de todos", Action: func() tea.Cmd { return push(report.New(env)) }},
	}
	return &AdminScreen{menu: components.NewMenu(items)}
}

func (s *AdminScreen) Init() tea.Cmd {
	return nil
}

func (s *AdminScreen) Title() string {
	return "Administración"
}

func (s *AdminScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Elegir"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *AdminScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 44)
	return components.Center(components.Card(s.menu.View(), cw), width, height)
}
