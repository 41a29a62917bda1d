package admin

import (
	"context"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/screen"
	"github.com/abhisek/lectora/internal/screens/shared"
	"github.com/abhisek/lectora/internal/ui/layout"
	"github.com/abhisek/lectora/internal/ui/theme"
)

type usersLoadedMsg struct {
	Users []accounts.User
	Err   error
}

// UserList shows every account in a table.
type UserList struct {
	env    *shared.Env
	table  table.Model
	loaded bool
	errMsg string
}

var _ screen.Screen = (*UserList)(nil)
var _ screen.KeyHintProvider = (*UserList)(nil)

// NewUserList creates a UserList.
func NewUserList(env *shared.Env) *UserList {
	columns := []table.Column{
		{Title: "Correo", Width: 34},
		{Title: "Rol", Width: 9},
		{Title: "Hash", Width: 8},
		{Title: "Creado", Width: 16},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.Text).
		Background(theme.Primary).
		Bold(false)
	t.SetStyles(s)

	return &UserList{env: env, table: t}
}

func (s *UserList) Init() tea.Cmd {
	acc := s.env.Accounts
	return func() tea.Msg {
		users, err := acc.List(context.Background())
		return usersLoadedMsg{Users: users, Err: err}
	}
}

func (s *UserList) Title() string {
	return "Usuarios"
}

func (s *UserList) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Esc", Description: "Volver"},
	}
}

// Rows returns the table rows, for tests.
func (s *UserList) Rows() []table.Row {
	return s.table.Rows()
}

func (s *UserList) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(usersLoadedMsg); ok {
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		rows := make([]table.Row, len(msg.Users))
		for i, u := range msg.Users {
			rows[i] = table.Row{u.Email, string(u.Role), string(u.Scheme), u.CreatedAt.Local().Format("2006-01-02 15:04")}
		}
		s.table.SetRows(rows)
		return s, nil
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *UserList) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return shared.ErrorView("No se pudo leer la lista: "+s.errMsg, "Esc para volver", width, height)
	case !s.loaded:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("Cargando..."))
	case len(s.table.Rows()) == 0:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("No hay usuarios."))
	}
	s.table.SetHeight(max(height-2, 3))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, s.table.View())
}
