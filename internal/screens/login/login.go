// Package login asks for credentials and hands over to the screen the user
// was heading to.
package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screen"
	"github.com/abhisek/lectora/internal/screens/shared"
	"github.com/abhisek/lectora/internal/ui/components"
	"github.com/abhisek/lectora/internal/ui/layout"
	"github.com/abhisek/lectora/internal/ui/theme"
)

// errNotAdmin is shown when a student opens an admin-only screen.
var errNotAdmin = errors.New("se requiere una cuenta de administrador")

type verifiedMsg struct {
	User *accounts.User
	Err  error
}

// LoginScreen collects an email and password.
type LoginScreen struct {
	env       *shared.Env
	adminOnly bool
	next      func() screen.Screen
	form      components.Form
	busy      bool
	errMsg    string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen. On success it replaces itself with next().
func New(env *shared.Env, adminOnly bool, next func() screen.Screen) *LoginScreen {
	return &LoginScreen{
		env:       env,
		adminOnly: adminOnly,
		next:      next,
		form: components.NewForm(
			components.NewTextInput("Correo", "usuario@ejemplo.com", false, 254),
			components.NewTextInput("Contraseña", "", true, 128),
		),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.form.Init()
}

func (s *LoginScreen) Title() string {
	if s.adminOnly {
		return "Ingreso de administrador"
	}
	return "Ingresar"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Campo"},
		{Key: "Enter", Description: "Ingresar"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case verifiedMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = describe(msg.Err)
			s.form.Fields[1].Reset()
			return s, nil
		}
		if s.adminOnly && !msg.User.IsAdmin() {
			s.errMsg = errNotAdmin.Error()
			s.form.Fields[1].Reset()
			return s, nil
		}
		s.env.User = msg.User
		return s, router.Swap(s.next())
	}

	if s.busy {
		return s, nil
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	if s.form.Submitted {
		return s, s.verify()
	}
	return s, cmd
}

func (s *LoginScreen) verify() tea.Cmd {
	email := strings.TrimSpace(s.form.Value(0))
	password := s.form.Value(1)
	if email == "" || password == "" {
		s.errMsg = "Escribe el correo y la contraseña."
		return nil
	}
	s.busy = true
	s.errMsg = ""
	acc := s.env.Accounts
	return func() tea.Msg {
		u, err := acc.Verify(context.Background(), email, password)
		return verifiedMsg{User: u, Err: err}
	}
}

func describe(err error) string {
	if errors.Is(err, accounts.ErrInvalidCredentials) {
		return "Correo o contraseña incorrectos."
	}
	return "No se pudo verificar: " + err.Error()
}

func (s *LoginScreen) View(width, height int) string {
	cw := min(components.ContentWidth(width), 50)

	body := s.form.View()
	switch {
	case s.busy:
		body += "\n\n" + theme.Hint.Render("Verificando...")
	case s.errMsg != "":
		body += "\n\n" + theme.ErrorText.Render(s.errMsg)
	}

	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.Title())
	return components.Center(title+"\n\n"+components.Card(body, cw), width, height)
}
