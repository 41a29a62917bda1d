package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/screen"
	"github.com/abhisek/lectora/internal/screens/shared"
	"github.com/abhisek/lectora/internal/store"
	"github.com/abhisek/lectora/internal/ui/components"
	"github.com/abhisek/lectora/internal/ui/layout"
	"github.com/abhisek/lectora/internal/ui/theme"
)

// Mode selects what a UserForm does.
type Mode int

const (
	ModeAdd Mode = iota
	ModePassword
	ModeDelete
)

var modeTitles = map[Mode]string{
	ModeAdd:      "Agregar usuario",
	ModePassword: "Cambiar contraseña",
	ModeDelete:   "Eliminar usuario",
}

type doneMsg struct {
	Email    string
	Password string
	Err      error
}

// UserForm adds a user, changes a password or deletes a user.
type UserForm struct {
	env        *shared.Env
	mode       Mode
	form       components.Form
	confirming bool
	busy       bool
	errMsg     string
	notice     string
	secret     string
}

var _ screen.Screen = (*UserForm)(nil)
var _ screen.KeyHintProvider = (*UserForm)(nil)

// NewUserForm creates a UserForm for mode.
func NewUserForm(env *shared.Env, mode Mode) *UserForm {
	fields := []components.TextInput{
		components.NewTextInput("Correo", "usuario@ejemplo.com", false, 254),
	}
	switch mode {
	case ModeAdd:
		role := components.NewTextInput("Rol (student o admin)", string(accounts.RoleStudent), false, 16)
		fields = append(fields, role)
	case ModePassword:
		fields = append(fields, components.NewTextInput("Nueva contraseña (vacía para generar una)", "", true, 128))
	}
	return &UserForm{env: env, mode: mode, form: components.NewForm(fields...)}
}

func (s *UserForm) Init() tea.Cmd {
	return s.form.Init()
}

func (s *UserForm) Title() string {
	return modeTitles[s.mode]
}

func (s *UserForm) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "S", Description: "Sí, eliminar"},
			{Key: "N", Description: "No"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Campo"},
		{Key: "Enter", Description: "Aceptar"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *UserForm) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = describe(msg.Err)
			return s, nil
		}
		s.secret = msg.Password
		switch s.mode {
		case ModeAdd:
			s.notice = fmt.Sprintf("Usuario %s creado.", msg.Email)
		case ModePassword:
			s.notice = fmt.Sprintf("Contraseña de %s actualizada.", msg.Email)
		case ModeDelete:
			s.notice = fmt.Sprintf("Usuario %s eliminado.", msg.Email)
		}
		return s, s.form.Reset()

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		if s.confirming {
			switch strings.ToLower(msg.String()) {
			case "s", "y":
				s.confirming = false
				return s, s.run()
			case "n":
				s.confirming = false
			}
			return s, nil
		}
	}

	if s.busy {
		return s, nil
	}

	var cmd tea.Cmd
	s.form, cmd = s.form.Update(msg)
	if s.form.Submitted {
		return s, s.submit()
	}
	return s, cmd
}

func (s *UserForm) submit() tea.Cmd {
	s.errMsg, s.notice, s.secret = "", "", ""
	email, err := accounts.NormalizeEmail(s.form.Value(0))
	if err != nil {
		s.errMsg = "Correo no válido."
		return nil
	}
	if s.mode == ModeDelete {
		if s.env.SignedIn() && s.env.User.Email == email {
			s.errMsg = "No puedes eliminar tu propia cuenta."
			return nil
		}
		s.confirming = true
		return nil
	}
	if s.mode == ModeAdd {
		if _, err := accounts.ParseRole(s.roleValue()); err != nil {
			s.errMsg = "Rol no válido: usa student o admin."
			return nil
		}
	}
	return s.run()
}

func (s *UserForm) roleValue() string {
	v := strings.TrimSpace(s.form.Value(1))
	if v == "" {
		return string(accounts.RoleStudent)
	}
	return v
}

func (s *UserForm) run() tea.Cmd {
	email, _ := accounts.NormalizeEmail(s.form.Value(0))
	acc := s.env.Accounts
	s.busy = true

	switch s.mode {
	case ModeAdd:
		role, _ := accounts.ParseRole(s.roleValue())
		return func() tea.Msg {
			pw, err := acc.Create(context.Background(), email, role)
			return doneMsg{Email: email, Password: pw, Err: err}
		}
	case ModePassword:
		pw := s.form.Value(1)
		return func() tea.Msg {
			if pw == "" {
				gen, err := acc.ResetPassword(context.Background(), email)
				return doneMsg{Email: email, Password: gen, Err: err}
			}
			return doneMsg{Email: email, Err: acc.SetPassword(context.Background(), email, pw)}
		}
	default:
		return func() tea.Msg {
			return doneMsg{Email: email, Err: acc.Delete(context.Background(), email)}
		}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, accounts.ErrUserExists):
		return "Ya existe un usuario con ese correo."
	case errors.Is(err, store.ErrNotFound):
		return "No existe un usuario con ese correo."
	case errors.Is(err, accounts.ErrInvalidEmail):
		return "Correo no válido."
	}
	return "Error: " + err.Error()
}

func (s *UserForm) View(width, height int) string {
	cw := min(components.ContentWidth(width), 56)

	body := s.form.View()
	switch {
	case s.busy:
		body += "\n\n" + theme.Hint.Render("Guardando...")
	case s.confirming:
		body += "\n\n" + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("¿Eliminar %s? Su progreso se conserva. (s/n)", strings.TrimSpace(s.form.Value(0))))
	case s.errMsg != "":
		body += "\n\n" + theme.ErrorText.Render(s.errMsg)
	case s.notice != "":
		body += "\n\n" + theme.Correct.Render(s.notice)
		if s.secret != "" {
			body += "\n" + theme.Hint.Render("Contraseña (se muestra una sola vez):") +
				"\n" + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(s.secret)
		}
	}

	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.Title())
	return components.Center(title+"\n\n"+components.Card(body, cw), width, height)
}
