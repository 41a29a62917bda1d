package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screens/shared/sharedtest"
)

// choose selects menu item i and returns the screen title it pushes.
func choose(t *testing.T, h *HomeScreen, i int) string {
	t.Helper()
	h.menu.Selected = i
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msgs := sharedtest.Run(cmd)
	require.Len(t, msgs, 1)
	push, ok := msgs[0].(router.PushScreenMsg)
	require.True(t, ok, "got %T", msgs[0])
	return push.Screen.Title()
}

func TestSignedOutAsksForLogin(t *testing.T) {
	env, _, _, _ := sharedtest.NewEnv()
	h := New(env)

	assert.Equal(t, "Ingresar", choose(t, h, 0))
	assert.Equal(t, "Ingreso de administrador", choose(t, h, 1))
	assert.Equal(t, "Ingresar", choose(t, h, 2))
	assert.True(t, h.menu.Items[logoutIndex].Disabled)
}

func TestSignedInStudentGoesStraightThrough(t *testing.T) {
	env, acc, _, _ := sharedtest.NewEnv()
	sharedtest.SignIn(env, acc, "ana@example.com")
	h := New(env)

	assert.Equal(t, "Elige un nivel", choose(t, h, 0))
	assert.Equal(t, "Ingreso de administrador", choose(t, h, 1), "students must log in as admin")
	assert.Equal(t, "Mi progreso", choose(t, h, 2))
}

func TestSignedInAdmin(t *testing.T) {
	env, acc, _, _ := sharedtest.NewEnv()
	sharedtest.SignIn(env, acc, "admin@example.com")
	h := New(env)

	assert.Equal(t, "Administración", choose(t, h, 1))
	assert.Equal(t, "Progreso de todos", choose(t, h, 2))
}

func TestLogout(t *testing.T) {
	env, acc, _, _ := sharedtest.NewEnv()
	sharedtest.SignIn(env, acc, "ana@example.com")
	h := New(env)
	assert.Contains(t, h.View(100, 30), "Sesión: ana@example.com")

	h.menu.Selected = logoutIndex
	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, env.User)
	assert.True(t, h.menu.Items[logoutIndex].Disabled)
	assert.Contains(t, h.View(100, 30), "Sin sesión iniciada")
}

func TestExitQuits(t *testing.T) {
	env, _, _, _ := sharedtest.NewEnv()
	h := New(env)
	h.menu.Selected = 4
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
