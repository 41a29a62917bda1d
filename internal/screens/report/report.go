// Package report shows the progress log: a student's own attempts, or the
// per-user summary for admins.
package report

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/progress"
	"github.com/abhisek/lectora/internal/screen"
	"github.com/abhisek/lectora/internal/screens/shared"
	"github.com/abhisek/lectora/internal/ui/layout"
	"github.com/abhisek/lectora/internal/ui/theme"
)

const timeLayout = "2006-01-02 15:04"

type loadedMsg struct {
	Rows []table.Row
	Err  error
}

// ReportScreen is a read-only progress table.
type ReportScreen struct {
	env    *shared.Env
	admin  bool
	table  table.Model
	loaded bool
	errMsg string
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New creates a ReportScreen for the signed-in user.
func New(env *shared.Env) *ReportScreen {
	admin := env.SignedIn() && env.User.IsAdmin()

	var columns []table.Column
	if admin {
		columns = []table.Column{
			{Title: "Correo", Width: 28},
			{Title: "Nivel", Width: 12},
			{Title: "Intentos", Width: 8},
			{Title: "Mejor", Width: 6},
			{Title: "Promedio", Width: 8},
			{Title: "Último", Width: 16},
		}
	} else {
		columns = []table.Column{
			{Title: "Fecha", Width: 16},
			{Title: "Nivel", Width: 12},
			{Title: "Puntaje", Width: 8},
		}
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

	return &ReportScreen{env: env, admin: admin, table: t}
}

func (s *ReportScreen) Init() tea.Cmd {
	env, admin := s.env, s.admin
	return func() tea.Msg {
		ctx := context.Background()
		if admin {
			sums, err := env.Progress.Summary(ctx)
			if err != nil {
				return loadedMsg{Err: err}
			}
			return loadedMsg{Rows: SummaryRows(sums, env.Lang)}
		}
		recs, err := env.Progress.ForUser(ctx, env.User.Email)
		if err != nil {
			return loadedMsg{Err: err}
		}
		return loadedMsg{Rows: RecordRows(recs, env.Lang)}
	}
}

// SummaryRows formats per-user summaries as table rows.
func SummaryRows(sums []progress.UserSummary, lang string) []table.Row {
	rows := make([]table.Row, len(sums))
	for i, u := range sums {
		rows[i] = table.Row{
			u.Email,
			u.Level.Label(lang),
			fmt.Sprint(u.Attempts),
			fmt.Sprintf("%d/%d", u.Best, u.Total),
			fmt.Sprintf("%.1f", u.Average),
			u.Last.Local().Format(timeLayout),
		}
	}
	return rows
}

// RecordRows formats attempts newest first.
func RecordRows(recs []progress.Record, lang string) []table.Row {
	rows := make([]table.Row, 0, len(recs))
	for i := len(recs) - 1; i >= 0; i-- {
		r := recs[i]
		rows = append(rows, table.Row{
			r.CreatedAt.Local().Format(timeLayout),
			r.Level.Label(lang),
			fmt.Sprintf("%d/%d", r.Score, r.Total),
		})
	}
	return rows
}

func (s *ReportScreen) Title() string {
	if s.admin {
		return "Progreso de todos"
	}
	return "Mi progreso"
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.table.SetRows(msg.Rows)
		return s, nil
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *ReportScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return shared.ErrorView("No se pudo leer el progreso: "+s.errMsg, "Esc para volver", width, height)
	case !s.loaded:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("Cargando..."))
	case len(s.table.Rows()) == 0:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Hint.Render("Todavía no hay intentos registrados."))
	}
	s.table.SetHeight(max(height-2, 3))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, s.table.View())
}
