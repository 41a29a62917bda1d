// Package practice runs one quiz attempt: it generates the passage and
// questions, collects the answers and submits them.
package practice

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/llm"
	"github.com/abhisek/lectora/internal/quiz"
	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screen"
	"github.com/abhisek/lectora/internal/screens/result"
	"github.com/abhisek/lectora/internal/screens/shared"
	"github.com/abhisek/lectora/internal/ui/components"
	"github.com/abhisek/lectora/internal/ui/layout"
	"github.com/abhisek/lectora/internal/ui/theme"
)

type phase int

const (
	phaseLoading phase = iota
	phaseFailed
	phaseAnswering
	phaseSubmitting
)

type quizReadyMsg struct {
	Quiz *quiz.Quiz
	Err  error
}

type submittedMsg struct {
	Outcome *quiz.Outcome
	Err     error
}

// PracticeScreen shows a passage with its questions.
type PracticeScreen struct {
	env   *shared.Env
	level reading.Level

	phase   phase
	quiz    *quiz.Quiz
	choices []components.MultiChoice
	submit  components.Button
	focus   int // len(choices) focuses the submit button
	spinner spinner.Model
	passage viewport.Model
	wrapped int // width the passage was last wrapped at
	errMsg  string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates a PracticeScreen for level.
func New(env *shared.Env, level reading.Level) *PracticeScreen {
	return &PracticeScreen{
		env:     env,
		level:   level,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Secondary))),
		passage: viewport.New(),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return tea.Batch(s.start(), s.spinner.Tick)
}

func (s *PracticeScreen) Title() string {
	return "Práctica · " + s.level.Label(s.env.Lang)
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseFailed:
		return []layout.KeyHint{
			{Key: "R", Description: "Reintentar"},
			{Key: "Esc", Description: "Volver"},
		}
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "A-D", Description: "Responder"},
			{Key: "Tab", Description: "Siguiente"},
			{Key: "PgUp/PgDn", Description: "Texto"},
			{Key: "Esc", Description: "Abandonar"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Cancelar"}}
}

func (s *PracticeScreen) start() tea.Cmd {
	s.phase = phaseLoading
	s.errMsg = ""
	env, level := s.env, s.level
	email := env.User.Email
	return func() tea.Msg {
		ctx, cancel := env.Context()
		defer cancel()
		q, err := env.Quizzes.Start(ctx, email, level)
		return quizReadyMsg{Quiz: q, Err: err}
	}
}

func (s *PracticeScreen) send() tea.Cmd {
	if missing := s.unanswered(); missing > 0 {
		s.errMsg = fmt.Sprintf("Faltan %d pregunta(s) por responder.", missing)
		return nil
	}
	answers := make([]string, len(s.choices))
	for i, c := range s.choices {
		answers[i] = c.Chosen()
	}
	s.phase = phaseSubmitting
	s.errMsg = ""
	env, id := s.env, s.quiz.ID
	email := env.User.Email
	return tea.Batch(func() tea.Msg {
		ctx, cancel := env.Context()
		defer cancel()
		out, err := env.Quizzes.Submit(ctx, id, email, answers)
		return submittedMsg{Outcome: out, Err: err}
	}, s.spinner.Tick)
}

func (s *PracticeScreen) unanswered() int {
	n := 0
	for _, c := range s.choices {
		if !c.Answered() {
			n++
		}
	}
	return n
}

func startError(err error) string {
	var unavailable *llm.ErrProviderUnavailable
	switch {
	case errors.As(err, &unavailable):
		return "El generador de textos no está disponible.\nRevisa la configuración del proveedor de IA."
	case llm.IsGenerationFailure(err):
		return "El generador no respondió bien. Inténtalo de nuevo."
	}
	return "No se pudo generar el texto: " + err.Error()
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Err != nil {
			s.phase = phaseFailed
			s.errMsg = startError(msg.Err)
			return s, nil
		}
		s.load(msg.Quiz)
		return s, nil

	case submittedMsg:
		if msg.Err != nil {
			s.phase = phaseAnswering
			s.errMsg = "No se pudo entregar: " + msg.Err.Error()
			return s, nil
		}
		return s, router.Swap(result.New(s.env, s.quiz, msg.Outcome))

	case spinner.TickMsg:
		if s.phase != phaseLoading && s.phase != phaseSubmitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) load(q *quiz.Quiz) {
	s.quiz = q
	s.choices = make([]components.MultiChoice, len(q.Questions))
	for i, qq := range q.Questions {
		s.choices[i] = components.NewMultiChoice(fmt.Sprintf("%d. %s", i+1, qq.Text), qq.Options)
	}
	s.submit = components.NewButton("Entregar", false, func() tea.Cmd { return s.send() })
	s.wrapped = 0
	s.phase = phaseAnswering
	s.setFocus(0)
}

func (s *PracticeScreen) setFocus(i int) {
	n := len(s.choices) + 1
	s.focus = (i + n) % n
	for j := range s.choices {
		s.choices[j].Focused = j == s.focus
	}
	s.submit.Active = s.focus == len(s.choices)
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.phase {
	case phaseFailed:
		if msg.String() == "r" {
			return s, tea.Batch(s.start(), s.spinner.Tick)
		}
		return s, nil
	case phaseAnswering:
	default:
		return s, nil
	}

	switch msg.String() {
	case "tab", "right":
		s.setFocus(s.focus + 1)
		return s, nil
	case "shift+tab", "left":
		s.setFocus(s.focus - 1)
		return s, nil
	case "pgup", "pgdown":
		var cmd tea.Cmd
		s.passage, cmd = s.passage.Update(msg)
		return s, cmd
	}

	if s.focus == len(s.choices) {
		var cmd tea.Cmd
		s.submit, cmd = s.submit.Update(msg)
		return s, cmd
	}

	c := s.choices[s.focus]
	wasAnswered := c.Answered()
	c, _ = c.Update(msg)
	s.choices[s.focus] = c
	if !wasAnswered && c.Answered() {
		s.errMsg = ""
		s.setFocus(s.focus + 1)
	}
	return s, nil
}

func (s *PracticeScreen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return components.Center(s.spinner.View()+" Generando un texto nuevo...", width, height)
	case phaseFailed:
		return shared.ErrorView(s.errMsg, "R para reintentar · Esc para volver", width, height)
	case phaseSubmitting:
		return components.Center(s.spinner.View()+" Corrigiendo...", width, height)
	}

	cw := components.ContentWidth(width)
	question := s.questionView(cw)
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.quiz.Passage.Title)

	vpHeight := height - lipgloss.Height(question) - 4
	if vpHeight < 3 {
		vpHeight = 3
	}
	s.layoutPassage(cw, vpHeight)

	body := title + "\n" + s.passage.View() + "\n\n" + question
	return lipgloss.NewStyle().PaddingLeft((width - cw) / 2).Render(body)
}

func (s *PracticeScreen) layoutPassage(cw, h int) {
	if s.wrapped != cw {
		s.passage.SetWidth(cw)
		s.passage.SetContent(theme.Passage.Width(cw - 1).Render(s.quiz.Passage.Text))
		s.wrapped = cw
	}
	s.passage.SetHeight(h)
}

func (s *PracticeScreen) questionView(cw int) string {
	total := len(s.choices)
	answered := total - s.unanswered()
	bar := components.NewMeter("Respondidas", answered, total, min(cw, 50))

	var b strings.Builder
	b.WriteString(bar.View())
	b.WriteString("\n\n")
	if s.focus < total {
		b.WriteString(s.choices[s.focus].View())
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(answerSummary(s.choices)))
		b.WriteString("\n\n")
		b.WriteString(s.submit.View())
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}
	return b.String()
}

func answerSummary(choices []components.MultiChoice) string {
	parts := make([]string, len(choices))
	for i, c := range choices {
		mark := "-"
		if c.Answered() {
			mark = components.Letters[c.ChosenIndex]
		}
		parts[i] = fmt.Sprintf("%d:%s", i+1, mark)
	}
	return strings.Join(parts, "  ")
}
