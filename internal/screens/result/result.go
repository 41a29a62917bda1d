package result

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/quiz"
	"github.com/abhisek/lectora/internal/router"
	"github.com/abhisek/lectora/internal/screen"
	"github.com/abhisek/lectora/internal/screens/shared"
	"github.com/abhisek/lectora/internal/ui/components"
	"github.com/abhisek/lectora/internal/ui/layout"
	"github.com/abhisek/lectora/internal/ui/theme"
)

// ResultScreen shows the score and a per-question review.
type ResultScreen struct {
	env     *shared.Env
	quiz    *quiz.Quiz
	outcome *quiz.Outcome
	review  viewport.Model
	wrapped int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen.
func New(env *shared.Env, q *quiz.Quiz, out *quiz.Outcome) *ResultScreen {
	return &ResultScreen{env: env, quiz: q, outcome: out, review: viewport.New()}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Resultado"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Otro texto"},
		{Key: "↑↓", Description: "Revisar"},
		{Key: "H", Description: "Inicio"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, router.Back()
		case "h":
			return s, router.Home(nil)
		}
	}
	var cmd tea.Cmd
	s.review, cmd = s.review.Update(msg)
	return s, cmd
}

// Headline returns the score line and the feedback message.
func (s *ResultScreen) Headline() (score, feedback string) {
	r := s.outcome.Result
	return fmt.Sprintf("%d/%d", r.Correct, r.Total), r.Feedback.Message(s.env.Lang)
}

func (s *ResultScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	score, feedback := s.Headline()

	fbStyle := theme.Incorrect
	if s.outcome.Result.Perfect() {
		fbStyle = theme.Correct
	}
	meter := components.NewMeter("", s.outcome.Result.Correct, s.outcome.Result.Total, min(cw, 50))
	meter.Graded = true

	head := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Puntaje: "+score) +
		"   " + fbStyle.Render(feedback) + "\n" +
		meter.View()

	if s.wrapped != cw {
		s.review.SetWidth(cw)
		s.review.SetContent(s.reviewText(cw))
		s.wrapped = cw
	}
	s.review.SetHeight(max(height-lipgloss.Height(head)-2, 3))

	body := head + "\n\n" + s.review.View()
	return lipgloss.NewStyle().PaddingLeft((width - cw) / 2).Render(body)
}

func (s *ResultScreen) reviewText(cw int) string {
	wrap := lipgloss.NewStyle().Width(cw)
	var b strings.Builder
	for i, q := range s.quiz.Questions {
		correct := i < len(s.outcome.Result.Marks) && s.outcome.Result.Marks[i]
		mark := theme.Incorrect.Render("✗")
		if correct {
			mark = theme.Correct.Render("✓")
		}
		b.WriteString(wrap.Render(fmt.Sprintf("%s %d. %s", mark, i+1, q.Text)))
		b.WriteString("\n")

		answer := ""
		if i < len(s.outcome.Answers) {
			answer = s.outcome.Answers[i]
		}
		if answer == "" {
			answer = "(sin respuesta)"
		}
		b.WriteString(theme.Hint.Render("   Tu respuesta: ") + answer + "\n")
		if !correct && i < len(s.outcome.Key) {
			b.WriteString(theme.Hint.Render("   Correcta: ") + theme.Correct.Render(s.outcome.Key[i]) + "\n")
		}
		if i < len(s.outcome.Explanations) && s.outcome.Explanations[i] != "" {
			b.WriteString(wrap.Foreground(theme.TextDim).PaddingLeft(3).Render(s.outcome.Explanations[i]) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}
