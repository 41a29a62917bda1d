package reading

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lectora/internal/llm"
)

// ErrNoQuestions is returned when the model produced a quiz with no usable
// questions.
var ErrNoQuestions = errors.New("no questions generated")

// Generator produces reading passages and the questions about them.
type Generator interface {
	// GeneratePassage returns a passage for the level.
	GeneratePassage(ctx context.Context, level Level) (*Passage, error)

	// GenerateQuestions returns validated multiple-choice questions about p.
	GenerateQuestions(ctx context.Context, p *Passage, level Level) ([]Question, error)
}

// LLMGenerator implements Generator using an llm.Provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = 5
	}
	if cfg.Language == "" {
		cfg.Language = "es"
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// Config returns the generator's configuration.
func (g *LLMGenerator) Config() Config {
	return g.config
}

func (g *LLMGenerator) GeneratePassage(ctx context.Context, level Level) (*Passage, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("invalid level %q", level)
	}
	ctx = llm.WithPurpose(ctx, llm.PurposePassage)

	req := llm.UserPrompt(passageSystem(g.config), buildPassageMessage(level, g.config), PassageSchema, g.config.PassageMaxTokens)
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate passage: %w", err)
	}

	var p Passage
	if err := json.Unmarshal(resp.Content, &p); err != nil {
		return nil, fmt.Errorf("parse passage: %w", err)
	}
	p.Title = strings.TrimSpace(p.Title)
	p.Text = strings.TrimSpace(p.Text)
	if p.Text == "" {
		return nil, fmt.Errorf("generate passage: %w", &ValidationError{
			Validator: "passage", Message: "text is empty", Retryable: true,
		})
	}
	return &p, nil
}

type quizOutput struct {
	Questions []Question `json:"questions"`
}

func (g *LLMGenerator) GenerateQuestions(ctx context.Context, p *Passage, level Level) ([]Question, error) {
	if p == nil || strings.TrimSpace(p.Text) == "" {
		return nil, fmt.Errorf("generate questions: empty passage")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)

	req := llm.UserPrompt(quizSystem(g.config), buildQuizMessage(p, level, g.config), QuizSchema, g.config.QuizMaxTokens)
	req.Temperature = g.config.Temperature

	var lastErr error
	for attempt := 0; attempt <= g.config.MaxRegenerations; attempt++ {
		questions, err := g.generateQuestionsOnce(ctx, req)
		if err == nil {
			return questions, nil
		}
		lastErr = err

		var verr *ValidationError
		if !errors.As(err, &verr) || !verr.Retryable {
			break
		}
	}
	return nil, lastErr
}

func (g *LLMGenerator) generateQuestionsOnce(ctx context.Context, req llm.Request) ([]Question, error) {
	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	if len(out.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	for i := range out.Questions {
		q := &out.Questions[i]
		q.Text = strings.TrimSpace(q.Text)
		q.Explanation = strings.TrimSpace(q.Explanation)
		for j, o := range q.Options {
			q.Options[j] = strings.TrimSpace(o)
		}
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(out.Questions, g.config); verr != nil {
			return nil, verr
		}
	}
	return out.Questions, nil
}
