package reading

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Validator checks a generated question set.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns nil if the questions pass.
	Validate(questions []Question, cfg Config) *ValidationError
}

// ValidationError describes why generated content failed validation.
type ValidationError struct {
	Validator string // name of the validator that failed
	Message   string
	Retryable bool // whether regenerating is likely to fix it
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// StructuralValidator checks counts, bounds and required fields.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(questions []Question, cfg Config) *ValidationError {
	fail := func(format string, args ...any) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf(format, args...), Retryable: true}
	}

	if cfg.QuestionCount > 0 && len(questions) != cfg.QuestionCount {
		return fail("got %d questions, want %d", len(questions), cfg.QuestionCount)
	}
	for i, q := range questions {
		n := i + 1
		if strings.TrimSpace(q.Text) == "" {
			return fail("question %d: text is empty", n)
		}
		if utf8.RuneCountInString(q.Text) > 500 {
			return fail("question %d: text exceeds 500 characters", n)
		}
		if len(q.Options) != OptionCount {
			return fail("question %d: has %d options, want %d", n, len(q.Options), OptionCount)
		}
		for j, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				return fail("question %d: option %d is empty", n, j+1)
			}
		}
		if q.AnswerIndex < 0 || q.AnswerIndex >= OptionCount {
			return fail("question %d: answer_index %d out of range", n, q.AnswerIndex)
		}
		if !slices.Contains(AllSkills, q.Skill) {
			return fail("question %d: unknown skill %q", n, q.Skill)
		}
	}
	return nil
}

// DistinctOptionsValidator rejects questions with repeated options,
// ignoring case and whitespace.
type DistinctOptionsValidator struct{}

func (v *DistinctOptionsValidator) Name() string { return "distinct-options" }

func (v *DistinctOptionsValidator) Validate(questions []Question, _ Config) *ValidationError {
	for i, q := range questions {
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			key := normalizeOption(o)
			if seen[key] {
				return &ValidationError{
					Validator: v.Name(),
					Message:   fmt.Sprintf("question %d: option %q repeated", i+1, o),
					Retryable: true,
				}
			}
			seen[key] = true
		}
	}
	return nil
}

// SkillCoverageValidator requires the quiz to span at least MinSkills of
// the four skills.
type SkillCoverageValidator struct {
	MinSkills int
}

func (v *SkillCoverageValidator) Name() string { return "skill-coverage" }

func (v *SkillCoverageValidator) Validate(questions []Question, _ Config) *ValidationError {
	covered := make(map[Skill]bool)
	for _, q := range questions {
		covered[q.Skill] = true
	}
	if len(covered) < v.MinSkills {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("quiz covers %d skills, want at least %d", len(covered), v.MinSkills),
			Retryable: true,
		}
	}
	return nil
}

func normalizeOption(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
