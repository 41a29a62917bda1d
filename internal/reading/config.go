package reading

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question set; the first
	// failure stops the pipeline.
	Validators []Validator

	// QuestionCount is how many questions a quiz has.
	QuestionCount int

	// Language is the ISO 639-1 code content is written in.
	Language string

	// Topics optionally narrows passage subjects.
	Topics []string

	// Token budgets are generous because reasoning models spend part of
	// them thinking.
	PassageMaxTokens int
	QuizMaxTokens    int
	Temperature      float64

	// MaxRegenerations bounds extra attempts after a retryable validation
	// failure.
	MaxRegenerations int
}

// DefaultConfig returns five Spanish questions per quiz and the standard
// validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
			&SkillCoverageValidator{MinSkills: 3},
		},
		QuestionCount:    5,
		Language:         "es",
		PassageMaxTokens: 4096,
		QuizMaxTokens:    6144,
		Temperature:      0.7,
		MaxRegenerations: 1,
	}
}
