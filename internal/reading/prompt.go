package reading

import (
	"fmt"
	"strings"
)

const passageSystemPrompt = `You write reading comprehension passages for high-school students.

Rules:
- Write an original, self-contained passage in %[1]s at the requested level.
- Topics should interest teenagers: science, history, society, culture, nature, technology.
- Separate paragraphs with a blank line. No headings, lists or markdown inside the text.
- The passage must contain enough detail to support questions on comprehension, vocabulary, critical thinking and logic.
- Write the title in %[1]s too.`

const quizSystemPrompt = `You write multiple-choice reading comprehension questions for high-school students.

Rules:
- Write every question, option and explanation in %[1]s.
- Each question has exactly 4 options and exactly one correct option. Give its 0-based position in answer_index.
- Do not prefix options with letters or numbers.
- Distractors must be plausible to someone who read carelessly, not absurd.
- Cover all four skills across the quiz: comprehension, vocabulary, critical-thinking and logic.
- Every question must be answerable from the passage alone.
- Vary the position of the correct option.`

var levelGuidance = map[Level]string{
	LevelBasic:        "Basic: about 200 words, short sentences, everyday vocabulary, a clear narrative or expository structure.",
	LevelIntermediate: "Intermediate: about 300 words, some subordinate clauses, a few less common words whose meaning can be inferred from context.",
	LevelAdvanced:     "Advanced: about 450 words, complex sentences, domain vocabulary, an argument or contrast of viewpoints the reader must evaluate.",
}

var languageNames = map[string]string{
	"es": "Spanish",
	"en": "English",
	"pt": "Portuguese",
	"fr": "French",
}

func languageName(code string) string {
	if n, ok := languageNames[code]; ok {
		return n
	}
	return code
}

func passageSystem(cfg Config) string {
	return fmt.Sprintf(passageSystemPrompt, languageName(cfg.Language))
}

func quizSystem(cfg Config) string {
	return fmt.Sprintf(quizSystemPrompt, languageName(cfg.Language))
}

func buildPassageMessage(level Level, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level: %s\n", level.Label(cfg.Language))
	fmt.Fprintf(&b, "Guidance: %s\n", levelGuidance[level])
	if len(cfg.Topics) > 0 {
		fmt.Fprintf(&b, "Pick one of these topics: %s\n", strings.Join(cfg.Topics, ", "))
	}
	return b.String()
}

func buildQuizMessage(p *Passage, level Level, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level: %s\n", level.Label(cfg.Language))
	fmt.Fprintf(&b, "Number of questions: %d\n", cfg.QuestionCount)
	b.WriteString("\nPassage:\n")
	if p.Title != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Title)
	}
	b.WriteString(p.Text)
	return b.String()
}
