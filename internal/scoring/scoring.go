// Package scoring compares submitted answers with a quiz's answer key.
package scoring

import (
	"strconv"
	"strings"

	"github.com/abhisek/lectora/internal/reading"
)

// Feedback is the one-line verdict shown after a quiz.
type Feedback string

const (
	FeedbackPerfect Feedback = "perfect"
	FeedbackRetry   Feedback = "retry"
)

// Message returns the feedback text in the given language.
// Spanish is the default.
func (f Feedback) Message(lang string) string {
	if lang == "en" {
		if f == FeedbackPerfect {
			return "Well done!"
		}
		return "Try again."
	}
	if f == FeedbackPerfect {
		return "¡Bien hecho!"
	}
	return "Intenta de nuevo."
}

// Result is the outcome of scoring one submission.
type Result struct {
	Correct  int
	Total    int
	Feedback Feedback
	// Marks[i] is true when answer i matched key i.
	Marks []bool
}

// Perfect reports whether every answer was correct.
func (r Result) Perfect() bool {
	return r.Feedback == FeedbackPerfect
}

// Score counts position-wise matches between answers and key. Comparison
// ignores surrounding whitespace and case. Missing answers count as wrong
// and extra answers are ignored.
func Score(answers, key []string) Result {
	r := Result{Total: len(key), Marks: make([]bool, len(key))}
	for i, want := range key {
		if i >= len(answers) {
			break
		}
		if normalize(answers[i]) == normalize(want) {
			r.Correct++
			r.Marks[i] = true
		}
	}
	r.Feedback = FeedbackRetry
	if r.Total > 0 && r.Correct == r.Total {
		r.Feedback = FeedbackPerfect
	}
	return r
}

// AnswerKey returns the text of the correct option of each question.
func AnswerKey(questions []reading.Question) []string {
	key := make([]string, len(questions))
	for i, q := range questions {
		key[i] = q.Answer()
	}
	return key
}

// CheckChoice resolves a raw answer against q's options. It accepts the
// option text, a letter A-D or a 1-based position. The resolved option
// text is returned with ok=false when nothing matched.
func CheckChoice(answer string, q reading.Question) (string, bool) {
	a := strings.TrimSpace(answer)
	if a == "" {
		return "", false
	}
	for _, o := range q.Options {
		if normalize(o) == normalize(a) {
			return o, true
		}
	}
	if len(a) == 1 {
		c := strings.ToUpper(a)[0]
		if c >= 'A' && int(c-'A') < len(q.Options) {
			return q.Options[c-'A'], true
		}
	}
	if n, err := strconv.Atoi(a); err == nil && n >= 1 && n <= len(q.Options) {
		return q.Options[n-1], true
	}
	return "", false
}

// Resolve maps each raw answer through CheckChoice. Unresolvable answers
// are kept verbatim so they score as wrong.
func Resolve(answers []string, questions []reading.Question) []string {
	out := make([]string, len(answers))
	for i, a := range answers {
		out[i] = a
		if i < len(questions) {
			if opt, ok := CheckChoice(a, questions[i]); ok {
				out[i] = opt
			}
		}
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
