package scoring

import (
	"slices"
	"testing"

	"github.com/abhisek/lectora/internal/reading"
)

func TestScore(t *testing.T) {
	key := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name     string
		answers  []string
		correct  int
		feedback Feedback
	}{
		{"all correct", []string{"a", "b", "c", "d", "e"}, 5, FeedbackPerfect},
		{"case and space", []string{" A", "b ", "C", "d", "E"}, 5, FeedbackPerfect},
		{"one wrong", []string{"a", "b", "c", "d", "x"}, 4, FeedbackRetry},
		{"none", []string{"x", "x", "x", "x", "x"}, 0, FeedbackRetry},
		{"missing answers", []string{"a", "b"}, 2, FeedbackRetry},
		{"nil answers", nil, 0, FeedbackRetry},
		{"extra answers", []string{"a", "b", "c", "d", "e", "f"}, 5, FeedbackPerfect},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Score(tt.answers, key)
			if r.Correct != tt.correct {
				t.Errorf("Correct = %d, want %d", r.Correct, tt.correct)
			}
			if r.Total != 5 {
				t.Errorf("Total = %d, want 5", r.Total)
			}
			if r.Feedback != tt.feedback {
				t.Errorf("Feedback = %q, want %q", r.Feedback, tt.feedback)
			}
			if len(r.Marks) != 5 {
				t.Errorf("len(Marks) = %d, want 5", len(r.Marks))
			}
		})
	}
}

func TestScore_EmptyKey(t *testing.T) {
	r := Score([]string{"a"}, nil)
	if r.Total != 0 {
		t.Errorf("Total = %d, want 0", r.Total)
	}
	if r.Feedback != FeedbackRetry {
		t.Errorf("Feedback = %q, want retry", r.Feedback)
	}
	if r.Perfect() {
		t.Error("an empty quiz is never perfect")
	}
}

func TestScore_Marks(t *testing.T) {
	r := Score([]string{"a", "x", "c"}, []string{"a", "b", "c"})
	if want := []bool{true, false, true}; !slices.Equal(r.Marks, want) {
		t.Errorf("Marks = %v, want %v", r.Marks, want)
	}
}

func TestFeedbackMessage(t *testing.T) {
	tests := []struct {
		f    Feedback
		lang string
		want string
	}{
		{FeedbackPerfect, "es", "¡Bien hecho!"},
		{FeedbackRetry, "es", "Intenta de nuevo."},
		{FeedbackPerfect, "en", "Well done!"},
		{FeedbackRetry, "en", "Try again."},
		{FeedbackPerfect, "", "¡Bien hecho!"},
	}
	for _, tt := range tests {
		if got := tt.f.Message(tt.lang); got != tt.want {
			t.Errorf("%s.Message(%q) = %q, want %q", tt.f, tt.lang, got, tt.want)
		}
	}
}

func question() reading.Question {
	return reading.Question{
		Text:        "¿Color del cielo?",
		Options:     []string{"Verde", "Azul", "Rojo", "Negro"},
		AnswerIndex: 1,
		Skill:       reading.SkillComprehension,
	}
}

func TestAnswerKey(t *testing.T) {
	q2 := question()
	q2.AnswerIndex = 3
	got := AnswerKey([]reading.Question{question(), q2})
	if want := []string{"Azul", "Negro"}; !slices.Equal(got, want) {
		t.Errorf("AnswerKey = %v, want %v", got, want)
	}
	if got := AnswerKey(nil); len(got) != 0 {
		t.Errorf("AnswerKey(nil) = %v, want empty", got)
	}
}

func TestCheckChoice(t *testing.T) {
	q := question()
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Azul", "Azul", true},
		{"  azul ", "Azul", true},
		{"b", "Azul", true},
		{"D", "Negro", true},
		{"2", "Azul", true},
		{"4", "Negro", true},
		{"5", "", false},
		{"0", "", false},
		{"E", "", false},
		{"Morado", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := CheckChoice(tt.in, q)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CheckChoice(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestResolve(t *testing.T) {
	qs := []reading.Question{question(), question()}
	got := Resolve([]string{"B", "Morado", "extra"}, qs)
	if want := []string{"Azul", "Morado", "extra"}; !slices.Equal(got, want) {
		t.Fatalf("Resolve = %v, want %v", got, want)
	}

	if r := Score(got, AnswerKey(qs)); r.Correct != 1 {
		t.Errorf("Correct = %d, want 1", r.Correct)
	}
}
