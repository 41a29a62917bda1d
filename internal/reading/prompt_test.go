package reading

import (
	"strings"
	"testing"
)

func TestBuildPassageMessage(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		topics  []string
		want    []string
		notWant []string
	}{
		{
			name:    "no topics",
			lang:    "es",
			want:    []string{"Level: Intermedio"},
			notWant: []string{"topics"},
		},
		{
			name:   "topics listed",
			lang:   "es",
			topics: []string{"astronomía", "deportes"},
			want:   []string{"Level: Intermedio", "Pick one of these topics: astronomía, deportes"},
		},
		{
			name: "english label",
			lang: "en",
			want: []string{"Level: Intermediate"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Language = tt.lang
			cfg.Topics = tt.topics
			got := buildPassageMessage(LevelIntermediate, cfg)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("message missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("message should not contain %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestSystemPromptLanguage(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"es", "Spanish"},
		{"en", "English"},
		{"pt", "Portuguese"},
		{"de", "de"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Language = tt.lang
		if got := passageSystem(cfg); !strings.Contains(got, tt.want) {
			t.Errorf("passageSystem(%q) does not mention %q", tt.lang, tt.want)
		}
		if got := quizSystem(cfg); !strings.Contains(got, tt.want) {
			t.Errorf("quizSystem(%q) does not mention %q", tt.lang, tt.want)
		}
	}
}
