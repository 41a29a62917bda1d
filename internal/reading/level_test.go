package reading

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"basic", LevelBasic, false},
		{"Basic", LevelBasic, false},
		{"Básico", LevelBasic, false},
		{"basico", LevelBasic, false},
		{" INTERMEDIO ", LevelIntermediate, false},
		{"intermediate", LevelIntermediate, false},
		{"Avanzado", LevelAdvanced, false},
		{"advanced", LevelAdvanced, false},
		{"expert", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLevelLabel(t *testing.T) {
	if got := LevelBasic.Label("es"); got != "Básico" {
		t.Errorf("es label = %q", got)
	}
	if got := LevelAdvanced.Label("en"); got != "Advanced" {
		t.Errorf("en label = %q", got)
	}
	if got := Level("x").Label("es"); got != "x" {
		t.Errorf("unknown label = %q", got)
	}
}

func TestLevelValid(t *testing.T) {
	for _, l := range AllLevels {
		if !l.Valid() {
			t.Errorf("%q should be valid", l)
		}
	}
	if Level("Básico").Valid() {
		t.Error("labels are not canonical levels")
	}
}
