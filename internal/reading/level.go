package reading

import (
	"fmt"
	"strings"
)

// Level is the difficulty a student picks before a quiz.
type Level string

const (
	LevelBasic        Level = "basic"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// AllLevels lists levels in increasing difficulty.
var AllLevels = []Level{LevelBasic, LevelIntermediate, LevelAdvanced}

var levelAliases = map[string]Level{
	"basic":        LevelBasic,
	"básico":       LevelBasic,
	"basico":       LevelBasic,
	"intermediate": LevelIntermediate,
	"intermedio":   LevelIntermediate,
	"advanced":     LevelAdvanced,
	"avanzado":     LevelAdvanced,
}

// ParseLevel accepts the English names in any case and the Spanish labels
// with or without accent.
func ParseLevel(s string) (Level, error) {
	if l, ok := levelAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return l, nil
	}
	return "", fmt.Errorf("unknown level %q (want basic, intermediate or advanced)", s)
}

// Valid reports whether l is one of AllLevels.
func (l Level) Valid() bool {
	switch l {
	case LevelBasic, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Label returns the display name in the given language ("es" or "en").
func (l Level) Label(lang string) string {
	if lang == "es" {
		switch l {
		case LevelBasic:
			return "Básico"
		case LevelIntermediate:
			return "Intermedio"
		case LevelAdvanced:
			return "Avanzado"
		}
	}
	switch l {
	case LevelBasic:
		return "Basic"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	}
	return string(l)
}
