package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// NewDemoProvider returns a mock that answers every passage and quiz
// request with the same fixed Spanish text, so the tutor can be tried
// without an API key.
func NewDemoProvider() *MockProvider {
	m := NewMockProvider()
	m.Fallback = demoReply
	return m
}

func demoReply(_ context.Context, req Request) MockResponse {
	if req.Schema == nil {
		return MockResponse{Err: &ErrInvalidResponse{Err: fmt.Errorf("demo: free-text requests are not supported")}}
	}
	var v any
	switch req.Schema.Name {
	case "reading-passage":
		v = demoPassage
	case "reading-quiz":
		v = map[string]any{"questions": demoQuestions}
	default:
		return MockResponse{Err: &ErrInvalidResponse{Err: fmt.Errorf("demo: unknown schema %q", req.Schema.Name)}}
	}
	b, _ := json.Marshal(v)
	return MockResponse{Content: b, Usage: Usage{InputTokens: len(req.System) / 4, OutputTokens: len(b) / 4}}
}

var demoPassage = map[string]string{
	"title": "El faro de la isla",
	"text": "Marta vivía con su abuelo en una isla pequeña. Cada noche subían los ciento veinte escalones del faro para encender la luz que guiaba a los barcos.\n\n" +
		"Una tarde de tormenta la lámpara se apagó. El abuelo tenía fiebre y no podía levantarse, así que Marta tomó la linterna de aceite y subió sola. " +
		"El viento golpeaba las ventanas, pero ella no se detuvo.\n\n" +
		"Cuando la luz volvió a girar, un pesquero que buscaba el puerto cambió de rumbo a tiempo. A la mañana siguiente, el capitán llevó pan y naranjas a la casa del faro para dar las gracias.",
}

var demoQuestions = []map[string]any{
	{
		"text":         "¿Por qué Marta subió sola al faro?",
		"options":      []string{"Porque su abuelo estaba enfermo", "Porque quería ver la tormenta", "Porque el capitán se lo pidió", "Porque había perdido la linterna"},
		"answer_index": 0,
		"skill":        "comprehension",
		"explanation":  "El texto dice que el abuelo tenía fiebre y no podía levantarse.",
	},
	{
		"text":         "En el texto, ¿qué significa «rumbo»?",
		"options":      []string{"Un tipo de barco", "La dirección que sigue una embarcación", "El ruido de las olas", "Un puerto pequeño"},
		"answer_index": 1,
		"skill":        "vocabulary",
		"explanation":  "El pesquero «cambió de rumbo», es decir, cambió de dirección.",
	},
	{
		"text":         "¿Qué habría pasado si Marta no hubiera encendido la luz?",
		"options":      []string{"El abuelo se habría curado", "La tormenta habría terminado antes", "El pesquero podría haber chocado", "El capitán habría llevado más pan"},
		"answer_index": 2,
		"skill":        "critical-thinking",
		"explanation":  "La luz guiaba a los barcos; sin ella el pesquero no habría corregido su dirección a tiempo.",
	},
	{
		"text":         "¿Qué ocurrió primero?",
		"options":      []string{"El capitán llevó naranjas", "El pesquero cambió de rumbo", "La luz volvió a girar", "La lámpara se apagó"},
		"answer_index": 3,
		"skill":        "logic",
		"explanation":  "La lámpara se apagó antes de que Marta subiera y encendiera la luz.",
	},
	{
		"text":         "¿Cómo se describe mejor a Marta?",
		"options":      []string{"Valiente", "Distraída", "Perezosa", "Miedosa"},
		"answer_index": 0,
		"skill":        "critical-thinking",
		"explanation":  "Subió sola en plena tormenta sin detenerse.",
	},
}
