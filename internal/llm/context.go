package llm

import "context"

// Purpose labels which step of a quiz a request belongs to. It is stored
// with every recorded request and drives `lectora llm stats`.
const (
	PurposePassage = "reading-passage"
	PurposeQuiz    = "reading-quiz"

	purposeUnknown = "unknown"
)

type purposeKey struct{}

func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, _ := ctx.Value(purposeKey{}).(string); p != "" {
		return p
	}
	return purposeUnknown
}
