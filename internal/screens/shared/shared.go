// Package shared holds the services and session state every screen reads.
package shared

import (
	"context"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectora/internal/accounts"
	"github.com/abhisek/lectora/internal/progress"
	"github.com/abhisek/lectora/internal/quiz"
	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/ui/theme"
)

// Accounts is the credential store as the TUI uses it.
type Accounts interface {
	Verify(ctx context.Context, email, password string) (*accounts.User, error)
	Create(ctx context.Context, email string, role accounts.Role) (string, error)
	SetPassword(ctx context.Context, email, password string) error
	ResetPassword(ctx context.Context, email string) (string, error)
	Delete(ctx context.Context, email string) error
	List(ctx context.Context) ([]accounts.User, error)
}

// Quizzes starts and scores quiz attempts.
type Quizzes interface {
	Start(ctx context.Context, email string, level reading.Level) (*quiz.Quiz, error)
	Submit(ctx context.Context, id, email string, answers []string) (*quiz.Outcome, error)
}

// Progress reads the progress log.
type Progress interface {
	ForUser(ctx context.Context, email string) ([]progress.Record, error)
	Summary(ctx context.Context) ([]progress.UserSummary, error)
}

// Env is shared by all screens of one program run. User is nil until
// someone logs in.
type Env struct {
	Accounts Accounts
	Quizzes  Quizzes
	Progress Progress
	Lang     string

	// GenerateTimeout bounds one quiz generation. Zero means three minutes.
	GenerateTimeout time.Duration

	User *accounts.User
}

// Context returns a context bounded by the generation timeout.
func (e *Env) Context() (context.Context, context.CancelFunc) {
	d := e.GenerateTimeout
	if d <= 0 {
		d = 3 * time.Minute
	}
	return context.WithTimeout(context.Background(), d)
}

// SignedIn reports whether a user is logged in.
func (e *Env) SignedIn() bool {
	return e != nil && e.User != nil
}

// ErrorView renders a centered error with a hint underneath.
func ErrorView(msg, hint string, width, height int) string {
	body := theme.ErrorText.Render(msg)
	if hint != "" {
		body += "\n\n" + theme.Hint.Render(hint)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
