package store

import (
	"context"
	"time"
)

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit int    // max results (0 = unlimited)
	Email string // restrict to one user ("" = all)
}

// UserRecord is a row of the users table.
type UserRecord struct {
	Email        string
	PasswordHash []byte
	Scheme       string // "bcrypt" or "sha256" (legacy import)
	Role         string // "student" or "admin"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepo manages user credentials.
type UserRepo interface {
	// Get returns the user with the given email or ErrNotFound.
	Get(ctx context.Context, email string) (*UserRecord, error)

	// Insert adds a user. Returns ErrDuplicate if the email is taken.
	Insert(ctx context.Context, u *UserRecord) error

	// UpdatePassword replaces the stored hash and scheme.
	// Returns ErrNotFound if no row matched.
	UpdatePassword(ctx context.Context, email string, hash []byte, scheme string) error

	// Delete removes the user. Returns ErrNotFound if no row matched.
	Delete(ctx context.Context, email string) error

	// List returns all users ordered by email.
	List(ctx context.Context) ([]UserRecord, error)

	// Count returns the number of users with the given role ("" = all).
	Count(ctx context.Context, role string) (int, error)
}

// ProgressRecord is one scored attempt in the append-only progress log.
type ProgressRecord struct {
	ID        int64
	Email     string
	Level     string
	Score     int
	Total     int
	QuizID    string
	CreatedAt time.Time
}

// ProgressRepo provides append and read access to the progress log.
// There is deliberately no update or delete.
type ProgressRepo interface {
	// Append records a new attempt.
	Append(ctx context.Context, rec *ProgressRecord) error

	// List returns records oldest first.
	List(ctx context.Context, opts QueryOpts) ([]ProgressRecord, error)
}

// QuizRecord is a generated quiz awaiting (or after) submission.
type QuizRecord struct {
	ID            string
	Email         string
	Level         string
	PassageJSON   []byte
	QuestionsJSON []byte
	CreatedAt     time.Time
	SubmittedAt   *time.Time
}

// QuizRepo persists generated quizzes between the start and submit steps.
type QuizRepo interface {
	// Save stores a new quiz.
	Save(ctx context.Context, q *QuizRecord) error

	// Get returns the quiz or ErrNotFound.
	Get(ctx context.Context, id string) (*QuizRecord, error)

	// Submit marks the quiz submitted and appends the progress record in
	// one transaction. Returns ErrAlreadySubmitted if it was submitted
	// before, ErrNotFound if it does not exist.
	Submit(ctx context.Context, id string, at time.Time, rec *ProgressRecord) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStat aggregates token usage for one grouping key.
type LLMUsageStat struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns the most recent events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStat, error)
}
