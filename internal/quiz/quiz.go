// Package quiz ties passage generation, scoring and the progress log into
// the start and submit steps of one reading attempt.
package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lectora/internal/progress"
	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/scoring"
	"github.com/abhisek/lectora/internal/store"
)

var (
	// ErrAlreadySubmitted is returned when a quiz is submitted twice.
	ErrAlreadySubmitted = store.ErrAlreadySubmitted

	// ErrForbidden is returned when a user submits someone else's quiz.
	ErrForbidden = errors.New("quiz belongs to another user")
)

// Quiz is a generated passage with its questions.
type Quiz struct {
	ID          string
	Email       string
	Level       reading.Level
	Passage     reading.Passage
	Questions   []reading.Question
	CreatedAt   time.Time
	SubmittedAt *time.Time
}

// Key returns the answer key derived from the questions.
func (q *Quiz) Key() []string {
	return scoring.AnswerKey(q.Questions)
}

// Outcome is what a student sees after submitting.
type Outcome struct {
	Result       scoring.Result
	Answers      []string
	Key          []string
	Explanations []string
	Record       progress.Record
}

// Service runs quizzes.
type Service struct {
	gen     reading.Generator
	quizzes store.QuizRepo

	// Now is overridable for tests.
	Now func() time.Time
}

// NewService creates a quiz Service.
func NewService(gen reading.Generator, quizzes store.QuizRepo) *Service {
	return &Service{gen: gen, quizzes: quizzes, Now: time.Now}
}

// Start generates a passage and its questions for email at level and
// persists the quiz.
func (s *Service) Start(ctx context.Context, email string, level reading.Level) (*Quiz, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("start quiz: invalid level %q", level)
	}

	passage, err := s.gen.GeneratePassage(ctx, level)
	if err != nil {
		return nil, err
	}
	questions, err := s.gen.GenerateQuestions(ctx, passage, level)
	if err != nil {
		return nil, err
	}

	q := &Quiz{
		ID:        uuid.NewString(),
		Email:     email,
		Level:     level,
		Passage:   *passage,
		Questions: questions,
		CreatedAt: s.Now(),
	}

	passageJSON, err := json.Marshal(q.Passage)
	if err != nil {
		return nil, fmt.Errorf("encode passage: %w", err)
	}
	questionsJSON, err := json.Marshal(q.Questions)
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	err = s.quizzes.Save(ctx, &store.QuizRecord{
		ID:            q.ID,
		Email:         q.Email,
		Level:         string(q.Level),
		PassageJSON:   passageJSON,
		QuestionsJSON: questionsJSON,
		CreatedAt:     q.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("save quiz: %w", err)
	}
	return q, nil
}

// Get loads a persisted quiz.
func (s *Service) Get(ctx context.Context, id string) (*Quiz, error) {
	rec, err := s.quizzes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	q := &Quiz{
		ID:          rec.ID,
		Email:       rec.Email,
		Level:       reading.Level(rec.Level),
		CreatedAt:   rec.CreatedAt,
		SubmittedAt: rec.SubmittedAt,
	}
	if err := json.Unmarshal(rec.PassageJSON, &q.Passage); err != nil {
		return nil, fmt.Errorf("decode passage: %w", err)
	}
	if err := json.Unmarshal(rec.QuestionsJSON, &q.Questions); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	return q, nil
}

// Submit scores answers for quiz id on behalf of email, appends the
// progress record and marks the quiz submitted. Answers may be the option
// text, a letter A-D or a 1-based position.
func (s *Service) Submit(ctx context.Context, id, email string, answers []string) (*Outcome, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Email != email {
		return nil, ErrForbidden
	}
	if q.SubmittedAt != nil {
		return nil, ErrAlreadySubmitted
	}

	resolved := scoring.Resolve(answers, q.Questions)
	key := q.Key()
	result := scoring.Score(resolved, key)

	now := s.Now()
	rec := &store.ProgressRecord{
		Email:     email,
		Level:     string(q.Level),
		Score:     result.Correct,
		Total:     result.Total,
		CreatedAt: now,
	}
	if err := s.quizzes.Submit(ctx, id, now, rec); err != nil {
		return nil, err
	}

	explanations := make([]string, len(q.Questions))
	for i, qq := range q.Questions {
		explanations[i] = qq.Explanation
	}
	return &Outcome{
		Result:       result,
		Answers:      resolved,
		Key:          key,
		Explanations: explanations,
		Record: progress.Record{
			ID:        rec.ID,
			Email:     rec.Email,
			Level:     q.Level,
			Score:     rec.Score,
			Total:     rec.Total,
			QuizID:    id,
			CreatedAt: rec.CreatedAt,
		},
	}, nil
}
