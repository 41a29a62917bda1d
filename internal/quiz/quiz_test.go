package quiz

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lectora/internal/llm"
	"github.com/abhisek/lectora/internal/progress"
	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/scoring"
	"github.com/abhisek/lectora/internal/store"
)

var skills = []reading.Skill{
	reading.SkillComprehension,
	reading.SkillVocabulary,
	reading.SkillCriticalThinking,
	reading.SkillLogic,
	reading.SkillComprehension,
}

func fixtureQuestions() []reading.Question {
	qs := make([]reading.Question, 5)
	for i := range qs {
		qs[i] = reading.Question{
			Text:        fmt.Sprintf("Pregunta %d", i+1),
			Options:     []string{fmt.Sprintf("A%d", i), fmt.Sprintf("B%d", i), fmt.Sprintf("C%d", i), fmt.Sprintf("D%d", i)},
			AnswerIndex: i % 4,
			Skill:       skills[i],
			Explanation: fmt.Sprintf("Porque %d", i),
		}
	}
	return qs
}

type fixture struct {
	svc   *Service
	mock  *llm.MockProvider
	store *store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	mock := llm.NewMockProvider(
		llm.MockJSON(reading.Passage{Title: "El río", Text: "El río cruza la ciudad."}),
		llm.MockJSON(map[string]any{"questions": fixtureQuestions()}),
	)
	gen := reading.New(mock, reading.DefaultConfig())
	return &fixture{svc: NewService(gen, st.Quizzes()), mock: mock, store: st}
}

func TestStart(t *testing.T) {
	f := newFixture(t)
	q, err := f.svc.Start(context.Background(), "ana@example.com", reading.LevelBasic)
	require.NoError(t, err)

	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "El río", q.Passage.Title)
	assert.Len(t, q.Questions, 5)
	assert.Equal(t, 2, f.mock.CallCount())

	loaded, err := f.svc.Get(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Questions, loaded.Questions)
	assert.Equal(t, q.Passage, loaded.Passage)
	assert.Nil(t, loaded.SubmittedAt)
}

func TestStart_InvalidLevel(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Start(context.Background(), "ana@example.com", reading.Level("x"))
	require.Error(t, err)
	assert.Zero(t, f.mock.CallCount())
}

func TestStart_GenerationFails(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer st.Close()

	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: errors.New("bad")}})
	svc := NewService(reading.New(mock, reading.DefaultConfig()), st.Quizzes())

	_, err = svc.Start(context.Background(), "ana@example.com", reading.LevelBasic)
	var invalid *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid))
}

func TestSubmit_Perfect(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q, err := f.svc.Start(ctx, "ana@example.com", reading.LevelIntermediate)
	require.NoError(t, err)

	out, err := f.svc.Submit(ctx, q.ID, "ana@example.com", []string{"A", "B1", "3", "d", "A4"})
	require.NoError(t, err)
	assert.Equal(t, 5, out.Result.Correct)
	assert.Equal(t, scoring.FeedbackPerfect, out.Result.Feedback)
	assert.Equal(t, []string{"A0", "B1", "C2", "D3", "A4"}, out.Key)
	assert.Equal(t, "Porque 0", out.Explanations[0])

	recs, err := progress.NewLog(f.store.Progress()).ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, q.ID, recs[0].QuizID)
	assert.Equal(t, reading.LevelIntermediate, recs[0].Level)
	assert.Equal(t, 5, recs[0].Score)
	assert.Equal(t, recs[0].ID, out.Record.ID)
}

func TestSubmit_PartialAndMissing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q, err := f.svc.Start(ctx, "ana@example.com", reading.LevelBasic)
	require.NoError(t, err)

	out, err := f.svc.Submit(ctx, q.ID, "ana@example.com", []string{"A0", "zzz"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Result.Correct)
	assert.Equal(t, 5, out.Result.Total)
	assert.Equal(t, scoring.FeedbackRetry, out.Result.Feedback)
}

func TestSubmit_Twice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q, err := f.svc.Start(ctx, "ana@example.com", reading.LevelBasic)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, q.ID, "ana@example.com", nil)
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, q.ID, "ana@example.com", nil)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	recs, err := f.store.Progress().List(ctx, store.QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestSubmit_OtherUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	q, err := f.svc.Start(ctx, "ana@example.com", reading.LevelBasic)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, q.ID, "ben@example.com", nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmit_Unknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Submit(context.Background(), "missing", "ana@example.com", nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSubmit_UsesClock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fixed := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	f.svc.Now = func() time.Time { return fixed }

	q, err := f.svc.Start(ctx, "ana@example.com", reading.LevelBasic)
	require.NoError(t, err)
	out, err := f.svc.Submit(ctx, q.ID, "ana@example.com", nil)
	require.NoError(t, err)
	assert.True(t, out.Record.CreatedAt.Equal(fixed))

	loaded, err := f.svc.Get(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.SubmittedAt)
	assert.True(t, loaded.SubmittedAt.Equal(fixed))
}
