package progress

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/store"
)

func newLog(t *testing.T) *Log {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewLog(st.Progress())
}

func TestAppendAndReadAll(t *testing.T) {
	ctx := context.Background()
	l := newLog(t)

	rec, err := l.Append(ctx, "ana@example.com", reading.LevelBasic, 4, 5, "q1")
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	_, err = l.Append(ctx, "ben@example.com", reading.LevelAdvanced, 5, 5, "q2")
	require.NoError(t, err)

	all, err := l.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "ana@example.com", all[0].Email)
	assert.Equal(t, reading.LevelBasic, all[0].Level)
	assert.Equal(t, "q1", all[0].QuizID)

	mine, err := l.ForUser(ctx, "ben@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 5, mine[0].Score)
}

func TestAppend_Validation(t *testing.T) {
	ctx := context.Background()
	l := newLog(t)

	_, err := l.Append(ctx, "a@b.c", reading.LevelBasic, 6, 5, "")
	assert.Error(t, err)
	_, err = l.Append(ctx, "a@b.c", reading.LevelBasic, -1, 5, "")
	assert.Error(t, err)
	_, err = l.Append(ctx, "a@b.c", reading.LevelBasic, 0, 0, "")
	assert.Error(t, err)
	_, err = l.Append(ctx, "a@b.c", reading.Level("Básico"), 1, 5, "")
	assert.Error(t, err)

	all, err := l.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSummarize(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	recs := []Record{
		{Email: "b@x.io", Level: reading.LevelBasic, Score: 2, Total: 5, CreatedAt: t0},
		{Email: "a@x.io", Level: reading.LevelAdvanced, Score: 3, Total: 5, CreatedAt: t0},
		{Email: "a@x.io", Level: reading.LevelBasic, Score: 5, Total: 5, CreatedAt: t0.Add(time.Hour)},
		{Email: "a@x.io", Level: reading.LevelBasic, Score: 2, Total: 5, CreatedAt: t0.Add(2 * time.Hour)},
		{Email: "a@x.io", Level: reading.LevelBasic, Score: 2, Total: 5, CreatedAt: t0},
	}

	got := Summarize(recs)
	require.Len(t, got, 3)

	assert.Equal(t, "a@x.io", got[0].Email)
	assert.Equal(t, reading.LevelBasic, got[0].Level)
	assert.Equal(t, 3, got[0].Attempts)
	assert.Equal(t, 5, got[0].Best)
	assert.InDelta(t, 3.0, got[0].Average, 1e-9)
	assert.Equal(t, t0.Add(2*time.Hour), got[0].Last)

	assert.Equal(t, reading.LevelAdvanced, got[1].Level)
	assert.Equal(t, "b@x.io", got[2].Email)
	assert.Equal(t, 1, got[2].Attempts)
}

func TestSummary_FromStore(t *testing.T) {
	ctx := context.Background()
	l := newLog(t)
	for _, s := range []int{1, 4, 3} {
		_, err := l.Append(ctx, "ana@example.com", reading.LevelIntermediate, s, 5, "")
		require.NoError(t, err)
	}

	sum, err := l.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, sum, 1)
	assert.Equal(t, 3, sum[0].Attempts)
	assert.Equal(t, 4, sum[0].Best)
	assert.InDelta(t, 8.0/3.0, sum[0].Average, 1e-9)
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	l := newLog(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, l.AppendAt(ctx, "ana@example.com", reading.LevelBasic, 3, 5, at))

	var buf bytes.Buffer
	require.NoError(t, l.ExportCSV(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "email,level,score,total,created_at", lines[0])
	assert.Equal(t, "ana@example.com,basic,3,5,2026-01-02T03:04:05Z", lines[1])
}

func TestExportCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newLog(t).ExportCSV(context.Background(), &buf))
	assert.Equal(t, "email,level,score,total,created_at\n", buf.String())
}
