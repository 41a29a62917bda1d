// Package progress is the append-only log of scored reading attempts.
package progress

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/abhisek/lectora/internal/reading"
	"github.com/abhisek/lectora/internal/store"
)

// Record is one scored attempt.
type Record struct {
	ID        int64
	Email     string
	Level     reading.Level
	Score     int
	Total     int
	QuizID    string
	CreatedAt time.Time
}

// UserSummary aggregates one user's attempts at one level.
type UserSummary struct {
	Email    string
	Level    reading.Level
	Attempts int
	Best     int
	Total    int
	Average  float64
	Last     time.Time
}

// Log reads and appends progress records.
type Log struct {
	repo store.ProgressRepo
}

// NewLog creates a Log backed by repo.
func NewLog(repo store.ProgressRepo) *Log {
	return &Log{repo: repo}
}

// Append records an attempt. Score must lie in [0, total] and total must be
// positive.
func (l *Log) Append(ctx context.Context, email string, level reading.Level, score, total int, quizID string) (*Record, error) {
	if err := checkRange(score, total); err != nil {
		return nil, err
	}
	if !level.Valid() {
		return nil, fmt.Errorf("append progress: invalid level %q", level)
	}
	rec := &store.ProgressRecord{
		Email:  email,
		Level:  string(level),
		Score:  score,
		Total:  total,
		QuizID: quizID,
	}
	if err := l.repo.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("append progress: %w", err)
	}
	r := fromStore(*rec)
	return &r, nil
}

// AppendAt is Append with an explicit timestamp, used by imports.
func (l *Log) AppendAt(ctx context.Context, email string, level reading.Level, score, total int, at time.Time) error {
	if err := checkRange(score, total); err != nil {
		return err
	}
	rec := &store.ProgressRecord{
		Email:     email,
		Level:     string(level),
		Score:     score,
		Total:     total,
		CreatedAt: at,
	}
	if err := l.repo.Append(ctx, rec); err != nil {
		return fmt.Errorf("append progress: %w", err)
	}
	return nil
}

// ReadAll returns every record, oldest first.
func (l *Log) ReadAll(ctx context.Context) ([]Record, error) {
	return l.list(ctx, store.QueryOpts{})
}

// ForUser returns one user's records, oldest first.
func (l *Log) ForUser(ctx context.Context, email string) ([]Record, error) {
	return l.list(ctx, store.QueryOpts{Email: email})
}

func (l *Log) list(ctx context.Context, opts store.QueryOpts) ([]Record, error) {
	recs, err := l.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	out := make([]Record, len(recs))
	for i, r := range recs {
		out[i] = fromStore(r)
	}
	return out, nil
}

// Summary aggregates all records per user and level, ordered by email and
// then level difficulty.
func (l *Log) Summary(ctx context.Context) ([]UserSummary, error) {
	recs, err := l.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(recs), nil
}

type summaryKey struct {
	email string
	level reading.Level
}

// Summarize aggregates recs per user and level.
func Summarize(recs []Record) []UserSummary {
	sums := make(map[summaryKey]*UserSummary)
	scoreSum := make(map[summaryKey]int)

	for _, r := range recs {
		k := summaryKey{r.Email, r.Level}
		s, ok := sums[k]
		if !ok {
			s = &UserSummary{Email: r.Email, Level: r.Level, Best: r.Score, Total: r.Total}
			sums[k] = s
		}
		s.Attempts++
		scoreSum[k] += r.Score
		if r.Score > s.Best {
			s.Best = r.Score
		}
		if !r.CreatedAt.Before(s.Last) {
			s.Last = r.CreatedAt
			s.Total = r.Total
		}
	}

	out := make([]UserSummary, 0, len(sums))
	for k, s := range sums {
		s.Average = float64(scoreSum[k]) / float64(s.Attempts)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Email != out[j].Email {
			return out[i].Email < out[j].Email
		}
		return levelRank(out[i].Level) < levelRank(out[j].Level)
	})
	return out
}

// CSVHeader is the header row written by ExportCSV.
var CSVHeader = []string{"email", "level", "score", "total", "created_at"}

// ExportCSV writes every record to w with CSVHeader, timestamps in RFC 3339.
func (l *Log) ExportCSV(ctx context.Context, w io.Writer) error {
	recs, err := l.ReadAll(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, recs)
}

// WriteCSV writes recs to w in the export format.
func WriteCSV(w io.Writer, recs []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, r := range recs {
		row := []string{
			r.Email,
			string(r.Level),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Total),
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func checkRange(score, total int) error {
	if total <= 0 {
		return fmt.Errorf("total must be positive, got %d", total)
	}
	if score < 0 || score > total {
		return fmt.Errorf("score %d out of range [0, %d]", score, total)
	}
	return nil
}

func levelRank(l reading.Level) int {
	for i, lv := range reading.AllLevels {
		if lv == l {
			return i
		}
	}
	return len(reading.AllLevels)
}

func fromStore(r store.ProgressRecord) Record {
	return Record{
		ID:        r.ID,
		Email:     r.Email,
		Level:     reading.Level(r.Level),
		Score:     r.Score,
		Total:     r.Total,
		QuizID:    r.QuizID,
		CreatedAt: r.CreatedAt,
	}
}
