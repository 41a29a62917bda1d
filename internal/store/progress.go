package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type progressRepo struct {
	s *Store
}

var progressColumns = []string{"id", "email", "level", "score", "total", "quiz_id", "created_at"}

func (r *progressRepo) Append(ctx context.Context, rec *ProgressRecord) error {
	return r.s.insertProgress(ctx, r.s.db, rec)
}

func (r *progressRepo) List(ctx context.Context, opts QueryOpts) ([]ProgressRecord, error) {
	b := r.s.builder()
	sel := b.Select(progressColumns...).
		From(b.Table("progress")).
		OrderBy("created_at", "id")
	if opts.Email != "" {
		sel = sel.Where(entsql.EQ("email", opts.Email))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []ProgressRecord
	for rows.Next() {
		var (
			rec     ProgressRecord
			created int64
		)
		if err := rows.Scan(&rec.ID, &rec.Email, &rec.Level, &rec.Score, &rec.Total, &rec.QuizID, &created); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		rec.CreatedAt = fromMillis(created)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// insertProgress writes rec through ex and fills in its ID. Postgres has no
// LastInsertId through pgx, so the id comes back via RETURNING there.
func (s *Store) insertProgress(ctx context.Context, ex execer, rec *ProgressRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	ins := s.builder().Insert("progress").
		Columns("email", "level", "score", "total", "quiz_id", "created_at").
		Values(rec.Email, rec.Level, rec.Score, rec.Total, rec.QuizID, toMillis(rec.CreatedAt))

	if s.dialect == dialect.Postgres {
		query, args := ins.Returning("id").Query()
		if err := ex.QueryRowContext(ctx, query, args...).Scan(&rec.ID); err != nil {
			return fmt.Errorf("insert progress: %w", err)
		}
		return nil
	}

	query, args := ins.Query()
	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert progress: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("progress id: %w", err)
	}
	rec.ID = id
	return nil
}
