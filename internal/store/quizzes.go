package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type quizRepo struct {
	s *Store
}

func (r *quizRepo) Save(ctx context.Context, q *QuizRecord) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	query, args := r.s.builder().Insert("quizzes").
		Columns("id", "email", "level", "passage_json", "questions_json", "created_at").
		Values(q.ID, q.Email, q.Level, string(q.PassageJSON), string(q.QuestionsJSON), toMillis(q.CreatedAt)).
		Query()

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("quiz %s: %w", q.ID, ErrDuplicate)
		}
		return fmt.Errorf("save quiz: %w", err)
	}
	return nil
}

func (r *quizRepo) Get(ctx context.Context, id string) (*QuizRecord, error) {
	b := r.s.builder()
	query, args := b.Select("id", "email", "level", "passage_json", "questions_json", "created_at", "submitted_at").
		From(b.Table("quizzes")).
		Where(entsql.EQ("id", id)).
		Query()

	var (
		q                  QuizRecord
		passage, questions string
		created            int64
		submitted          sql.NullInt64
	)
	err := r.s.db.QueryRowContext(ctx, query, args...).
		Scan(&q.ID, &q.Email, &q.Level, &passage, &questions, &created, &submitted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("quiz %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	q.PassageJSON = []byte(passage)
	q.QuestionsJSON = []byte(questions)
	q.CreatedAt = fromMillis(created)
	if submitted.Valid {
		t := fromMillis(submitted.Int64)
		q.SubmittedAt = &t
	}
	return &q, nil
}

func (r *quizRepo) Submit(ctx context.Context, id string, at time.Time, rec *ProgressRecord) error {
	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	query, args := r.s.builder().Update("quizzes").
		Set("submitted_at", toMillis(at)).
		Where(entsql.And(entsql.EQ("id", id), entsql.IsNull("submitted_at"))).
		Query()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("mark submitted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		// Distinguish a missing quiz from a repeated submit.
		b := r.s.builder()
		q, a := b.Select(entsql.Count("*")).
			From(b.Table("quizzes")).
			Where(entsql.EQ("id", id)).
			Query()
		var exists int
		if err := tx.QueryRowContext(ctx, q, a...).Scan(&exists); err != nil {
			return fmt.Errorf("check quiz: %w", err)
		}
		if exists == 0 {
			return fmt.Errorf("quiz %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("quiz %s: %w", id, ErrAlreadySubmitted)
	}

	rec.QuizID = id
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = at
	}
	if err := r.s.insertProgress(ctx, tx, rec); err != nil {
		return err
	}
	return tx.Commit()
}
