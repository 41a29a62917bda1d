package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type userRepo struct {
	s *Store
}

var userColumns = []string{"email", "password_hash", "scheme", "role", "created_at", "updated_at"}

func (r *userRepo) Get(ctx context.Context, email string) (*UserRecord, error) {
	b := r.s.builder()
	query, args := b.Select(userColumns...).
		From(b.Table("users")).
		Where(entsql.EQ("email", email)).
		Query()

	row := r.s.db.QueryRowContext(ctx, query, args...)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *userRepo) Insert(ctx context.Context, u *UserRecord) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}

	query, args := r.s.builder().Insert("users").
		Columns(userColumns...).
		Values(u.Email, string(u.PasswordHash), u.Scheme, u.Role, toMillis(u.CreatedAt), toMillis(u.UpdatedAt)).
		Query()

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %q: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, email string, hash []byte, scheme string) error {
	query, args := r.s.builder().Update("users").
		Set("password_hash", string(hash)).
		Set("scheme", scheme).
		Set("updated_at", toMillis(time.Now())).
		Where(entsql.EQ("email", email)).
		Query()

	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return expectAffected(res, fmt.Sprintf("user %q", email))
}

func (r *userRepo) Delete(ctx context.Context, email string) error {
	query, args := r.s.builder().Delete("users").
		Where(entsql.EQ("email", email)).
		Query()

	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectAffected(res, fmt.Sprintf("user %q", email))
}

func (r *userRepo) List(ctx context.Context) ([]UserRecord, error) {
	b := r.s.builder()
	query, args := b.Select(userColumns...).
		From(b.Table("users")).
		OrderBy("email").
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []UserRecord
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *userRepo) Count(ctx context.Context, role string) (int, error) {
	b := r.s.builder()
	sel := b.Select(entsql.Count("*")).From(b.Table("users"))
	if role != "" {
		sel = sel.Where(entsql.EQ("role", role))
	}
	query, args := sel.Query()

	var n int
	if err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(sc scanner) (*UserRecord, error) {
	var (
		u                UserRecord
		hash             string
		created, updated int64
	)
	if err := sc.Scan(&u.Email, &hash, &u.Scheme, &u.Role, &created, &updated); err != nil {
		return nil, err
	}
	u.PasswordHash = []byte(hash)
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)
	return &u, nil
}

func expectAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
