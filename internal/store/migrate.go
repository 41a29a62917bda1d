package store

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
)

// Schema statements are idempotent and run on every Open. Timestamps are
// stored as UTC unix milliseconds so both dialects scan into int64.

var schemaSQLite = []string{
	`CREATE TABLE IF NOT EXISTS users (
		email TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		scheme TEXT NOT NULL DEFAULT 'bcrypt',
		role TEXT NOT NULL DEFAULT 'student',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quizzes (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		level TEXT NOT NULL,
		passage_json TEXT NOT NULL,
		questions_json TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		submitted_at INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL,
		level TEXT NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		quiz_id TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS progress_email ON progress (email)`,
	`CREATE TABLE IF NOT EXISTS llm_requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp INTEGER NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_requests_purpose ON llm_requests (purpose)`,
}

var schemaPostgres = []string{
	`CREATE TABLE IF NOT EXISTS users (
		email TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		scheme TEXT NOT NULL DEFAULT 'bcrypt',
		role TEXT NOT NULL DEFAULT 'student',
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS quizzes (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		level TEXT NOT NULL,
		passage_json TEXT NOT NULL,
		questions_json TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		submitted_at BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL,
		level TEXT NOT NULL,
		score INTEGER NOT NULL,
		total INTEGER NOT NULL,
		quiz_id TEXT NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS progress_email ON progress (email)`,
	`CREATE TABLE IF NOT EXISTS llm_requests (
		id BIGSERIAL PRIMARY KEY,
		timestamp BIGINT NOT NULL,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms BIGINT NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS llm_requests_purpose ON llm_requests (purpose)`,
}

func migrate(ctx context.Context, db *sql.DB, dialectName string) error {
	stmts := schemaSQLite
	if dialectName == dialect.Postgres {
		stmts = schemaPostgres
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}
