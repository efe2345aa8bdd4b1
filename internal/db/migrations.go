package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

// migrations is an ordered list of idempotent statements. Applied versions
// are recorded in schema_migrations so each runs once.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS artworks (
		artwork_id   UUID PRIMARY KEY,
		title        TEXT        NOT NULL,
		student_name TEXT        NOT NULL,
		class_name   TEXT        NOT NULL,
		description  TEXT,
		image_url    TEXT        NOT NULL,
		status       TEXT        NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'approved', 'rejected')),
		like_count   BIGINT      NOT NULL DEFAULT 0 CHECK (like_count >= 0),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_artworks_status_created ON artworks (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS comments (
		comment_id UUID PRIMARY KEY,
		artwork_id UUID        NOT NULL REFERENCES artworks(artwork_id) ON DELETE CASCADE,
		parent_id  UUID,
		text       TEXT        NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_artwork_created ON comments (artwork_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS scores (
		score_id   UUID PRIMARY KEY,
		artwork_id UUID        NOT NULL REFERENCES artworks(artwork_id) ON DELETE CASCADE,
		judge_name TEXT        NOT NULL,
		value      INTEGER     NOT NULL CHECK (value BETWEEN 1 AND 100),
		note       TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (artwork_id, judge_name)
	)`,
}

// Migrate applies pending migrations, each inside its own transaction.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	var applied []int
	if err := db.SelectContext(ctx, &applied, `SELECT version FROM schema_migrations`); err != nil {
		return fmt.Errorf("reading schema_migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for i, stmt := range migrations {
		version := i + 1
		if done[version] {
			continue
		}
		if err := apply(ctx, db, version, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", version, err)
		}
		logrus.WithField("version", version).Info("applied migration")
	}
	return nil
}

func apply(ctx context.Context, db *sqlx.DB, version int, stmt string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return err
	}
	return tx.Commit()
}

// Pending returns how many migrations have not been applied yet.
func Pending(ctx context.Context, db *sqlx.DB) (int, error) {
	var exists bool
	if err := db.GetContext(ctx, &exists, `SELECT to_regclass('schema_migrations') IS NOT NULL`); err != nil {
		return 0, err
	}
	if !exists {
		return len(migrations), nil
	}

	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM schema_migrations`); err != nil {
		return 0, err
	}
	return len(migrations) - count, nil
}
