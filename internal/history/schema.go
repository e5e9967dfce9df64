package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the version schema.sql creates. Bump it together with a
// migrations entry that brings the previous version forward.
const schemaVersion = 2

// migrations[v] upgrades a version v-1 database to version v.
var migrations = map[int]string{
	2: `ALTER TABLE runs ADD COLUMN elapsed_ms INTEGER NOT NULL DEFAULT 0;
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs (status);`,
}

// ErrSchemaMismatch reports a database written by a newer subforge, or one
// no migration path reaches.
var ErrSchemaMismatch = errors.New("schema version mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	var tables int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tables)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tables == 0 {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
				return fmt.Errorf("create schema: %w", err)
			}
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
			return err
		})
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	switch {
	case version == schemaVersion:
		return nil
	case version > schemaVersion:
		return fmt.Errorf("%w: %s has version %d, this build understands up to %d",
			ErrSchemaMismatch, s.path, version, schemaVersion)
	}
	return s.migrate(ctx, version)
}

// migrate applies every step after from in one transaction.
func (s *Store) migrate(ctx context.Context, from int) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for v := from + 1; v <= schemaVersion; v++ {
			stmt, ok := migrations[v]
			if !ok {
				return fmt.Errorf("%w: no migration from version %d to %d (delete %s to recreate it)",
					ErrSchemaMismatch, v-1, v, s.path)
			}
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate to version %d: %w", v, err)
			}
		}
		_, err := tx.ExecContext(ctx, "UPDATE schema_version SET version = ?", schemaVersion)
		return err
	})
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
