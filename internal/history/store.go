package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"subforge/internal/config"
)

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = "id, run_id, source_path, sha256, bytes, encoding, method, score, language, cues, skipped, repairs, dropped, status, error_message, output_path, report_json, elapsed_ms, created_at"

// Open connects to the history database named by the configuration.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil || strings.TrimSpace(cfg.Paths.HistoryPath) == "" {
		return nil, errors.New("history path is not configured")
	}
	return OpenPath(cfg.Paths.HistoryPath)
}

// OpenPath initializes or connects to the database at path.
func OpenPath(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts run and returns its row id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if strings.TrimSpace(run.RunID) == "" {
		return 0, errors.New("record run: run id is required")
	}
	if run.Status == "" {
		return 0, errors.New("record run: status is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			`INSERT INTO runs (
                run_id, source_path, sha256, bytes, encoding, method, score, language,
                cues, skipped, repairs, dropped, status, error_message, output_path,
                report_json, elapsed_ms, created_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID,
			run.SourcePath,
			nullString(run.SHA256),
			run.Bytes,
			nullString(run.Encoding),
			nullString(run.Method),
			run.Score,
			nullString(run.Language),
			run.Cues,
			run.Skipped,
			run.Repairs,
			run.Dropped,
			string(run.Status),
			nullString(run.ErrorMessage),
			nullString(run.OutputPath),
			nullString(run.ReportJSON),
			run.ElapsedMS,
			run.CreatedAt.UTC().Format(timeLayout),
		)
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return res.LastInsertId()
}

// List returns the most recent runs first. limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.queryRuns(ctx, query, args...)
}

// FindBySHA256 returns earlier runs over identical bytes, most recent first.
func (s *Store) FindBySHA256(ctx context.Context, sha string) ([]Run, error) {
	return s.queryRuns(ctx,
		"SELECT "+runColumns+" FROM runs WHERE sha256 = ? ORDER BY created_at DESC, id DESC", sha)
}

// Stats returns a count of runs grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM runs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("history stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// Prune deletes runs recorded before cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`,
			cutoff.UTC().Format(timeLayout))
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run          Run
		sha          sql.NullString
		encoding     sql.NullString
		method       sql.NullString
		score        sql.NullFloat64
		language     sql.NullString
		status       string
		errorMessage sql.NullString
		outputPath   sql.NullString
		reportJSON   sql.NullString
		createdRaw   string
	)
	if err := scanner.Scan(
		&run.ID,
		&run.RunID,
		&run.SourcePath,
		&sha,
		&run.Bytes,
		&encoding,
		&method,
		&score,
		&language,
		&run.Cues,
		&run.Skipped,
		&run.Repairs,
		&run.Dropped,
		&status,
		&errorMessage,
		&outputPath,
		&reportJSON,
		&run.ElapsedMS,
		&createdRaw,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.SHA256 = sha.String
	run.Encoding = encoding.String
	run.Method = method.String
	run.Score = score.Float64
	run.Language = language.String
	run.Status = Status(status)
	run.ErrorMessage = errorMessage.String
	run.OutputPath = outputPath.String
	run.ReportJSON = reportJSON.String
	if parsed, err := time.Parse(timeLayout, createdRaw); err == nil {
		run.CreatedAt = parsed
	}
	return run, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := range busyRetryAttempts {
		lastErr = op()
		if lastErr == nil || !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay = min(delay*2, busyRetryMaxBackoff)
	}
	return lastErr
}
