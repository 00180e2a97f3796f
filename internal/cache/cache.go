// Package cache remembers files that passed every check, so unchanged
// files can be skipped on the next run, and keeps a history of runs.
//
// Entries are only valid for the configuration they were recorded under:
// Sync clears them whenever the configuration hash changes.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/leapstack-labs/leapcheck/pkg/core"
	"github.com/leapstack-labs/leapcheck/pkg/lint"
)

var errNotOpen = errors.New("database not opened")

const configHashKey = "config_hash"

// Store is a SQLite backed lint.Cache.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

var _ lint.Cache = (*Store)(nil)

// Open opens or creates the database at path and migrates it. Use
// ":memory:" for a throwaway cache.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	if path == ":memory:" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one writer at a time; workers share the connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db, logger), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Sync drops every clean entry when configHash differs from the one the
// entries were recorded under.
func (s *Store) Sync(ctx context.Context, configHash string) error {
	if s.db == nil {
		return errNotOpen
	}
	var stored string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, configHashKey).Scan(&stored)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("failed to read config hash: %w", err)
	case stored == configHash:
		return nil
	}

	s.logger.Debug("configuration changed, clearing cache", slog.String("hash", configHash))
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clean_files`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		configHashKey, configHash,
	); err != nil {
		return fmt.Errorf("failed to store config hash: %w", err)
	}
	return tx.Commit()
}

// IsClean reports whether path was clean with exactly this content.
func (s *Store) IsClean(ctx context.Context, path, contentHash string) (bool, error) {
	if s.db == nil {
		return false, errNotOpen
	}
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM clean_files WHERE path = ? AND content_hash = ?`, path, contentHash,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up %s: %w", path, err)
	}
	return true, nil
}

// MarkClean records that path had no violations with this content.
func (s *Store) MarkClean(ctx context.Context, path, contentHash string) error {
	if s.db == nil {
		return errNotOpen
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO clean_files (path, content_hash, checked_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET content_hash = excluded.content_hash, checked_at = excluded.checked_at`,
		path, contentHash, s.now(),
	)
	if err != nil {
		return fmt.Errorf("failed to mark %s clean: %w", path, err)
	}
	return nil
}

// Forget removes path from the cache.
func (s *Store) Forget(ctx context.Context, path string) error {
	if s.db == nil {
		return errNotOpen
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM clean_files WHERE path = ?`, path)
	return err
}

// --- Run history ---

// BeginRun records the start of a run.
func (s *Store) BeginRun(ctx context.Context, configHash string) (*core.Run, error) {
	if s.db == nil {
		return nil, errNotOpen
	}
	run := &core.Run{
		ID:         uuid.New().String(),
		ConfigHash: configHash,
		Status:     core.RunStatusRunning,
		StartedAt:  s.now(),
	}
	s.logger.Debug("creating run", slog.String("id", run.ID))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, config_hash, status, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.ConfigHash, run.Status, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return run, nil
}

// FinishRun completes run with the outcome of report, or with runErr when
// the run failed.
func (s *Store) FinishRun(ctx context.Context, run *core.Run, report *lint.Report, runErr error) error {
	if s.db == nil {
		return errNotOpen
	}
	now := s.now()
	run.CompletedAt = &now
	run.Status = core.RunStatusCompleted
	if runErr != nil {
		run.Status = core.RunStatusFailed
		run.Error = runErr.Error()
	}
	if report != nil {
		run.Files = len(report.Files)
		run.Skipped = report.SkippedCount()
		run.Violations = len(report.Violations())
	}

	var errMsg sql.NullString
	if run.Error != "" {
		errMsg = sql.NullString{String: run.Error, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, completed_at = ?, files = ?, skipped = ?, violations = ?, error = ? WHERE id = ?`,
		run.Status, now, run.Files, run.Skipped, run.Violations, errMsg, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]core.Run, error) {
	if s.db == nil {
		return nil, errNotOpen
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, config_hash, status, started_at, completed_at, files, skipped, violations, error
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []core.Run
	for rows.Next() {
		var (
			run         core.Run
			completedAt sql.NullTime
			errMsg      sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.ConfigHash, &run.Status, &run.StartedAt, &completedAt,
			&run.Files, &run.Skipped, &run.Violations, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			run.CompletedAt = &t
		}
		run.Error = errMsg.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
