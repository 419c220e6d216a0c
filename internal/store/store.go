// Package store keeps attempt history in an in-memory SQLite database
// that lives only as long as the process.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/verte-zerg/keyquill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const memoryDSN = "file::memory:"

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for attempt data.
type Store struct {
	db *sql.DB
}

// OpenMemory opens a private in-memory database and applies migrations.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, errors.Wrap(err, "opening in-memory database")
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database, discarding all history.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			lesson_id TEXT NOT NULL,
			lang TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempt_key_stats (
			attempt_id TEXT NOT NULL,
			char TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			PRIMARY KEY (attempt_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_ended_at ON attempts(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "applying migration")
		}
	}
	return nil
}

// InsertAttempt stores a finished attempt and its per-key counts. An empty
// ID is replaced by a new UUID; the stored ID is returned.
func (s *Store) InsertAttempt(ctx context.Context, stats model.AttemptStats, keys []model.KeyStats) (id string, err error) {
	id = stats.ID
	if id == "" {
		id = uuid.NewString()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO attempts (id, kind, lesson_id, lang, started_at, ended_at, correct, incorrect, duration_ms, wpm, accuracy)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		stats.Kind,
		stats.LessonID,
		stats.Lang,
		stats.StartedAt.UTC().Format(timeLayout),
		stats.EndedAt.UTC().Format(timeLayout),
		stats.Correct,
		stats.Incorrect,
		stats.DurationMs,
		stats.WPM,
		stats.Accuracy,
	)
	if err != nil {
		return "", errors.Wrap(err, "inserting attempt")
	}

	if len(keys) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO attempt_key_stats (attempt_id, char, correct, incorrect) VALUES (?, ?, ?, ?)`)
		if perr != nil {
			err = errors.Wrap(perr, "preparing key stats insert")
			return "", err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ks := range keys {
			if _, err = stmt.ExecContext(ctx, id, ks.Char, ks.Correct, ks.Incorrect); err != nil {
				return "", errors.Wrapf(err, "inserting key stats for %q", ks.Char)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", errors.Wrap(err, "committing attempt")
	}
	return id, nil
}

// GetWeakKeys aggregates key counts over the most recent attempts.
func (s *Store) GetWeakKeys(ctx context.Context, window int, lang string) ([]model.KeyAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent AS (
		SELECT id FROM attempts
		WHERE (? = '' OR lang = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT ks.char, SUM(ks.correct), SUM(ks.incorrect)
	FROM attempt_key_stats ks
	JOIN recent r ON r.id = ks.attempt_id
	GROUP BY ks.char`
	rows, err := s.db.QueryContext(ctx, query, lang, lang, window)
	if err != nil {
		return nil, errors.Wrap(err, "querying weak keys")
	}
	return scanKeyAggregates(rows)
}

// ListAttempts returns attempts matching the filter, oldest first.
func (s *Store) ListAttempts(ctx context.Context, filter model.HistoryFilter) ([]model.AttemptAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, filter.Kind)
	}
	if filter.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, filter.Lang)
	}
	query := fmt.Sprintf(`SELECT id, kind, lesson_id, ended_at, correct, incorrect, duration_ms, wpm, accuracy
		FROM attempts
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying attempts")
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []model.AttemptAggregate
	for rows.Next() {
		var agg model.AttemptAggregate
		var endedAt string
		if err := rows.Scan(&agg.AttemptID, &agg.Kind, &agg.LessonID, &endedAt, &agg.Correct, &agg.Incorrect, &agg.DurationMs, &agg.WPM, &agg.Accuracy); err != nil {
			return nil, errors.Wrap(err, "scanning attempt")
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing ended_at %q", endedAt)
		}
		agg.EndedAt = parsed
		attempts = append(attempts, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating attempts")
	}
	if filter.Last > 0 && len(attempts) > filter.Last {
		attempts = attempts[len(attempts)-filter.Last:]
	}
	return attempts, nil
}

// ListKeyAggregatesForAttempts aggregates key counts across attempts.
func (s *Store) ListKeyAggregatesForAttempts(ctx context.Context, attemptIDs []string) ([]model.KeyAggregate, error) {
	if len(attemptIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(attemptIDs))
	args := make([]any, len(attemptIDs))
	for i, id := range attemptIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT char, SUM(correct), SUM(incorrect)
		FROM attempt_key_stats
		WHERE attempt_id IN (%s)
		GROUP BY char`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying key aggregates")
	}
	return scanKeyAggregates(rows)
}

func scanKeyAggregates(rows *sql.Rows) ([]model.KeyAggregate, error) {
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	var result []model.KeyAggregate
	for rows.Next() {
		var agg model.KeyAggregate
		if err := rows.Scan(&agg.Char, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, errors.Wrap(err, "scanning key aggregate")
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating key aggregates")
	}
	return result, nil
}
