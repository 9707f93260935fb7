package feedback

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite feedback store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets the HTTP server and the CLI share the file
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

const selectColumns = `id, symptom_check_id, reviewer_id, suggested_urgency, suggested_condition,
	clinician_urgency, confirmed_condition, agreed, notes, created_at, updated_at`

func scanFeedback(s scanner) (*Feedback, error) {
	fb := &Feedback{}
	err := s.Scan(
		&fb.ID, &fb.SymptomCheckID, &fb.ReviewerID, &fb.SuggestedUrgency, &fb.SuggestedCondition,
		&fb.ClinicianUrgency, &fb.ConfirmedCondition, &fb.Agreed, &fb.Notes,
		&fb.CreatedAt, &fb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return fb, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS clinician_feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symptom_check_id TEXT NOT NULL,
		reviewer_id TEXT NOT NULL,
		suggested_urgency REAL NOT NULL DEFAULT 0,
		suggested_condition TEXT NOT NULL DEFAULT '',
		clinician_urgency REAL NOT NULL,
		confirmed_condition TEXT NOT NULL DEFAULT '',
		agreed INTEGER NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(symptom_check_id, reviewer_id)
	);

	CREATE INDEX IF NOT EXISTS idx_feedback_check ON clinician_feedback(symptom_check_id);
	CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON clinician_feedback(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Save stores or updates a clinician review.
func (s *SQLiteStore) Save(ctx context.Context, feedback *Feedback) error {
	if err := feedback.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()

	var existingID int64
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT id, created_at FROM clinician_feedback WHERE symptom_check_id = ? AND reviewer_id = ?",
		feedback.SymptomCheckID, feedback.ReviewerID,
	).Scan(&existingID, &createdAt)

	if err == nil {
		feedback.ID = existingID
		feedback.CreatedAt = createdAt
		feedback.UpdatedAt = now

		_, err = s.db.ExecContext(ctx, `
			UPDATE clinician_feedback SET
				suggested_urgency = ?,
				suggested_condition = ?,
				clinician_urgency = ?,
				confirmed_condition = ?,
				agreed = ?,
				notes = ?,
				updated_at = ?
			WHERE id = ?
		`,
			feedback.SuggestedUrgency,
			feedback.SuggestedCondition,
			feedback.ClinicianUrgency,
			feedback.ConfirmedCondition,
			feedback.Agreed,
			feedback.Notes,
			now,
			existingID,
		)
		if err != nil {
			return fmt.Errorf("failed to update: %w", err)
		}
		return nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check existing: %w", err)
	}

	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = now
	}
	feedback.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO clinician_feedback (
			symptom_check_id, reviewer_id, suggested_urgency, suggested_condition,
			clinician_urgency, confirmed_condition, agreed, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		feedback.SymptomCheckID,
		feedback.ReviewerID,
		feedback.SuggestedUrgency,
		feedback.SuggestedCondition,
		feedback.ClinicianUrgency,
		feedback.ConfirmedCondition,
		feedback.Agreed,
		feedback.Notes,
		feedback.CreatedAt,
		feedback.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert ID: %w", err)
	}
	feedback.ID = id

	return nil
}

// Get retrieves one reviewer's feedback for a check.
func (s *SQLiteStore) Get(ctx context.Context, symptomCheckID, reviewerID string) (*Feedback, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+selectColumns+`
		FROM clinician_feedback
		WHERE symptom_check_id = ? AND reviewer_id = ?
	`, symptomCheckID, reviewerID)

	fb, err := scanFeedback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return fb, nil
}

// ListForCheck returns every review of a check.
func (s *SQLiteStore) ListForCheck(ctx context.Context, symptomCheckID string) ([]*Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM clinician_feedback
		WHERE symptom_check_id = ?
		ORDER BY created_at ASC, id ASC
	`, symptomCheckID)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	return collect(rows)
}

// List returns all feedback entries with pagination.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM clinician_feedback
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	return collect(rows)
}

func collect(rows *sql.Rows) ([]*Feedback, error) {
	defer rows.Close()

	var result []*Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}

// Count returns the total number of feedback entries.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clinician_feedback").Scan(&count)
	return count, err
}

// Stats returns agreement statistics.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	var total, agreed int64
	var deltaSum float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN agreed THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(clinician_urgency - suggested_urgency), 0)
		FROM clinician_feedback
	`).Scan(&total, &agreed, &deltaSum)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}
	return buildStats(total, agreed, deltaSum), nil
}

// Delete removes a feedback entry by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM clinician_feedback WHERE id = ?", id)
	return err
}

// ExportJSON exports all feedback to a JSON writer.
func (s *SQLiteStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return exportJSON(ctx, s, writer)
}

// ImportJSON imports feedback from a JSON reader.
func (s *SQLiteStore) ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error) {
	return importJSON(ctx, s, reader)
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
