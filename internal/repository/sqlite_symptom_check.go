package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/symptom-triage-server/internal/domain"
)

// SQLiteSymptomCheckRepository persists symptom checks in a local SQLite file
type SQLiteSymptomCheckRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewSQLiteSymptomCheckRepository opens (and if needed creates) the database at dbPath
func NewSQLiteSymptomCheckRepository(dbPath string, logger *logrus.Logger) (*SQLiteSymptomCheckRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteSymptomCheckRepository{db: db, log: logger}, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS symptom_checks (
	id TEXT PRIMARY KEY,
	patient_id TEXT NOT NULL,
	symptoms TEXT NOT NULL,
	severity_level INTEGER NOT NULL,
	duration TEXT NOT NULL DEFAULT '',
	result TEXT,
	urgency_score REAL NOT NULL DEFAULT 0,
	top_condition TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_symptom_checks_patient ON symptom_checks(patient_id, created_at);
CREATE INDEX IF NOT EXISTS idx_symptom_checks_urgency ON symptom_checks(urgency_score, created_at);
`

const sqliteColumns = `id, patient_id, symptoms, severity_level, duration, result, status, created_at`

// Create inserts a new symptom check
func (r *SQLiteSymptomCheckRepository) Create(ctx context.Context, check *domain.SymptomCheck) error {
	row, err := encodeRow(check)
	if err != nil {
		return err
	}

	var result any
	if row.result != nil {
		result = string(row.result)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO symptom_checks (
			id, patient_id, symptoms, severity_level, duration,
			result, urgency_score, top_condition, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		check.ID,
		check.PatientID,
		string(row.symptoms),
		check.SeverityLevel,
		check.Duration,
		result,
		check.UrgencyScore(),
		check.Result.TopCondition(),
		string(check.Status),
		check.CreatedAt.UTC(),
	)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"symptom_check_id": check.ID,
			"error":            err,
		}).Error("Failed to create symptom check")
		return fmt.Errorf("creating symptom check: %w", err)
	}
	return nil
}

// GetByID retrieves a symptom check by its ID
func (r *SQLiteSymptomCheckRepository) GetByID(ctx context.Context, id string) (*domain.SymptomCheck, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sqliteColumns+` FROM symptom_checks WHERE id = ?`, id)

	check, err := scanSQLiteCheck(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("symptom check not found: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("getting symptom check by ID: %w", err)
	}
	return check, nil
}

// ListByPatient returns a patient's symptom checks, newest first
func (r *SQLiteSymptomCheckRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.SymptomCheck, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sqliteColumns+`
		FROM symptom_checks
		WHERE patient_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing symptom checks for patient: %w", err)
	}
	return collectSQLiteRows(rows)
}

// ListRecent returns checks at or above minUrgency, most urgent and newest first
func (r *SQLiteSymptomCheckRepository) ListRecent(ctx context.Context, minUrgency float64, limit int) ([]*domain.SymptomCheck, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+sqliteColumns+`
		FROM symptom_checks
		WHERE urgency_score >= ?
		ORDER BY urgency_score DESC, created_at DESC
		LIMIT ?`, minUrgency, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent symptom checks: %w", err)
	}
	return collectSQLiteRows(rows)
}

// Close closes the database
func (r *SQLiteSymptomCheckRepository) Close() error {
	return r.db.Close()
}

func collectSQLiteRows(rows *sql.Rows) ([]*domain.SymptomCheck, error) {
	defer rows.Close()

	checks := []*domain.SymptomCheck{}
	for rows.Next() {
		check, err := scanSQLiteCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning symptom check: %w", err)
		}
		checks = append(checks, check)
	}
	return checks, rows.Err()
}

func scanSQLiteCheck(s rowScanner) (*domain.SymptomCheck, error) {
	var (
		check    domain.SymptomCheck
		symptoms string
		result   sql.NullString
		status   string
	)
	if err := s.Scan(
		&check.ID,
		&check.PatientID,
		&symptoms,
		&check.SeverityLevel,
		&check.Duration,
		&result,
		&status,
		&check.CreatedAt,
	); err != nil {
		return nil, err
	}

	check.Status = domain.SymptomCheckStatus(status)
	check.CreatedAt = check.CreatedAt.UTC()

	var res []byte
	if result.Valid {
		res = []byte(result.String)
	}
	if err := decodeRow(&check, []byte(symptoms), res); err != nil {
		return nil, err
	}
	return &check, nil
}

// Ping verifies the database file is still usable
func (r *SQLiteSymptomCheckRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
