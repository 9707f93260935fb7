package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/symptom-triage-server/internal/domain"
)

// SymptomCheckRepository persists symptom checks in PostgreSQL
type SymptomCheckRepository struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewSymptomCheckRepository creates a new PostgreSQL symptom check repository
func NewSymptomCheckRepository(db *pgxpool.Pool, logger *logrus.Logger) *SymptomCheckRepository {
	return &SymptomCheckRepository{
		db:  db,
		log: logger,
	}
}

const symptomCheckColumns = `id::text, patient_id, symptoms, severity_level, duration, result, status, created_at`

// Create inserts a new symptom check
func (r *SymptomCheckRepository) Create(ctx context.Context, check *domain.SymptomCheck) error {
	row, err := encodeRow(check)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO symptom_checks (
			id, patient_id, symptoms, severity_level, duration,
			result, urgency_score, top_condition, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)`

	_, err = r.db.Exec(ctx, query,
		check.ID,
		check.PatientID,
		row.symptoms,
		check.SeverityLevel,
		check.Duration,
		row.result,
		check.UrgencyScore(),
		check.Result.TopCondition(),
		string(check.Status),
		check.CreatedAt,
	)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"symptom_check_id": check.ID,
			"patient_id":       check.PatientID,
			"error":            err,
		}).Error("Failed to create symptom check")
		return fmt.Errorf("creating symptom check: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"symptom_check_id": check.ID,
		"urgency_score":    check.UrgencyScore(),
	}).Debug("Symptom check created")

	return nil
}

// GetByID retrieves a symptom check by its ID
func (r *SymptomCheckRepository) GetByID(ctx context.Context, id string) (*domain.SymptomCheck, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("symptom check not found: %w", domain.ErrNotFound)
	}

	query := `SELECT ` + symptomCheckColumns + ` FROM symptom_checks WHERE id = $1`

	check, err := scanSymptomCheck(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("symptom check not found: %w", domain.ErrNotFound)
		}
		r.log.WithFields(logrus.Fields{
			"symptom_check_id": id,
			"error":            err,
		}).Error("Failed to get symptom check by ID")
		return nil, fmt.Errorf("getting symptom check by ID: %w", err)
	}

	return check, nil
}

// ListByPatient returns a patient's symptom checks, newest first
func (r *SymptomCheckRepository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*domain.SymptomCheck, error) {
	query := `
		SELECT ` + symptomCheckColumns + `
		FROM symptom_checks
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"patient_id": patientID,
			"error":      err,
		}).Error("Failed to list symptom checks for patient")
		return nil, fmt.Errorf("listing symptom checks for patient: %w", err)
	}
	return collectRows(rows)
}

// ListRecent returns checks at or above minUrgency, most urgent and newest first
func (r *SymptomCheckRepository) ListRecent(ctx context.Context, minUrgency float64, limit int) ([]*domain.SymptomCheck, error) {
	query := `
		SELECT ` + symptomCheckColumns + `
		FROM symptom_checks
		WHERE urgency_score >= $1
		ORDER BY urgency_score DESC, created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, minUrgency, limit)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"min_urgency": minUrgency,
			"error":       err,
		}).Error("Failed to list recent symptom checks")
		return nil, fmt.Errorf("listing recent symptom checks: %w", err)
	}
	return collectRows(rows)
}

// Close is a no-op; the pool is owned by the caller
func (r *SymptomCheckRepository) Close() error {
	return nil
}

func collectRows(rows pgx.Rows) ([]*domain.SymptomCheck, error) {
	defer rows.Close()

	checks := []*domain.SymptomCheck{}
	for rows.Next() {
		check, err := scanSymptomCheck(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning symptom check: %w", err)
		}
		checks = append(checks, check)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating symptom checks: %w", err)
	}
	return checks, nil
}

func scanSymptomCheck(s rowScanner) (*domain.SymptomCheck, error) {
	var (
		check     domain.SymptomCheck
		symptoms  []byte
		result    []byte
		status    string
		createdAt time.Time
	)
	if err := s.Scan(
		&check.ID,
		&check.PatientID,
		&symptoms,
		&check.SeverityLevel,
		&check.Duration,
		&result,
		&status,
		&createdAt,
	); err != nil {
		return nil, err
	}

	check.Status = domain.SymptomCheckStatus(status)
	check.CreatedAt = createdAt.UTC()
	if err := decodeRow(&check, symptoms, result); err != nil {
		return nil, err
	}
	return &check, nil
}

// rowScanner is satisfied by pgx.Row, pgx.Rows and *sql.Row/*sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

type encodedRow struct {
	symptoms []byte
	result   []byte
}

func encodeRow(check *domain.SymptomCheck) (*encodedRow, error) {
	symptoms := check.Symptoms
	if symptoms == nil {
		symptoms = []domain.Symptom{}
	}
	s, err := json.Marshal(symptoms)
	if err != nil {
		return nil, fmt.Errorf("encoding symptoms: %w", err)
	}

	var res []byte
	if check.Result != nil {
		res, err = json.Marshal(check.Result)
		if err != nil {
			return nil, fmt.Errorf("encoding triage result: %w", err)
		}
	}
	return &encodedRow{symptoms: s, result: res}, nil
}

func decodeRow(check *domain.SymptomCheck, symptoms, result []byte) error {
	if err := json.Unmarshal(symptoms, &check.Symptoms); err != nil {
		return fmt.Errorf("decoding symptoms: %w", err)
	}
	if len(result) > 0 {
		check.Result = &domain.TriageResult{}
		if err := json.Unmarshal(result, check.Result); err != nil {
			return fmt.Errorf("decoding triage result: %w", err)
		}
	}
	return nil
}
