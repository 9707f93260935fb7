package domain

import (
	"context"
	"time"
)

// TriageEngine scores symptoms against the knowledge base
type TriageEngine interface {
	Analyze(req *SymptomCheckRequest) (*TriageResult, error)
}

// SymptomCheckRepository defines the interface for symptom check persistence
type SymptomCheckRepository interface {
	Create(ctx context.Context, check *SymptomCheck) error
	GetByID(ctx context.Context, id string) (*SymptomCheck, error)
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]*SymptomCheck, error)
	ListRecent(ctx context.Context, minUrgency float64, limit int) ([]*SymptomCheck, error)
	Close() error
}

// ResultCache stores triage results keyed by a canonical request fingerprint
type ResultCache interface {
	Get(ctx context.Context, key string) (*TriageResult, error)
	Set(ctx context.Context, key string, result *TriageResult, ttl time.Duration) error
}

// AlertPublisher receives symptom checks that crossed the alert threshold
type AlertPublisher interface {
	Publish(check *SymptomCheck)
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	Validate() error
	IsProduction() bool
}
