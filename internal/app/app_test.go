package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
)

func sqliteConfig(t *testing.T) *domain.Config {
	t.Helper()
	return &domain.Config{
		Storage: domain.StorageConfig{
			Driver:     domain.StorageSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "data", "triage.db"),
		},
		Cache: domain.CacheConfig{
			Enabled:        true,
			MemoryMaxItems: 10,
			MemoryTTL:      time.Minute,
			DefaultTTL:     time.Minute,
		},
		Alerts: domain.AlertsConfig{Enabled: true, MinUrgency: 3.5},
	}
}

func TestNew_SQLite(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cfg := sqliteConfig(t)

	a, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Repository)
	assert.NotNil(t, a.Feedback)
	assert.NotNil(t, a.Checks)
	assert.NotNil(t, a.Alerts)
	assert.Equal(t, "Application components initialized", hook.LastEntry().Message)

	require.Len(t, a.Health, 1)
	assert.Equal(t, "database", a.Health[0].Name)
	assert.NoError(t, a.Health[0].Check(context.Background()))

	dir := filepath.Dir(cfg.Storage.SQLitePath)
	for _, name := range []string{"triage.db", FeedbackFile, "exports"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	check, err := a.Checks.Submit(context.Background(), &domain.SymptomCheckSubmission{
		PatientID:     "patient-1",
		Symptoms:      []domain.Symptom{{Description: "chest pain"}, {Description: "shortness of breath"}},
		SeverityLevel: 3,
		Duration:      "Less than a day",
	})
	require.NoError(t, err)

	stored, err := a.Repository.GetByID(context.Background(), check.ID)
	require.NoError(t, err)
	assert.Equal(t, check.ID, stored.ID)

	assert.NoError(t, a.Close())
}

func TestNew_AlertsDisabled(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Alerts.Enabled = false
	cfg.Cache.Enabled = false

	a, err := New(context.Background(), cfg, logrus.New())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Alerts)
}

func TestNew_RedisUnavailable(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cfg := sqliteConfig(t)
	cfg.Cache.RedisURL = "redis://127.0.0.1:1/0"

	a, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer a.Close()

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Message == "Redis unavailable, using in-memory cache only" {
			warned = true
		}
	}
	assert.True(t, warned)
	assert.Len(t, a.Health, 1)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Storage.Driver = "mongo"

	_, err := New(context.Background(), cfg, logrus.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage driver")
}

func TestOpenFeedbackStore_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	store, err := OpenFeedbackStore(cfg)
	require.NoError(t, err)
	defer store.Close()

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWarnMissingConditions(t *testing.T) {
	logger, hook := test.NewNullLogger()

	warnMissingConditions(knowledge.Default(), logger)
	assert.Empty(t, hook.AllEntries())

	kb := knowledge.New(knowledge.Tables{
		SymptomConditions: map[string][]knowledge.ConditionAssociation{
			"cough": {{Condition: "Whooping Cough", Likelihood: 0.4}},
		},
	})
	warnMissingConditions(kb, logger)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, []string{"Whooping Cough"}, entry.Data["conditions"])
}
