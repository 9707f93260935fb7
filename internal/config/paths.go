package config

import (
	"os"
	"path/filepath"
)

// DataDirEnv overrides the local data directory used by standalone tools
const DataDirEnv = "TRIAGE_DATA_DIR"

// DefaultDataDir returns the directory holding local SQLite files and exports.
// It honours TRIAGE_DATA_DIR and otherwise uses ~/.symptom-triage.
func DefaultDataDir() string {
	if v := os.Getenv(DataDirEnv); v != "" {
		return v
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".symptom-triage"
	}
	return filepath.Join(homeDir, ".symptom-triage")
}

// DefaultDatabasePath is the SQLite file used when no path is configured
func DefaultDatabasePath() string {
	return filepath.Join(DefaultDataDir(), "triage.db")
}

// ExportDir returns the directory for JSON exports under dataDir
func ExportDir(dataDir string) string {
	return filepath.Join(dataDir, "exports")
}

// EnsureDataDir creates the parent directory of a SQLite file and the export dir
func EnsureDataDir(sqlitePath string) error {
	dir := filepath.Dir(sqlitePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(ExportDir(dir), 0755)
}

// ConfigFileEnv names an explicit configuration file for the binaries
const ConfigFileEnv = "TRIAGE_CONFIG_FILE"
