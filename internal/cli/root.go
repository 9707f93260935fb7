// Package cli implements the triage command line tool.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/symptom-triage-server/internal/config"
	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/logging"
)

type rootOptions struct {
	configFile string
	verbose    bool
}

// NewRootCommand builds the triage command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "triage",
		Short: "Symptom triage from the terminal",
		Long: `triage runs the symptom triage engine locally, browses the medical
knowledge tables, moves clinician feedback in and out of the configured
store, and registers the MCP server with desktop clients.

Results are informational only and are not a diagnosis.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", os.Getenv(config.ConfigFileEnv), "config file (default searches ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	rootCmd.AddCommand(
		newAnalyzeCommand(opts),
		newBodyAreasCommand(),
		newConditionCommand(),
		newConditionsCommand(),
		newDurationsCommand(),
		newFeedbackCommand(opts),
		newSetupCommand(opts),
	)

	return rootCmd
}

// loadConfig reads and validates configuration
func (o *rootOptions) loadConfig() (*domain.Config, error) {
	manager, err := config.NewManagerWithFile(o.configFile)
	if err != nil {
		return nil, err
	}
	if err := manager.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return manager.GetConfig(), nil
}

// logger writes to stderr so command output stays machine readable
func (o *rootOptions) logger() *logrus.Logger {
	level := "warn"
	if o.verbose {
		level = "debug"
	}
	logger, err := logging.NewStderr(domain.LoggingConfig{Level: level, Format: "text"})
	if err != nil {
		return logging.Discard()
	}
	return logger
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
