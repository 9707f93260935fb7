package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/symptom-triage-server/internal/app"
	"github.com/symptom-triage-server/internal/feedback"
)

func newFeedbackCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Export, import and summarize clinician feedback",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "export FILE",
			Short: "Write all feedback as JSON to FILE (- for stdout)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(root, func(store feedback.Store) error {
					return exportFeedback(cmd, store, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "import FILE",
			Short: "Load feedback from a JSON export (- for stdin)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(root, func(store feedback.Store) error {
					return importFeedback(cmd, store, args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show agreement between the engine and clinicians",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withStore(root, func(store feedback.Store) error {
					stats, err := store.Stats(cmd.Context())
					if err != nil {
						return err
					}
					return printJSON(cmd, stats)
				})
			},
		},
	)

	return cmd
}

func withStore(root *rootOptions, fn func(feedback.Store) error) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	store, err := app.OpenFeedbackStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func exportFeedback(cmd *cobra.Command, store feedback.Store, path string) error {
	var w io.Writer = cmd.OutOrStdout()
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}

	if err := store.ExportJSON(cmd.Context(), w); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if path != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported feedback to %s\n", path)
	}
	return nil
}

func importFeedback(cmd *cobra.Command, store feedback.Store, path string) error {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	imported, skipped, err := store.ImportJSON(cmd.Context(), r)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d review(s), skipped %d\n", imported, skipped)
	return nil
}
