package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/knowledge"
	"github.com/symptom-triage-server/internal/service"
)

type analyzeOptions struct {
	symptoms []string
	severity int
	duration string
	asJSON   bool
	explain  bool
}

func newAnalyzeCommand(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze symptoms and print the triage result",
		Example: `  triage analyze --symptom "chest pain" --symptom "shortness of breath" --severity 3 --duration "Less than a day"
  triage analyze -s fever -s headache -s "stiff neck" --severity 4 --json
  triage analyze -s "severe headache" -s "blurred vision" --severity 2 --explain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, root, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.symptoms, "symptom", "s", nil, "symptom description (repeatable)")
	cmd.Flags().IntVar(&opts.severity, "severity", 3, "self-assessed severity from 1 to 5")
	cmd.Flags().StringVarP(&opts.duration, "duration", "d", "1-3 days", "how long symptoms have lasted, e.g. \"Less than a day\" or weeks")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "show how the urgency score was reached")
	_ = cmd.MarkFlagRequired("symptom")

	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions) error {
	logger := root.logger()

	bucket, ok := service.TranslateDuration(opts.duration)
	if !ok {
		logger.WithField("duration", opts.duration).Warn("Unrecognized duration, assuming days")
	}

	req := &domain.SymptomCheckRequest{
		SeverityLevel: opts.severity,
		Duration:      bucket,
	}
	for _, s := range opts.symptoms {
		req.Symptoms = append(req.Symptoms, domain.Symptom{Description: s})
	}

	engine := service.NewTriageEngine(knowledge.Default(), logger)

	status := domain.StatusCompleted
	result, err := engine.Analyze(req)
	if err != nil {
		ue, unavailable := domain.AsAnalysisUnavailable(err)
		if !unavailable {
			return err
		}
		logger.WithError(ue.Cause).Warn("Analysis unavailable, showing conservative result")
		status = domain.StatusError
		result = ue.Fallback
	}

	var breakdown *service.UrgencyBreakdown
	if opts.explain && status == domain.StatusCompleted {
		if breakdown, err = engine.Explain(req); err != nil {
			return err
		}
	}

	if opts.asJSON {
		out := map[string]any{"status": status, "result": result}
		if breakdown != nil {
			out["breakdown"] = breakdown
		}
		return printJSON(cmd, out)
	}
	writeResult(cmd.OutOrStdout(), result)
	if breakdown != nil {
		writeBreakdown(cmd.OutOrStdout(), breakdown)
	}
	return nil
}

func writeBreakdown(w io.Writer, b *service.UrgencyBreakdown) {
	fmt.Fprintln(w, "\nScore breakdown:")
	fmt.Fprintf(w, "  severity %.0f x duration %.1f\n", b.Base, b.DurationFactor)
	for _, bonus := range b.Bonuses {
		fmt.Fprintf(w, "  + %-16s %.1f\n", bonus.Rule, bonus.Bonus)
	}
	fmt.Fprintf(w, "  = %.2f, clamped to %.1f\n", b.Raw, b.Score)
}

func writeResult(w io.Writer, result *domain.TriageResult) {
	level := result.UrgencyLevel
	fmt.Fprintf(w, "Urgency: %.1f %s\n  %s\n\n", level.Score, level.Band, level.Description)

	fmt.Fprintln(w, "Possible conditions:")
	if len(result.PossibleConditions) == 0 {
		fmt.Fprintln(w, "  none matched")
	}
	for _, c := range result.PossibleConditions {
		fmt.Fprintf(w, "  %-28s %3d%%\n", c.Name, c.Probability)
	}

	fmt.Fprintf(w, "\n%s\n", result.GeneralAdvice)
	if len(result.SuggestedActions) > 0 {
		fmt.Fprintln(w, "\nSuggested actions:")
		for _, a := range result.SuggestedActions {
			fmt.Fprintf(w, "  - %s\n", a)
		}
	}
	if result.FollowUpRecommendation != "" {
		fmt.Fprintf(w, "\nFollow-up: %s\n", result.FollowUpRecommendation)
	}
	fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(result.Disclaimer))
}
