package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/symptom-triage-server/internal/knowledge"
	"github.com/symptom-triage-server/internal/service"
)

func newBodyAreasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "body-areas [area]",
		Short: "List body areas, or the suggested symptoms for one area",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kb := knowledge.Default()
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, area := range kb.BodyAreas() {
					fmt.Fprintln(out, area)
				}
				return nil
			}

			symptoms := kb.SymptomsForArea(args[0])
			if len(symptoms) == 0 {
				return fmt.Errorf("no suggested symptoms for %q; known areas: %s",
					args[0], strings.Join(kb.BodyAreas(), ", "))
			}
			for _, s := range symptoms {
				fmt.Fprintln(out, s)
			}
			return nil
		},
	}
}

func newConditionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "conditions",
		Short: "List every condition with a detail entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range knowledge.Default().ConditionNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newConditionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "condition NAME",
		Short: "Describe a condition from the knowledge tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cond, ok := knowledge.Default().Condition(args[0])
			if !ok {
				return fmt.Errorf("condition not found: %s", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (severity %d)\n%s\n", cond.Name, cond.Severity, cond.Description)
			printList(cmd, "Symptoms", cond.Symptoms)
			printList(cmd, "Red flags", cond.RedFlags)
			printList(cmd, "Common treatments", cond.CommonTreatments)
			fmt.Fprintf(out, "\nWhen to seek help: %s\n", cond.WhenToSeekHelp)
			return nil
		},
	}
}

func newDurationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "durations",
		Short: "List accepted duration labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, opt := range service.DurationOptions() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", opt.Label, opt.Bucket)
			}
			return nil
		},
	}
}

func printList(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", item)
	}
}
