package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symptom-triage-server/internal/domain"
	"github.com/symptom-triage-server/internal/feedback"
	"github.com/symptom-triage-server/internal/knowledge"
	"github.com/symptom-triage-server/internal/setup"
)

func run(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// useTempStorage points the configured SQLite path into a temp dir
func useTempStorage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "triage.db")
	t.Setenv("TRIAGE_STORAGE_SQLITE_PATH", path)
	t.Setenv("TRIAGE_STORAGE_DRIVER", domain.StorageSQLite)
	return path
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := run(t, nil, "analyze",
		"--symptom", "chest pain", "--symptom", "shortness of breath",
		"--severity", "3", "--duration", "Less than a day")
	require.NoError(t, err)

	assert.Contains(t, out, "Urgency: 4.6 EMERGENCY")
	assert.Contains(t, out, "Heart Attack")
	assert.Contains(t, out, "71%")
	assert.Contains(t, out, "Suggested actions:")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	out, err := run(t, nil, "analyze", "-s", "fever", "-s", "headache", "-s", "stiff neck",
		"--severity", "4", "--duration", "hours", "--json")
	require.NoError(t, err)

	var got struct {
		Status string              `json:"status"`
		Result domain.TriageResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, 5.0, got.Result.UrgencyLevel.Score)
	require.NotEmpty(t, got.Result.PossibleConditions)
	assert.Equal(t, "Meningitis", got.Result.PossibleConditions[0].Name)
	assert.Equal(t, 64, got.Result.PossibleConditions[0].Probability)
}

func TestAnalyzeCommand_Explain(t *testing.T) {
	out, err := run(t, nil, "analyze", "-s", "severe headache", "-s", "blurred vision",
		"--severity", "2", "--duration", "days", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "Score breakdown:")
	assert.Contains(t, out, "severity 2 x duration 1.0")
	assert.Contains(t, out, "+ neurological")
	assert.Contains(t, out, "= 2.80, clamped to 2.8")

	out, err = run(t, nil, "analyze", "-s", "cough", "--severity", "5", "--duration", "days", "--explain", "--json")
	require.NoError(t, err)
	var got struct {
		Breakdown struct {
			Score   float64 `json:"score"`
			Bonuses []struct {
				Rule string `json:"rule"`
			} `json:"bonuses"`
		} `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 5.0, got.Breakdown.Score)
	require.Len(t, got.Breakdown.Bonuses, 1)
	assert.Equal(t, "max_severity", got.Breakdown.Bonuses[0].Rule)
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	_, err := run(t, nil, "analyze", "--symptom", "cough", "--severity", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "severity")

	_, err = run(t, nil, "analyze", "--severity", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symptom")
}

func TestBodyAreasCommand(t *testing.T) {
	kb := knowledge.Default()

	out, err := run(t, nil, "body-areas")
	require.NoError(t, err)
	assert.Equal(t, kb.BodyAreas(), strings.Split(strings.TrimSpace(out), "\n"))

	area := kb.BodyAreas()[0]
	out, err = run(t, nil, "body-areas", area)
	require.NoError(t, err)
	for _, s := range kb.SymptomsForArea(area) {
		assert.Contains(t, out, s)
	}

	_, err = run(t, nil, "body-areas", "nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no suggested symptoms")
}

func TestConditionsCommand(t *testing.T) {
	out, err := run(t, nil, "conditions")
	require.NoError(t, err)

	names := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, knowledge.Default().ConditionNames(), names)
	assert.Contains(t, names, "Migraine")
	assert.True(t, sort.StringsAreSorted(names))
}

func TestConditionCommand(t *testing.T) {
	out, err := run(t, nil, "condition", "Migraine")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Migraine (severity"))
	assert.Contains(t, out, "Red flags:")
	assert.Contains(t, out, "When to seek help:")

	_, err = run(t, nil, "condition", "Unknown")
	require.Error(t, err)

	_, err = run(t, nil, "condition")
	require.Error(t, err)
}

func TestDurationsCommand(t *testing.T) {
	out, err := run(t, nil, "durations")
	require.NoError(t, err)
	assert.Contains(t, out, "Less than a day")
	assert.Contains(t, out, "3+ months")
}

func TestFeedbackImportExport(t *testing.T) {
	useTempStorage(t)

	doc := feedback.FeedbackExport{
		Version: feedback.ExportVersion,
		Feedback: []*feedback.Feedback{
			{SymptomCheckID: "check-1", ReviewerID: "dr-a", SuggestedUrgency: 4.6, ClinicianUrgency: 4.5, Agreed: true},
			{SymptomCheckID: "check-2", ReviewerID: "dr-a", SuggestedUrgency: 2.0, ClinicianUrgency: 3.0},
			{SymptomCheckID: "", ReviewerID: "dr-b", ClinicianUrgency: 3.0},
		},
	}
	importFile := filepath.Join(t.TempDir(), "import.json")
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(importFile, data, 0644))

	out, err := run(t, nil, "feedback", "import", importFile)
	require.NoError(t, err)
	assert.Equal(t, "Imported 2 review(s), skipped 1\n", out)

	// Re-importing skips entries that already exist
	out, err = run(t, bytes.NewReader(data), "feedback", "import", "-")
	require.NoError(t, err)
	assert.Equal(t, "Imported 0 review(s), skipped 3\n", out)

	out, err = run(t, nil, "feedback", "export", "-")
	require.NoError(t, err)
	var exported feedback.FeedbackExport
	require.NoError(t, json.Unmarshal([]byte(out), &exported))
	assert.Equal(t, 2, exported.Count)

	exportFile := filepath.Join(t.TempDir(), "export.json")
	_, err = run(t, nil, "feedback", "export", exportFile)
	require.NoError(t, err)
	_, err = os.Stat(exportFile)
	assert.NoError(t, err)

	out, err = run(t, nil, "feedback", "stats")
	require.NoError(t, err)
	var stats feedback.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, int64(2), stats.Total)
	assert.InDelta(t, 0.5, stats.AgreementRate, 1e-9)
}

func TestFeedbackImport_MissingFile(t *testing.T) {
	useTempStorage(t)

	_, err := run(t, nil, "feedback", "import", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestSetupCommands(t *testing.T) {
	dir := t.TempDir()
	desktopConfig := filepath.Join(dir, "Claude", "claude_desktop_config.json")
	binary := filepath.Join(dir, "mcp-server")
	require.NoError(t, os.WriteFile(binary, []byte("#!/bin/sh\n"), 0755))

	out, err := run(t, nil, "setup", "--desktop-config", desktopConfig, "--binary", binary, "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Registered symptom-triage")

	out, err = run(t, nil, "setup", "status", "--desktop-config", desktopConfig)
	require.NoError(t, err)
	var status setup.Status
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.True(t, status.Registered)
	assert.Equal(t, binary, status.ServerPath)
	assert.Equal(t, dir, status.DataDir)
	assert.Empty(t, status.Issues)

	out, err = run(t, nil, "setup", "remove", "--desktop-config", desktopConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed symptom-triage")

	out, err = run(t, nil, "setup", "remove", "--desktop-config", desktopConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "was not registered")
}
