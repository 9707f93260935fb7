package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symptom-triage-server/internal/domain"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "feedback.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleFeedback(checkID, reviewer string, agreed bool) *Feedback {
	return &Feedback{
		SymptomCheckID:     checkID,
		ReviewerID:         reviewer,
		SuggestedUrgency:   4.6,
		SuggestedCondition: "Heart Attack",
		ClinicianUrgency:   5.0,
		ConfirmedCondition: "Angina",
		Agreed:             agreed,
		Notes:              "ECG changes on arrival",
	}
}

func TestNewSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "feedback.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
	assert.Equal(t, dbPath, store.Path())
}

func TestSQLiteStore_Save(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	fb := sampleFeedback("check-1", "dr-lee", true)
	require.NoError(t, store.Save(ctx, fb))

	assert.NotZero(t, fb.ID, "ID should be assigned")
	assert.False(t, fb.CreatedAt.IsZero(), "CreatedAt should be set")
	assert.False(t, fb.UpdatedAt.IsZero(), "UpdatedAt should be set")
}

func TestSQLiteStore_SaveValidates(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Feedback)
		field  string
	}{
		{"missing check", func(f *Feedback) { f.SymptomCheckID = "" }, "symptom_check_id"},
		{"missing reviewer", func(f *Feedback) { f.ReviewerID = " " }, "reviewer_id"},
		{"urgency too high", func(f *Feedback) { f.ClinicianUrgency = 6 }, "clinician_urgency"},
		{"urgency too low", func(f *Feedback) { f.ClinicianUrgency = 0 }, "clinician_urgency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := sampleFeedback("check-1", "dr-lee", true)
			tt.mutate(fb)

			err := store.Save(ctx, fb)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSQLiteStore_SaveUpsertsPerReviewer(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	first := sampleFeedback("check-1", "dr-lee", false)
	require.NoError(t, store.Save(ctx, first))
	originalID := first.ID

	update := sampleFeedback("check-1", "dr-lee", true)
	update.Notes = "Revised after troponin result"
	require.NoError(t, store.Save(ctx, update))
	assert.Equal(t, originalID, update.ID)

	other := sampleFeedback("check-1", "dr-patel", false)
	require.NoError(t, store.Save(ctx, other))
	assert.NotEqual(t, originalID, other.ID)

	got, err := store.Get(ctx, "check-1", "dr-lee")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Agreed)
	assert.Equal(t, "Revised after troponin result", got.Notes)
	assert.Equal(t, 5.0, got.ClinicianUrgency)
	assert.Equal(t, "Heart Attack", got.SuggestedCondition)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	reviews, err := store.ListForCheck(ctx, "check-1")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "dr-lee", reviews[0].ReviewerID)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	store := createTestStore(t)

	got, err := store.Get(context.Background(), "nope", "nobody")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_ListAndDelete(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, sampleFeedback(id, "dr-lee", true)))
		time.Sleep(2 * time.Millisecond)
	}

	page, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].SymptomCheckID)
	assert.Equal(t, "b", page[1].SymptomCheckID)

	rest, err := store.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "a", rest[0].SymptomCheckID)

	require.NoError(t, store.Delete(ctx, rest[0].ID))
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSQLiteStore_Stats(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	empty, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
	assert.Zero(t, empty.AgreementRate)

	agreed := sampleFeedback("a", "dr-lee", true)
	agreed.SuggestedUrgency, agreed.ClinicianUrgency = 3.0, 3.0
	disagreed := sampleFeedback("b", "dr-lee", false)
	disagreed.SuggestedUrgency, disagreed.ClinicianUrgency = 2.0, 4.0

	require.NoError(t, store.Save(ctx, agreed))
	require.NoError(t, store.Save(ctx, disagreed))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Agreed)
	assert.InDelta(t, 0.5, stats.AgreementRate, 1e-9)
	assert.InDelta(t, 1.0, stats.MeanUrgencyDelta, 1e-9)
}

func TestSQLiteStore_ExportImport(t *testing.T) {
	source := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, source.Save(ctx, sampleFeedback("a", "dr-lee", true)))
	require.NoError(t, source.Save(ctx, sampleFeedback("b", "dr-lee", false)))

	var buf bytes.Buffer
	require.NoError(t, source.ExportJSON(ctx, &buf))

	var export FeedbackExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &export))
	assert.Equal(t, ExportVersion, export.Version)
	assert.Equal(t, 2, export.Count)

	target := createTestStore(t)
	require.NoError(t, target.Save(ctx, sampleFeedback("a", "dr-lee", false)))

	imported, skipped, err := target.ImportJSON(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, skipped)

	// existing review is not overwritten by the import
	kept, err := target.Get(ctx, "a", "dr-lee")
	require.NoError(t, err)
	assert.False(t, kept.Agreed)

	count, err := target.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSQLiteStore_ExportEmpty(t *testing.T) {
	store := createTestStore(t)

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(context.Background(), &buf))
	assert.Contains(t, buf.String(), `"feedback": []`)
}

func TestSQLiteStore_ImportSkipsInvalid(t *testing.T) {
	store := createTestStore(t)

	doc := `{"version":"1.0","feedback":[
		{"symptom_check_id":"a","reviewer_id":"dr-lee","clinician_urgency":3},
		{"symptom_check_id":"","reviewer_id":"dr-lee","clinician_urgency":3},
		null
	]}`

	imported, skipped, err := store.ImportJSON(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 2, skipped)
}

func TestSQLiteStore_ImportBadJSON(t *testing.T) {
	store := createTestStore(t)

	_, _, err := store.ImportJSON(context.Background(), strings.NewReader("{not json"))
	assert.Error(t, err)
}
