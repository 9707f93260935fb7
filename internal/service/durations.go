package service

import (
	"strings"

	"github.com/symptom-triage-server/internal/domain"
)

// DurationOption is a duration label offered to patients and the bucket it maps to
type DurationOption struct {
	Label  string                `json:"label"`
	Bucket domain.DurationBucket `json:"bucket"`
}

// durationOptions is the patient-facing vocabulary in display order.
// Keep in sync with the portal's duration picker.
var durationOptions = []DurationOption{
	{"Less than a day", domain.DurationHours},
	{"1-3 days", domain.DurationDays},
	{"4-7 days", domain.DurationDays},
	{"1-2 weeks", domain.DurationWeeks},
	{"2-4 weeks", domain.DurationWeeks},
	{"1-3 months", domain.DurationMonths},
	{"3+ months", domain.DurationMonths},
}

var durationLookup = func() map[string]domain.DurationBucket {
	m := make(map[string]domain.DurationBucket, len(durationOptions)+5)
	for _, opt := range durationOptions {
		m[strings.ToLower(opt.Label)] = opt.Bucket
	}
	for _, b := range []domain.DurationBucket{
		domain.DurationHours, domain.DurationDays, domain.DurationWeeks, domain.DurationMonths, domain.DurationYears,
	} {
		m[string(b)] = b
	}
	return m
}()

// TranslateDuration maps a UI duration label (or a bucket name) to an engine bucket.
// Unrecognized labels fall back to days and report ok=false.
func TranslateDuration(label string) (bucket domain.DurationBucket, ok bool) {
	if b, found := durationLookup[strings.ToLower(strings.TrimSpace(label))]; found {
		return b, true
	}
	return domain.DurationDays, false
}

// DurationOptions returns the patient-facing duration labels in display order
func DurationOptions() []DurationOption {
	out := make([]DurationOption, len(durationOptions))
	copy(out, durationOptions)
	return out
}
