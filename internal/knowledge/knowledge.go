// Package knowledge holds the static medical tables consumed by the triage engine.
// A KnowledgeBase is built once and never mutated, so it is safe to share across
// goroutines without locking. Lookups never fail: unknown symptoms, conditions and
// durations return empty values.
package knowledge

import (
	"slices"
	"sort"
	"sync"

	"github.com/symptom-triage-server/internal/domain"
)

// ConditionAssociation links a symptom to a candidate condition
type ConditionAssociation struct {
	Condition  string  `json:"condition"`
	Likelihood float64 `json:"likelihood"`
	Severity   int     `json:"severity"`
	KeySymptom bool    `json:"key_symptom"`
}

// MedicalCondition describes a condition the engine can surface
type MedicalCondition struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Severity         int      `json:"severity"`
	Symptoms         []string `json:"symptoms"`
	RedFlags         []string `json:"red_flags"`
	CommonTreatments []string `json:"common_treatments"`
	WhenToSeekHelp   string   `json:"when_to_seek_help"`
}

// Tables is the raw data a KnowledgeBase is built from
type Tables struct {
	BodyAreaSymptoms  map[string][]string
	SymptomConditions map[string][]ConditionAssociation
	MedicalConditions map[string]MedicalCondition
	DurationImpact    map[domain.DurationBucket]float64
}

// KnowledgeBase is the read-only lookup layer over Tables
type KnowledgeBase struct {
	bodyAreaSymptoms  map[string][]string
	symptomConditions map[string][]ConditionAssociation
	conditions        map[string]MedicalCondition
	durationImpact    map[domain.DurationBucket]float64
}

var (
	defaultOnce sync.Once
	defaultKB   *KnowledgeBase
)

// Default returns the process-wide knowledge base built from the literal tables
func Default() *KnowledgeBase {
	defaultOnce.Do(func() {
		defaultKB = New(defaultTables())
	})
	return defaultKB
}

// New builds a knowledge base from tables. Keys are normalized and every slice is
// copied so later changes to the tables cannot leak into the knowledge base.
func New(t Tables) *KnowledgeBase {
	kb := &KnowledgeBase{
		bodyAreaSymptoms:  make(map[string][]string, len(t.BodyAreaSymptoms)),
		symptomConditions: make(map[string][]ConditionAssociation, len(t.SymptomConditions)),
		conditions:        make(map[string]MedicalCondition, len(t.MedicalConditions)),
		durationImpact:    make(map[domain.DurationBucket]float64, len(t.DurationImpact)),
	}

	for area, symptoms := range t.BodyAreaSymptoms {
		kb.bodyAreaSymptoms[domain.NormalizeSymptom(area)] = slices.Clone(symptoms)
	}
	for symptom, assocs := range t.SymptomConditions {
		key := domain.NormalizeSymptom(symptom)
		kb.symptomConditions[key] = append(kb.symptomConditions[key], assocs...)
	}
	for name, cond := range t.MedicalConditions {
		cond.Name = name
		cond.Symptoms = slices.Clone(cond.Symptoms)
		cond.RedFlags = slices.Clone(cond.RedFlags)
		cond.CommonTreatments = slices.Clone(cond.CommonTreatments)
		kb.conditions[name] = cond
	}
	for bucket, factor := range t.DurationImpact {
		kb.durationImpact[bucket] = factor
	}

	return kb
}

// Associations returns the condition associations for a symptom in table order.
// Unknown symptoms yield an empty slice.
func (kb *KnowledgeBase) Associations(symptom string) []ConditionAssociation {
	return slices.Clone(kb.symptomConditions[domain.NormalizeSymptom(symptom)])
}

// Condition returns details for a condition name
func (kb *KnowledgeBase) Condition(name string) (MedicalCondition, bool) {
	cond, ok := kb.conditions[name]
	if !ok {
		return MedicalCondition{}, false
	}
	cond.Symptoms = slices.Clone(cond.Symptoms)
	cond.RedFlags = slices.Clone(cond.RedFlags)
	cond.CommonTreatments = slices.Clone(cond.CommonTreatments)
	return cond, true
}

// DurationFactor returns the urgency multiplier for a bucket, 1.0 when unrecognized
func (kb *KnowledgeBase) DurationFactor(d domain.DurationBucket) float64 {
	if factor, ok := kb.durationImpact[d]; ok {
		return factor
	}
	return 1.0
}

// BodyAreas returns the known body area names sorted alphabetically
func (kb *KnowledgeBase) BodyAreas() []string {
	areas := make([]string, 0, len(kb.bodyAreaSymptoms))
	for area := range kb.bodyAreaSymptoms {
		areas = append(areas, area)
	}
	sort.Strings(areas)
	return areas
}

// SymptomsForArea returns the suggested symptoms for a body area
func (kb *KnowledgeBase) SymptomsForArea(area string) []string {
	return slices.Clone(kb.bodyAreaSymptoms[domain.NormalizeSymptom(area)])
}

// KnownSymptoms returns the scoring vocabulary sorted alphabetically
func (kb *KnowledgeBase) KnownSymptoms() []string {
	symptoms := make([]string, 0, len(kb.symptomConditions))
	for s := range kb.symptomConditions {
		symptoms = append(symptoms, s)
	}
	sort.Strings(symptoms)
	return symptoms
}

// ConditionNames returns every condition with a detail entry, sorted
func (kb *KnowledgeBase) ConditionNames() []string {
	names := make([]string, 0, len(kb.conditions))
	for name := range kb.conditions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MissingConditions lists conditions referenced by associations that lack a detail entry
func (kb *KnowledgeBase) MissingConditions() []string {
	seen := make(map[string]bool)
	var missing []string
	for _, assocs := range kb.symptomConditions {
		for _, a := range assocs {
			if _, ok := kb.conditions[a.Condition]; !ok && !seen[a.Condition] {
				seen[a.Condition] = true
				missing = append(missing, a.Condition)
			}
		}
	}
	sort.Strings(missing)
	return missing
}
