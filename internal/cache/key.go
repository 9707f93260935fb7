// Package cache stores triage results keyed by a fingerprint of the request.
// The engine is deterministic, so identical requests can be served from cache.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/symptom-triage-server/internal/domain"
)

const keyPrefix = "triage:result:"

type fingerprint struct {
	Symptoms []string              `json:"s"`
	Severity int                   `json:"v"`
	Duration domain.DurationBucket `json:"d"`
}

// RequestKey returns the cache key for a request. Symptom text is normalized and
// order is preserved.
func RequestKey(req *domain.SymptomCheckRequest) string {
	fp := fingerprint{
		Symptoms: make([]string, 0, len(req.Symptoms)),
		Severity: req.SeverityLevel,
		Duration: req.Duration,
	}
	for _, s := range req.Symptoms {
		fp.Symptoms = append(fp.Symptoms, s.Normalized())
	}

	data, err := json.Marshal(fp)
	if err != nil {
		// fingerprint only holds strings and ints
		data = []byte(fmt.Sprintf("%v", fp))
	}

	hash := sha256.Sum256(data)
	return keyPrefix + hex.EncodeToString(hash[:])
}
