package domain

import "strings"

// Storage keys
const (
	CatalogKey      = "assessmentItems"
	DraftKey        = "currentAssessmentState"
	RecordKeyPrefix = "assessments_"
)

// SanitizeClientID trims the identifier and replaces every character
// outside [A-Za-z0-9._-] with an underscore
func SanitizeClientID(clientID string) string {
	trimmed := strings.TrimSpace(clientID)
	var b strings.Builder
	b.Grow(len(trimmed))
	for _, r := range trimmed {
		if isKeySafe(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func isKeySafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	}
	return false
}

// RecordKey returns the storage key holding a client's records.
// The second result is false for a blank identifier, which has no storage.
func RecordKey(clientID string) (string, bool) {
	safe := SanitizeClientID(clientID)
	if safe == "" {
		return "", false
	}
	return RecordKeyPrefix + safe, true
}
