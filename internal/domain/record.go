package domain

import (
	"maps"
	"strconv"
	"time"
)

// BasicInfo identifies the client and the assessment period
type BasicInfo struct {
	ClientName       string `json:"name"`
	ManagementNumber string `json:"managementNumber,omitempty"`
	EvaluatorName    string `json:"evaluatorName"`
	EntryDate        string `json:"entryDate"`
	PeriodStart      string `json:"periodStart"`
	PeriodEnd        string `json:"periodEnd"`
}

// Record is one saved assessment. Scores and notes are keyed by item ID
// and Items is the catalog as it was at save time.
type Record struct {
	ID        int64             `json:"id"`
	BasicInfo BasicInfo         `json:"clientBasicInfo"`
	Scores    map[string]int    `json:"scores"`
	Notes     map[string]string `json:"notes"`
	Items     []Item            `json:"itemsSnapshot"`
	SavedAt   time.Time         `json:"savedAt"`
}

// NewRecord materializes a session into a record
func NewRecord(id int64, s *Session, items []Item, savedAt time.Time) Record {
	return Record{
		ID:        id,
		BasicInfo: s.BasicInfo,
		Scores:    maps.Clone(s.Scores),
		Notes:     maps.Clone(s.Notes),
		Items:     CloneItems(items),
		SavedAt:   savedAt.UTC(),
	}
}

// AverageScore returns the mean score of the record
func (r Record) AverageScore() float64 {
	return AverageScore(r.Scores)
}

// Normalize upgrades records written before items had IDs: snapshot
// items receive derived IDs and position-keyed scores and notes are
// re-keyed by item ID. Reports whether anything changed.
func (r *Record) Normalize() bool {
	changed := EnsureIDs(r.Items)
	if MigratePositionKeys(r.Scores, r.Notes, r.Items) {
		changed = true
	}
	return changed
}

// MigratePositionKeys re-keys entries whose key is a catalog position
// rather than an item ID. Keys that already name an item are left alone;
// numeric keys outside the item range are dropped. Without items there is
// nothing to resolve positions against, so the entries are kept as they are.
func MigratePositionKeys(scores map[string]int, notes map[string]string, items []Item) bool {
	if len(items) == 0 {
		return false
	}
	ids := make(map[string]bool, len(items))
	for _, item := range items {
		ids[item.ID] = true
	}
	resolve := func(key string) (string, bool) {
		if ids[key] {
			return key, false
		}
		pos, err := strconv.Atoi(key)
		if err != nil {
			return key, false
		}
		if pos < 0 || pos >= len(items) {
			return "", true
		}
		return items[pos].ID, true
	}

	changed := false
	for key, score := range scores {
		newKey, moved := resolve(key)
		if !moved {
			continue
		}
		delete(scores, key)
		if newKey != "" {
			scores[newKey] = score
		}
		changed = true
	}
	for key, note := range notes {
		newKey, moved := resolve(key)
		if !moved {
			continue
		}
		delete(notes, key)
		if newKey != "" {
			notes[newKey] = note
		}
		changed = true
	}
	return changed
}
