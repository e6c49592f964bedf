package domain

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

// ErrInvalidScore is returned for scores outside 1..5
var ErrInvalidScore = errors.New("invalid score")

// Session is the in-progress assessment. Scores and notes are keyed by
// item ID so that reordering or deleting catalog items cannot shift them
// onto another item.
type Session struct {
	BasicInfo      BasicInfo         `json:"basicInfo"`
	Scores         map[string]int    `json:"scores"`
	Notes          map[string]string `json:"notes"`
	LoadedRecordID int64             `json:"loadedRecordId,omitempty"`
}

// NewSession returns an empty session
func NewSession() *Session {
	return &Session{
		Scores: make(map[string]int),
		Notes:  make(map[string]string),
	}
}

// SetScore records a score for an item
func (s *Session) SetScore(itemID string, score int) error {
	if !ValidScore(score) {
		return fmt.Errorf("%w: %d (expected %d-%d)", ErrInvalidScore, score, MinScore, MaxScore)
	}
	s.ensureMaps()
	s.Scores[itemID] = score
	return nil
}

// ClearScore removes the score for an item
func (s *Session) ClearScore(itemID string) {
	delete(s.Scores, itemID)
}

// Score returns the score for an item
func (s *Session) Score(itemID string) (int, bool) {
	score, ok := s.Scores[itemID]
	return score, ok
}

// SetNote stores a note; blank text removes it
func (s *Session) SetNote(itemID, text string) {
	s.ensureMaps()
	if strings.TrimSpace(text) == "" {
		delete(s.Notes, itemID)
		return
	}
	s.Notes[itemID] = text
}

// Note returns the note for an item
func (s *Session) Note(itemID string) string {
	return s.Notes[itemID]
}

// Forget purges any score and note for an item
func (s *Session) Forget(itemID string) {
	delete(s.Scores, itemID)
	delete(s.Notes, itemID)
}

// HasScores reports whether at least one item is scored
func (s *Session) HasScores() bool {
	return len(s.Scores) > 0
}

// Reset clears everything, starting a new assessment
func (s *Session) Reset() {
	*s = *NewSession()
}

// LoadRecord replaces the session with the contents of a record
func (s *Session) LoadRecord(r Record) {
	s.BasicInfo = r.BasicInfo
	s.Scores = maps.Clone(r.Scores)
	s.Notes = maps.Clone(r.Notes)
	s.LoadedRecordID = r.ID
	s.ensureMaps()
}

// Prune drops entries for items that are no longer in the catalog
func (s *Session) Prune(c *Catalog) bool {
	changed := false
	for id := range s.Scores {
		if c.IndexOf(id) < 0 {
			delete(s.Scores, id)
			changed = true
		}
	}
	for id := range s.Notes {
		if c.IndexOf(id) < 0 {
			delete(s.Notes, id)
			changed = true
		}
	}
	return changed
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	return &Session{
		BasicInfo:      s.BasicInfo,
		Scores:         maps.Clone(s.Scores),
		Notes:          maps.Clone(s.Notes),
		LoadedRecordID: s.LoadedRecordID,
	}
}

func (s *Session) ensureMaps() {
	if s.Scores == nil {
		s.Scores = make(map[string]int)
	}
	if s.Notes == nil {
		s.Notes = make(map[string]string)
	}
}
