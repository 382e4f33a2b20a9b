package dualcoding

import (
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/conceptmap"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/terminology"
)

// Selection is the per-session choice of a source entry and its target
// candidates. It is owned by one session and is not safe for concurrent use.
type Selection struct {
	source  *terminology.CatalogEntry
	targets []conceptmap.TargetCandidate
}

// NewSelection starts a selection on entry.
func NewSelection(entry terminology.CatalogEntry) *Selection {
	s := &Selection{}
	s.Pick(entry)
	return s
}

// Pick selects a new source entry and clears the chosen targets.
func (s *Selection) Pick(entry terminology.CatalogEntry) {
	e := entry
	e.Designations = append([]string(nil), entry.Designations...)
	s.source = &e
	s.targets = nil
}

// Choose adds tc, replacing any candidate already chosen from the same group.
// Without a source entry it returns ErrMissingSource.
func (s *Selection) Choose(tc conceptmap.TargetCandidate) error {
	if s.source == nil {
		return missingSource()
	}
	for i, t := range s.targets {
		if t.Group == tc.Group {
			s.targets[i] = tc
			return nil
		}
	}
	s.targets = append(s.targets, tc)
	return nil
}

// Remove drops tc if chosen and reports whether it was.
func (s *Selection) Remove(tc conceptmap.TargetCandidate) bool {
	for i, t := range s.targets {
		if t.System == tc.System && t.Code == tc.Code {
			s.targets = append(s.targets[:i], s.targets[i+1:]...)
			return true
		}
	}
	return false
}

// Reset clears the source and all chosen targets.
func (s *Selection) Reset() {
	s.source = nil
	s.targets = nil
}

// Source returns the selected entry.
func (s *Selection) Source() (terminology.CatalogEntry, bool) {
	if s.source == nil {
		return terminology.CatalogEntry{}, false
	}
	return *s.source, true
}

// Targets returns the chosen candidates in the order they were chosen.
func (s *Selection) Targets() []conceptmap.TargetCandidate {
	return append([]conceptmap.TargetCandidate(nil), s.targets...)
}
