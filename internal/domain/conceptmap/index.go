package conceptmap

import (
	"errors"
	"fmt"
)

var ErrDuplicateSource = errors.New("duplicate concept map source code")

// Index is the immutable concept map from source code to its ordered target
// candidates. Safe for concurrent readers.
type Index struct {
	version string
	order   []string
	targets map[string][]TargetCandidate
}

// NewIndex validates every candidate and copies entries into a new index.
// version is the target vocabulary release the map was curated against.
func NewIndex(version string, entries []Entry) (*Index, error) {
	idx := &Index{
		version: version,
		order:   make([]string, 0, len(entries)),
		targets: make(map[string][]TargetCandidate, len(entries)),
	}
	for _, e := range entries {
		if e.SourceCode == "" {
			return nil, fmt.Errorf("concept map entry without source code")
		}
		if _, dup := idx.targets[e.SourceCode]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSource, e.SourceCode)
		}
		for i, tc := range e.Targets {
			if err := tc.Validate(); err != nil {
				return nil, fmt.Errorf("source %s target %d: %w", e.SourceCode, i, err)
			}
		}
		idx.order = append(idx.order, e.SourceCode)
		idx.targets[e.SourceCode] = append([]TargetCandidate(nil), e.Targets...)
	}
	return idx, nil
}

// Version returns the target vocabulary release.
func (idx *Index) Version() string { return idx.version }

// Len returns the number of mapped source codes.
func (idx *Index) Len() int { return len(idx.order) }

// Lookup returns a copy of the candidates for code in curator order.
func (idx *Index) Lookup(code string) ([]TargetCandidate, bool) {
	t, ok := idx.targets[code]
	if !ok {
		return nil, false
	}
	return append([]TargetCandidate(nil), t...), true
}

// Entries returns all entries in declaration order.
func (idx *Index) Entries() []Entry {
	out := make([]Entry, 0, len(idx.order))
	for _, code := range idx.order {
		t, _ := idx.Lookup(code)
		out = append(out, Entry{SourceCode: code, Targets: t})
	}
	return out
}

// Orphans returns source codes for which known reports false, in
// declaration order. The map is well-formed when this is empty.
func (idx *Index) Orphans(known func(code string) bool) []string {
	var orphans []string
	for _, code := range idx.order {
		if !known(code) {
			orphans = append(orphans, code)
		}
	}
	return orphans
}
