package terminology

import "strings"

// Matcher performs case- and diacritic-insensitive substring search over a
// Catalog. Normalized text is computed once at construction.
type Matcher struct {
	catalog *Catalog
	limit   int
	index   []normalizedEntry
}

type normalizedEntry struct {
	fields []string
}

// NewMatcher builds a matcher over catalog. limit is clamped to
// 1..DefaultSearchLimit.
func NewMatcher(catalog *Catalog, limit int) *Matcher {
	if limit <= 0 || limit > DefaultSearchLimit {
		limit = DefaultSearchLimit
	}
	m := &Matcher{
		catalog: catalog,
		limit:   limit,
		index:   make([]normalizedEntry, len(catalog.entries)),
	}
	for i, e := range catalog.entries {
		fields := make([]string, 0, 1+len(e.Designations))
		fields = append(fields, Normalize(e.Display))
		for _, d := range e.Designations {
			fields = append(fields, Normalize(d))
		}
		m.index[i] = normalizedEntry{fields: fields}
	}
	return m
}

// Limit returns the effective result cap.
func (m *Matcher) Limit() int { return m.limit }

// Search returns entries whose display or any designation contains query,
// in catalog order. A blank query returns an empty slice.
func (m *Matcher) Search(query string) []CatalogEntry {
	q := Normalize(query)
	results := []CatalogEntry{}
	if q == "" {
		return results
	}
	for i, ne := range m.index {
		if ne.matches(q) {
			results = append(results, m.catalog.entries[i])
			if len(results) == m.limit {
				break
			}
		}
	}
	return results
}

func (ne normalizedEntry) matches(q string) bool {
	for _, f := range ne.fields {
		if strings.Contains(f, q) {
			return true
		}
	}
	return false
}
