package terminology

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCode     = errors.New("catalog entry code is required")
	ErrDuplicateCode = errors.New("duplicate catalog code")
	ErrCodeNotFound  = errors.New("code not found in catalog")
)

// Catalog is the immutable source-vocabulary code set. It is built once at
// startup and shared by reference; all methods are safe for concurrent use.
type Catalog struct {
	version string
	entries []CatalogEntry
	byCode  map[string]int
}

// NewCatalog copies entries into a new catalog, preserving their order.
// Entries without a system are assigned SystemNAMASTE.
func NewCatalog(version string, entries []CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		version: version,
		entries: make([]CatalogEntry, 0, len(entries)),
		byCode:  make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Code == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyCode)
		}
		if _, dup := c.byCode[e.Code]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, e.Code)
		}
		if e.System == "" {
			e.System = SystemNAMASTE
		}
		e.Designations = append([]string(nil), e.Designations...)
		c.byCode[e.Code] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Version returns the catalog release stamped on synthesized resources.
func (c *Catalog) Version() string { return c.version }

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.entries) }

// Entries returns a copy of all entries in insertion order.
func (c *Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the entry for code.
func (c *Catalog) Get(code string) (CatalogEntry, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return CatalogEntry{}, false
	}
	return c.entries[i], true
}

// Contains reports whether code is in the catalog.
func (c *Catalog) Contains(code string) bool {
	_, ok := c.byCode[code]
	return ok
}
