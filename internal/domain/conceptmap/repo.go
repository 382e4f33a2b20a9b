package conceptmap

import "context"

// Source loads concept map entries in curator order.
type Source interface {
	LoadConceptMap(ctx context.Context) ([]Entry, error)
}

// Load builds an index from src.
func Load(ctx context.Context, version string, src Source) (*Index, error) {
	entries, err := src.LoadConceptMap(ctx)
	if err != nil {
		return nil, err
	}
	return NewIndex(version, entries)
}
