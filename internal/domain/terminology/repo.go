package terminology

import "context"

// CatalogSource loads catalog entries in catalog order.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) ([]CatalogEntry, error)
}

// Load builds a catalog from src.
func Load(ctx context.Context, version string, src CatalogSource) (*Catalog, error) {
	entries, err := src.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(version, entries)
}
