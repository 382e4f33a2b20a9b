package terminology

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// CatalogRepoPG reads the catalog from the namaste_code table.
type CatalogRepoPG struct {
	conn querier
}

func NewCatalogRepoPG(conn querier) *CatalogRepoPG {
	return &CatalogRepoPG{conn: conn}
}

const catalogQuery = `SELECT code, system, display, designations FROM namaste_code ORDER BY position, code`

func (r *CatalogRepoPG) LoadCatalog(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := r.conn.Query(ctx, catalogQuery)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(&e.Code, &e.System, &e.Display, &e.Designations); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read catalog rows: %w", err)
	}
	return entries, nil
}
