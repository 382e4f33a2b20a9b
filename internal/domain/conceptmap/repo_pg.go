package conceptmap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// RepoPG reads the concept map from the concept_map_target table.
type RepoPG struct {
	conn querier
}

func NewRepoPG(conn querier) *RepoPG {
	return &RepoPG{conn: conn}
}

const targetQuery = `SELECT source_code, target_group, target_system, target_code, target_display, equivalence
	FROM concept_map_target
	ORDER BY source_position, source_code, position`

// LoadConceptMap groups target rows by source code. Rows for one source are
// contiguous in the query order, which is also the curator order.
func (r *RepoPG) LoadConceptMap(ctx context.Context) ([]Entry, error) {
	rows, err := r.conn.Query(ctx, targetQuery)
	if err != nil {
		return nil, fmt.Errorf("query concept map: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var source, group, system, code, display, equivalence string
		if err := rows.Scan(&source, &group, &system, &code, &display, &equivalence); err != nil {
			return nil, fmt.Errorf("scan concept map row: %w", err)
		}
		tc, err := NewTargetCandidate(group, system, code, display, equivalence)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", source, err)
		}
		if n := len(entries); n > 0 && entries[n-1].SourceCode == source {
			entries[n-1].Targets = append(entries[n-1].Targets, tc)
			continue
		}
		entries = append(entries, Entry{SourceCode: source, Targets: []TargetCandidate{tc}})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read concept map rows: %w", err)
	}
	return entries, nil
}
