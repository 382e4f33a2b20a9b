package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

//go:embed schema.sql
var schemaSQL string

type execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

// Schema returns the DDL for the catalog tables.
func Schema() string { return schemaSQL }

// EnsureSchema creates the catalog tables if they do not exist.
func EnsureSchema(ctx context.Context, conn execer) error {
	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure catalog schema: %w", err)
	}
	return nil
}
