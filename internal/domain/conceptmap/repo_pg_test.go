package conceptmap

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeRows struct {
	data [][]string
	pos  int
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }
func (r *fakeRows) Values() ([]interface{}, error)               { return nil, nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...interface{}) error {
	row := r.data[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d columns, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		*(d.(*string)) = row[i]
	}
	return nil
}

type fakeQuerier struct {
	rows *fakeRows
	err  error
}

func (q fakeQuerier) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func TestRepoPG_LoadConceptMap(t *testing.T) {
	repo := NewRepoPG(fakeQuerier{rows: &fakeRows{data: [][]string{
		{"ASU-1001", "pattern-based", SystemICD11TM2, "SM63", "Amavata disorder (TM2)", "equivalent"},
		{"ASU-1001", "biomedical", SystemICD11MMS, "FA20", "Rheumatoid arthritis", "wider"},
		{"ASU-1022", "biomedical", SystemICD11MMS, "5A11", "Type 2 diabetes mellitus", "inexact"},
	}}})

	idx, err := Load(context.Background(), "2024-01", repo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Len() != 2 {
		t.Fatalf("expected 2 sources, got %d", idx.Len())
	}
	got, _ := idx.Lookup("ASU-1001")
	if len(got) != 2 || got[0].Code != "SM63" || got[1].Code != "FA20" {
		t.Errorf("unexpected candidates %+v", got)
	}
}

func TestRepoPG_RejectsUnknownEquivalence(t *testing.T) {
	repo := NewRepoPG(fakeQuerier{rows: &fakeRows{data: [][]string{
		{"ASU-1001", "biomedical", SystemICD11MMS, "FA20", "Rheumatoid arthritis", "approximately"},
	}}})
	if _, err := repo.LoadConceptMap(context.Background()); !errors.Is(err, ErrUnknownEquivalence) {
		t.Errorf("expected ErrUnknownEquivalence, got %v", err)
	}
}

func TestRepoPG_QueryError(t *testing.T) {
	repo := NewRepoPG(fakeQuerier{err: errors.New("timeout")})
	if _, err := repo.LoadConceptMap(context.Background()); err == nil {
		t.Error("expected error")
	}
}
