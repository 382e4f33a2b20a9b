package terminology

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
)

func testEntries() []CatalogEntry {
	return []CatalogEntry{
		{Code: "ASU-1001", Display: "Āmavāta", Designations: []string{"Amavata", "आमवात"}},
		{Code: "ASU-1002", Display: "Vātarakta", Designations: []string{"Vatarakta", "वातरक्त", "Gout"}},
		{Code: "ASU-1010", Display: "Jvara", Designations: []string{"Fever", "ज्वर"}},
		{Code: "ASU-1022", Display: "Prameha", Designations: []string{"प्रमेह"}},
		{Code: "ASU-1023", Display: "Madhumeha", Designations: []string{"मधुमेह", "Prameha subtype"}},
	}
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	cat, err := NewCatalog("2024-09", testEntries())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

func newLargeCatalog(t *testing.T, n int) *Catalog {
	t.Helper()
	entries := make([]CatalogEntry, n)
	for i := range entries {
		entries[i] = CatalogEntry{
			Code:    fmt.Sprintf("GEN-%04d", i),
			Display: fmt.Sprintf("Vyādhi %d", i),
		}
	}
	cat, err := NewCatalog("test", entries)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	cat := newTestCatalog(t)
	return NewService(cat, NewMatcher(cat, DefaultSearchLimit), zerolog.Nop())
}
