package terminology

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/fhir"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/telemetry"
)

// ValueSetURL is the implicit value set covering the whole source catalog.
const ValueSetURL = SystemNAMASTE + "?fhir_vs"

// Service provides catalog search, $lookup and $expand over the source
// vocabulary.
type Service struct {
	catalog *Catalog
	matcher *Matcher
	logger  zerolog.Logger
	metrics *telemetry.Metrics
}

// NewService creates a new terminology service.
func NewService(catalog *Catalog, matcher *Matcher, logger zerolog.Logger) *Service {
	return &Service{catalog: catalog, matcher: matcher, logger: logger}
}

func (s *Service) SetMetrics(m *telemetry.Metrics) { s.metrics = m }

// Catalog returns the catalog backing this service.
func (s *Service) Catalog() *Catalog { return s.catalog }

// Search returns catalog entries matching query. No matches and a blank query
// both yield an empty slice.
func (s *Service) Search(query string) []CatalogEntry {
	results := s.matcher.Search(query)
	blank := Normalize(query) == ""
	s.metrics.ObserveSearch(blank, len(results))
	s.logger.Debug().
		Str("query", query).
		Int("results", len(results)).
		Msg("catalog search")
	return results
}

// Get returns the catalog entry for code.
func (s *Service) Get(code string) (CatalogEntry, error) {
	if code == "" {
		return CatalogEntry{}, fmt.Errorf("code is required")
	}
	e, ok := s.catalog.Get(code)
	if !ok {
		return CatalogEntry{}, fmt.Errorf("%w: %s", ErrCodeNotFound, code)
	}
	return e, nil
}

// Lookup implements the FHIR CodeSystem $lookup operation for the source
// catalog.
func (s *Service) Lookup(system, code string) (*fhir.Parameters, error) {
	if system != "" && system != SystemNAMASTE {
		return nil, fmt.Errorf("unsupported code system: %s", system)
	}
	e, err := s.Get(code)
	if err != nil {
		return nil, err
	}

	params := fhir.NewParameters().
		AddString("name", "NAMASTE").
		AddString("version", s.catalog.Version()).
		AddString("display", e.Display)
	for _, d := range e.Designations {
		params.AddPart("designation", fhir.Parameter{Name: "value", ValueString: d})
	}
	return params, nil
}

// Expand implements ValueSet $expand over the catalog, filtered by the
// matcher. An empty filter yields an empty expansion.
func (s *Service) Expand(filter string) *ValueSetExpansion {
	entries := s.Search(filter)
	contains := make([]ExpansionContains, 0, len(entries))
	for _, e := range entries {
		item := ExpansionContains{System: e.System, Code: e.Code, Display: e.Display}
		for _, d := range e.Designations {
			item.Designation = append(item.Designation, ExpansionDesignation{Value: d})
		}
		contains = append(contains, item)
	}

	exp := Expansion{
		Identifier: "urn:uuid:" + uuid.New().String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Total:      len(contains),
		Contains:   contains,
	}
	if filter != "" {
		exp.Parameter = []ExpansionParam{{Name: "filter", ValueString: filter}}
	}
	return &ValueSetExpansion{
		ResourceType: "ValueSet",
		URL:          ValueSetURL,
		Expansion:    exp,
	}
}
