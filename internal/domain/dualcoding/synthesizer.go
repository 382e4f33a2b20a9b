package dualcoding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/auditevent"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/conceptmap"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/terminology"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/consent"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/fhir"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/telemetry"
)

// Config carries the process-wide versions and labels stamped on output.
type Config struct {
	CatalogVersion string
	TargetVersion  string
	ObserverLabel  string
}

// Synthesizer builds dual-coded output. It holds no per-request state and
// is safe for concurrent use once configured.
type Synthesizer struct {
	cfg     Config
	consent consent.Acknowledger
	logger  zerolog.Logger
	metrics *telemetry.Metrics
	clock   func() time.Time
	newID   func() string
}

// NewSynthesizer creates a synthesizer. A nil acknowledger falls back to
// consent.Noop.
func NewSynthesizer(cfg Config, ack consent.Acknowledger, logger zerolog.Logger) *Synthesizer {
	if ack == nil {
		ack = consent.Noop{}
	}
	return &Synthesizer{
		cfg:     cfg,
		consent: ack,
		logger:  logger,
		clock:   time.Now,
		newID:   uuid.NewString,
	}
}

func (s *Synthesizer) SetMetrics(m *telemetry.Metrics) { s.metrics = m }

// SetClock replaces the wall clock, e.g. with a fixed time in tests.
func (s *Synthesizer) SetClock(clock func() time.Time) { s.clock = clock }

// SetIDGenerator replaces the resource id generator.
func (s *Synthesizer) SetIDGenerator(gen func() string) { s.newID = gen }

// VersionTags returns the catalog and target release tags in effect.
func (s *Synthesizer) VersionTags() []fhir.Coding {
	return []fhir.Coding{
		{System: VersionTagSystem, Code: "icd11-mms-" + s.cfg.TargetVersion},
		{System: VersionTagSystem, Code: "namaste-csv-" + s.cfg.CatalogVersion},
	}
}

// SynthesizeSelection synthesizes from a session selection.
func (s *Synthesizer) SynthesizeSelection(ctx context.Context, sel *Selection, ids ContextIDs) (*CompositeOutput, error) {
	var source *terminology.CatalogEntry
	if e, ok := sel.Source(); ok {
		source = &e
	}
	return s.Synthesize(ctx, source, sel.Targets(), ids)
}

// Synthesize builds a Condition coded with source then targets, in the order
// given, plus its AuditEvent, wrapped in a collection Bundle. It fails with an
// InvalidSelectionError when source is nil or two targets share a group.
func (s *Synthesizer) Synthesize(ctx context.Context, source *terminology.CatalogEntry, targets []conceptmap.TargetCandidate, ids ContextIDs) (*CompositeOutput, error) {
	if err := validate(source, targets); err != nil {
		s.metrics.ObserveSynthesis("invalid_selection")
		s.logger.Warn().Err(err).Msg("dual-coding selection rejected")
		return nil, err
	}

	label, err := s.consent.Acknowledge(ctx, ids.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("acknowledge consent: %w", err)
	}

	now := s.clock().UTC()
	tags := s.VersionTags()

	cond := s.condition(source, targets, ids, now, tags)
	audit := auditevent.New(
		s.newID(),
		auditevent.ActionCreate,
		auditevent.OutcomeSuccess,
		now,
		s.cfg.ObserverLabel,
		describe(source, targets),
	).ToFHIR()

	bundleMeta := &fhir.Meta{
		Tag:      append([]fhir.Coding(nil), tags...),
		Security: []fhir.Coding{label},
	}
	bundle, err := fhir.NewCollectionBundle(s.newID(), bundleMeta, now, cond, audit)
	if err != nil {
		return nil, fmt.Errorf("build bundle: %w", err)
	}

	s.metrics.ObserveSynthesis("success")
	s.logger.Info().
		Str("source_code", source.Code).
		Int("targets", len(targets)).
		Str("bundle_id", bundle.ID).
		Msg("dual-coded condition synthesized")

	return &CompositeOutput{Condition: cond, AuditEvent: audit, Bundle: bundle}, nil
}

func (s *Synthesizer) condition(source *terminology.CatalogEntry, targets []conceptmap.TargetCandidate, ids ContextIDs, now time.Time, tags []fhir.Coding) *Condition {
	codings := make([]fhir.Coding, 0, 1+len(targets))
	codings = append(codings, fhir.Coding{System: source.System, Code: source.Code, Display: source.Display})
	for _, t := range targets {
		codings = append(codings, fhir.Coding{System: t.System, Code: t.Code, Display: t.Display})
	}

	cond := &Condition{
		ResourceType: "Condition",
		ID:           s.newID(),
		Meta:         &fhir.Meta{Tag: tags},
		ClinicalStatus: fhir.CodeableConcept{
			Coding: []fhir.Coding{{System: ClinicalStatusSystem, Code: ClinicalStatusActive}},
		},
		Category: []fhir.CodeableConcept{
			{Coding: []fhir.Coding{{System: ConditionCategorySystem, Code: CategoryProblemList}}},
		},
		Code: fhir.CodeableConcept{
			Coding: codings,
			Text:   source.Display + dualCodedLabelSuffix,
		},
		Subject:      fhir.Reference{Reference: fhir.FormatReference("Patient", ids.SubjectID)},
		RecordedDate: now.Format(time.RFC3339),
	}
	if ids.EncounterID != "" {
		cond.Encounter = &fhir.Reference{Reference: fhir.FormatReference("Encounter", ids.EncounterID)}
	}
	return cond
}

func describe(source *terminology.CatalogEntry, targets []conceptmap.TargetCandidate) string {
	if len(targets) == 0 {
		return fmt.Sprintf("Condition created for %s %s", source.Code, source.Display)
	}
	codes := make([]string, len(targets))
	for i, t := range targets {
		codes[i] = t.Code
	}
	return fmt.Sprintf("Condition created for %s %s, dual-coded to %s",
		source.Code, source.Display, strings.Join(codes, ", "))
}
