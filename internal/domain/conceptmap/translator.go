package conceptmap

import (
	"github.com/rs/zerolog"

	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/fhir"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/telemetry"
)

// Identity of the published NAMASTE → ICD-11 concept map.
const (
	ConceptMapID   = "namaste-to-icd11"
	ConceptMapURL  = "https://swasthya-connect.in/fhir/ConceptMap/namaste-to-icd11"
	ConceptMapName = "NAMASTE to ICD-11 (TM2 and MMS)"
)

// Translator resolves source codes to their curated target candidates.
type Translator struct {
	index   *Index
	logger  zerolog.Logger
	metrics *telemetry.Metrics
}

// NewTranslator creates a translator over idx.
func NewTranslator(idx *Index, logger zerolog.Logger) *Translator {
	return &Translator{index: idx, logger: logger}
}

func (t *Translator) SetMetrics(m *telemetry.Metrics) { t.metrics = m }

// Index returns the concept map backing this translator.
func (t *Translator) Index() *Index { return t.index }

// Translate returns the candidates for sourceCode in curator order. An
// unmapped code yields an empty slice, never an error.
func (t *Translator) Translate(sourceCode string) []TargetCandidate {
	cands, ok := t.index.Lookup(sourceCode)
	if !ok {
		cands = []TargetCandidate{}
	}
	t.metrics.ObserveTranslate(len(cands))
	t.logger.Debug().
		Str("source_code", sourceCode).
		Int("candidates", len(cands)).
		Msg("concept map translate")
	return cands
}

// TranslateGroup is Translate followed by Partition.
func (t *Translator) TranslateGroup(sourceCode string, group Group) []TargetCandidate {
	return Partition(t.Translate(sourceCode), group)
}

// Partition keeps the candidates belonging to group, preserving order.
func Partition(cands []TargetCandidate, group Group) []TargetCandidate {
	out := make([]TargetCandidate, 0, len(cands))
	for _, c := range cands {
		if c.Group == group {
			out = append(out, c)
		}
	}
	return out
}

// PartitionBySystem keeps the candidates whose system is system.
func PartitionBySystem(cands []TargetCandidate, system string) []TargetCandidate {
	out := make([]TargetCandidate, 0, len(cands))
	for _, c := range cands {
		if c.System == system {
			out = append(out, c)
		}
	}
	return out
}

// TranslateParameters renders candidates as a FHIR $translate Parameters
// resource. result is true only when at least one candidate is usable, so an
// explicit unmatched entry still reports result=false while listing it.
func TranslateParameters(sourceCode string, cands []TargetCandidate) *fhir.Parameters {
	usable := false
	for _, c := range cands {
		if c.Equivalence != EquivalenceUnmatched {
			usable = true
			break
		}
	}

	params := fhir.NewParameters().AddBoolean("result", usable)
	switch {
	case len(cands) == 0:
		params.AddString("message", "No mapping found for code '"+sourceCode+"'")
	case !usable:
		params.AddString("message", "Code '"+sourceCode+"' is explicitly unmatched")
	default:
		params.AddString("message", "Mapping found")
	}

	for _, c := range cands {
		params.AddPart("match",
			fhir.Parameter{Name: "equivalence", ValueCode: string(c.Equivalence)},
			fhir.Parameter{Name: "concept", ValueCoding: &fhir.Coding{
				System:  c.System,
				Code:    c.Code,
				Display: c.Display,
			}},
			fhir.Parameter{Name: "source", ValueURI: ConceptMapURL},
		)
	}
	return params
}

// ToFHIR renders the whole index as a ConceptMap resource with one group
// per target system.
func (t *Translator) ToFHIR(sourceSystem string) map[string]interface{} {
	type element struct {
		Code   string                   `json:"code"`
		Target []map[string]interface{} `json:"target"`
	}
	groups := map[string][]element{}
	var systems []string

	for _, e := range t.index.Entries() {
		bySystem := map[string][]map[string]interface{}{}
		for _, tc := range e.Targets {
			if _, seen := groups[tc.System]; !seen {
				groups[tc.System] = nil
				systems = append(systems, tc.System)
			}
			bySystem[tc.System] = append(bySystem[tc.System], map[string]interface{}{
				"code":        tc.Code,
				"display":     tc.Display,
				"equivalence": string(tc.Equivalence),
			})
		}
		for sys, targets := range bySystem {
			groups[sys] = append(groups[sys], element{Code: e.SourceCode, Target: targets})
		}
	}

	fhirGroups := make([]map[string]interface{}, 0, len(systems))
	for _, sys := range systems {
		fhirGroups = append(fhirGroups, map[string]interface{}{
			"source":        sourceSystem,
			"target":        sys,
			"targetVersion": t.index.Version(),
			"element":       groups[sys],
		})
	}

	return map[string]interface{}{
		"resourceType": "ConceptMap",
		"id":           ConceptMapID,
		"url":          ConceptMapURL,
		"name":         ConceptMapName,
		"status":       "active",
		"group":        fhirGroups,
	}
}

// Summary is the searchset entry form of ToFHIR.
func (t *Translator) Summary(sourceSystem string) map[string]interface{} {
	return map[string]interface{}{
		"resourceType": "ConceptMap",
		"id":           ConceptMapID,
		"url":          ConceptMapURL,
		"name":         ConceptMapName,
		"status":       "active",
		"sourceUri":    sourceSystem,
		"version":      t.index.Version(),
	}
}
