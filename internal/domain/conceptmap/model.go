package conceptmap

import (
	"errors"
	"fmt"
	"strings"
)

// Target code systems.
const (
	SystemICD11TM2 = "http://id.who.int/icd/release/11/tm2"
	SystemICD11MMS = "http://id.who.int/icd/release/11/mms"
)

var (
	ErrUnknownEquivalence = errors.New("unknown equivalence")
	ErrUnknownGroup       = errors.New("unknown target system group")
	ErrIncompleteTarget   = errors.New("target candidate requires system and code")
)

// Equivalence classifies how closely a target corresponds to the source
// concept. The set is closed; see ParseEquivalence.
type Equivalence string

const (
	EquivalenceEquivalent Equivalence = "equivalent"
	EquivalenceEqual      Equivalence = "equal"
	EquivalenceWider      Equivalence = "wider"
	EquivalenceNarrower   Equivalence = "narrower"
	EquivalenceInexact    Equivalence = "inexact"
	EquivalenceUnmatched  Equivalence = "unmatched"
	EquivalenceRelated    Equivalence = "related"
)

var validEquivalences = map[Equivalence]bool{
	EquivalenceEquivalent: true,
	EquivalenceEqual:      true,
	EquivalenceWider:      true,
	EquivalenceNarrower:   true,
	EquivalenceInexact:    true,
	EquivalenceUnmatched:  true,
	EquivalenceRelated:    true,
}

// ParseEquivalence validates s against the closed equivalence set.
func ParseEquivalence(s string) (Equivalence, error) {
	e := Equivalence(strings.TrimSpace(s))
	if !validEquivalences[e] {
		return "", fmt.Errorf("%w: %q", ErrUnknownEquivalence, s)
	}
	return e, nil
}

// UnmarshalText rejects values outside the closed set, so seed files and
// request bodies cannot smuggle in an unknown classification.
func (e *Equivalence) UnmarshalText(text []byte) error {
	v, err := ParseEquivalence(string(text))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Group tags the external vocabulary grouping a candidate belongs to.
type Group string

const (
	GroupPatternBased Group = "pattern-based"
	GroupBiomedical   Group = "biomedical"
)

// ParseGroup validates s as a known target system group.
func ParseGroup(s string) (Group, error) {
	g := Group(strings.TrimSpace(s))
	switch g {
	case GroupPatternBased, GroupBiomedical:
		return g, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGroup, s)
}

func (g *Group) UnmarshalText(text []byte) error {
	v, err := ParseGroup(string(text))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// TargetCandidate is one curated mapping of a source code into a target
// vocabulary. An unmatched candidate records an explicit negative result.
type TargetCandidate struct {
	Group       Group       `json:"group" yaml:"group"`
	System      string      `json:"system" yaml:"system"`
	Code        string      `json:"code" yaml:"code"`
	Display     string      `json:"display" yaml:"display"`
	Equivalence Equivalence `json:"equivalence" yaml:"equivalence"`
}

// NewTargetCandidate validates group and equivalence before building the
// candidate.
func NewTargetCandidate(group, system, code, display, equivalence string) (TargetCandidate, error) {
	g, err := ParseGroup(group)
	if err != nil {
		return TargetCandidate{}, err
	}
	eq, err := ParseEquivalence(equivalence)
	if err != nil {
		return TargetCandidate{}, err
	}
	tc := TargetCandidate{Group: g, System: system, Code: code, Display: display, Equivalence: eq}
	if err := tc.Validate(); err != nil {
		return TargetCandidate{}, err
	}
	return tc, nil
}

// Validate checks a candidate built without NewTargetCandidate.
func (tc TargetCandidate) Validate() error {
	if _, err := ParseGroup(string(tc.Group)); err != nil {
		return err
	}
	if _, err := ParseEquivalence(string(tc.Equivalence)); err != nil {
		return err
	}
	if tc.System == "" || tc.Code == "" {
		return fmt.Errorf("%w (code=%q)", ErrIncompleteTarget, tc.Code)
	}
	return nil
}

// Entry is the curated target list for one source code.
type Entry struct {
	SourceCode string            `json:"sourceCode" yaml:"source"`
	Targets    []TargetCandidate `json:"targets" yaml:"targets"`
}
