package conceptmap

import (
	"testing"

	"github.com/rs/zerolog"
)

func testEntries() []Entry {
	return []Entry{
		{SourceCode: "ASU-1001", Targets: []TargetCandidate{
			{Group: GroupPatternBased, System: SystemICD11TM2, Code: "SM63", Display: "Amavata disorder (TM2)", Equivalence: EquivalenceEquivalent},
			{Group: GroupBiomedical, System: SystemICD11MMS, Code: "FA20", Display: "Rheumatoid arthritis", Equivalence: EquivalenceWider},
		}},
		{SourceCode: "ASU-1022", Targets: []TargetCandidate{
			{Group: GroupBiomedical, System: SystemICD11MMS, Code: "5A11", Display: "Type 2 diabetes mellitus", Equivalence: EquivalenceInexact},
			{Group: GroupPatternBased, System: SystemICD11TM2, Code: "SK50", Display: "Prameha pattern (TM2)", Equivalence: EquivalenceEquivalent},
			{Group: GroupBiomedical, System: SystemICD11MMS, Code: "5A10", Display: "Type 1 diabetes mellitus", Equivalence: EquivalenceRelated},
		}},
		{SourceCode: "ASU-1010", Targets: []TargetCandidate{
			{Group: GroupBiomedical, System: SystemICD11MMS, Code: "MG26", Display: "Fever of other or unknown origin", Equivalence: EquivalenceUnmatched},
		}},
	}
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex("2024-01", testEntries())
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	return idx
}

func newTestTranslator(t *testing.T) *Translator {
	t.Helper()
	return NewTranslator(newTestIndex(t), zerolog.Nop())
}
