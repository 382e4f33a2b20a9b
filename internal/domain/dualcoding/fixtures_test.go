package dualcoding

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/conceptmap"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/terminology"
)

var fixedTime = time.Date(2024, 9, 1, 10, 30, 0, 0, time.UTC)

var prameha = terminology.CatalogEntry{Code: "ASU-1022", Display: "Prameha", System: "S1"}

var type2Diabetes = conceptmap.TargetCandidate{
	Group:   conceptmap.GroupBiomedical,
	System:  "T1",
	Code:    "5A11",
	Display: "Type 2 diabetes mellitus",
}

func newTestSynthesizer(t *testing.T) *Synthesizer {
	t.Helper()
	s := NewSynthesizer(Config{
		CatalogVersion: "2024-09",
		TargetVersion:  "2024-01",
		ObserverLabel:  "swasthya-connect",
	}, nil, zerolog.Nop())
	s.SetClock(func() time.Time { return fixedTime })
	n := 0
	s.SetIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	return s
}

func newTestDeps(t *testing.T) (*terminology.Service, *conceptmap.Translator) {
	t.Helper()
	cat, err := terminology.NewCatalog("2024-09", []terminology.CatalogEntry{
		{Code: "ASU-1001", Display: "Āmavāta", Designations: []string{"Amavata"}},
		{Code: "ASU-1022", Display: "Prameha", Designations: []string{"प्रमेह"}},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	idx, err := conceptmap.NewIndex("2024-01", []conceptmap.Entry{
		{SourceCode: "ASU-1022", Targets: []conceptmap.TargetCandidate{
			{Group: conceptmap.GroupBiomedical, System: conceptmap.SystemICD11MMS, Code: "5A11", Display: "Type 2 diabetes mellitus", Equivalence: conceptmap.EquivalenceInexact},
			{Group: conceptmap.GroupPatternBased, System: conceptmap.SystemICD11TM2, Code: "SK50", Display: "Prameha pattern (TM2)", Equivalence: conceptmap.EquivalenceEquivalent},
			{Group: conceptmap.GroupBiomedical, System: conceptmap.SystemICD11MMS, Code: "5A10", Display: "Type 1 diabetes mellitus", Equivalence: conceptmap.EquivalenceRelated},
		}},
	})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	svc := terminology.NewService(cat, terminology.NewMatcher(cat, terminology.DefaultSearchLimit), zerolog.Nop())
	return svc, conceptmap.NewTranslator(idx, zerolog.Nop())
}
