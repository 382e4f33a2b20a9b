package conceptmap

import (
	"testing"
)

func TestTranslate_UnmappedReturnsEmpty(t *testing.T) {
	tr := newTestTranslator(t)
	for _, code := range []string{"ASU-9999", "", "asu-1001"} {
		got := tr.Translate(code)
		if got == nil || len(got) != 0 {
			t.Errorf("Translate(%q): expected empty non-nil slice, got %#v", code, got)
		}
	}
}

func TestTranslate_PreservesCuratorOrder(t *testing.T) {
	tr := newTestTranslator(t)
	for _, e := range testEntries() {
		got := tr.Translate(e.SourceCode)
		if len(got) != len(e.Targets) {
			t.Fatalf("%s: expected %d candidates, got %d", e.SourceCode, len(e.Targets), len(got))
		}
		for i := range got {
			if got[i] != e.Targets[i] {
				t.Errorf("%s[%d]: expected %+v, got %+v", e.SourceCode, i, e.Targets[i], got[i])
			}
		}
	}
}

func TestTranslate_KeepsUnmatchedCandidates(t *testing.T) {
	tr := newTestTranslator(t)
	got := tr.Translate("ASU-1010")
	if len(got) != 1 || got[0].Equivalence != EquivalenceUnmatched {
		t.Errorf("expected one unmatched candidate, got %+v", got)
	}
}

func TestPartition(t *testing.T) {
	tr := newTestTranslator(t)
	bio := tr.TranslateGroup("ASU-1022", GroupBiomedical)
	if len(bio) != 2 || bio[0].Code != "5A11" || bio[1].Code != "5A10" {
		t.Errorf("unexpected biomedical partition %+v", bio)
	}
	tm2 := Partition(tr.Translate("ASU-1022"), GroupPatternBased)
	if len(tm2) != 1 || tm2[0].Code != "SK50" {
		t.Errorf("unexpected pattern-based partition %+v", tm2)
	}
	if got := Partition(nil, GroupBiomedical); got == nil || len(got) != 0 {
		t.Errorf("expected empty slice, got %#v", got)
	}
}

func TestPartitionBySystem(t *testing.T) {
	got := PartitionBySystem(newTestTranslator(t).Translate("ASU-1001"), SystemICD11TM2)
	if len(got) != 1 || got[0].Code != "SM63" {
		t.Errorf("unexpected partition %+v", got)
	}
}

func TestTranslateParameters(t *testing.T) {
	tr := newTestTranslator(t)

	params := TranslateParameters("ASU-1022", tr.Translate("ASU-1022"))
	result, ok := params.Get("result")
	if !ok || result.ValueBoolean == nil || !*result.ValueBoolean {
		t.Fatalf("expected result=true, got %+v", result)
	}
	var matches int
	for _, p := range params.Parameter {
		if p.Name != "match" {
			continue
		}
		matches++
		if len(p.Part) != 3 || p.Part[0].Name != "equivalence" || p.Part[1].ValueCoding == nil {
			t.Errorf("malformed match %+v", p)
		}
	}
	if matches != 3 {
		t.Errorf("expected 3 matches, got %d", matches)
	}

	empty := TranslateParameters("ASU-9999", tr.Translate("ASU-9999"))
	if r, _ := empty.Get("result"); *r.ValueBoolean {
		t.Error("expected result=false for unmapped code")
	}

	unmatched := TranslateParameters("ASU-1010", tr.Translate("ASU-1010"))
	if r, _ := unmatched.Get("result"); *r.ValueBoolean {
		t.Error("expected result=false when only unmatched candidates exist")
	}
	if _, ok := unmatched.Get("match"); !ok {
		t.Error("unmatched candidate should still be listed")
	}
}

func TestTranslator_ToFHIR(t *testing.T) {
	cm := newTestTranslator(t).ToFHIR("urn:source")
	if cm["id"] != ConceptMapID {
		t.Errorf("unexpected id %v", cm["id"])
	}
	groups, ok := cm["group"].([]map[string]interface{})
	if !ok || len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %#v", cm["group"])
	}
	if groups[0]["target"] != SystemICD11TM2 || groups[1]["target"] != SystemICD11MMS {
		t.Errorf("unexpected group order: %v, %v", groups[0]["target"], groups[1]["target"])
	}
}
