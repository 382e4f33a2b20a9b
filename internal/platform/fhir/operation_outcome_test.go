package fhir

import (
	"encoding/json"
	"testing"
)

func TestIsValidSeverity(t *testing.T) {
	for _, s := range []string{IssueSeverityFatal, IssueSeverityError, IssueSeverityWarning, IssueSeverityInformation} {
		if !IsValidSeverity(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if IsValidSeverity("critical") {
		t.Error("expected critical to be invalid")
	}
}

func TestNewOperationOutcome_JSON(t *testing.T) {
	oo := NewOperationOutcome(IssueSeverityError, IssueTypeCodeInvalid, "SK99 is not a candidate for ASU-1022")
	data, err := json.Marshal(oo)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"resourceType":"OperationOutcome","issue":[{"severity":"error","code":"code-invalid","diagnostics":"SK99 is not a candidate for ASU-1022"}]}`
	if string(data) != want {
		t.Errorf("unexpected JSON:\n got %s\nwant %s", data, want)
	}
}

func TestRequiredOutcome_Diagnostics(t *testing.T) {
	oo := RequiredOutcome("subject")
	if oo.Issue[0].Diagnostics != "Parameter 'subject' is required" {
		t.Errorf("unexpected diagnostics: %s", oo.Issue[0].Diagnostics)
	}
}
