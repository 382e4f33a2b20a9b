package fhir

import (
	"encoding/json"
	"testing"
)

func TestMeta_TagAndSecurityJSON(t *testing.T) {
	m := Meta{
		Tag:      []Coding{{System: "urn:tags", Code: "namaste-csv-2024-09"}},
		Security: []Coding{{System: "urn:consent", Code: "consent-acknowledged"}},
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if _, ok := parsed["tag"]; !ok {
		t.Error("expected tag key")
	}
	if _, ok := parsed["security"]; !ok {
		t.Error("expected security key")
	}
	if _, ok := parsed["lastUpdated"]; ok {
		t.Error("expected lastUpdated to be omitted when unset")
	}
}

func TestCoding_OmitsEmpty(t *testing.T) {
	data, _ := json.Marshal(Coding{System: "http://id.who.int/icd/release/11/mms", Code: "5A11"})
	s := string(data)
	if s != `{"system":"http://id.who.int/icd/release/11/mms","code":"5A11"}` {
		t.Errorf("unexpected JSON: %s", s)
	}
}

func TestOutcomes(t *testing.T) {
	tests := []struct {
		name string
		oo   *OperationOutcome
		code string
	}{
		{"error", ErrorOutcome("boom"), IssueTypeProcessing},
		{"not found", NotFoundOutcome("CodeSystem", "x"), IssueTypeNotFound},
		{"required", RequiredOutcome("code"), IssueTypeRequired},
		{"business rule", BusinessRuleOutcome("duplicate group"), IssueTypeBusinessRule},
		{"throttle", ThrottleOutcome(), IssueTypeThrottled},
		{"timeout", TimeoutOutcome(), IssueTypeTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.oo.ResourceType != "OperationOutcome" {
				t.Errorf("expected OperationOutcome, got %s", tt.oo.ResourceType)
			}
			if len(tt.oo.Issue) != 1 {
				t.Fatalf("expected 1 issue, got %d", len(tt.oo.Issue))
			}
			if tt.oo.Issue[0].Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.oo.Issue[0].Code)
			}
			if !IsValidSeverity(tt.oo.Issue[0].Severity) {
				t.Errorf("invalid severity %q", tt.oo.Issue[0].Severity)
			}
		})
	}
}

func TestFormatReference(t *testing.T) {
	if got := FormatReference("Patient", "123"); got != "Patient/123" {
		t.Errorf("expected Patient/123, got %s", got)
	}
}
