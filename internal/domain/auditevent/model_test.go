package auditevent

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNew_NormalizesToUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	r := New("audit-1", ActionCreate, OutcomeSuccess, time.Date(2024, 9, 1, 16, 0, 0, 0, ist), "obs", "entity")
	if r.Recorded.Location() != time.UTC {
		t.Errorf("expected UTC, got %s", r.Recorded.Location())
	}
	if got := r.ToFHIR().Recorded; got != "2024-09-01T10:30:00Z" {
		t.Errorf("expected 2024-09-01T10:30:00Z, got %s", got)
	}
}

func TestToFHIR_JSON(t *testing.T) {
	r := New("audit-1", ActionCreate, OutcomeSuccess, time.Date(2024, 9, 1, 10, 30, 0, 0, time.UTC),
		"swasthya-connect", "Condition for ASU-1022 -> 5A11")

	data, err := json.Marshal(r.ToFHIR())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"resourceType":"AuditEvent","id":"audit-1","action":"C","recorded":"2024-09-01T10:30:00Z","outcome":"0",` +
		`"source":{"observer":{"display":"swasthya-connect"}},"entity":[{"what":{"display":"Condition for ASU-1022 -> 5A11"}}]}`
	if string(data) != want {
		t.Errorf("unexpected JSON:\n got %s\nwant %s", data, want)
	}
}
