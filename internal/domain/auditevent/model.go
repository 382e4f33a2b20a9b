// Package auditevent models the audit record paired with every synthesized
// clinical resource.
package auditevent

import (
	"time"
)

// Action is the FHIR AuditEvent.action code.
type Action string

const (
	ActionCreate  Action = "C"
	ActionExecute Action = "E"
)

// Outcome is the FHIR AuditEvent.outcome code.
type Outcome string

const (
	OutcomeSuccess Outcome = "0"
	// OutcomeMinorFailure is reserved for partial failures. No current code
	// path records it; a rejected synthesis returns an error instead.
	OutcomeMinorFailure Outcome = "4"
)

// Record is one audit entry.
type Record struct {
	ID              string
	Action          Action
	Outcome         Outcome
	Recorded        time.Time
	ObserverDisplay string
	EntityDisplay   string
}

// New creates a record stamped at recorded, normalized to UTC.
func New(id string, action Action, outcome Outcome, recorded time.Time, observer, entity string) *Record {
	return &Record{
		ID:              id,
		Action:          action,
		Outcome:         outcome,
		Recorded:        recorded.UTC(),
		ObserverDisplay: observer,
		EntityDisplay:   entity,
	}
}

// Resource is the wire form of a Record.
type Resource struct {
	ResourceType string   `json:"resourceType"`
	ID           string   `json:"id,omitempty"`
	Action       Action   `json:"action"`
	Recorded     string   `json:"recorded"`
	Outcome      Outcome  `json:"outcome"`
	Source       Source   `json:"source"`
	Entity       []Entity `json:"entity"`
}

type Source struct {
	Observer Display `json:"observer"`
}

type Entity struct {
	What Display `json:"what"`
}

type Display struct {
	Display string `json:"display"`
}

func (r *Record) ToFHIR() *Resource {
	return &Resource{
		ResourceType: "AuditEvent",
		ID:           r.ID,
		Action:       r.Action,
		Recorded:     r.Recorded.Format(time.RFC3339),
		Outcome:      r.Outcome,
		Source:       Source{Observer: Display{Display: r.ObserverDisplay}},
		Entity:       []Entity{{What: Display{Display: r.EntityDisplay}}},
	}
}
