// Package dualcoding synthesizes Conditions that carry a source code and its
// chosen target codes together, each paired with an AuditEvent and wrapped in
// a version-tagged collection Bundle.
package dualcoding

import (
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/auditevent"
	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/fhir"
)

const (
	VersionTagSystem        = "https://swasthya-connect.in/fhir/CodeSystem/version-tag"
	ClinicalStatusSystem    = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	ConditionCategorySystem = "http://terminology.hl7.org/CodeSystem/condition-category"

	ClinicalStatusActive = "active"
	CategoryProblemList  = "problem-list-item"
	dualCodedLabelSuffix = " (dual-coded)"
)

// ContextIDs identifies the patient and encounter a Condition belongs to.
type ContextIDs struct {
	SubjectID   string `json:"subjectId"`
	EncounterID string `json:"encounterId,omitempty"`
}

// Condition is the dual-coded FHIR Condition.
type Condition struct {
	ResourceType   string                 `json:"resourceType"`
	ID             string                 `json:"id,omitempty"`
	Meta           *fhir.Meta             `json:"meta,omitempty"`
	ClinicalStatus fhir.CodeableConcept   `json:"clinicalStatus"`
	Category       []fhir.CodeableConcept `json:"category"`
	Code           fhir.CodeableConcept   `json:"code"`
	Subject        fhir.Reference         `json:"subject"`
	Encounter      *fhir.Reference        `json:"encounter,omitempty"`
	RecordedDate   string                 `json:"recordedDate"`
}

// CompositeOutput is the result of one synthesis. Bundle holds the Condition
// followed by the AuditEvent.
type CompositeOutput struct {
	Condition  *Condition
	AuditEvent *auditevent.Resource
	Bundle     *fhir.Bundle
}
