// Package consent is the integration point for patient consent. Nothing is
// enforced yet: the no-op acknowledger accepts every subject and returns the
// placeholder security label stamped on synthesized bundles.
package consent

import (
	"context"

	"github.com/Saurabhguptan007/swasthya-connect/internal/platform/fhir"
)

const (
	LabelSystem = "https://swasthya-connect.in/fhir/CodeSystem/consent-annotation"
	LabelCode   = "consent-acknowledged"
)

// Acknowledger records that consent was considered for a subject and returns
// the security label to carry on the output.
type Acknowledger interface {
	Acknowledge(ctx context.Context, subjectID string) (fhir.Coding, error)
}

// Noop acknowledges every subject without checking anything.
type Noop struct{}

func (Noop) Acknowledge(ctx context.Context, subjectID string) (fhir.Coding, error) {
	if err := ctx.Err(); err != nil {
		return fhir.Coding{}, err
	}
	return Placeholder(), nil
}

// Placeholder is the label used until real consent enforcement exists.
func Placeholder() fhir.Coding {
	return fhir.Coding{
		System:  LabelSystem,
		Code:    LabelCode,
		Display: "Consent acknowledgment placeholder",
	}
}
