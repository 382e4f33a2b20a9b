package fhir

// OperationOutcome severity levels per FHIR R4 spec.
const (
	IssueSeverityFatal       = "fatal"
	IssueSeverityError       = "error"
	IssueSeverityWarning     = "warning"
	IssueSeverityInformation = "information"
)

// OperationOutcome issue type codes per FHIR R4 spec.
const (
	IssueTypeInvalid      = "invalid"
	IssueTypeStructure    = "structure"
	IssueTypeRequired     = "required"
	IssueTypeValue        = "value"
	IssueTypeNotFound     = "not-found"
	IssueTypeProcessing   = "processing"
	IssueTypeThrottled    = "throttled"
	IssueTypeNotSupported = "not-supported"
	IssueTypeBusinessRule = "business-rule"
	IssueTypeException    = "exception"
	IssueTypeTimeout      = "timeout"
	IssueTypeCodeInvalid  = "code-invalid"
)

var validSeverities = map[string]bool{
	IssueSeverityFatal:       true,
	IssueSeverityError:       true,
	IssueSeverityWarning:     true,
	IssueSeverityInformation: true,
}

// IsValidSeverity checks whether a severity string is a valid FHIR issue severity.
func IsValidSeverity(s string) bool {
	return validSeverities[s]
}

// ThrottleOutcome creates a 429-style OperationOutcome indicating the server is
// rate-limiting the client.
func ThrottleOutcome() *OperationOutcome {
	return NewOperationOutcome(
		IssueSeverityError,
		IssueTypeThrottled,
		"Rate limit exceeded. Please retry after a delay.",
	)
}

// TimeoutOutcome creates a 504-style OperationOutcome for a request that ran
// past its deadline.
func TimeoutOutcome() *OperationOutcome {
	return NewOperationOutcome(
		IssueSeverityError,
		IssueTypeTimeout,
		"Request processing exceeded the allowed time limit",
	)
}
