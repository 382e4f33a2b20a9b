package terminology

// SystemNAMASTE identifies the NAMASTE source vocabulary.
const SystemNAMASTE = "https://namaste.ayush.gov.in/fhir/CodeSystem/namaste"

// DefaultSearchLimit caps the number of entries a search returns.
const DefaultSearchLimit = 20

// CatalogEntry is a single source-vocabulary concept. Designations hold
// synonyms and alternate scripts (IAST transliteration, Devanagari, ...).
type CatalogEntry struct {
	Code         string   `json:"code" yaml:"code"`
	System       string   `json:"system" yaml:"system"`
	Display      string   `json:"display" yaml:"display"`
	Designations []string `json:"designations,omitempty" yaml:"designations"`
}

// ValueSetExpansion is the FHIR ValueSet resource returned by $expand.
type ValueSetExpansion struct {
	ResourceType string    `json:"resourceType"`
	URL          string    `json:"url,omitempty"`
	Expansion    Expansion `json:"expansion"`
}

type Expansion struct {
	Identifier string              `json:"identifier"`
	Timestamp  string              `json:"timestamp"`
	Total      int                 `json:"total"`
	Parameter  []ExpansionParam    `json:"parameter,omitempty"`
	Contains   []ExpansionContains `json:"contains"`
}

type ExpansionParam struct {
	Name        string `json:"name"`
	ValueString string `json:"valueString,omitempty"`
}

type ExpansionContains struct {
	System      string                 `json:"system"`
	Code        string                 `json:"code"`
	Display     string                 `json:"display"`
	Designation []ExpansionDesignation `json:"designation,omitempty"`
}

type ExpansionDesignation struct {
	Value string `json:"value"`
}
