package fhir

// Parameters is the FHIR Parameters resource returned by terminology
// operations such as $lookup and $translate.
type Parameters struct {
	ResourceType string      `json:"resourceType"`
	Parameter    []Parameter `json:"parameter"`
}

// Parameter is a single named value. Only one value[x] field is set, or Part
// for nested parameters.
type Parameter struct {
	Name         string      `json:"name"`
	ValueString  string      `json:"valueString,omitempty"`
	ValueCode    string      `json:"valueCode,omitempty"`
	ValueURI     string      `json:"valueUri,omitempty"`
	ValueBoolean *bool       `json:"valueBoolean,omitempty"`
	ValueCoding  *Coding     `json:"valueCoding,omitempty"`
	Part         []Parameter `json:"part,omitempty"`
}

// NewParameters creates an empty Parameters resource.
func NewParameters() *Parameters {
	return &Parameters{ResourceType: "Parameters", Parameter: []Parameter{}}
}

// AddString appends a valueString parameter.
func (p *Parameters) AddString(name, value string) *Parameters {
	p.Parameter = append(p.Parameter, Parameter{Name: name, ValueString: value})
	return p
}

// AddBoolean appends a valueBoolean parameter.
func (p *Parameters) AddBoolean(name string, value bool) *Parameters {
	v := value
	p.Parameter = append(p.Parameter, Parameter{Name: name, ValueBoolean: &v})
	return p
}

// AddPart appends a parameter made of nested parts.
func (p *Parameters) AddPart(name string, parts ...Parameter) *Parameters {
	p.Parameter = append(p.Parameter, Parameter{Name: name, Part: parts})
	return p
}

// Get returns the first parameter with the given name.
func (p *Parameters) Get(name string) (Parameter, bool) {
	for _, param := range p.Parameter {
		if param.Name == name {
			return param, true
		}
	}
	return Parameter{}, false
}

// Value returns the first non-empty primitive value of the parameter.
func (p Parameter) Value() string {
	switch {
	case p.ValueCode != "":
		return p.ValueCode
	case p.ValueURI != "":
		return p.ValueURI
	default:
		return p.ValueString
	}
}
