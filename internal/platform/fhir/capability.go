package fhir

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// SearchParam describes a search parameter in the CapabilityStatement.
type SearchParam struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Documentation string `json:"documentation,omitempty"`
}

// OperationCapability describes a resource-level operation such as $lookup.
type OperationCapability struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}

type resourceEntry struct {
	interactions []string
	searchParams []SearchParam
	operations   []OperationCapability
}

// CapabilityBuilder collects what each handler registers so /fhir/metadata
// reports only what the server serves.
type CapabilityBuilder struct {
	mu        sync.RWMutex
	resources map[string]*resourceEntry

	ServerName    string
	ServerVersion string
	BaseURL       string
}

func NewCapabilityBuilder(name, baseURL, version string) *CapabilityBuilder {
	return &CapabilityBuilder{
		resources:     make(map[string]*resourceEntry),
		ServerName:    name,
		ServerVersion: version,
		BaseURL:       baseURL,
	}
}

func (b *CapabilityBuilder) entry(resourceType string) *resourceEntry {
	e, ok := b.resources[resourceType]
	if !ok {
		e = &resourceEntry{}
		b.resources[resourceType] = e
	}
	return e
}

// AddResource registers interactions and search parameters for a type,
// merging with earlier registrations.
func (b *CapabilityBuilder) AddResource(resourceType string, interactions []string, params []SearchParam) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.entry(resourceType)
	for _, i := range interactions {
		if !containsString(e.interactions, i) {
			e.interactions = append(e.interactions, i)
		}
	}
	e.searchParams = append(e.searchParams, params...)
}

// AddOperation registers a named operation on a resource type.
func (b *CapabilityBuilder) AddOperation(resourceType, name, definition string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := b.entry(resourceType)
	e.operations = append(e.operations, OperationCapability{Name: name, Definition: definition})
}

// Build renders the CapabilityStatement with resources sorted by type.
func (b *CapabilityBuilder) Build() map[string]interface{} {
	b.mu.RLock()
	defer b.mu.RUnlock()

	types := make([]string, 0, len(b.resources))
	for t := range b.resources {
		types = append(types, t)
	}
	sort.Strings(types)

	resources := make([]map[string]interface{}, 0, len(types))
	for _, t := range types {
		e := b.resources[t]
		r := map[string]interface{}{"type": t}
		if len(e.interactions) > 0 {
			inter := make([]map[string]string, len(e.interactions))
			for i, code := range e.interactions {
				inter[i] = map[string]string{"code": code}
			}
			r["interaction"] = inter
		}
		if len(e.searchParams) > 0 {
			r["searchParam"] = e.searchParams
		}
		if len(e.operations) > 0 {
			r["operation"] = e.operations
		}
		resources = append(resources, r)
	}

	return map[string]interface{}{
		"resourceType": "CapabilityStatement",
		"status":       "active",
		"date":         time.Now().UTC().Format("2006-01-02"),
		"kind":         "instance",
		"software": map[string]string{
			"name":    b.ServerName,
			"version": b.ServerVersion,
		},
		"implementation": map[string]string{
			"description": b.ServerName,
			"url":         b.BaseURL,
		},
		"fhirVersion": "4.0.1",
		"format":      []string{"json"},
		"rest": []map[string]interface{}{{
			"mode":     "server",
			"resource": resources,
		}},
	}
}

// Handler serves GET /fhir/metadata.
func (b *CapabilityBuilder) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, b.Build())
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
