package fhir

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bundle types used by this server.
const (
	BundleTypeCollection = "collection"
	BundleTypeSearchset  = "searchset"
)

// Bundle represents a FHIR Bundle resource.
type Bundle struct {
	ResourceType string        `json:"resourceType"`
	ID           string        `json:"id,omitempty"`
	Meta         *Meta         `json:"meta,omitempty"`
	Type         string        `json:"type"`
	Timestamp    *time.Time    `json:"timestamp,omitempty"`
	Total        *int          `json:"total,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty"`
}

type BundleEntry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Search   *BundleSearch   `json:"search,omitempty"`
}

type BundleSearch struct {
	Mode string `json:"mode,omitempty"`
}

// NewCollectionBundle wraps resources, in order, into a collection Bundle.
// Each entry gets a urn:uuid fullUrl when the resource carries an id.
func NewCollectionBundle(id string, meta *Meta, ts time.Time, resources ...interface{}) (*Bundle, error) {
	entries := make([]BundleEntry, 0, len(resources))
	for i, r := range resources {
		raw, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshal bundle entry %d: %w", i, err)
		}
		entries = append(entries, BundleEntry{
			FullURL:  fullURLFor(raw),
			Resource: raw,
		})
	}
	ts = ts.UTC()
	return &Bundle{
		ResourceType: "Bundle",
		ID:           id,
		Meta:         meta,
		Type:         BundleTypeCollection,
		Timestamp:    &ts,
		Entry:        entries,
	}, nil
}

// NewSearchBundle creates a searchset Bundle from a list of resources.
func NewSearchBundle(resources []interface{}) *Bundle {
	now := time.Now().UTC()
	entries := make([]BundleEntry, len(resources))
	for i, r := range resources {
		raw, _ := json.Marshal(r)
		entries[i] = BundleEntry{
			Resource: raw,
			Search:   &BundleSearch{Mode: "match"},
		}
	}
	total := len(entries)
	return &Bundle{
		ResourceType: "Bundle",
		Type:         BundleTypeSearchset,
		Total:        &total,
		Timestamp:    &now,
		Entry:        entries,
	}
}

func fullURLFor(raw json.RawMessage) string {
	var head struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || head.ID == "" {
		return ""
	}
	return "urn:uuid:" + head.ID
}
