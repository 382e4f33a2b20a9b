package terminology

import (
	"errors"
	"testing"
)

func TestService_Search(t *testing.T) {
	svc := newTestService(t)
	results := svc.Search("jvara")
	if len(results) != 1 || results[0].Code != "ASU-1010" {
		t.Errorf("expected ASU-1010, got %+v", results)
	}
}

func TestService_SearchBlank(t *testing.T) {
	svc := newTestService(t)
	if results := svc.Search(""); len(results) != 0 {
		t.Errorf("expected empty results, got %d", len(results))
	}
}

func TestService_Get(t *testing.T) {
	svc := newTestService(t)
	e, err := svc.Get("ASU-1022")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Display != "Prameha" {
		t.Errorf("expected Prameha, got %s", e.Display)
	}

	_, err = svc.Get("ASU-9999")
	if !errors.Is(err, ErrCodeNotFound) {
		t.Errorf("expected ErrCodeNotFound, got %v", err)
	}

	_, err = svc.Get("")
	if err == nil || errors.Is(err, ErrCodeNotFound) {
		t.Errorf("expected required-code error, got %v", err)
	}
}

func TestService_Lookup(t *testing.T) {
	svc := newTestService(t)
	params, err := svc.Lookup(SystemNAMASTE, "ASU-1001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.ResourceType != "Parameters" {
		t.Errorf("expected Parameters, got %s", params.ResourceType)
	}
	display, ok := params.Get("display")
	if !ok || display.ValueString != "Āmavāta" {
		t.Errorf("expected display Āmavāta, got %+v", display)
	}
	version, _ := params.Get("version")
	if version.ValueString != "2024-09" {
		t.Errorf("expected version 2024-09, got %s", version.ValueString)
	}

	var designations int
	for _, p := range params.Parameter {
		if p.Name == "designation" {
			designations++
		}
	}
	if designations != 2 {
		t.Errorf("expected 2 designation parameters, got %d", designations)
	}
}

func TestService_Lookup_ImplicitSystem(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Lookup("", "ASU-1010"); err != nil {
		t.Errorf("expected lookup without system to succeed, got %v", err)
	}
}

func TestService_Lookup_UnsupportedSystem(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Lookup("http://snomed.info/sct", "ASU-1010")
	if err == nil {
		t.Error("expected error for unsupported system")
	}
}

func TestService_Expand(t *testing.T) {
	svc := newTestService(t)
	vs := svc.Expand("meha")
	if vs.ResourceType != "ValueSet" {
		t.Errorf("expected ValueSet, got %s", vs.ResourceType)
	}
	if vs.Expansion.Total != 2 {
		t.Fatalf("expected 2 entries, got %d", vs.Expansion.Total)
	}
	if vs.Expansion.Contains[0].Code != "ASU-1022" {
		t.Errorf("expected ASU-1022 first, got %s", vs.Expansion.Contains[0].Code)
	}
	if vs.Expansion.Identifier == "" || vs.Expansion.Timestamp == "" {
		t.Error("expected identifier and timestamp")
	}
}

func TestService_ExpandEmptyFilter(t *testing.T) {
	svc := newTestService(t)
	vs := svc.Expand("")
	if vs.Expansion.Contains == nil || len(vs.Expansion.Contains) != 0 {
		t.Errorf("expected empty non-nil contains, got %#v", vs.Expansion.Contains)
	}
}
