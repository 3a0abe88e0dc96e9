package types

import (
	"testing"
)

func TestCaseSearchesAbsentKey(t *testing.T) {
	a := Artefact{Search: map[string][]any{"parties": {"someone"}}}
	if _, ok := a.CaseSearches(); ok {
		t.Error("artefact without a cases key should report ok=false")
	}
}

func TestCaseSearchesDecodesInOrder(t *testing.T) {
	a := Artefact{Search: map[string][]any{
		"cases": {
			map[string]any{"caseNumber": "1234", "caseName": "A v B", "caseUrn": "URN1"},
			map[string]any{"caseNumber": "5678", "caseName": "", "caseUrn": ""},
			map[string]any{"caseNumber": "9999", "caseName": "C v D"},
		},
	}}

	cases, ok := a.CaseSearches()
	if !ok {
		t.Fatal("expected ok=true")
	}
	if len(cases) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(cases))
	}
	if cases[0].CaseNumber != "1234" || cases[0].CaseName != "A v B" || cases[0].CaseURN != "URN1" {
		t.Errorf("first entry = %+v", cases[0])
	}
	if cases[1].CaseName != "" {
		t.Errorf("second entry should have empty name, got %q", cases[1].CaseName)
	}
	if cases[2].CaseNumber != "9999" {
		t.Errorf("order not preserved: third entry = %+v", cases[2])
	}
}

func TestCaseSearchesSkipsUndecodable(t *testing.T) {
	a := Artefact{Search: map[string][]any{
		"cases": {
			"not an object",
			map[string]any{"caseNumber": "1234", "caseName": "A v B"},
		},
	}}

	cases, ok := a.CaseSearches()
	if !ok {
		t.Fatal("expected ok=true")
	}
	// A bare string decodes into a zero CaseSearch rather than erroring;
	// either way the well-formed entry must survive.
	found := false
	for _, c := range cases {
		if c.CaseNumber == "1234" {
			found = true
		}
	}
	if !found {
		t.Error("well-formed entry lost during decode")
	}
}
