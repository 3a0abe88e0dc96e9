package notify

import (
	"reflect"
	"testing"

	"courtnotify/internal/types"
)

func artefactWithCases(cases ...map[string]any) types.Artefact {
	entries := make([]any, len(cases))
	for i, c := range cases {
		entries[i] = c
	}
	return types.Artefact{Search: map[string][]any{"cases": entries}}
}

func TestEnrichIdentityWithoutCasesKey(t *testing.T) {
	a := types.Artefact{Search: map[string][]any{"parties": {"x"}}}
	in := []string{"1234", "5678"}

	got := EnrichCaseNumbers(a, in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("enrich without cases key should be identity, got %v", got)
	}
}

func TestEnrichAnnotatesMatches(t *testing.T) {
	a := artefactWithCases(
		map[string]any{"caseNumber": "1234", "caseName": "A v B"},
		map[string]any{"caseNumber": "5678", "caseName": ""},
	)

	got := EnrichCaseNumbers(a, []string{"1234", "5678", "0000"})
	want := []string{"1234 (A v B)", "5678", "0000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEnrichPreservesInputOrder(t *testing.T) {
	a := artefactWithCases(
		map[string]any{"caseNumber": "22", "caseName": "Second"},
		map[string]any{"caseNumber": "11", "caseName": "First"},
	)

	got := EnrichCaseNumbers(a, []string{"11", "22"})
	want := []string{"11 (First)", "22 (Second)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEnrichDuplicateNumbersFirstEntryWins(t *testing.T) {
	a := artefactWithCases(
		map[string]any{"caseNumber": "1234", "caseName": ""},
		map[string]any{"caseNumber": "1234", "caseName": "First non-empty"},
		map[string]any{"caseNumber": "1234", "caseName": "Later name"},
	)

	got := EnrichCaseNumbers(a, []string{"1234"})
	want := []string{"1234 (First non-empty)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEnrichNeverMatchesEmptySourceNumbers(t *testing.T) {
	a := artefactWithCases(
		map[string]any{"caseNumber": "", "caseName": "Phantom"},
	)

	got := EnrichCaseNumbers(a, []string{"", "1234"})
	want := []string{"", "1234"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEnrichCaseSensitiveMatch(t *testing.T) {
	a := artefactWithCases(
		map[string]any{"caseNumber": "AB12", "caseName": "Upper"},
	)

	got := EnrichCaseNumbers(a, []string{"ab12"})
	want := []string{"ab12"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("matching must be case-sensitive: got %v, want %v", got, want)
	}
}
