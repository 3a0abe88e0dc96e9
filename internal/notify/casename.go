package notify

import (
	"fmt"

	"courtnotify/internal/types"
)

// EnrichCaseNumbers annotates each case-number content line with a
// human-readable case name resolved from the artefact's embedded search
// metadata. Input order is preserved in the output.
//
// Behavior:
//   - No "cases" key in the artefact's search metadata: the input is
//     returned unchanged.
//   - For each number, the first search entry (in source order) whose case
//     number is an exact, case-sensitive match and whose name is non-empty
//     wins; the line becomes "<number> (<name>)".
//   - Entries with empty case numbers in the source data never match, and
//     unmatched input lines pass through bare.
//
// Duplicate case numbers with different non-empty names resolve
// deterministically to the first entry in list order.
func EnrichCaseNumbers(artefact types.Artefact, caseNumbers []string) []string {
	searches, ok := artefact.CaseSearches()
	if !ok {
		return caseNumbers
	}

	out := make([]string, 0, len(caseNumbers))
	for _, number := range caseNumbers {
		out = append(out, enrichOne(searches, number))
	}
	return out
}

func enrichOne(searches []types.CaseSearch, number string) string {
	if number == "" {
		return number
	}
	for _, cs := range searches {
		if cs.CaseNumber == "" {
			continue
		}
		if cs.CaseNumber == number && cs.CaseName != "" {
			return fmt.Sprintf("%s (%s)", number, cs.CaseName)
		}
	}
	return number
}
