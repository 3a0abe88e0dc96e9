package notify

import (
	"encoding/json"
	"fmt"
	"strings"

	"courtnotify/internal/spreadsheet"
)

// Nested court-list structure as received from data-management. Source order
// reflects sitting chronology, so no level is ever re-sorted.

// CourtHouse is the top level of a rendered list.
type CourtHouse struct {
	Name       string      `json:"courtHouseName"`
	CourtRooms []CourtRoom `json:"courtRooms"`
}

// CourtRoom groups sittings under a named room.
type CourtRoom struct {
	Name     string    `json:"courtRoomName"`
	Sittings []Sitting `json:"sittings"`
}

// Sitting is a scheduled block of hearings.
type Sitting struct {
	SittingStart string    `json:"sittingStart"`
	Hearings     []Hearing `json:"hearings"`
}

// Hearing is a single case appearance within a sitting.
type Hearing struct {
	CaseNumber  string `json:"caseNumber"`
	CaseName    string `json:"caseName"`
	HearingType string `json:"hearingType"`
}

// ParseListPayload decodes a published list payload into its court-house
// structure. Payloads that are not structured lists (flat files, free-form
// JSON) decode to nil, in which case the subscription email simply carries
// the raw payload without a generated summary workbook.
func ParseListPayload(payload []byte) []CourtHouse {
	if len(payload) == 0 {
		return nil
	}
	var doc struct {
		CourtHouses []CourtHouse `json:"courtHouses"`
	}
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil
	}
	return doc.CourtHouses
}

// BuildListSummary flattens the nested structure into the pre-rendered text
// block substituted into subscription emails. Court houses, rooms, sittings,
// and hearings appear exactly in input order.
func BuildListSummary(courtHouses []CourtHouse) string {
	var b strings.Builder
	for _, ch := range courtHouses {
		fmt.Fprintf(&b, "%s\n", ch.Name)
		for _, room := range ch.CourtRooms {
			for _, sitting := range room.Sittings {
				for _, hearing := range sitting.Hearings {
					line := hearing.CaseNumber
					if hearing.CaseName != "" {
						line = fmt.Sprintf("%s - %s", line, hearing.CaseName)
					}
					if hearing.HearingType != "" {
						line = fmt.Sprintf("%s (%s)", line, hearing.HearingType)
					}
					fmt.Fprintf(&b, "%s, %s, %s\n", room.Name, sitting.SittingStart, line)
				}
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// BuildListSheets flattens the nested structure into per-court-house
// spreadsheet rows for the generated summary workbook, one sheet per court
// house, preserving input order throughout.
func BuildListSheets(courtHouses []CourtHouse) []spreadsheet.Sheet {
	sheets := make([]spreadsheet.Sheet, 0, len(courtHouses))
	for _, ch := range courtHouses {
		rows := [][]string{{"Court Room", "Sitting Start", "Case Number", "Case Name", "Hearing Type"}}
		for _, room := range ch.CourtRooms {
			for _, sitting := range room.Sittings {
				for _, hearing := range sitting.Hearings {
					rows = append(rows, []string{
						room.Name,
						sitting.SittingStart,
						hearing.CaseNumber,
						hearing.CaseName,
						hearing.HearingType,
					})
				}
			}
		}
		sheets = append(sheets, spreadsheet.Sheet{Name: ch.Name, Rows: rows})
	}
	return sheets
}
