package notify

import (
	"courtnotify/internal/spreadsheet"
	"courtnotify/internal/types"
)

// generateListWorkbook renders the artefact's nested list data into the
// summary workbook attached to raw-data subscription emails.
func generateListWorkbook(courtHouses []CourtHouse) ([]byte, error) {
	return spreadsheet.Generate(BuildListSheets(courtHouses))
}

// mediaApplicationHeader is row 0 of the applications report sheet.
var mediaApplicationHeader = []string{"Full name", "Email", "Employer", "Request date", "Status", "Status date"}

// generateMediaApplicationWorkbook renders the media-account applications
// into the single-sheet reporting workbook, rows in input order.
func generateMediaApplicationWorkbook(applications []types.MediaApplication) ([]byte, error) {
	rows := make([][]string, 0, len(applications)+1)
	rows = append(rows, mediaApplicationHeader)
	for _, app := range applications {
		rows = append(rows, []string{
			app.FullName,
			app.Email,
			app.Employer,
			FormatDate(app.RequestDate),
			app.Status,
			FormatDate(app.StatusDate),
		})
	}
	return spreadsheet.Generate([]spreadsheet.Sheet{{Name: "Media Applications", Rows: rows}})
}

// BuildMISheets converts the per-area MI rows received from reporting
// callers into ordered workbook input. Sheet order follows input order.
func BuildMISheets(sections []MISection) []spreadsheet.Sheet {
	sheets := make([]spreadsheet.Sheet, 0, len(sections))
	for _, s := range sections {
		rows := make([][]string, 0, len(s.Rows)+1)
		rows = append(rows, s.Header)
		rows = append(rows, s.Rows...)
		sheets = append(sheets, spreadsheet.Sheet{Name: s.Name, Rows: rows})
	}
	return sheets
}

// MISection is one sheet of the management-information report as supplied by
// the reporting caller.
type MISection struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// GenerateMIWorkbook renders the MI sections into a multi-sheet workbook.
func GenerateMIWorkbook(sections []MISection) ([]byte, error) {
	return spreadsheet.Generate(BuildMISheets(sections))
}
