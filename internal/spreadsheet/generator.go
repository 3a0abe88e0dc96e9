// Package spreadsheet turns tabular per-list data into multi-sheet Excel
// workbooks attached to reporting and subscription emails.
package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"courtnotify/internal/types"
)

// Sheet is one worksheet of input: an ordered name plus ordered rows of
// string cells. Row 0 is the header row.
type Sheet struct {
	Name string
	Rows [][]string
}

// Generate serializes the sheets into a single in-memory workbook. Sheets
// appear in input order under their given names; the header row is bold and
// column widths are sized to fit the header content. A fresh workbook is
// allocated per call, so concurrent calls share no state.
//
// Any serialization failure is fatal for the call: no partial workbook is
// ever returned.
func Generate(sheets []Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, generationFailed("creating header style", err)
	}

	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, generationFailed(fmt.Sprintf("creating sheet %q", sheet.Name), err)
		}
		if err := populateSheet(f, sheet, headerStyle); err != nil {
			return nil, err
		}
	}

	// The library seeds every workbook with a default sheet. Drop it once
	// real sheets exist; an empty input keeps it so the container stays a
	// valid workbook with zero data sheets.
	if len(sheets) > 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, generationFailed("removing default sheet", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, generationFailed("serializing workbook", err)
	}
	return buf.Bytes(), nil
}

func populateSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	for rowIdx, row := range sheet.Rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		anchor, err := excelize.CoordinatesToCellName(1, rowIdx+1)
		if err != nil {
			return generationFailed("computing cell coordinates", err)
		}
		if err := f.SetSheetRow(sheet.Name, anchor, &cells); err != nil {
			return generationFailed(fmt.Sprintf("writing row %d of sheet %q", rowIdx, sheet.Name), err)
		}
	}

	if len(sheet.Rows) == 0 {
		return nil
	}

	header := sheet.Rows[0]
	if len(header) > 0 {
		lastCell, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return generationFailed("computing header extent", err)
		}
		if err := f.SetCellStyle(sheet.Name, "A1", lastCell, headerStyle); err != nil {
			return generationFailed(fmt.Sprintf("styling header of sheet %q", sheet.Name), err)
		}
	}

	// Width fits the header text; data rows may overflow, matching the
	// reporting templates this feeds.
	for i, cell := range header {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return generationFailed("computing column name", err)
		}
		width := float64(len(cell)) + 2
		if err := f.SetColWidth(sheet.Name, col, col, width); err != nil {
			return generationFailed(fmt.Sprintf("sizing column %s of sheet %q", col, sheet.Name), err)
		}
	}
	return nil
}

func generationFailed(context string, err error) *types.AppError {
	return types.NewAppError(
		types.ErrCodeAttachmentFailed,
		fmt.Sprintf("workbook generation failed: %s", context),
		err,
	)
}
