package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"hirepanel/internal/applicant"
)

const sheetName = "Applications"

// XLSX renders records as a single-sheet workbook with the CSV columns.
// Match score is written as a number. ok is false when records is empty.
func XLSX(records []applicant.Application, now time.Time, dateFormat string, loc *time.Location) (File, bool, error) {
	if len(records) == 0 {
		return File{}, false, nil
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return File{}, false, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return File{}, false, fmt.Errorf("header style: %w", err)
	}

	for col, h := range Header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return File{}, false, fmt.Errorf("write header: %w", err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", headerStyle); err != nil {
		return File{}, false, fmt.Errorf("style header: %w", err)
	}

	for i, a := range records {
		row := i + 2
		fields := Row(a, dateFormat, loc)
		for col, v := range fields {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			var value any = v
			if col == 4 {
				value = a.MatchScore
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return File{}, false, fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	f.SetColWidth(sheetName, "A", "C", 28)
	f.SetColWidth(sheetName, "D", "F", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return File{}, false, fmt.Errorf("write workbook: %w", err)
	}
	return File{
		Name:     FileName(now, "xlsx"),
		MIMEType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:     buf.Bytes(),
	}, true, nil
}
