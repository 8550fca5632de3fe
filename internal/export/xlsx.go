package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// WriteXLSX writes the rows as a single-sheet workbook with the same column
// order as the CSV export.
func WriteXLSX(w io.Writer, rows []Row) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Prospects")
	if err != nil {
		return eris.Wrap(err, "export: add xlsx sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range Header {
		headerRow.AddCell().Value = h
	}
	for _, row := range rows {
		xr := sheet.AddRow()
		for _, field := range row.fields() {
			xr.AddCell().Value = field
		}
	}

	return eris.Wrap(file.Write(w), "export: write xlsx")
}
