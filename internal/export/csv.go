package export

import (
	"encoding/csv"
	"io"

	"github.com/rotisserie/eris"
)

// WriteCSV writes the header and rows as RFC 4180 CSV. Fields containing
// quotes come out with the quotes doubled.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}
	for _, row := range rows {
		if err := cw.Write(row.fields()); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}
