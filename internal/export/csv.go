// Package export serializes tables to delimited text for download. Output is
// flat by contract: every cell renders through its canonical textual form.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/minwoo-jeong/asreco/internal/tabular"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the table as UTF-8 CSV with a BOM, which is what keeps
// Korean headers readable when the analyst opens the download in Excel.
func WriteCSV(w io.Writer, t *tabular.Table) error {
	if t == nil {
		return fmt.Errorf("nil table")
	}
	if _, err := w.Write(bomUTF8); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	cols := t.Columns()
	if err := cw.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(cols))
	for i := 0; i < t.NumRows(); i++ {
		for j, c := range cols {
			record[j] = t.At(i, c).Text()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
