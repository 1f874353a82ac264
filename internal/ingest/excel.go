// Package ingest turns uploaded and pre-packaged spreadsheet files into
// tabular.Tables. Every cell comes out as text or null; typing is the schema
// normalizer's job, not the reader's.
package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// ReadWorkbook reads the first sheet of an xlsx workbook. The first row is
// the header; everything below becomes string cells, with blanks as null.
func ReadWorkbook(r io.Reader) (*tabular.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return buildTable(rows[0], rows[1:]), nil
}

// buildTable assembles a table from a raw header row and raw string rows.
// Empty or duplicate headers are dropped so the column index stays unique;
// short rows are padded with nulls. Header text is kept verbatim here, the
// normalizer owns whitespace cleanup.
func buildTable(header []string, raw [][]string) *tabular.Table {
	var cols []string
	var keep []int
	seen := make(map[string]struct{})
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		cols = append(cols, h)
		keep = append(keep, i)
	}

	t := tabular.New(cols...)
	for _, r := range raw {
		row := make([]tabular.Value, len(keep))
		for j, src := range keep {
			if src >= len(r) {
				row[j] = tabular.Null()
				continue
			}
			cell := strings.TrimSpace(r[src])
			if cell == "" {
				row[j] = tabular.Null()
			} else {
				row[j] = tabular.String(cell)
			}
		}
		t.AppendRow(row...)
	}
	return t
}
