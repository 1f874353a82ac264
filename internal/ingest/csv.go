package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/minwoo-jeong/asreco/internal/tabular"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// ReadCSV reads a delimited text file into a table. Field counts may vary
// per row; short rows are padded. Encoding is detected, not assumed, because
// Korean CSV exports are as often EUC-KR as UTF-8.
func ReadCSV(r io.Reader) (*tabular.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	decoded, err := decodeToUTF8(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: no header row")
		}
		return nil, fmt.Errorf("read header row: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		rows = append(rows, record)
	}
	return buildTable(header, rows), nil
}

// decodeToUTF8 strips a UTF-8 BOM, accepts valid UTF-8 as-is, then tries
// EUC-KR and finally Latin-1, which cannot fail.
func decodeToUTF8(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, bomUTF8) {
		return data[len(bomUTF8):], nil
	}
	if utf8.Valid(data) {
		return data, nil
	}
	if decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data); err == nil && utf8.Valid(decoded) {
		return decoded, nil
	}
	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decode csv bytes: %w", err)
	}
	return decoded, nil
}
