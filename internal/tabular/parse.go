package tabular

import (
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
)

// Layouts tried before falling back to now.Parse. Korean spreadsheets mix
// dashed, dotted and slashed day formats freely.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Excel serial dates count days from 1899-12-30 (the Lotus epoch, bug
// included). Serials outside this window are rejected rather than turned
// into nonsense dates.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

const (
	minExcelSerial = 61     // 1900-03-01, past the leap-year bug zone
	maxExcelSerial = 219146 // year 2499
)

// ParseNumber coerces free text to a decimal. Thousands separators are
// stripped first. It reports false for anything unparseable; callers turn
// that into a null cell, never an error.
func ParseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseDate coerces free text to a date. It tries the explicit layouts, then
// now.Parse for everything else it understands, then an Excel serial-number
// fallback for sheets whose date cells survived as raw day counts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if serial, ok := ParseNumber(s); ok {
		return dateFromExcelSerial(serial)
	}
	if t, err := now.Parse(s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func dateFromExcelSerial(serial decimal.Decimal) (time.Time, bool) {
	days := serial.IntPart()
	if days < minExcelSerial || days > maxExcelSerial {
		return time.Time{}, false
	}
	frac := serial.Sub(decimal.NewFromInt(days))
	seconds := frac.Mul(decimal.NewFromInt(24 * 60 * 60)).IntPart()
	return excelEpoch.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second), true
}
