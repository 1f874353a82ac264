package tabular

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the type carried by a cell Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindDate
	KindBool
)

// Value is a single immutable cell. The zero Value is null, which is the
// expected state for anything that failed coercion or was never filled in.
type Value struct {
	kind    Kind
	str     string
	num     decimal.Decimal
	date    time.Time
	boolean bool
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// String wraps a text cell.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number wraps a numeric cell. All numeric cells carry decimals so that cost
// aggregation stays exact.
func Number(d decimal.Decimal) Value {
	return Value{kind: KindNumber, num: d}
}

// NumberFromInt wraps an integer as a numeric cell.
func NumberFromInt(n int64) Value {
	return Value{kind: KindNumber, num: decimal.NewFromInt(n)}
}

// Date wraps a date cell.
func Date(t time.Time) Value {
	return Value{kind: KindDate, date: t}
}

// Bool wraps a boolean cell.
func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// Kind reports the cell's type.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the cell is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the string payload when the cell is a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Number returns the numeric payload when the cell is a number.
func (v Value) Number() (decimal.Decimal, bool) {
	return v.num, v.kind == KindNumber
}

// Date returns the date payload when the cell is a date.
func (v Value) Date() (time.Time, bool) {
	return v.date, v.kind == KindDate
}

// Bool returns the boolean payload when the cell is a bool.
func (v Value) Bool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// Text renders the cell in its canonical textual form. Null renders as the
// empty string; numbers render without an exponent, so a numerically encoded
// asset id such as 12345 round-trips to "12345" regardless of how the source
// file stored it. This is the form used for join keys and CSV export.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num.String()
	case KindDate:
		if v.date.Hour() == 0 && v.date.Minute() == 0 && v.date.Second() == 0 {
			return v.date.Format("2006-01-02")
		}
		return v.date.Format("2006-01-02 15:04:05")
	case KindBool:
		return strconv.FormatBool(v.boolean)
	default:
		return ""
	}
}

// MarshalJSON renders null/string/number/date/bool as their natural JSON
// counterparts. Numbers are emitted as bare JSON numbers, not quoted strings.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return []byte(strconv.Quote(v.str)), nil
	case KindNumber:
		return []byte(v.num.String()), nil
	case KindDate:
		return []byte(strconv.Quote(v.Text())), nil
	case KindBool:
		return []byte(strconv.FormatBool(v.boolean)), nil
	default:
		return []byte("null"), nil
	}
}
