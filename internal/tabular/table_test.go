package tabular

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAddRenameDrop(t *testing.T) {
	tb := New("a", "b")
	tb.AppendRow(String("x"), NumberFromInt(1))

	tb.AddColumn("c", Null())
	assert.Equal(t, []string{"a", "b", "c"}, tb.Columns())
	assert.True(t, tb.At(0, "c").IsNull())

	// Adding an existing column must not overwrite data.
	tb.AddColumn("a", String("overwritten"))
	assert.Equal(t, "x", tb.At(0, "a").Text())

	require.True(t, tb.RenameColumn("b", "amount"))
	assert.False(t, tb.RenameColumn("missing", "other"))
	assert.False(t, tb.RenameColumn("a", "amount"), "rename onto existing column must fail")

	n, ok := tb.At(0, "amount").Number()
	require.True(t, ok)
	assert.Equal(t, int64(1), n.IntPart())

	tb.DropColumn("a")
	assert.Equal(t, []string{"amount", "c"}, tb.Columns())
	assert.Equal(t, "1", tb.At(0, "amount").Text())
}

func TestTableAppendRowPadsAndTruncates(t *testing.T) {
	tb := New("a", "b", "c")
	tb.AppendRow(String("only"))
	tb.AppendRow(String("1"), String("2"), String("3"), String("dropped"))

	assert.True(t, tb.At(0, "b").IsNull())
	assert.True(t, tb.At(0, "c").IsNull())
	assert.Equal(t, "3", tb.At(1, "c").Text())
}

func TestTableMissingColumnReadsNull(t *testing.T) {
	tb := New("a")
	tb.AppendRow(String("x"))

	assert.True(t, tb.At(0, "nope").IsNull())
	tb.Set(0, "nope", String("ignored")) // must not panic
	assert.Equal(t, "x", tb.At(0, "a").Text())
}

func TestTableCloneIsDeep(t *testing.T) {
	tb := New("a")
	tb.AppendRow(String("orig"))

	cp := tb.Clone()
	cp.Set(0, "a", String("changed"))
	cp.AddColumn("b", Null())

	assert.Equal(t, "orig", tb.At(0, "a").Text())
	assert.False(t, tb.HasColumn("b"))
}

func TestTableSortStable(t *testing.T) {
	tb := New("k", "seq")
	tb.AppendRow(String("b"), NumberFromInt(1))
	tb.AppendRow(String("a"), NumberFromInt(2))
	tb.AppendRow(String("b"), NumberFromInt(3))

	tb.SortStable(func(a, b Row) bool {
		return a.At("k").Text() < b.At("k").Text()
	})

	assert.Equal(t, "a", tb.At(0, "k").Text())
	// Equal keys keep input order.
	assert.Equal(t, "1", tb.At(1, "seq").Text())
	assert.Equal(t, "3", tb.At(2, "seq").Text())
}

func TestValueText(t *testing.T) {
	assert.Equal(t, "", Null().Text())
	assert.Equal(t, "12345", NumberFromInt(12345).Text())
	assert.Equal(t, "2024-03-01", Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).Text())
	assert.Equal(t, "2024-03-01 13:30:00", Date(time.Date(2024, 3, 1, 13, 30, 0, 0, time.UTC)).Text())
	assert.Equal(t, "true", Bool(true).Text())
}

func TestValueMarshalJSON(t *testing.T) {
	b, err := NumberFromInt(42).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "42", string(b), "numbers must serialize unquoted")

	b, err = Null().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = String("지게차").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"지게차"`, string(b))
}
