package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

func TestReadCSVUTF8WithBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("관리번호,현장\nA-1,서울 강남구 테헤란로 1\n")...)

	tb, err := ReadCSV(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"관리번호", "현장"}, tb.Columns())
	assert.Equal(t, "A-1", tb.At(0, "관리번호").Text())
}

func TestReadCSVDetectsEUCKR(t *testing.T) {
	utf8CSV := "사번,소속\n1001,정비1팀\n"
	encoded, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(utf8CSV))
	require.NoError(t, err)

	tb, err := ReadCSV(bytes.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, []string{"사번", "소속"}, tb.Columns())
	assert.Equal(t, "정비1팀", tb.At(0, "소속").Text())
}

func TestReadCSVRaggedRows(t *testing.T) {
	tb, err := ReadCSV(strings.NewReader("a,b,c\n1,2\n1,2,3\n"))
	require.NoError(t, err)
	require.Equal(t, 2, tb.NumRows())
	assert.True(t, tb.At(0, "c").IsNull())
	assert.Equal(t, "3", tb.At(1, "c").Text())
}

func TestReadCSVBlankCellsAreNull(t *testing.T) {
	tb, err := ReadCSV(strings.NewReader("a,b\nx,\n"))
	require.NoError(t, err)
	assert.True(t, tb.At(0, "b").IsNull())
	assert.Equal(t, "x", tb.At(0, "a").Text())
}

func TestReadCSVEmptyFile(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestBuildTableDropsEmptyAndDuplicateHeaders(t *testing.T) {
	tb := buildTable([]string{"a", "", "a", "b"}, [][]string{{"1", "2", "3", "4"}})
	assert.Equal(t, []string{"a", "b"}, tb.Columns())
	assert.Equal(t, "1", tb.At(0, "a").Text())
	assert.Equal(t, "4", tb.At(0, "b").Text())
}
