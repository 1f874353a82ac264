package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"관리번호", "제조사명"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"F-001", "두산"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"F-002", ""}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tb, err := ReadWorkbook(buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"관리번호", "제조사명"}, tb.Columns())
	require.Equal(t, 2, tb.NumRows())
	assert.Equal(t, "두산", tb.At(0, "제조사명").Text())
	assert.True(t, tb.At(1, "제조사명").IsNull())
}
