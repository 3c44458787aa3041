package inventory

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var header = []any{"序号", "IP", "版本", "MAC", "CPU数", "CPU ID", "内存（M）", "Wi-Fi", "蓝牙", "USB", "操作用户", "其他", "时间", "btid"}

// workbook builds an xlsx file with the given rows below the header.
func workbook(t *testing.T, header []any, rows ...[]any) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseBoxes(t *testing.T) {
	buf := workbook(t, header,
		[]any{"1", "10.0.0.5", "1.2.0", "AA:BB:CC:DD:EE:01", "4", "cpu-1", "2048", "ok", "ok", "ok", "wang", "", "2023-05-01", "bt-1"},
		[]any{"", "", "", "", "", "", "", "", "", "", "", "", "", ""},
		[]any{"3", "10.0.0.7", "1.2.0", "AA:BB:CC:DD:EE:03"},
	)

	sheet, err := ParseBoxes(buf)
	require.NoError(t, err)

	require.Len(t, sheet.Boxes, 2)
	assert.Equal(t, 1, sheet.Skipped)

	first := sheet.Boxes[0]
	assert.Equal(t, 2, first.Row)
	assert.Equal(t, "1", first.Number)
	assert.Equal(t, "10.0.0.5", first.IP)
	assert.Equal(t, "AA:BB:CC:DD:EE:01", first.MAC)
	assert.Equal(t, "2048", first.Memory)
	assert.Equal(t, "wang", first.OperateUser)
	assert.Equal(t, "bt-1", first.BTID)

	assert.Equal(t, 4, sheet.Boxes[1].Row)
	assert.Equal(t, "AA:BB:CC:DD:EE:03", sheet.Boxes[1].MAC)
}

func TestParseBoxes_ColumnsByTitle(t *testing.T) {
	buf := workbook(t, []any{"备注", "MAC", "序号"},
		[]any{"ignored", "AA:BB:CC:DD:EE:01", "7"},
	)

	sheet, err := ParseBoxes(buf)
	require.NoError(t, err)
	require.Len(t, sheet.Boxes, 1)
	assert.Equal(t, "7", sheet.Boxes[0].Number)
	assert.Equal(t, "AA:BB:CC:DD:EE:01", sheet.Boxes[0].MAC)
}

func TestParseBoxes_Invalid(t *testing.T) {
	t.Run("not a workbook", func(t *testing.T) {
		_, err := ParseBoxes(strings.NewReader("mac,ip\n"))
		assert.ErrorIs(t, err, ErrInvalidWorkbook)
	})

	t.Run("no MAC column", func(t *testing.T) {
		_, err := ParseBoxes(workbook(t, []any{"序号", "IP"}, []any{"1", "10.0.0.1"}))
		assert.ErrorIs(t, err, ErrInvalidWorkbook)
	})
}

func TestBox_IsEmpty(t *testing.T) {
	assert.True(t, (&Box{Row: 5}).IsEmpty())
	assert.False(t, (&Box{Other: "x"}).IsEmpty())
	assert.False(t, (&Box{BoxUUID: "x"}).IsEmpty())
}
