package journal

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 2, 3, 7, 0, 0, 0, time.UTC)
	entries := []Entry{
		sampleEntry("s1", start, 722),
		sampleEntry("s2", start.Add(48*time.Hour), 728),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, entries))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{xlsxSheet}, f.GetSheetList())

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "s1", rows[1][0])
	assert.Equal(t, "2026-02-03 07:00:00", rows[1][1])
	assert.Equal(t, "s2", rows[2][0])

	raw := func(cell string) string {
		v, err := f.GetCellValue(xlsxSheet, cell, excelize.Options{RawCellValue: true})
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "72.2", raw("F2"))
	assert.Equal(t, "240", raw("G2"))
	assert.Equal(t, "-0.2", raw("K2"))
	assert.Equal(t, "93.3", raw("L2"))
	assert.Equal(t, "0.75", raw("M2"))
}

func TestWriteXLSX_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
