package exporter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteObservationsXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteObservationsXLSX(&buf, sampleRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ObservationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"region", "date", "metric", "value"}, rows[0])
	assert.Equal(t, "California", rows[1][0])
	assert.Equal(t, "2020-01-31", rows[1][1])
	assert.Equal(t, "500000", rows[1][3])

	// The missing February cell is empty; excelize trims trailing empties.
	if len(rows[2]) > 3 {
		assert.Equal(t, "", rows[2][3])
	}
}

func TestWriteObservationsXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteObservationsXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ObservationsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
