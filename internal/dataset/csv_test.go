package dataset_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-pump/internal/dataset"
)

func TestCSV_RoundTrip(t *testing.T) {
	d := dataset.New("id", "score", "name")
	require.NoError(t, d.AppendRow(int64(1), 9.5, "alice"))
	require.NoError(t, d.AppendRow(int64(2), nil, "bob"))
	require.NoError(t, d.AppendRow(int64(3), 7.0, ""))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, dataset.WriteCSV(d, path))

	got, err := dataset.ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, d.Names(), got.Names())
	assert.Equal(t, d.NumRows(), got.NumRows())
	assert.Equal(t, []interface{}{int64(1), 9.5, "alice"}, got.Row(0))
	// nulls survive as empty fields; the empty string also reads back null
	assert.Equal(t, []interface{}{int64(2), nil, "bob"}, got.Row(1))
	assert.Nil(t, got.Row(2)[2])
	// 7.0 is whole, so it reads back as an integer cell
	assert.Equal(t, int64(7), got.Row(2)[1])
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := dataset.ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
