package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-pump/internal/dataset"
)

func TestParseCell_Types(t *testing.T) {
	assert.Nil(t, dataset.ParseCell(""))
	assert.Equal(t, int64(42), dataset.ParseCell("42"))
	assert.Equal(t, 3.14, dataset.ParseCell("3.14"))
	assert.Equal(t, "hello", dataset.ParseCell("hello"))
	// leading zeros still parse as integers
	assert.Equal(t, int64(7), dataset.ParseCell("07"))
}

func TestFormat_RoundTrip(t *testing.T) {
	cells := []interface{}{int64(42), 3.14, "hello", nil}
	for _, v := range cells {
		assert.Equal(t, v, dataset.ParseCell(dataset.Format(v)))
	}
}

func TestAppendRow_CountMismatch(t *testing.T) {
	d := dataset.New("a", "b")
	require.NoError(t, d.AppendRow(int64(1), int64(2)))
	assert.Error(t, d.AppendRow(int64(1)))
	assert.Equal(t, 1, d.NumRows())
}

func TestSelect_OrderAndUnknown(t *testing.T) {
	d := dataset.New("a", "b", "c")
	require.NoError(t, d.AppendRow(int64(1), int64(2), int64(3)))

	sub := d.Select([]string{"c", "missing", "a"})
	assert.Equal(t, []string{"c", "a"}, sub.Names())
	assert.Equal(t, []interface{}{int64(3), int64(1)}, sub.Row(0))
}

func TestReorder(t *testing.T) {
	d := dataset.New("a", "b")
	require.NoError(t, d.AppendRow(int64(1), "x"))

	require.NoError(t, d.Reorder([]string{"b", "a"}))
	assert.Equal(t, []string{"b", "a"}, d.Names())
	assert.Equal(t, []interface{}{"x", int64(1)}, d.Row(0))

	assert.Error(t, d.Reorder([]string{"b"}))
	assert.Error(t, d.Reorder([]string{"b", "nope"}))
}

func TestSetColumn_AppendsNew(t *testing.T) {
	d := dataset.New("a")
	require.NoError(t, d.AppendRow(int64(1)))

	d.SetColumn("b", []interface{}{"x"})
	assert.Equal(t, []string{"a", "b"}, d.Names())
	assert.True(t, d.HasColumn("b"))
}

func TestAsInt_WholeFloats(t *testing.T) {
	v, ok := dataset.AsInt(float64(5))
	assert.True(t, ok)
	assert.Equal(t, int64(5), v)

	_, ok = dataset.AsInt(5.5)
	assert.False(t, ok)

	_, ok = dataset.AsInt("5")
	assert.False(t, ok)
}
