package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-pump/internal/dataset"
)

func TestDemo_Shape(t *testing.T) {
	d := dataset.Demo(100, 42)

	assert.Equal(t, []string{"id", "age", "income", "score", "city", "plan", "churned"}, d.Names())
	assert.Equal(t, 100, d.NumRows())

	for i, v := range d.Column("id") {
		assert.Equal(t, int64(i+1), v)
	}
	for _, v := range d.Column("age") {
		iv, ok := v.(int64)
		require.True(t, ok, "age cell should be int64, got %T", v)
		assert.GreaterOrEqual(t, iv, int64(18))
		assert.LessOrEqual(t, iv, int64(90))
	}
	for _, v := range d.Column("city") {
		_, ok := v.(string)
		assert.True(t, ok)
	}
	for _, v := range d.Column("churned") {
		assert.Contains(t, []interface{}{int64(0), int64(1)}, v)
	}
}

func TestDemo_SeededDeterminism(t *testing.T) {
	a := dataset.Demo(200, 7)
	b := dataset.Demo(200, 7)
	assert.Equal(t, a, b)

	c := dataset.Demo(200, 8)
	assert.NotEqual(t, a.Column("age"), c.Column("age"))
}
