package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-pump/internal/dataset"
	"synth-pump/internal/schema"
)

func buildDataset(t *testing.T, rows int, fill func(i int) []interface{}, names ...string) *dataset.Dataset {
	t.Helper()
	d := dataset.New(names...)
	for i := 0; i < rows; i++ {
		require.NoError(t, d.AppendRow(fill(i)...))
	}
	return d
}

func TestInfer_Identifier(t *testing.T) {
	d := buildDataset(t, 100, func(i int) []interface{} {
		return []interface{}{int64(i + 1)}
	}, "user_id")

	s := schema.Infer(d, 0)
	col := s.Column("user_id")
	require.NotNil(t, col)
	assert.Equal(t, schema.KindIdentifier, col.Kind)
	assert.True(t, col.IsIdentifier)
	assert.Equal(t, 1.0, *col.MinValue)
	assert.Equal(t, 100.0, *col.MaxValue)
}

func TestInfer_IdentifierUniquenessBoundary(t *testing.T) {
	// exactly 95 distinct over 100 rows: ratio 0.95 is not > 0.95
	atBoundary := buildDataset(t, 100, func(i int) []interface{} {
		if i < 95 {
			return []interface{}{int64(i + 1)}
		}
		return []interface{}{int64(i - 94)}
	}, "code")
	s := schema.Infer(atBoundary, 10)
	assert.Equal(t, schema.KindInt, s.Column("code").Kind)

	// 96 distinct over 100 rows: ratio 0.96 crosses the threshold
	above := buildDataset(t, 100, func(i int) []interface{} {
		if i < 96 {
			return []interface{}{int64(i + 1)}
		}
		return []interface{}{int64(i - 95)}
	}, "code")
	s = schema.Infer(above, 10)
	assert.Equal(t, schema.KindIdentifier, s.Column("code").Kind)
}

func TestInfer_HighUniquenessFloatIsNotIdentifier(t *testing.T) {
	// unique but fractional: uniqueness alone must not make an identifier
	d := buildDataset(t, 40, func(i int) []interface{} {
		return []interface{}{float64(i) + 0.5}
	}, "weight")

	s := schema.Infer(d, 10)
	col := s.Column("weight")
	assert.Equal(t, schema.KindFloat, col.Kind)
	assert.False(t, col.IsIdentifier)
	assert.Equal(t, 0.5, *col.MinValue)
	assert.Equal(t, 39.5, *col.MaxValue)
}

func TestInfer_LowCardinalityNumericIsCategorical(t *testing.T) {
	d := buildDataset(t, 90, func(i int) []interface{} {
		return []interface{}{int64(i % 3)}
	}, "status")

	s := schema.Infer(d, 10)
	col := s.Column("status")
	assert.Equal(t, schema.KindCategorical, col.Kind)
	assert.Equal(t, []string{"0", "1", "2"}, col.Categories)
}

func TestInfer_IntColumn(t *testing.T) {
	// 20 distinct values over 40 rows: too many for categorical, not
	// unique enough for an identifier
	d := buildDataset(t, 40, func(i int) []interface{} {
		return []interface{}{int64(i % 20)}
	}, "age")

	s := schema.Infer(d, 10)
	col := s.Column("age")
	assert.Equal(t, schema.KindInt, col.Kind)
	assert.Equal(t, 0.0, *col.MinValue)
	assert.Equal(t, 19.0, *col.MaxValue)
}

func TestInfer_TextualIsCategorical(t *testing.T) {
	cities := []string{"seoul", "busan", "daegu"}
	d := buildDataset(t, 30, func(i int) []interface{} {
		return []interface{}{cities[i%3]}
	}, "city")

	s := schema.Infer(d, 10)
	col := s.Column("city")
	assert.Equal(t, schema.KindCategorical, col.Kind)
	assert.Equal(t, []string{"busan", "daegu", "seoul"}, col.Categories)
}

func TestInfer_MissingRate(t *testing.T) {
	d := buildDataset(t, 10, func(i int) []interface{} {
		if i < 3 {
			return []interface{}{nil}
		}
		return []interface{}{float64(i) + 0.25}
	}, "score")

	s := schema.Infer(d, 2)
	col := s.Column("score")
	assert.InDelta(t, 0.3, col.MissingRate, 1e-12)
	assert.Equal(t, schema.KindFloat, col.Kind)
}

func TestInfer_AllNullColumn(t *testing.T) {
	d := buildDataset(t, 5, func(i int) []interface{} {
		return []interface{}{nil}
	}, "ghost")

	s := schema.Infer(d, 10)
	col := s.Column("ghost")
	assert.Equal(t, schema.KindCategorical, col.Kind)
	assert.Empty(t, col.Categories)
	assert.NotNil(t, col.Categories)
	assert.Equal(t, 1.0, col.MissingRate)
}

func TestInfer_TrainableExcludesIdentifiers(t *testing.T) {
	d := buildDataset(t, 50, func(i int) []interface{} {
		return []interface{}{int64(i + 1), int64(i % 5), "x"}
	}, "id", "grade", "tag")

	s := schema.Infer(d, 10)
	assert.Equal(t, []string{"grade", "tag"}, s.TrainableNames())
	assert.Equal(t, []string{"grade", "tag"}, s.DiscreteNames())
	assert.Equal(t, []string{"id", "grade", "tag"}, s.ColumnOrder())
	assert.Len(t, s.IdentifierColumns(), 1)
}

func TestInfer_Idempotent(t *testing.T) {
	d := buildDataset(t, 60, func(i int) []interface{} {
		return []interface{}{int64(i + 1), float64(i) * 1.5, []string{"a", "b"}[i%2]}
	}, "id", "val", "cat")

	s1 := schema.Infer(d, 10)
	s2 := schema.Infer(d, 10)
	assert.Equal(t, s1, s2)
}
