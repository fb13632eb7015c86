package evaluation_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-pump/internal/evaluation"
)

func TestROCAUC_KnownOrderings(t *testing.T) {
	y := []int{0, 0, 1, 1}

	assert.Equal(t, 1.0, evaluation.ROCAUC(y, []float64{0.1, 0.2, 0.8, 0.9}))
	assert.Equal(t, 0.0, evaluation.ROCAUC(y, []float64{0.9, 0.8, 0.2, 0.1}))
	// constant scores rank everything equally
	assert.Equal(t, 0.5, evaluation.ROCAUC(y, []float64{0.5, 0.5, 0.5, 0.5}))
	// a missing class is undefined; report chance level
	assert.Equal(t, 0.5, evaluation.ROCAUC([]int{1, 1}, []float64{0.1, 0.9}))
}

func TestRandomForest_SeparableClasses(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var X [][]float64
	var y []int
	for i := 0; i < 100; i++ {
		X = append(X, []float64{rng.Float64(), rng.Float64()})
		y = append(y, 0)
	}
	for i := 0; i < 100; i++ {
		X = append(X, []float64{10 + rng.Float64(), 10 + rng.Float64()})
		y = append(y, 1)
	}

	forest := evaluation.NewRandomForest(42)
	assert.Equal(t, evaluation.DefaultEstimators, forest.NEstimators)
	ticks := 0
	forest.Fit(X, y, func() { ticks++ })
	assert.Equal(t, forest.NEstimators, ticks)

	auc := evaluation.ROCAUC(y, forest.PredictProba(X))
	assert.Greater(t, auc, 0.99)
}

func TestRandomForest_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	var X [][]float64
	var y []int
	for i := 0; i < 60; i++ {
		X = append(X, []float64{rng.NormFloat64(), rng.NormFloat64()})
		y = append(y, i%2)
	}

	a := evaluation.NewRandomForest(7)
	a.Fit(X, y, nil)
	b := evaluation.NewRandomForest(7)
	b.Fit(X, y, nil)

	require.Equal(t, len(X), len(a.PredictProba(X)))
	assert.Equal(t, a.PredictProba(X), b.PredictProba(X))
}
