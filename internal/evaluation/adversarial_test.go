package evaluation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synth-pump/internal/dataset"
	"synth-pump/internal/evaluation"
	"synth-pump/internal/schema"
)

func TestAdversarialAUC_IdenticalData(t *testing.T) {
	labels := []string{"a", "b", "c"}
	real := dataset.New("v", "c")
	synth := dataset.New("v", "c")
	for i := 0; i < 300; i++ {
		require.NoError(t, real.AppendRow(float64(i%60), labels[i%3]))
		require.NoError(t, synth.AppendRow(float64(i%60), labels[i%3]))
	}
	sch := &schema.Schema{Columns: []schema.ColumnInfo{
		{Name: "v", Kind: schema.KindFloat},
		{Name: "c", Kind: schema.KindCategorical},
	}}

	auc, err := evaluation.AdversarialAUC(real, synth, sch, 42, nil)
	require.NoError(t, err)
	// every real row has an identical synthetic twin with an identical
	// score, so the ranking is exactly symmetric
	assert.InDelta(t, 0.5, auc, 1e-9)
}

func TestAdversarialAUC_IdenticalUniqueRows(t *testing.T) {
	// all-unique rows are the worst case for train/test leakage: a
	// held-out row's twin must never train the classifier with the
	// opposite label, or the AUC inverts
	labels := []string{"a", "b", "c"}
	real := dataset.New("v", "c")
	synth := dataset.New("v", "c")
	for i := 0; i < 300; i++ {
		require.NoError(t, real.AppendRow(float64(i), labels[i%3]))
		require.NoError(t, synth.AppendRow(float64(i), labels[i%3]))
	}
	sch := &schema.Schema{Columns: []schema.ColumnInfo{
		{Name: "v", Kind: schema.KindFloat},
		{Name: "c", Kind: schema.KindCategorical},
	}}

	for _, seed := range []int64{1, 7, 42, 1234} {
		auc, err := evaluation.AdversarialAUC(real, synth, sch, seed, nil)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, auc, 1e-9, "seed %d", seed)
	}
}

func TestAdversarialAUC_DisjointData(t *testing.T) {
	real := dataset.New("v")
	synth := dataset.New("v")
	for i := 0; i < 200; i++ {
		require.NoError(t, real.AppendRow(float64(i%40)))
		require.NoError(t, synth.AppendRow(float64(1000+i%40)))
	}
	sch := &schema.Schema{Columns: []schema.ColumnInfo{
		{Name: "v", Kind: schema.KindFloat},
	}}

	auc, err := evaluation.AdversarialAUC(real, synth, sch, 42, nil)
	require.NoError(t, err)
	assert.Greater(t, auc, 0.9)
}

func TestAdversarialAUC_EmptySide(t *testing.T) {
	real := dataset.New("v")
	require.NoError(t, real.AppendRow(1.0))
	empty := dataset.New("v")
	sch := &schema.Schema{Columns: []schema.ColumnInfo{
		{Name: "v", Kind: schema.KindFloat},
	}}

	_, err := evaluation.AdversarialAUC(real, empty, sch, 42, nil)
	assert.Error(t, err)
}

func TestEvaluate_FullReport(t *testing.T) {
	real := dataset.New("id", "v", "c")
	synth := dataset.New("id", "v", "c")
	labels := []string{"a", "b"}
	for i := 0; i < 200; i++ {
		require.NoError(t, real.AppendRow(int64(i+1), float64(i%40), labels[i%2]))
		require.NoError(t, synth.AppendRow(int64(i+1), float64(i%40), labels[i%2]))
	}
	sch := &schema.Schema{Columns: []schema.ColumnInfo{
		{Name: "id", Kind: schema.KindIdentifier, IsIdentifier: true},
		{Name: "v", Kind: schema.KindFloat},
		{Name: "c", Kind: schema.KindCategorical},
	}}

	report, err := evaluation.Evaluate(real, synth, sch, evaluation.DefaultSeed, nil)
	require.NoError(t, err)

	assert.Contains(t, report.KSTest, "v")
	assert.Contains(t, report.ChiSquare, "c")
	assert.Equal(t, 0.0, report.CorrelationMSE)
	for _, key := range []string{"ks_test", "chi_square", "correlation_mse", "adversarial_auc"} {
		assert.Contains(t, report.Interpretation, key)
	}
	assert.Contains(t, report.Interpretation["ks_test"], "PASS")
	assert.Contains(t, report.Interpretation["chi_square"], "PASS")
}
