package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpret_DistributionVerdicts(t *testing.T) {
	r := &Report{
		KSTest: map[string]TestResult{
			"income": {Statistic: 0.4, PValue: 0.001},
			"age":    {Statistic: 0.02, PValue: 0.8},
		},
		ChiSquare: map[string]TestResult{
			"plan": {Statistic: 1.2, PValue: 0.3},
		},
	}
	out := interpret(r)

	assert.Equal(t, "✗ FAIL - Distributions differ for: income", out["ks_test"])
	assert.Equal(t, "✓ PASS - All categorical distributions match (p > 0.05)", out["chi_square"])
}

func TestInterpret_CorrelationBands(t *testing.T) {
	cases := []struct {
		mse  float64
		want string
	}{
		{0.01, "✓ PASS"},
		{0.07, "⚠ WARNING"},
		{0.25, "✗ FAIL"},
	}
	for _, tc := range cases {
		out := interpret(&Report{CorrelationMSE: tc.mse})
		assert.Contains(t, out["correlation_mse"], tc.want, "mse=%v", tc.mse)
	}
}

func TestInterpret_AUCBands(t *testing.T) {
	cases := []struct {
		auc  float64
		want string
	}{
		{0.50, "✓ EXCELLENT"},
		{0.45, "✓ EXCELLENT"},
		{0.55, "✓ EXCELLENT"},
		{0.42, "✓ GOOD"},
		{0.58, "✓ GOOD"},
		{0.35, "✗ WARNING"},
		{0.70, "✗ WARNING"},
	}
	for _, tc := range cases {
		out := interpret(&Report{AdversarialAUC: tc.auc})
		assert.Contains(t, out["adversarial_auc"], tc.want, "auc=%v", tc.auc)
	}
}
