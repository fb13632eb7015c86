package evaluation

import (
	"fmt"
	"sort"
	"strings"

	"synth-pump/internal/dataset"
	"synth-pump/internal/schema"
)

// Report bundles the four fidelity metrics plus per-metric verdicts.
type Report struct {
	KSTest         map[string]TestResult `json:"ks_test"`
	ChiSquare      map[string]TestResult `json:"chi_square"`
	CorrelationMSE float64               `json:"correlation_mse"`
	AdversarialAUC float64               `json:"adversarial_auc"`
	Interpretation map[string]string     `json:"interpretation"`
}

// DefaultSeed drives the evaluator's train/test split and classifier
// when the caller does not pick one.
const DefaultSeed = 42

// Evaluate scores the fidelity of synthetic data against real data on
// the schema's trainable columns: per-column KS and chi-square tests,
// correlation-matrix MSE, and adversarial detectability. onProgress
// (optional) fires once per trained forest tree.
func Evaluate(real, synth *dataset.Dataset, sch *schema.Schema, seed int64, onProgress func()) (*Report, error) {
	r := &Report{
		KSTest:         KSTestColumns(real, synth, sch),
		ChiSquare:      ChiSquareColumns(real, synth, sch),
		CorrelationMSE: CorrelationMSE(real, synth, sch),
	}

	auc, err := AdversarialAUC(real, synth, sch, seed, onProgress)
	if err != nil {
		return nil, err
	}
	r.AdversarialAUC = auc
	r.Interpretation = interpret(r)
	return r, nil
}

// interpret renders the human-readable verdicts: p > 0.05 passes the
// distribution tests, correlation MSE below 0.05 preserves structure,
// and AUC inside [0.45, 0.55] means the classifier cannot tell the two
// datasets apart.
func interpret(r *Report) map[string]string {
	out := make(map[string]string)

	if failed := failedColumns(r.KSTest); len(failed) == 0 {
		out["ks_test"] = "✓ PASS - All numeric distributions match (p > 0.05)"
	} else {
		out["ks_test"] = fmt.Sprintf("✗ FAIL - Distributions differ for: %s", strings.Join(failed, ", "))
	}

	if failed := failedColumns(r.ChiSquare); len(failed) == 0 {
		out["chi_square"] = "✓ PASS - All categorical distributions match (p > 0.05)"
	} else {
		out["chi_square"] = fmt.Sprintf("✗ FAIL - Distributions differ for: %s", strings.Join(failed, ", "))
	}

	switch mse := r.CorrelationMSE; {
	case mse < 0.05:
		out["correlation_mse"] = fmt.Sprintf("✓ PASS - Relationships well-preserved (MSE=%.6f)", mse)
	case mse < 0.10:
		out["correlation_mse"] = fmt.Sprintf("⚠ WARNING - Minor distortion (MSE=%.6f)", mse)
	default:
		out["correlation_mse"] = fmt.Sprintf("✗ FAIL - Relationships distorted (MSE=%.6f)", mse)
	}

	switch auc := r.AdversarialAUC; {
	case auc >= 0.45 && auc <= 0.55:
		out["adversarial_auc"] = fmt.Sprintf("✓ EXCELLENT - Synthetic indistinguishable from real (AUC=%.4f)", auc)
	case (auc >= 0.40 && auc < 0.45) || (auc > 0.55 && auc <= 0.60):
		out["adversarial_auc"] = fmt.Sprintf("✓ GOOD - Limited distinguishability (AUC=%.4f)", auc)
	default:
		out["adversarial_auc"] = fmt.Sprintf("✗ WARNING - Easily distinguishable (AUC=%.4f)", auc)
	}
	return out
}

func failedColumns(results map[string]TestResult) []string {
	var failed []string
	for col, r := range results {
		if r.PValue <= 0.05 {
			failed = append(failed, col)
		}
	}
	sort.Strings(failed)
	return failed
}
