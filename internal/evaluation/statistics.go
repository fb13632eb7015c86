package evaluation

import (
	"math"
	"sort"

	"synth-pump/internal/dataset"
	"synth-pump/internal/schema"
)

// TestResult is one statistical test outcome for a column.
type TestResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"p_value"`
}

// KSTestColumns runs the two-sample Kolmogorov–Smirnov test on every
// numeric trainable column. Nulls are dropped per side; a column with
// an empty side is skipped and does not appear in the result.
func KSTestColumns(real, synth *dataset.Dataset, sch *schema.Schema) map[string]TestResult {
	results := make(map[string]TestResult)
	for _, col := range sch.NumericColumns() {
		rv := numericValues(real, col.Name)
		sv := numericValues(synth, col.Name)
		if len(rv) == 0 || len(sv) == 0 {
			continue
		}
		d := ksStatistic(rv, sv)
		results[col.Name] = TestResult{
			Statistic: d,
			PValue:    ksPValue(d, len(rv), len(sv)),
		}
	}
	return results
}

// ksStatistic is the max distance between the two empirical CDFs.
// Both inputs are sorted in place.
func ksStatistic(a, b []float64) float64 {
	sort.Float64s(a)
	sort.Float64s(b)
	na, nb := float64(len(a)), float64(len(b))
	i, j := 0, 0
	d := 0.0
	for i < len(a) && j < len(b) {
		m := math.Min(a[i], b[j])
		for i < len(a) && a[i] <= m {
			i++
		}
		for j < len(b) && b[j] <= m {
			j++
		}
		diff := math.Abs(float64(i)/na - float64(j)/nb)
		if diff > d {
			d = diff
		}
	}
	return d
}

// ChiSquareColumns runs the chi-square contingency test on every
// categorical trainable column. Observed frequencies are built over
// the union of labels seen in either side, so the test is symmetric in
// its two inputs. Columns with an all-zero side or a degenerate table
// are skipped.
func ChiSquareColumns(real, synth *dataset.Dataset, sch *schema.Schema) map[string]TestResult {
	results := make(map[string]TestResult)
	for _, col := range sch.CategoricalColumns() {
		rc := labelCounts(real, col.Name)
		sc := labelCounts(synth, col.Name)

		labels := labelUnion(rc, sc)
		realFreq := make([]float64, len(labels))
		synthFreq := make([]float64, len(labels))
		var realSum, synthSum float64
		for i, lab := range labels {
			realFreq[i] = float64(rc[lab])
			synthFreq[i] = float64(sc[lab])
			realSum += realFreq[i]
			synthSum += synthFreq[i]
		}
		if realSum == 0 || synthSum == 0 {
			continue
		}

		stat, dof, ok := chiSquareContingency(realFreq, synthFreq, realSum, synthSum)
		if !ok {
			continue
		}
		results[col.Name] = TestResult{
			Statistic: stat,
			PValue:    chiSquareSurvival(stat, dof),
		}
	}
	return results
}

// chiSquareContingency evaluates a 2×k table with rows (real, synth).
// Yates continuity correction applies at one degree of freedom, as the
// conventional default. A table with fewer than two categories is
// degenerate.
func chiSquareContingency(realFreq, synthFreq []float64, realSum, synthSum float64) (float64, int, bool) {
	k := len(realFreq)
	dof := k - 1
	if dof < 1 {
		return 0, 0, false
	}
	total := realSum + synthSum

	stat := 0.0
	for i := 0; i < k; i++ {
		colSum := realFreq[i] + synthFreq[i]
		for _, rc := range []struct{ obs, rowSum float64 }{
			{realFreq[i], realSum},
			{synthFreq[i], synthSum},
		} {
			expected := rc.rowSum * colSum / total
			if expected == 0 {
				return 0, 0, false
			}
			diff := math.Abs(rc.obs - expected)
			if dof == 1 {
				diff -= 0.5
				if diff < 0 {
					diff = 0
				}
			}
			stat += diff * diff / expected
		}
	}
	return stat, dof, true
}

// CorrelationMSE is the elementwise mean squared difference between the
// Pearson correlation matrices of the numeric trainable columns,
// diagonal included. With fewer than two such columns there is no
// relationship to measure and the result is 0 by definition.
func CorrelationMSE(real, synth *dataset.Dataset, sch *schema.Schema) float64 {
	var names []string
	for _, col := range sch.NumericColumns() {
		names = append(names, col.Name)
	}
	if len(names) < 2 {
		return 0
	}

	realCorr := correlationMatrix(real, names)
	synthCorr := correlationMatrix(synth, names)

	sum := 0.0
	for i := range names {
		for j := range names {
			d := realCorr[i][j] - synthCorr[i][j]
			sum += d * d
		}
	}
	return sum / float64(len(names)*len(names))
}

// correlationMatrix computes pairwise Pearson correlations over rows
// where both cells are non-null. Undefined correlations (a constant
// column) contribute 0; the diagonal is 1.
func correlationMatrix(ds *dataset.Dataset, names []string) [][]float64 {
	k := len(names)
	corr := make([][]float64, k)
	for i := range corr {
		corr[i] = make([]float64, k)
		corr[i][i] = 1
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			x, y := pairedValues(ds, names[i], names[j])
			r := pearson(x, y)
			corr[i][j] = r
			corr[j][i] = r
		}
	}
	return corr
}

func pairedValues(ds *dataset.Dataset, a, b string) ([]float64, []float64) {
	ca, cb := ds.Column(a), ds.Column(b)
	var x, y []float64
	for i := range ca {
		fa, oka := dataset.AsFloat(ca[i])
		fb, okb := dataset.AsFloat(cb[i])
		if oka && okb {
			x = append(x, fa)
			y = append(y, fb)
		}
	}
	return x, y
}

func numericValues(ds *dataset.Dataset, name string) []float64 {
	var out []float64
	for _, v := range ds.Column(name) {
		if f, ok := dataset.AsFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func labelCounts(ds *dataset.Dataset, name string) map[string]int {
	counts := make(map[string]int)
	for _, v := range ds.Column(name) {
		if dataset.IsNull(v) {
			continue
		}
		counts[dataset.Format(v)]++
	}
	return counts
}

func labelUnion(a, b map[string]int) []string {
	seen := make(map[string]struct{})
	for lab := range a {
		seen[lab] = struct{}{}
	}
	for lab := range b {
		seen[lab] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for lab := range seen {
		out = append(out, lab)
	}
	sort.Strings(out)
	return out
}
