package evaluation

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"synth-pump/internal/dataset"
	"synth-pump/internal/schema"
)

const adversarialTestFraction = 0.30

// AdversarialAUC trains a 100-tree random forest to separate real rows
// (label 1) from synthetic rows (label 0) and reports the ROC-AUC of
// the predicted "real" probability on a stratified held-out split.
// AUC near 0.5 means the two are statistically indistinguishable.
func AdversarialAUC(real, synth *dataset.Dataset, sch *schema.Schema, seed int64, onProgress func()) (float64, error) {
	if real.NumRows() == 0 || synth.NumRows() == 0 {
		return 0, fmt.Errorf("adversarial evaluation needs rows on both sides")
	}

	X, y := buildFeatures(real, synth, sch)
	trainIdx, testIdx := stratifiedGroupSplit(X, y, adversarialTestFraction, rand.New(rand.NewSource(seed)))
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return 0, fmt.Errorf("not enough rows for a train/test split")
	}

	trainX := make([][]float64, len(trainIdx))
	trainY := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		trainX[i] = X[idx]
		trainY[i] = y[idx]
	}
	testX := make([][]float64, len(testIdx))
	testY := make([]int, len(testIdx))
	for i, idx := range testIdx {
		testX[i] = X[idx]
		testY[i] = y[idx]
	}

	forest := NewRandomForest(seed)
	forest.Fit(trainX, trainY, onProgress)

	return ROCAUC(testY, forest.PredictProba(testX)), nil
}

// buildFeatures encodes the trainable columns of both datasets into one
// numeric matrix: numeric columns pass through (null → NaN, imputed
// with the combined mean), categorical columns one-hot encode over the
// union of labels with the first label dropped as reference. Rows are
// real first (label 1), then synthetic (label 0).
func buildFeatures(real, synth *dataset.Dataset, sch *schema.Schema) ([][]float64, []int) {
	nReal, nSynth := real.NumRows(), synth.NumRows()
	n := nReal + nSynth

	X := make([][]float64, n)
	for i := range X {
		X[i] = []float64{}
	}
	y := make([]int, n)
	for i := 0; i < nReal; i++ {
		y[i] = 1
	}

	for _, col := range sch.TrainableColumns() {
		rc := real.Column(col.Name)
		sc := synth.Column(col.Name)

		if col.Kind == schema.KindCategorical {
			labels := labelUnion(labelCounts(real, col.Name), labelCounts(synth, col.Name))
			if len(labels) < 2 {
				continue // a single label carries no signal after drop-first
			}
			indicator := labels[1:] // drop the first label as reference
			appendOneHot(X, rc, 0, indicator)
			appendOneHot(X, sc, nReal, indicator)
			continue
		}

		feature := make([]float64, n)
		fillNumeric(feature, rc, 0)
		fillNumeric(feature, sc, nReal)
		imputeMean(feature)
		for i := range X {
			X[i] = append(X[i], feature[i])
		}
	}
	return X, y
}

func appendOneHot(X [][]float64, col []interface{}, offset int, indicator []string) {
	for i, v := range col {
		row := make([]float64, len(indicator))
		if !dataset.IsNull(v) {
			s := dataset.Format(v)
			for j, lab := range indicator {
				if s == lab {
					row[j] = 1
					break
				}
			}
		}
		X[offset+i] = append(X[offset+i], row...)
	}
}

func fillNumeric(feature []float64, col []interface{}, offset int) {
	for i, v := range col {
		if f, ok := dataset.AsFloat(v); ok {
			feature[offset+i] = f
		} else {
			feature[offset+i] = math.NaN()
		}
	}
}

// imputeMean replaces NaNs with the mean of the defined values, 0 when
// every value is missing.
func imputeMean(feature []float64) {
	sum, count := 0.0, 0
	for _, v := range feature {
		if !math.IsNaN(v) {
			sum += v
			count++
		}
	}
	fill := 0.0
	if count > 0 {
		fill = sum / float64(count)
	}
	for i, v := range feature {
		if math.IsNaN(v) {
			feature[i] = fill
		}
	}
}

// stratifiedGroupSplit carves off testFraction of the rows for the
// held-out evaluation, preserving class balance. Rows with identical
// feature vectors always land on the same side of the split: with a
// row-level split, the exact duplicate of a held-out row tends to sit
// in the training fold with the opposite label, the forest memorizes
// it, and the AUC inverts instead of settling at chance level.
func stratifiedGroupSplit(X [][]float64, y []int, testFraction float64, rng *rand.Rand) (train, test []int) {
	groups := make(map[string][]int)
	var keys []string
	for i, row := range X {
		k := featureKey(row)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], i)
	}

	// Strata: pure class-0 groups, pure class-1 groups, mixed groups.
	// Mixed groups are internally balanced, so filling each stratum to
	// its own test quota keeps the overall class ratio.
	byStratum := make(map[int][]string)
	rows := make(map[int]int)
	for _, k := range keys {
		s := groupStratum(groups[k], y)
		byStratum[s] = append(byStratum[s], k)
		rows[s] += len(groups[k])
	}

	for _, s := range []int{0, 1, 2} {
		ks := byStratum[s]
		rng.Shuffle(len(ks), func(a, b int) { ks[a], ks[b] = ks[b], ks[a] })
		target := int(float64(rows[s]) * testFraction)
		taken := 0
		for _, k := range ks {
			if taken < target {
				test = append(test, groups[k]...)
				taken += len(groups[k])
			} else {
				train = append(train, groups[k]...)
			}
		}
	}
	return train, test
}

func groupStratum(idx []int, y []int) int {
	first := y[idx[0]]
	for _, i := range idx[1:] {
		if y[i] != first {
			return 2
		}
	}
	return first
}

func featureKey(row []float64) string {
	b := make([]byte, 0, len(row)*8)
	for _, v := range row {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		b = append(b, buf[:]...)
	}
	return string(b)
}
