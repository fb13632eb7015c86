package evaluation

import (
	"math"
	"math/rand"
	"sort"
	"sync"
)

// DecisionTree is a CART-style binary classifier over numeric features
// with gini splits. Labels are 0/1; leaves store the class-1 fraction.
type DecisionTree struct {
	MaxDepth        int // 0 => no limit
	MinSamplesSplit int
	MaxFeatures     int // 0 => use all features

	root *treeNode
}

type treeNode struct {
	leaf      bool
	prob      float64 // P(class = 1) at a leaf
	feature   int
	threshold float64 // x <= threshold goes left
	left      *treeNode
	right     *treeNode
}

// Fit grows the tree on X (n x p) and binary labels y.
func (t *DecisionTree) Fit(X [][]float64, y []int, rng *rand.Rand) {
	if t.MinSamplesSplit < 2 {
		t.MinSamplesSplit = 2
	}
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.build(X, y, idx, 0, rng)
}

// PredictProba returns P(class = 1) for a single row.
func (t *DecisionTree) PredictProba(x []float64) float64 {
	node := t.root
	for node != nil && !node.leaf {
		if x[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	if node == nil {
		return 0.5
	}
	return node.prob
}

func (t *DecisionTree) build(X [][]float64, y []int, idx []int, depth int, rng *rand.Rand) *treeNode {
	pos := 0
	for _, i := range idx {
		pos += y[i]
	}
	prob := float64(pos) / float64(len(idx))

	if pos == 0 || pos == len(idx) ||
		len(idx) < t.MinSamplesSplit ||
		(t.MaxDepth > 0 && depth >= t.MaxDepth) {
		return &treeNode{leaf: true, prob: prob}
	}

	feature, threshold, gain := t.bestSplit(X, y, idx, rng)
	if gain <= 0 {
		return &treeNode{leaf: true, prob: prob}
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return &treeNode{leaf: true, prob: prob}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      t.build(X, y, leftIdx, depth+1, rng),
		right:     t.build(X, y, rightIdx, depth+1, rng),
	}
}

type valueLabel struct {
	v float64
	y int
}

// bestSplit scans a random feature subset for the threshold with the
// largest gini decrease.
func (t *DecisionTree) bestSplit(X [][]float64, y []int, idx []int, rng *rand.Rand) (int, float64, float64) {
	p := len(X[0])
	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < p {
		rng.Shuffle(p, func(a, b int) { features[a], features[b] = features[b], features[a] })
		features = features[:t.MaxFeatures]
	}

	n := len(idx)
	totalPos := 0
	for _, i := range idx {
		totalPos += y[i]
	}
	parent := giniBinary(totalPos, n)

	bestGain := 0.0
	bestFeature := -1
	bestThreshold := 0.0

	pairs := make([]valueLabel, n)
	for _, f := range features {
		for k, i := range idx {
			pairs[k] = valueLabel{X[i][f], y[i]}
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].v < pairs[b].v })

		leftPos, leftN := 0, 0
		for k := 0; k < n-1; k++ {
			leftPos += pairs[k].y
			leftN++
			if pairs[k].v == pairs[k+1].v {
				continue
			}
			rightPos := totalPos - leftPos
			rightN := n - leftN
			weighted := (float64(leftN)*giniBinary(leftPos, leftN) +
				float64(rightN)*giniBinary(rightPos, rightN)) / float64(n)
			gain := parent - weighted
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (pairs[k].v + pairs[k+1].v) / 2
			}
		}
	}
	return bestFeature, bestThreshold, bestGain
}

func giniBinary(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 2 * p * (1 - p)
}

// RandomForest averages the class-1 probabilities of bootstrap-trained
// trees. Per-tree seeds derive from Seed, so training is reproducible;
// trees train concurrently.
type RandomForest struct {
	NEstimators int
	MaxDepth    int
	Seed        int64

	trees []*DecisionTree
}

// DefaultEstimators is the forest size used by the adversarial
// evaluator; progress reporting ticks once per tree.
const DefaultEstimators = 100

func NewRandomForest(seed int64) *RandomForest {
	return &RandomForest{NEstimators: DefaultEstimators, Seed: seed}
}

// Fit trains the forest; onProgress (optional) fires once per finished tree.
func (rf *RandomForest) Fit(X [][]float64, y []int, onProgress func()) {
	n := len(X)
	p := 0
	if n > 0 {
		p = len(X[0])
	}
	maxFeatures := int(math.Sqrt(float64(p)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	rf.trees = make([]*DecisionTree, rf.NEstimators)
	var wg sync.WaitGroup
	var mu sync.Mutex
	for i := 0; i < rf.NEstimators; i++ {
		wg.Add(1)
		go func(ti int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(rf.Seed + int64(ti)))

			sample := make([]int, n)
			for j := range sample {
				sample[j] = rng.Intn(n)
			}
			bx := make([][]float64, n)
			by := make([]int, n)
			for j, s := range sample {
				bx[j] = X[s]
				by[j] = y[s]
			}

			tree := &DecisionTree{MaxDepth: rf.MaxDepth, MaxFeatures: maxFeatures}
			tree.Fit(bx, by, rng)
			rf.trees[ti] = tree

			if onProgress != nil {
				mu.Lock()
				onProgress()
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
}

// PredictProba returns the averaged P(class = 1) for each row.
func (rf *RandomForest) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, x := range X {
		sum := 0.0
		for _, tree := range rf.trees {
			sum += tree.PredictProba(x)
		}
		out[i] = sum / float64(len(rf.trees))
	}
	return out
}

// ROCAUC computes the area under the ROC curve from binary labels and
// scores, using the rank statistic with average ranks on ties.
func ROCAUC(y []int, scores []float64) float64 {
	n := len(y)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && scores[order[j+1]] == scores[order[i]] {
			j++
		}
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[order[k]] = avg
		}
		i = j + 1
	}

	nPos, nNeg := 0, 0
	sumPos := 0.0
	for i, lab := range y {
		if lab == 1 {
			nPos++
			sumPos += ranks[i]
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return 0.5
	}
	return (sumPos - float64(nPos)*float64(nPos+1)/2) / (float64(nPos) * float64(nNeg))
}
