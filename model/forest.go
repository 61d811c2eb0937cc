package model

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"
)

// TreeNode is one node of a fitted regression tree. Fields are exported for
// gob serialization.
type TreeNode struct {
	Leaf      bool
	Value     float64 // leaf prediction (mean of samples in the leaf)
	Feature   int
	Threshold float64 // x[Feature] <= Threshold goes left
	Left      *TreeNode
	Right     *TreeNode
}

// RegressionTree is a CART-style regression tree splitting on variance
// reduction.
type RegressionTree struct {
	MaxDepth        int // 0 => no limit
	MinSamplesSplit int
	MaxFeatures     int // 0 => consider all features
	Seed            int64

	Root *TreeNode
}

// Fit trains the tree on the samples selected by indices.
func (t *RegressionTree) Fit(X [][]float64, y []float64, indices []int) error {
	if len(indices) == 0 {
		return errors.New("regressiontree: no samples")
	}
	if t.MinSamplesSplit < 2 {
		t.MinSamplesSplit = 2
	}
	rnd := rand.New(rand.NewSource(t.Seed))
	t.Root = t.build(X, y, indices, 0, rnd)
	return nil
}

// Predict returns the tree's prediction for a single feature vector.
func (t *RegressionTree) Predict(x []float64) float64 {
	node := t.Root
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

func (t *RegressionTree) build(X [][]float64, y []float64, indices []int, depth int, rnd *rand.Rand) *TreeNode {
	if len(indices) < t.MinSamplesSplit || (t.MaxDepth > 0 && depth >= t.MaxDepth) {
		return leaf(y, indices)
	}

	feature, threshold, ok := t.bestSplit(X, y, indices, rnd)
	if !ok {
		return leaf(y, indices)
	}

	var left, right []int
	for _, i := range indices {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return leaf(y, indices)
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      t.build(X, y, left, depth+1, rnd),
		Right:     t.build(X, y, right, depth+1, rnd),
	}
}

func leaf(y []float64, indices []int) *TreeNode {
	sum := 0.0
	for _, i := range indices {
		sum += y[i]
	}
	return &TreeNode{Leaf: true, Value: sum / float64(len(indices))}
}

// bestSplit scans candidate features for the threshold minimizing the summed
// squared error of the two sides, using running sums over samples sorted by
// feature value.
func (t *RegressionTree) bestSplit(X [][]float64, y []float64, indices []int, rnd *rand.Rand) (int, float64, bool) {
	nFeatures := len(X[indices[0]])
	features := make([]int, nFeatures)
	for i := range features {
		features[i] = i
	}
	if t.MaxFeatures > 0 && t.MaxFeatures < nFeatures {
		rnd.Shuffle(nFeatures, func(i, j int) { features[i], features[j] = features[j], features[i] })
		features = features[:t.MaxFeatures]
	}

	var totalSum, totalSq float64
	for _, i := range indices {
		totalSum += y[i]
		totalSq += y[i] * y[i]
	}
	n := float64(len(indices))
	bestSSE := totalSq - totalSum*totalSum/n
	baseSSE := bestSSE

	bestFeature, bestThreshold := -1, 0.0
	sorted := make([]int, len(indices))

	for _, f := range features {
		copy(sorted, indices)
		sort.Slice(sorted, func(a, b int) bool { return X[sorted[a]][f] < X[sorted[b]][f] })

		var leftSum, leftSq float64
		for k := 0; k < len(sorted)-1; k++ {
			i := sorted[k]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			// Only split between distinct feature values.
			if X[i][f] == X[sorted[k+1]][f] {
				continue
			}

			nl := float64(k + 1)
			nr := n - nl
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if sse < bestSSE {
				bestSSE = sse
				bestFeature = f
				bestThreshold = (X[i][f] + X[sorted[k+1]][f]) / 2
			}
		}
	}

	if bestFeature < 0 || bestSSE >= baseSSE {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

// RegressionForest averages the predictions of bootstrap-trained regression
// trees.
type RegressionForest struct {
	NEstimators     int
	MaxDepth        int
	MinSamplesSplit int
	MaxFeatures     int
	Bootstrap       bool
	Seed            int64

	Trees []*RegressionTree
}

// ForestOption is functional config for RegressionForest.
type ForestOption func(*RegressionForest)

func WithNEstimators(n int) ForestOption { return func(f *RegressionForest) { f.NEstimators = n } }
func WithMaxDepth(d int) ForestOption    { return func(f *RegressionForest) { f.MaxDepth = d } }
func WithMaxFeatures(m int) ForestOption { return func(f *RegressionForest) { f.MaxFeatures = m } }
func WithSeed(s int64) ForestOption      { return func(f *RegressionForest) { f.Seed = s } }

// NewRegressionForest initializes a forest with sensible defaults.
func NewRegressionForest(opts ...ForestOption) *RegressionForest {
	f := &RegressionForest{
		NEstimators:     100,
		MaxDepth:        16,
		MinSamplesSplit: 2,
		Bootstrap:       true,
		Seed:            1,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fit trains the forest. Trees train concurrently, each with its own
// deterministic seed and bootstrap sample, so fitting is reproducible for a
// given Seed.
func (f *RegressionForest) Fit(X [][]float64, y []float64) error {
	if len(X) == 0 {
		return errors.New("regressionforest: empty X")
	}
	if len(X) != len(y) {
		return errors.New("regressionforest: X and y length mismatch")
	}

	n := len(X)
	f.Trees = make([]*RegressionTree, f.NEstimators)

	var g errgroup.Group
	for i := 0; i < f.NEstimators; i++ {
		g.Go(func() error {
			seed := f.Seed + int64(i)
			rnd := rand.New(rand.NewSource(seed))

			indices := make([]int, n)
			for j := range indices {
				if f.Bootstrap {
					indices[j] = rnd.Intn(n)
				} else {
					indices[j] = j
				}
			}

			tree := &RegressionTree{
				MaxDepth:        f.MaxDepth,
				MinSamplesSplit: f.MinSamplesSplit,
				MaxFeatures:     f.MaxFeatures,
				Seed:            seed,
			}
			if err := tree.Fit(X, y, indices); err != nil {
				return err
			}
			f.Trees[i] = tree
			return nil
		})
	}
	return g.Wait()
}

// Predict returns the mean prediction across all trees.
func (f *RegressionForest) Predict(x []float64) float64 {
	if len(f.Trees) == 0 {
		return math.NaN()
	}
	sum := 0.0
	for _, tree := range f.Trees {
		sum += tree.Predict(x)
	}
	return sum / float64(len(f.Trees))
}
