package ensemble

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/git-dariel/fake-news-detector/internal/feature"
	"github.com/git-dariel/fake-news-detector/internal/model"
)

// Node is one decision point in a fitted tree. Leaves have a nil Left and
// carry the class distribution of the training samples that reached them.
// Fields are exported for gob encoding.
type Node struct {
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node
	Proba     [2]float64
}

func (n *Node) leaf() bool {
	return n.Left == nil
}

// DecisionTree is a CART classifier with Gini impurity splits and random
// feature subsampling. Treat a fitted tree as immutable.
type DecisionTree struct {
	Cfg         TreeConfig
	Root        *Node
	Importance  []float64
	NumFeatures int
}

// TrainTree fits a single tree on the full training set. numFeatures is the
// vectorizer dimensionality; sparse vectors read as zero for absent columns.
func TrainTree(X []feature.Vector, y []model.Label, numFeatures int, cfg TreeConfig) (*DecisionTree, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("training tree on empty dataset")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("training tree: %d vectors but %d labels", len(X), len(y))
	}

	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), 0))
	idx := make([]int, len(X))
	for i := range idx {
		idx[i] = i
	}
	return growTree(X, y, idx, numFeatures, cfg, rng), nil
}

// Proba walks the tree and returns the leaf class distribution.
func (t *DecisionTree) Proba(vec feature.Vector) [2]float64 {
	n := t.Root
	for !n.leaf() {
		if vec[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Proba
}

// Vote returns the tree's label and confidence for one vector.
func (t *DecisionTree) Vote(vec feature.Vector) model.MemberVote {
	label, conf := argmaxProba(t.Proba(vec))
	return model.MemberVote{Label: label, Confidence: conf}
}

// grower carries the shared state of one tree-fitting run.
type grower struct {
	X           []feature.Vector
	y           []int
	cfg         TreeConfig
	numFeatures int
	rng         *rand.Rand
	importance  []float64
	total       int
}

func growTree(X []feature.Vector, y []model.Label, idx []int, numFeatures int, cfg TreeConfig, rng *rand.Rand) *DecisionTree {
	classes := make([]int, len(y))
	for i, label := range y {
		classes[i] = ClassIndex(label)
	}

	g := &grower{
		X:           X,
		y:           classes,
		cfg:         cfg,
		numFeatures: numFeatures,
		rng:         rng,
		importance:  make([]float64, numFeatures),
		total:       len(idx),
	}
	root := g.grow(idx, 0)

	// Normalize importances so they sum to one and are comparable across
	// trees of different sizes.
	var sum float64
	for _, v := range g.importance {
		sum += v
	}
	if sum > 0 {
		for i := range g.importance {
			g.importance[i] /= sum
		}
	}

	return &DecisionTree{
		Cfg:         cfg,
		Root:        root,
		Importance:  g.importance,
		NumFeatures: numFeatures,
	}
}

func (g *grower) grow(idx []int, depth int) *Node {
	var counts [2]int
	for _, i := range idx {
		counts[g.y[i]]++
	}

	if depth >= g.cfg.MaxDepth ||
		len(idx) < g.cfg.MinSamplesSplit ||
		counts[0] == 0 || counts[1] == 0 {
		return leafNode(counts, len(idx))
	}

	split, ok := g.bestSplit(idx, counts)
	if !ok {
		return leafNode(counts, len(idx))
	}

	g.importance[split.feature] += float64(len(idx)) / float64(g.total) * split.decrease

	left := make([]int, 0, len(idx))
	right := make([]int, 0, len(idx))
	for _, i := range idx {
		if g.X[i][split.feature] <= split.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &Node{
		Feature:   split.feature,
		Threshold: split.threshold,
		Left:      g.grow(left, depth+1),
		Right:     g.grow(right, depth+1),
	}
}

type split struct {
	feature   int
	threshold float64
	decrease  float64
}

// bestSplit searches a random sqrt-sized subset of features for the split
// minimizing weighted Gini impurity. Candidate thresholds are midpoints
// between adjacent distinct observed values. The first split found at the
// best impurity wins, keeping fitting deterministic for a given seed.
func (g *grower) bestSplit(idx []int, counts [2]int) (split, bool) {
	n := len(idx)
	parentGini := gini(counts, n)

	samples := make([]splitSample, n)

	best := split{}
	bestGini := math.Inf(1)
	found := false

	for _, f := range g.sampleFeatures() {
		for k, i := range idx {
			samples[k] = splitSample{value: g.X[i][f], class: g.y[i]}
		}
		sort.Slice(samples, func(a, b int) bool { return samples[a].value < samples[b].value })

		// Sweep left to right accumulating class counts, evaluating only
		// boundaries between distinct values.
		var leftCounts [2]int
		for k := 0; k < n-1; k++ {
			leftCounts[samples[k].class]++
			if samples[k].value == samples[k+1].value {
				continue
			}
			nLeft := k + 1
			nRight := n - nLeft
			if nLeft < g.cfg.MinSamplesLeaf || nRight < g.cfg.MinSamplesLeaf {
				continue
			}
			rightCounts := [2]int{counts[0] - leftCounts[0], counts[1] - leftCounts[1]}
			weighted := (float64(nLeft)*gini(leftCounts, nLeft) +
				float64(nRight)*gini(rightCounts, nRight)) / float64(n)
			if weighted < bestGini {
				bestGini = weighted
				best = split{
					feature:   f,
					threshold: (samples[k].value + samples[k+1].value) / 2,
					decrease:  parentGini - weighted,
				}
				found = true
			}
		}
	}

	if !found || best.decrease <= 0 {
		return split{}, false
	}
	return best, true
}

// sampleFeatures draws max(1, floor(sqrt(numFeatures))) distinct feature
// columns from the rng.
func (g *grower) sampleFeatures() []int {
	m := int(math.Sqrt(float64(g.numFeatures)))
	if m < 1 {
		m = 1
	}
	if m >= g.numFeatures {
		all := make([]int, g.numFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}

	feats := make([]int, 0, m)
	seen := make(map[int]struct{}, m)
	for len(feats) < m {
		f := g.rng.IntN(g.numFeatures)
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		feats = append(feats, f)
	}
	return feats
}

func leafNode(counts [2]int, n int) *Node {
	if n == 0 {
		return &Node{Proba: [2]float64{0.5, 0.5}}
	}
	return &Node{Proba: [2]float64{
		float64(counts[0]) / float64(n),
		float64(counts[1]) / float64(n),
	}}
}

func gini(counts [2]int, n int) float64 {
	if n == 0 {
		return 0
	}
	p0 := float64(counts[0]) / float64(n)
	p1 := float64(counts[1]) / float64(n)
	return 1 - p0*p0 - p1*p1
}

type splitSample struct {
	value float64
	class int
}
