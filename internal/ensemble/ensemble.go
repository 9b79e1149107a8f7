// Package ensemble implements the two classifier members backing the
// detector: a single CART decision tree and a bagged random forest of such
// trees. Both train on sparse TF-IDF vectors and expose per-class
// probabilities. Training is seeded and deterministic; inference is read-only
// and safe for concurrent use.
package ensemble

import "github.com/git-dariel/fake-news-detector/internal/model"

// Classes fixes the class ordering used by probability vectors everywhere in
// this package: index 0 is FAKE, index 1 is REAL.
var Classes = [2]model.Label{model.LabelFake, model.LabelReal}

// ClassIndex maps a label onto its probability-vector index.
func ClassIndex(l model.Label) int {
	if l == model.LabelFake {
		return 0
	}
	return 1
}

// TreeConfig bounds how a single decision tree grows.
type TreeConfig struct {
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Seed            int64
}

// DefaultTreeConfig returns the production settings for the standalone tree
// member.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		MaxDepth:        25,
		MinSamplesSplit: 8,
		MinSamplesLeaf:  3,
		Seed:            42,
	}
}

// ForestConfig bounds the bagged forest member.
type ForestConfig struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Seed            int64
}

// DefaultForestConfig returns the production settings for the forest member.
// The forest grows deeper than the standalone tree because bagging already
// counters overfitting.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:           200,
		MaxDepth:        30,
		MinSamplesSplit: 8,
		MinSamplesLeaf:  3,
		Seed:            42,
	}
}

func (c ForestConfig) treeConfig() TreeConfig {
	return TreeConfig{
		MaxDepth:        c.MaxDepth,
		MinSamplesSplit: c.MinSamplesSplit,
		MinSamplesLeaf:  c.MinSamplesLeaf,
		Seed:            c.Seed,
	}
}

// argmaxProba picks the label for a probability pair. Exact ties resolve to
// the first class (FAKE), matching the fixed class ordering.
func argmaxProba(p [2]float64) (model.Label, float64) {
	if p[0] >= p[1] {
		return Classes[0], p[0]
	}
	return Classes[1], p[1]
}
