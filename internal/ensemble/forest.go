package ensemble

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"

	"github.com/git-dariel/fake-news-detector/internal/feature"
	"github.com/git-dariel/fake-news-detector/internal/model"
)

// RandomForest bags decision trees over bootstrap resamples of the training
// set. Importance is the mean of the per-tree normalized importances.
type RandomForest struct {
	Cfg         ForestConfig
	Trees       []*DecisionTree
	Importance  []float64
	NumFeatures int
}

// TrainForest fits cfg.Trees trees concurrently, bounded by GOMAXPROCS.
// Every tree derives its own rng stream from (Seed, treeIndex), so the fitted
// forest is identical regardless of scheduling order. Cancelling ctx abandons
// the fit.
func TrainForest(ctx context.Context, X []feature.Vector, y []model.Label, numFeatures int, cfg ForestConfig) (*RandomForest, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("training forest on empty dataset")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("training forest: %d vectors but %d labels", len(X), len(y))
	}
	if cfg.Trees <= 0 {
		return nil, fmt.Errorf("training forest with %d trees", cfg.Trees)
	}

	trees := make([]*DecisionTree, cfg.Trees)
	treeCfg := cfg.treeConfig()

	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup

	for i := range trees {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			if ctx.Err() != nil {
				return
			}
			rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(i)))
			idx := bootstrap(rng, len(X))
			trees[i] = growTree(X, y, idx, numFeatures, treeCfg, rng)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("training forest: %w", err)
	}

	importance := make([]float64, numFeatures)
	for _, t := range trees {
		for f, v := range t.Importance {
			importance[f] += v
		}
	}
	for f := range importance {
		importance[f] /= float64(len(trees))
	}

	return &RandomForest{
		Cfg:         cfg,
		Trees:       trees,
		Importance:  importance,
		NumFeatures: numFeatures,
	}, nil
}

// Proba averages the leaf distributions of every tree.
func (f *RandomForest) Proba(vec feature.Vector) [2]float64 {
	var sum [2]float64
	for _, t := range f.Trees {
		p := t.Proba(vec)
		sum[0] += p[0]
		sum[1] += p[1]
	}
	n := float64(len(f.Trees))
	return [2]float64{sum[0] / n, sum[1] / n}
}

// Vote returns the forest's label and confidence for one vector.
func (f *RandomForest) Vote(vec feature.Vector) model.MemberVote {
	label, conf := argmaxProba(f.Proba(vec))
	return model.MemberVote{Label: label, Confidence: conf}
}

// Probabilities returns the full class-probability map for one vector.
func (f *RandomForest) Probabilities(vec feature.Vector) map[model.Label]float64 {
	p := f.Proba(vec)
	return map[model.Label]float64{
		Classes[0]: p[0],
		Classes[1]: p[1],
	}
}

// bootstrap draws n sample indices with replacement.
func bootstrap(rng *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.IntN(n)
	}
	return idx
}

// TopImportances returns the k feature columns with the highest importance,
// most important first. Ties keep the lower column.
func TopImportances(importance []float64, k int) []int {
	cols := make([]int, len(importance))
	for i := range cols {
		cols[i] = i
	}
	sort.SliceStable(cols, func(a, b int) bool {
		return importance[cols[a]] > importance[cols[b]]
	})
	if k > len(cols) {
		k = len(cols)
	}
	return cols[:k]
}
