// Package training turns a labeled corpus into a model snapshot: normalized
// text, a fitted vectorizer, both ensemble members, and held-out metrics.
// Runs are seeded end to end, so the same corpus produces the same models.
package training

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/git-dariel/fake-news-detector/common/id"
	"github.com/git-dariel/fake-news-detector/internal/ensemble"
	"github.com/git-dariel/fake-news-detector/internal/feature"
	"github.com/git-dariel/fake-news-detector/internal/model"
	"github.com/git-dariel/fake-news-detector/internal/textnorm"
)

// ErrCorpusTooSmall rejects corpora that cannot produce a stratified split.
var ErrCorpusTooSmall = errors.New("corpus needs at least two articles per class")

// Config collects every knob of a training run.
type Config struct {
	TestFraction float64
	Seed         int64
	Vectorizer   feature.Config
	Tree         ensemble.TreeConfig
	Forest       ensemble.ForestConfig
}

// DefaultConfig returns the production training settings.
func DefaultConfig() Config {
	return Config{
		TestFraction: 0.2,
		Seed:         42,
		Vectorizer:   feature.DefaultConfig(),
		Tree:         ensemble.DefaultTreeConfig(),
		Forest:       ensemble.DefaultForestConfig(),
	}
}

// Snapshot is one fully trained model generation. Snapshots are immutable
// once built; the serving layer swaps whole snapshots atomically.
type Snapshot struct {
	ID         int64
	TrainedAt  time.Time
	Vectorizer *feature.Vectorizer
	Tree       *ensemble.DecisionTree
	Forest     *ensemble.RandomForest
	Metrics    map[string]model.ModelMetrics
}

// Train fits a snapshot from the corpus: seeded shuffle, stratified
// train/test split, vectorizer fitted on the training fold only, then both
// ensemble members. Metrics for each member are computed on the held-out
// fold with FAKE as the positive class.
func Train(ctx context.Context, corpus []model.LabeledArticle, cfg Config) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("training: %w", err)
	}

	shuffled := make([]model.LabeledArticle, len(corpus))
	copy(shuffled, corpus)
	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), 0))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	var counts [2]int
	for _, a := range shuffled {
		counts[ensemble.ClassIndex(a.Label)]++
	}
	if counts[0] < 2 || counts[1] < 2 {
		return nil, fmt.Errorf("training on %d fake / %d real articles: %w", counts[0], counts[1], ErrCorpusTooSmall)
	}

	// Mark the first testWant[c] shuffled articles of each class as the
	// held-out fold. The shuffle above makes this a seeded random draw.
	testWant := [2]int{
		testCount(counts[0], cfg.TestFraction),
		testCount(counts[1], cfg.TestFraction),
	}
	isTest := make([]bool, len(shuffled))
	var seen [2]int
	for i, a := range shuffled {
		c := ensemble.ClassIndex(a.Label)
		if seen[c] < testWant[c] {
			isTest[i] = true
		}
		seen[c]++
	}

	var trainDocs, testDocs []string
	var trainY, testY []model.Label
	for i, a := range shuffled {
		doc := textnorm.Normalize(a.CombinedText())
		if isTest[i] {
			testDocs = append(testDocs, doc)
			testY = append(testY, a.Label)
		} else {
			trainDocs = append(trainDocs, doc)
			trainY = append(trainY, a.Label)
		}
	}

	vec, err := feature.Fit(trainDocs, cfg.Vectorizer)
	if err != nil {
		return nil, fmt.Errorf("fitting vectorizer: %w", err)
	}

	Xtrain := transformAll(vec, trainDocs)
	Xtest := transformAll(vec, testDocs)

	tree, err := ensemble.TrainTree(Xtrain, trainY, vec.NumFeatures(), cfg.Tree)
	if err != nil {
		return nil, err
	}

	forest, err := ensemble.TrainForest(ctx, Xtrain, trainY, vec.NumFeatures(), cfg.Forest)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		ID:         id.New(),
		TrainedAt:  time.Now().UTC(),
		Vectorizer: vec,
		Tree:       tree,
		Forest:     forest,
		Metrics: map[string]model.ModelMetrics{
			model.ModelDecisionTree: evaluateMember(tree, Xtrain, trainY, Xtest, testY),
			model.ModelRandomForest: evaluateMember(forest, Xtrain, trainY, Xtest, testY),
		},
	}, nil
}

// testCount sizes the held-out fold for one class, always leaving at least
// one article on each side of the split.
func testCount(n int, frac float64) int {
	t := int(float64(n) * frac)
	if t < 1 {
		t = 1
	}
	if t >= n {
		t = n - 1
	}
	return t
}

func transformAll(vec *feature.Vectorizer, docs []string) []feature.Vector {
	X := make([]feature.Vector, len(docs))
	for i, doc := range docs {
		X[i] = vec.Transform(doc)
	}
	return X
}
