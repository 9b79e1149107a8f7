// Package detector is the serving layer of the classifier. A service owns
// one immutable model snapshot at a time and swaps whole snapshots
// atomically after training, so in-flight predictions never observe a
// half-updated model. Training is exclusive; predictions are lock-free.
package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/git-dariel/fake-news-detector/common/id"
	"github.com/git-dariel/fake-news-detector/common/logger"
	"github.com/git-dariel/fake-news-detector/internal/artifact"
	"github.com/git-dariel/fake-news-detector/internal/dataset"
	"github.com/git-dariel/fake-news-detector/internal/model"
	"github.com/git-dariel/fake-news-detector/internal/training"
)

var (
	// ErrNotReady means no model snapshot is installed yet. Callers should
	// retry after training or artifact loading completes.
	ErrNotReady = errors.New("models are not ready")

	// ErrTrainingInProgress rejects a training request while another run
	// holds the training lock.
	ErrTrainingInProgress = errors.New("training already in progress")
)

// CorpusLoader supplies the labeled training corpus. full selects the whole
// corpus; otherwise the loader may cap it for faster startup training.
type CorpusLoader interface {
	LoadCorpus(full bool) ([]model.LabeledArticle, error)
}

type Service interface {
	Ready() bool
	Snapshot() *training.Snapshot
	LoadArtifacts(ctx context.Context) error
	TrainAndInstall(ctx context.Context, full bool) (*training.Snapshot, error)
	StartRetrain(ctx context.Context, full bool) (int64, error)
	PredictFused(ctx context.Context, article model.Article) (*model.Verdict, error)
	PredictPure(ctx context.Context, article model.Article) (*model.Verdict, error)
	Metrics() (map[string]model.ModelMetrics, error)
	DatasetStats(ctx context.Context) (model.DatasetStats, error)
}

type service struct {
	artifacts *artifact.Store
	corpus    CorpusLoader
	trainCfg  training.Config

	snapshot atomic.Pointer[training.Snapshot]
	trainMu  sync.Mutex
}

func NewService(artifacts *artifact.Store, corpus CorpusLoader, trainCfg training.Config) Service {
	return &service{
		artifacts: artifacts,
		corpus:    corpus,
		trainCfg:  trainCfg,
	}
}

func (s *service) Ready() bool {
	return s.snapshot.Load() != nil
}

// Snapshot returns the currently installed snapshot, or nil before the first
// install. Snapshots are immutable; callers may read them freely.
func (s *service) Snapshot() *training.Snapshot {
	return s.snapshot.Load()
}

// LoadArtifacts installs the snapshot persisted on disk. A missing or
// incomplete artifact directory leaves the service not ready rather than
// failing the process; the caller decides whether to train instead.
func (s *service) LoadArtifacts(ctx context.Context) error {
	snap, err := s.artifacts.Load()
	if err != nil {
		return fmt.Errorf("loading model artifacts: %w", err)
	}
	s.snapshot.Store(snap)

	slog.InfoContext(ctx, "model artifacts loaded",
		"snapshot_id", snap.ID,
		"trained_at", snap.TrainedAt,
	)
	return nil
}

// TrainAndInstall runs a full training cycle synchronously: load the
// corpus, fit a snapshot, persist it, then swap it in for serving.
func (s *service) TrainAndInstall(ctx context.Context, full bool) (*training.Snapshot, error) {
	if !s.trainMu.TryLock() {
		return nil, ErrTrainingInProgress
	}
	defer s.trainMu.Unlock()

	return s.train(ctx, full, id.New())
}

// StartRetrain launches a training cycle in the background and returns its
// run ID immediately. The run keeps going after the request context ends.
func (s *service) StartRetrain(ctx context.Context, full bool) (int64, error) {
	if !s.trainMu.TryLock() {
		return 0, ErrTrainingInProgress
	}

	runID := id.New()
	slog.InfoContext(ctx, "retrain accepted", "run_id", runID, "full_dataset", full)

	go func() {
		defer s.trainMu.Unlock()
		if _, err := s.train(context.Background(), full, runID); err != nil {
			slog.Error("retrain failed", "error", err, "run_id", runID)
		}
	}()
	return runID, nil
}

// train assumes the caller holds trainMu. The old snapshot keeps serving
// until the new one is both trained and persisted.
func (s *service) train(ctx context.Context, full bool, runID int64) (*training.Snapshot, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		TrainingRunID: logger.Ptr(runID),
		Component:     "verdict.detector",
	})
	sc := logger.StartSpan(ctx, "detector.train")
	defer sc.End()
	ctx = sc.Context()

	started := time.Now()
	slog.InfoContext(ctx, "training started", "full_dataset", full)

	corpus, err := s.corpus.LoadCorpus(full)
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("loading corpus: %w", err)
	}
	slog.InfoContext(ctx, "corpus loaded", "articles", len(corpus))

	snap, err := training.Train(ctx, corpus, s.trainCfg)
	if err != nil {
		sc.RecordError(err)
		return nil, err
	}
	if err := s.artifacts.Save(snap); err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("saving model artifacts: %w", err)
	}
	s.snapshot.Store(snap)

	slog.InfoContext(ctx, "training completed",
		"snapshot_id", snap.ID,
		"articles", len(corpus),
		"duration", time.Since(started),
		"forest_test_accuracy", snap.Metrics[model.ModelRandomForest].TestAccuracy,
	)
	return snap, nil
}

func (s *service) Metrics() (map[string]model.ModelMetrics, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap.Metrics, nil
}

// DatasetStats loads the (sampled) corpus and summarizes it. Stats describe
// the corpus as the startup trainer would see it, not the full archive.
func (s *service) DatasetStats(ctx context.Context) (model.DatasetStats, error) {
	corpus, err := s.corpus.LoadCorpus(false)
	if err != nil {
		return model.DatasetStats{}, fmt.Errorf("loading corpus for stats: %w", err)
	}

	stats := dataset.Stats(corpus)
	slog.DebugContext(ctx, "dataset stats computed", "articles", stats.TotalArticles)
	return stats, nil
}
