package detector_test

import (
	"context"
	"errors"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/git-dariel/fake-news-detector/internal/artifact"
	"github.com/git-dariel/fake-news-detector/internal/detector"
	"github.com/git-dariel/fake-news-detector/internal/model"
	"github.com/git-dariel/fake-news-detector/internal/training"
)

var _ = Describe("DetectorService", func() {
	var (
		ctx    context.Context
		store  *artifact.Store
		loader *mockCorpusLoader
		svc    detector.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = artifact.NewStore(GinkgoT().TempDir())
		loader = &mockCorpusLoader{}
		svc = detector.NewService(store, loader, trainingConfigForTests())
	})

	Describe("readiness", func() {
		It("starts without a snapshot", func() {
			Expect(svc.Ready()).To(BeFalse())
			Expect(svc.Snapshot()).To(BeNil())
		})

		It("rejects predictions before a model is installed", func() {
			article := model.Article{Title: "t", Text: "x"}

			_, err := svc.PredictFused(ctx, article)
			Expect(err).To(MatchError(detector.ErrNotReady))

			_, err = svc.PredictPure(ctx, article)
			Expect(err).To(MatchError(detector.ErrNotReady))

			_, err = svc.Metrics()
			Expect(err).To(MatchError(detector.ErrNotReady))
		})
	})

	Describe("TrainAndInstall", func() {
		It("trains, persists and installs a snapshot", func() {
			snap, err := svc.TrainAndInstall(ctx, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(snap).NotTo(BeNil())
			Expect(svc.Ready()).To(BeTrue())
			Expect(svc.Snapshot().ID).To(Equal(snap.ID))

			metrics, err := svc.Metrics()
			Expect(err).NotTo(HaveOccurred())
			Expect(metrics).To(HaveKey(model.ModelDecisionTree))
			Expect(metrics).To(HaveKey(model.ModelRandomForest))
		})

		It("persists artifacts a fresh service can load", func() {
			snap, err := svc.TrainAndInstall(ctx, false)
			Expect(err).NotTo(HaveOccurred())

			fresh := detector.NewService(store, loader, trainingConfigForTests())
			Expect(fresh.Ready()).To(BeFalse())
			Expect(fresh.LoadArtifacts(ctx)).To(Succeed())
			Expect(fresh.Ready()).To(BeTrue())
			Expect(fresh.Snapshot().ID).To(Equal(snap.ID))
		})

		It("passes the full-dataset flag to the corpus loader", func() {
			var sawFull atomic.Bool
			loader.loadFn = func(full bool) ([]model.LabeledArticle, error) {
				sawFull.Store(full)
				return newsCorpus(8), nil
			}

			_, err := svc.TrainAndInstall(ctx, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(sawFull.Load()).To(BeTrue())
		})

		It("surfaces corpus loader failures", func() {
			loader.loadFn = func(bool) ([]model.LabeledArticle, error) {
				return nil, errors.New("manifest unreadable")
			}

			_, err := svc.TrainAndInstall(ctx, false)
			Expect(err).To(MatchError(ContainSubstring("manifest unreadable")))
			Expect(svc.Ready()).To(BeFalse())
		})

		It("rejects a corpus without enough articles per class", func() {
			loader.loadFn = func(bool) ([]model.LabeledArticle, error) {
				return newsCorpus(8)[:1], nil
			}

			_, err := svc.TrainAndInstall(ctx, false)
			Expect(err).To(MatchError(training.ErrCorpusTooSmall))
			Expect(svc.Ready()).To(BeFalse())
		})

		It("keeps serving the previous snapshot when a later run fails", func() {
			first, err := svc.TrainAndInstall(ctx, false)
			Expect(err).NotTo(HaveOccurred())

			loader.loadFn = func(bool) ([]model.LabeledArticle, error) {
				return nil, errors.New("corpus gone")
			}
			_, err = svc.TrainAndInstall(ctx, false)
			Expect(err).To(HaveOccurred())

			Expect(svc.Ready()).To(BeTrue())
			Expect(svc.Snapshot().ID).To(Equal(first.ID))
		})
	})

	Describe("LoadArtifacts", func() {
		It("reports missing artifacts and stays not ready", func() {
			err := svc.LoadArtifacts(ctx)
			Expect(err).To(MatchError(artifact.ErrMissingArtifact))
			Expect(svc.Ready()).To(BeFalse())
		})
	})

	Describe("StartRetrain", func() {
		It("runs in the background and installs the snapshot when done", func() {
			release := make(chan struct{})
			loader.loadFn = func(bool) ([]model.LabeledArticle, error) {
				<-release
				return newsCorpus(8), nil
			}

			runID, err := svc.StartRetrain(ctx, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(runID).NotTo(BeZero())
			Expect(svc.Ready()).To(BeFalse())

			close(release)
			Eventually(svc.Ready, "5s", "10ms").Should(BeTrue())
		})

		It("rejects concurrent training runs", func() {
			release := make(chan struct{})
			loader.loadFn = func(bool) ([]model.LabeledArticle, error) {
				<-release
				return newsCorpus(8), nil
			}

			_, err := svc.StartRetrain(ctx, false)
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.StartRetrain(ctx, false)
			Expect(err).To(MatchError(detector.ErrTrainingInProgress))

			_, err = svc.TrainAndInstall(ctx, false)
			Expect(err).To(MatchError(detector.ErrTrainingInProgress))

			close(release)
			Eventually(svc.Ready, "5s", "10ms").Should(BeTrue())

			// Once the background run finishes the lock is free again.
			Eventually(func() error {
				_, err := svc.TrainAndInstall(ctx, false)
				return err
			}, "5s", "10ms").Should(Succeed())
		})
	})

	Describe("DatasetStats", func() {
		It("summarizes the sampled corpus without requiring a trained model", func() {
			var sawFull atomic.Bool
			sawFull.Store(true)
			loader.loadFn = func(full bool) ([]model.LabeledArticle, error) {
				sawFull.Store(full)
				return newsCorpus(3), nil
			}

			stats, err := svc.DatasetStats(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(sawFull.Load()).To(BeFalse())
			Expect(stats.TotalArticles).To(Equal(6))
			Expect(stats.FakeArticles).To(Equal(3))
			Expect(stats.RealArticles).To(Equal(3))
			Expect(stats.Subjects).To(HaveKeyWithValue("News", 3))
			Expect(stats.Subjects).To(HaveKeyWithValue("politicsNews", 3))
		})

		It("surfaces corpus loader failures", func() {
			loader.loadFn = func(bool) ([]model.LabeledArticle, error) {
				return nil, errors.New("data dir missing")
			}

			_, err := svc.DatasetStats(ctx)
			Expect(err).To(MatchError(ContainSubstring("data dir missing")))
		})
	})
})
