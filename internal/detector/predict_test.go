package detector_test

import (
	"context"
	"strings"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/git-dariel/fake-news-detector/internal/artifact"
	"github.com/git-dariel/fake-news-detector/internal/detector"
	"github.com/git-dariel/fake-news-detector/internal/model"
	"github.com/git-dariel/fake-news-detector/internal/textnorm"
)

var _ = Describe("Prediction", func() {
	var (
		ctx context.Context
		svc detector.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		store := artifact.NewStore(GinkgoT().TempDir())
		svc = detector.NewService(store, &mockCorpusLoader{}, trainingConfigForTests())

		_, err := svc.TrainAndInstall(ctx, false)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("pure mode", func() {
		It("returns the raw forest vote untouched", func() {
			article := model.Article{
				Title: "Researchers publish trial results",
				Text:  "according to peer reviewed clinical trial results researchers confirmed findings",
			}

			verdict, err := svc.PredictPure(ctx, article)
			Expect(err).NotTo(HaveOccurred())

			snap := svc.Snapshot()
			vec := snap.Vectorizer.Transform(textnorm.Normalize(article.CombinedText()))
			want := snap.Forest.Vote(vec)

			Expect(verdict.Label).To(Equal(want.Label))
			Expect(verdict.Confidence).To(Equal(want.Confidence))
			Expect(verdict.Probabilities).To(Equal(snap.Forest.Probabilities(vec)))
		})

		It("bypasses every heuristic signal", func() {
			verdict, err := svc.PredictPure(ctx, model.Article{
				Title: "Shocking truth exposed",
				Text:  "doctors hate him because the big pharma conspiracy is real so wake up sheeple",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(verdict.Analysis.Method).To(Equal(model.MethodPureML))
			Expect(verdict.Analysis.Source).To(BeNil())
			Expect(verdict.Analysis.Patterns).To(BeNil())
			Expect(verdict.Analysis.FactChecksFound).To(BeZero())
			Expect(verdict.Analysis.FactChecks).To(BeEmpty())

			Expect(verdict.Enhancement).NotTo(BeNil())
			Expect(verdict.Enhancement.Mode).To(Equal(model.ModePureML))
			Expect(verdict.Enhancement.Bypassed).To(BeTrue())
			Expect(verdict.Enhancement.BaseConfidence).To(Equal(verdict.Confidence))
		})

		It("reports the full class distribution", func() {
			verdict, err := svc.PredictPure(ctx, model.Article{Title: "t", Text: "plain words here"})
			Expect(err).NotTo(HaveOccurred())

			Expect(verdict.Probabilities).To(HaveLen(2))
			sum := verdict.Probabilities[model.LabelFake] + verdict.Probabilities[model.LabelReal]
			Expect(sum).To(BeNumerically("~", 1, 1e-9))
			Expect(verdict.Probabilities[verdict.Label]).To(Equal(verdict.Confidence))
		})
	})

	Describe("enhanced mode", func() {
		It("labels credible reporting as REAL with high confidence", func() {
			verdict, err := svc.PredictFused(ctx, model.Article{
				Title:   "BBC reports study by researchers",
				Text:    "According to peer reviewed clinical trial results researchers confirmed the findings in the report study",
				Subject: "politicsNews",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(verdict.Label).To(Equal(model.LabelReal))
			Expect(verdict.Confidence).To(BeNumerically(">=", 0.85))

			Expect(verdict.Analysis.Source).NotTo(BeNil())
			Expect(verdict.Analysis.Source.Score).To(BeNumerically(">", 0.5))
			Expect(verdict.Analysis.Source.Factors).To(ContainElement("Major news agency as source"))
			Expect(verdict.Analysis.Patterns.Adjustment).To(BeNumerically(">", 0))
			Expect(verdict.Analysis.Explanation).To(ContainSubstring("credible"))
		})

		It("overrides to FAKE on heavily suspicious phrasing", func() {
			verdict, err := svc.PredictFused(ctx, model.Article{
				Title: "Shocking truth exposed",
				Text:  "Experts say doctors hate him because the big pharma conspiracy is real so wake up sheeple",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(verdict.Label).To(Equal(model.LabelFake))
			Expect(verdict.Confidence).To(BeNumerically(">=", 0.75))

			Expect(verdict.Analysis.Patterns.Adjustment).To(BeNumerically("<=", -0.4))
			Expect(verdict.Analysis.FactChecksFound).To(BeNumerically(">=", 2))
			Expect(len(verdict.Analysis.FactChecks)).To(BeNumerically("<=", 3))
			Expect(verdict.Analysis.Explanation).To(ContainSubstring("fabricated"))
			Expect(verdict.Analysis.Explanation).To(ContainSubstring("suspicious content patterns"))

			Expect(verdict.Enhancement.PatternAdjustment).To(BeNumerically("<=", -0.4))
			Expect(verdict.Enhancement.FinalConfidence).To(Equal(verdict.Confidence))
		})

		It("fills the shared analysis fields", func() {
			article := model.Article{
				Title:   "Committee reviews spending plan",
				Text:    "The committee reviewed the plan and scheduled a vote for next week",
				Subject: "politicsNews",
			}

			verdict, err := svc.PredictFused(ctx, article)
			Expect(err).NotTo(HaveOccurred())

			combined := article.CombinedText()
			Expect(verdict.Analysis.TextLength).To(Equal(utf8.RuneCountInString(combined)))
			Expect(verdict.Analysis.WordCount).To(Equal(len(strings.Fields(combined))))
			Expect(verdict.Analysis.Preview).To(Equal(textnorm.Normalize(combined)))
			Expect(verdict.Analysis.TopFeatures).NotTo(BeEmpty())
			Expect(len(verdict.Analysis.TopFeatures)).To(BeNumerically("<=", 10))
			Expect(verdict.Analysis.Method).To(Equal(model.MethodEnhanced))
			Expect(verdict.Metrics).To(HaveKey(model.ModelRandomForest))
		})

		It("derives probabilities from the fused confidence", func() {
			verdict, err := svc.PredictFused(ctx, model.Article{
				Title: "Researchers publish trial results",
				Text:  "according to peer reviewed clinical trial results researchers confirmed findings",
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(verdict.Probabilities).To(HaveLen(2))
			Expect(verdict.Probabilities[verdict.Label]).To(Equal(verdict.Confidence))
			other := verdict.Label.Other()
			Expect(verdict.Probabilities[other]).To(BeNumerically("~", 1-verdict.Confidence, 1e-12))
		})

		It("records how the signals moved the base confidence", func() {
			verdict, err := svc.PredictFused(ctx, model.Article{
				Title: "BBC reports study by researchers",
				Text:  "according to peer reviewed clinical trial results researchers confirmed findings",
			})
			Expect(err).NotTo(HaveOccurred())

			enh := verdict.Enhancement
			Expect(enh).NotTo(BeNil())
			Expect(enh.Mode).To(BeEmpty())
			Expect(enh.Bypassed).To(BeFalse())
			Expect(enh.BaseConfidence).To(Equal(verdict.Analysis.Forest.Confidence))
			Expect(enh.SourceScore).To(Equal(verdict.Analysis.Source.Score))
			Expect(enh.PatternAdjustment).To(Equal(verdict.Analysis.Patterns.Adjustment))
			Expect(enh.FinalConfidence).To(Equal(verdict.Confidence))
		})
	})
})
