package detector

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/git-dariel/fake-news-detector/common/logger"
	"github.com/git-dariel/fake-news-detector/internal/ensemble"
	"github.com/git-dariel/fake-news-detector/internal/feature"
	"github.com/git-dariel/fake-news-detector/internal/heuristic"
	"github.com/git-dariel/fake-news-detector/internal/model"
	"github.com/git-dariel/fake-news-detector/internal/textnorm"
	"github.com/git-dariel/fake-news-detector/internal/training"
)

const (
	previewLength      = 200
	factCheckBodyRunes = 200
	topFeatureCount    = 10
	reportedFactChecks = 3
)

// PredictFused classifies an article with the full pipeline: the ensemble
// vote blended with source credibility and content-pattern heuristics, plus
// the static fact-check lookup.
func (s *service) PredictFused(ctx context.Context, article model.Article) (*model.Verdict, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}

	base := evaluateArticle(snap, article)
	source := heuristic.ScoreSource(article.Title)
	patterns := heuristic.ScorePatterns(article.Title + " " + article.Text)
	factChecks := heuristic.SearchFactChecks(factCheckQuery(article))

	label, confidence, rule := fuse(fusionSignals{
		Base:     base.forest,
		Source:   source,
		Patterns: patterns,
	})
	if rule != "" {
		slog.InfoContext(ctx, "fusion override applied",
			"rule", rule,
			"label", label,
			"base_confidence", base.forest.Confidence,
			"title", logger.Truncate(article.Title, 80),
		)
	}

	analysis := base.analysis(model.MethodEnhanced)
	analysis.Source = &source
	analysis.Patterns = &patterns
	analysis.FactChecksFound = len(factChecks)
	analysis.FactChecks = topFactChecks(factChecks)
	analysis.Explanation = renderExplanation(label, confidence,
		dominantSignals(base.forest, source, patterns, len(factChecks)))

	return &model.Verdict{
		Label:      label,
		Confidence: confidence,
		Probabilities: map[model.Label]float64{
			label:         confidence,
			label.Other(): 1 - confidence,
		},
		Analysis: analysis,
		Metrics:  snap.Metrics,
		Enhancement: &model.EnhancementDetails{
			BaseConfidence:    base.forest.Confidence,
			SourceScore:       source.Score,
			PatternAdjustment: patterns.Adjustment,
			FinalConfidence:   confidence,
		},
	}, nil
}

// PredictPure classifies an article with the raw forest output alone. No
// heuristic ever touches the label, confidence or probabilities.
func (s *service) PredictPure(ctx context.Context, article model.Article) (*model.Verdict, error) {
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNotReady
	}

	base := evaluateArticle(snap, article)

	analysis := base.analysis(model.MethodPureML)
	analysis.Explanation = renderExplanation(base.forest.Label, base.forest.Confidence, nil)

	slog.DebugContext(ctx, "pure prediction served",
		"label", base.forest.Label,
		"confidence", base.forest.Confidence,
	)

	return &model.Verdict{
		Label:         base.forest.Label,
		Confidence:    base.forest.Confidence,
		Probabilities: snap.Forest.Probabilities(base.vector),
		Analysis:      analysis,
		Metrics:       snap.Metrics,
		Enhancement: &model.EnhancementDetails{
			Mode:           model.ModePureML,
			BaseConfidence: base.forest.Confidence,
			Bypassed:       true,
		},
	}, nil
}

// baseEvaluation bundles the shared ML pass both prediction paths start
// from.
type baseEvaluation struct {
	snap      *training.Snapshot
	article   model.Article
	processed string
	vector    feature.Vector
	tree      model.MemberVote
	forest    model.MemberVote
}

func evaluateArticle(snap *training.Snapshot, article model.Article) baseEvaluation {
	processed := textnorm.Normalize(article.CombinedText())
	vec := snap.Vectorizer.Transform(processed)
	return baseEvaluation{
		snap:      snap,
		article:   article,
		processed: processed,
		vector:    vec,
		tree:      snap.Tree.Vote(vec),
		forest:    snap.Forest.Vote(vec),
	}
}

func (b baseEvaluation) analysis(method model.VerificationMethod) model.Analysis {
	combined := b.article.CombinedText()

	// Normalized text is plain ASCII, so byte slicing is safe here.
	preview := b.processed
	if len(preview) > previewLength {
		preview = preview[:previewLength] + "..."
	}

	return model.Analysis{
		Tree:        b.tree,
		Forest:      b.forest,
		TopFeatures: topFeatures(b.snap),
		TextLength:  utf8.RuneCountInString(combined),
		WordCount:   len(strings.Fields(combined)),
		Preview:     preview,
		Method:      method,
	}
}

// topFeatures reports the forest's most important vocabulary terms, highest
// first.
func topFeatures(snap *training.Snapshot) []model.FeatureWeight {
	cols := ensemble.TopImportances(snap.Forest.Importance, topFeatureCount)
	features := make([]model.FeatureWeight, 0, len(cols))
	for _, col := range cols {
		features = append(features, model.FeatureWeight{
			Feature:    snap.Vectorizer.FeatureName(col),
			Importance: snap.Forest.Importance[col],
		})
	}
	return features
}

// factCheckQuery is the lookup key for the debunked-claim library: the title
// plus the opening of the body.
func factCheckQuery(a model.Article) string {
	body := a.Text
	if utf8.RuneCountInString(body) > factCheckBodyRunes {
		body = string([]rune(body)[:factCheckBodyRunes])
	}
	return a.Title + " " + body
}

func topFactChecks(matches []model.FactCheckMatch) []model.FactCheckMatch {
	if len(matches) > reportedFactChecks {
		matches = matches[:reportedFactChecks]
	}
	return matches
}
