package training

import (
	"github.com/git-dariel/fake-news-detector/internal/ensemble"
	"github.com/git-dariel/fake-news-detector/internal/feature"
	"github.com/git-dariel/fake-news-detector/internal/model"
)

type voter interface {
	Vote(feature.Vector) model.MemberVote
}

// evaluateMember scores one ensemble member. Precision, recall and F1 treat
// FAKE as the positive class; the confusion matrix is indexed
// [actual][predicted] with FAKE first. Degenerate denominators score zero
// rather than NaN.
func evaluateMember(m voter, Xtrain []feature.Vector, trainY []model.Label, Xtest []feature.Vector, testY []model.Label) model.ModelMetrics {
	metrics := model.ModelMetrics{
		TrainAccuracy: accuracy(m, Xtrain, trainY),
	}

	var confusion [2][2]int
	correct := 0
	for i, vec := range Xtest {
		pred := m.Vote(vec).Label
		if pred == testY[i] {
			correct++
		}
		confusion[ensemble.ClassIndex(testY[i])][ensemble.ClassIndex(pred)]++
	}
	if len(Xtest) > 0 {
		metrics.TestAccuracy = float64(correct) / float64(len(Xtest))
	}
	metrics.ConfusionMatrix = confusion

	tp := float64(confusion[0][0])
	fp := float64(confusion[1][0])
	fn := float64(confusion[0][1])
	if tp+fp > 0 {
		metrics.Precision = tp / (tp + fp)
	}
	if tp+fn > 0 {
		metrics.Recall = tp / (tp + fn)
	}
	if metrics.Precision+metrics.Recall > 0 {
		metrics.F1Score = 2 * metrics.Precision * metrics.Recall / (metrics.Precision + metrics.Recall)
	}
	return metrics
}

func accuracy(m voter, X []feature.Vector, y []model.Label) float64 {
	if len(X) == 0 {
		return 0
	}
	correct := 0
	for i, vec := range X {
		if m.Vote(vec).Label == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(X))
}
