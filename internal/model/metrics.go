package model

// Canonical model names used as metric map keys and artifact identifiers.
const (
	ModelDecisionTree = "decision_tree"
	ModelRandomForest = "random_forest"
)

// ModelMetrics captures one classifier's evaluation against the held-out
// split. FAKE is the positive class for precision, recall and F1. The
// confusion matrix is indexed [actual][predicted] with FAKE first.
type ModelMetrics struct {
	TrainAccuracy   float64   `json:"train_accuracy"`
	TestAccuracy    float64   `json:"test_accuracy"`
	Precision       float64   `json:"precision"`
	Recall          float64   `json:"recall"`
	F1Score         float64   `json:"f1_score"`
	ConfusionMatrix [2][2]int `json:"confusion_matrix"`
}

// DatasetStats summarizes the loaded training corpus.
type DatasetStats struct {
	TotalArticles  int            `json:"total_articles"`
	FakeArticles   int            `json:"fake_articles"`
	RealArticles   int            `json:"real_articles"`
	Subjects       map[string]int `json:"subjects"`
	AvgTextLength  float64        `json:"avg_text_length"`
	AvgTitleLength float64        `json:"avg_title_length"`
}
