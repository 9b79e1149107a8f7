package detector_test

import (
	"github.com/git-dariel/fake-news-detector/internal/model"
)

type mockCorpusLoader struct {
	loadFn func(full bool) ([]model.LabeledArticle, error)
}

func (m *mockCorpusLoader) LoadCorpus(full bool) ([]model.LabeledArticle, error) {
	if m.loadFn != nil {
		return m.loadFn(full)
	}
	return newsCorpus(8), nil
}
