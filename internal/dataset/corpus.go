package dataset

import (
	"math/rand/v2"
	"unicode/utf8"

	"github.com/git-dariel/fake-news-detector/internal/model"
)

// Sample caps the corpus at sampleSize articles, drawing up to half from
// each class so a lopsided corpus cannot crowd out the minority label.
// sampleSize <= 0 disables sampling. The draw is seeded, so the same corpus
// order yields the same sample.
func Sample(articles []model.LabeledArticle, sampleSize int, seed int) []model.LabeledArticle {
	if sampleSize <= 0 {
		return articles
	}

	var fake, real []model.LabeledArticle
	for _, a := range articles {
		if a.Label == model.LabelFake {
			fake = append(fake, a)
		} else {
			real = append(real, a)
		}
	}

	perClass := sampleSize / 2
	fake = drawN(fake, perClass, rand.New(rand.NewPCG(uint64(seed), 0)))
	real = drawN(real, perClass, rand.New(rand.NewPCG(uint64(seed), 1)))

	sampled := append(fake, real...)
	rand.New(rand.NewPCG(uint64(seed), 2)).Shuffle(len(sampled), func(i, j int) {
		sampled[i], sampled[j] = sampled[j], sampled[i]
	})
	return sampled
}

// drawN picks n articles without replacement. The input slice is left
// untouched.
func drawN(articles []model.LabeledArticle, n int, rng *rand.Rand) []model.LabeledArticle {
	shuffled := make([]model.LabeledArticle, len(articles))
	copy(shuffled, articles)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n < len(shuffled) {
		shuffled = shuffled[:n]
	}
	return shuffled
}

// ManifestSource loads the corpus declared by a manifest file. Non-full
// loads are capped at SampleSize articles for faster startup training.
type ManifestSource struct {
	ManifestPath string
	SampleSize   int
	Seed         int
}

func (s ManifestSource) LoadCorpus(full bool) ([]model.LabeledArticle, error) {
	articles, err := Load(s.ManifestPath)
	if err != nil {
		return nil, err
	}
	if !full {
		articles = Sample(articles, s.SampleSize, s.Seed)
	}
	return articles, nil
}

// Stats summarizes a loaded corpus. Lengths are counted in runes to match
// how article text is measured elsewhere in the API.
func Stats(articles []model.LabeledArticle) model.DatasetStats {
	stats := model.DatasetStats{Subjects: map[string]int{}}
	if len(articles) == 0 {
		return stats
	}

	var textLen, titleLen int
	for _, a := range articles {
		if a.Label == model.LabelFake {
			stats.FakeArticles++
		} else {
			stats.RealArticles++
		}
		if a.Subject != "" {
			stats.Subjects[a.Subject]++
		}
		textLen += utf8.RuneCountInString(a.Text)
		titleLen += utf8.RuneCountInString(a.Title)
	}

	stats.TotalArticles = len(articles)
	n := float64(len(articles))
	stats.AvgTextLength = float64(textLen) / n
	stats.AvgTitleLength = float64(titleLen) / n
	return stats
}
