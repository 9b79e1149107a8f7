// Package feature turns normalized article text into sparse TF-IDF vectors.
package feature

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrDegenerateCorpus is returned when a corpus cannot support fitting: too
// few documents, no distinct documents, or a vocabulary that prunes to
// nothing.
var ErrDegenerateCorpus = errors.New("degenerate corpus")

// Vector is a sparse feature vector keyed by vocabulary column.
type Vector map[int]float64

// Config controls vocabulary construction. The defaults are frozen alongside
// saved artifacts; changing them invalidates previously trained models.
type Config struct {
	MaxFeatures int     `json:"max_features"`
	MinDocFreq  int     `json:"min_doc_freq"`
	MaxDocShare float64 `json:"max_doc_share"`
	MinNGram    int     `json:"min_ngram"`
	MaxNGram    int     `json:"max_ngram"`
}

// DefaultConfig returns the production vocabulary settings: up to 15000
// uni/bi/trigrams, kept only when they appear in at least 3 documents and at
// most 70% of them.
func DefaultConfig() Config {
	return Config{
		MaxFeatures: 15000,
		MinDocFreq:  3,
		MaxDocShare: 0.7,
		MinNGram:    1,
		MaxNGram:    3,
	}
}

// Vectorizer maps normalized text onto a fixed vocabulary learned at fit
// time. All fields are exported for gob encoding; treat a fitted vectorizer
// as immutable.
type Vectorizer struct {
	Cfg        Config
	Vocabulary map[string]int
	IDF        []float64
	Terms      []string
}

// Fit learns a vocabulary and IDF weights from normalized documents.
//
// Terms are n-grams of whitespace-separated tokens. Terms below MinDocFreq or
// above MaxDocShare are pruned, then the vocabulary is capped at MaxFeatures
// by total corpus frequency with lexicographic tie-breaking. Columns are
// assigned in lexicographic term order so fitting is deterministic.
func Fit(docs []string, cfg Config) (*Vectorizer, error) {
	if len(docs) < 2 {
		return nil, fmt.Errorf("fitting vectorizer on %d document(s): %w", len(docs), ErrDegenerateCorpus)
	}
	if !hasDistinctDocs(docs) {
		return nil, fmt.Errorf("fitting vectorizer on identical documents: %w", ErrDegenerateCorpus)
	}

	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)
	seen := make(map[string]struct{})

	for _, doc := range docs {
		clear(seen)
		forEachTerm(doc, cfg, func(term string) {
			corpusFreq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		})
	}

	n := len(docs)
	maxDF := int(math.Floor(cfg.MaxDocShare * float64(n)))

	type termStat struct {
		term string
		df   int
		tf   int
	}
	kept := make([]termStat, 0, len(docFreq))
	for term, df := range docFreq {
		if df < cfg.MinDocFreq || df > maxDF {
			continue
		}
		kept = append(kept, termStat{term: term, df: df, tf: corpusFreq[term]})
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("vocabulary empty after document-frequency pruning: %w", ErrDegenerateCorpus)
	}

	if cfg.MaxFeatures > 0 && len(kept) > cfg.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if kept[i].tf != kept[j].tf {
				return kept[i].tf > kept[j].tf
			}
			return kept[i].term < kept[j].term
		})
		kept = kept[:cfg.MaxFeatures]
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].term < kept[j].term })

	v := &Vectorizer{
		Cfg:        cfg,
		Vocabulary: make(map[string]int, len(kept)),
		IDF:        make([]float64, len(kept)),
		Terms:      make([]string, len(kept)),
	}
	for i, ts := range kept {
		v.Vocabulary[ts.term] = i
		v.Terms[i] = ts.term
		v.IDF[i] = math.Log(float64(1+n)/float64(1+ts.df)) + 1
	}
	return v, nil
}

// Transform produces the sparse TF-IDF vector for one normalized document.
// Terms outside the vocabulary contribute nothing. The weight per term is
// sublinear TF (1 + ln count) times smoothed IDF, and the final vector is
// L2-normalized. Transform never mutates the vectorizer and is safe for
// concurrent use.
func (v *Vectorizer) Transform(doc string) Vector {
	counts := make(map[int]int)
	forEachTerm(doc, v.Cfg, func(term string) {
		if col, ok := v.Vocabulary[term]; ok {
			counts[col]++
		}
	})

	vec := make(Vector, len(counts))
	var sumSq float64
	for col, count := range counts {
		w := (1 + math.Log(float64(count))) * v.IDF[col]
		vec[col] = w
		sumSq += w * w
	}
	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for col := range vec {
			vec[col] /= norm
		}
	}
	return vec
}

// NumFeatures reports the vocabulary size, which is the dimensionality every
// downstream classifier trains against.
func (v *Vectorizer) NumFeatures() int {
	return len(v.Terms)
}

// FeatureName returns the vocabulary term for a column.
func (v *Vectorizer) FeatureName(col int) string {
	return v.Terms[col]
}

func hasDistinctDocs(docs []string) bool {
	for _, doc := range docs[1:] {
		if doc != docs[0] {
			return true
		}
	}
	return false
}

// forEachTerm emits every n-gram of doc in [MinNGram, MaxNGram], joining
// tokens with single spaces.
func forEachTerm(doc string, cfg Config, emit func(term string)) {
	tokens := strings.Fields(doc)
	for size := cfg.MinNGram; size <= cfg.MaxNGram; size++ {
		if size <= 0 {
			continue
		}
		for i := 0; i+size <= len(tokens); i++ {
			emit(strings.Join(tokens[i:i+size], " "))
		}
	}
}
