// Package textnorm canonicalizes raw article text before vectorization.
//
// The pipeline is fixed: lowercase, strip non-letter characters, segment into
// words, drop stopwords, stem. Training and inference must run the exact same
// steps or vocabulary lookups silently degrade, so this package is the only
// place the pipeline is defined.
package textnorm

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/kljensen/snowball/english"
)

// Normalize reduces raw text to a space-joined sequence of stemmed content
// words. It is pure and safe for concurrent use. Normalizing already
// normalized text is a no-op.
func Normalize(raw string) string {
	stripped := stripNonLetters(strings.ToLower(raw))

	var b strings.Builder
	b.Grow(len(stripped))

	tokens := words.FromString(stripped)
	for tokens.Next() {
		tok := strings.TrimSpace(tokens.Value())
		if tok == "" {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(english.Stem(tok, true))
	}

	return b.String()
}

// Tokens returns the normalized text split into individual terms.
func Tokens(raw string) []string {
	norm := Normalize(raw)
	if norm == "" {
		return nil
	}
	return strings.Split(norm, " ")
}

// stripNonLetters keeps ASCII letters and whitespace, dropping digits,
// punctuation and any non-Latin characters. Whitespace survives so word
// boundaries are preserved for segmentation.
func stripNonLetters(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, s)
}
