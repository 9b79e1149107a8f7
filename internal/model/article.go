package model

import "strings"

// Label is the classification target for an article.
type Label string

const (
	LabelFake Label = "FAKE"
	LabelReal Label = "REAL"
)

// Other returns the opposing label.
func (l Label) Other() Label {
	if l == LabelFake {
		return LabelReal
	}
	return LabelFake
}

// Article is a news item submitted for classification or carried in the
// training corpus. Subject and Date are optional.
type Article struct {
	Title   string `json:"title"`
	Text    string `json:"text"`
	Subject string `json:"subject,omitempty"`
	Date    string `json:"date,omitempty"`
}

// CombinedText joins the fields the models see. A blank subject is skipped so
// it does not contribute stray whitespace tokens.
func (a Article) CombinedText() string {
	if strings.TrimSpace(a.Subject) != "" {
		return a.Title + " " + a.Text + " " + a.Subject
	}
	return a.Title + " " + a.Text
}

// LabeledArticle pairs an article with its ground-truth label.
type LabeledArticle struct {
	Article
	Label Label `json:"label"`
}
