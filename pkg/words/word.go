// Package words stores Rusty Words vocabulary entries in SQLite.
//
// A Word is a Dutch word with its English translation, an optional
// definite article, Arabic translation and source, plus example sentences,
// free-form notes and tags:
//
//	store, err := words.Open(ctx, "rusty_words.db")
//	id, err := store.Add(ctx, words.Word{
//	    DutchWord:          "hond",
//	    DefiniteArticle:    words.String("de"),
//	    EnglishTranslation: "dog",
//	    Sentences:          []words.Sentence{{Sentence: "De hond blaft.", Meaning: "The dog barks."}},
//	    Tags:               []string{"animals"},
//	})
package words

import (
	"strings"

	"github.com/oversys/Rusty-Words/internal/errors"
)

// Word is a vocabulary entry.
type Word struct {
	ID                 int64      `json:"id,omitempty"`
	DutchWord          string     `json:"dutchWord"`
	DefiniteArticle    *string    `json:"definiteArticle"`
	EnglishTranslation string     `json:"englishTranslation"`
	ArabicTranslation  *string    `json:"arabicTranslation"`
	Source             *string    `json:"source"`
	Sentences          []Sentence `json:"sentences"`
	Notes              []string   `json:"notes"`
	Tags               []string   `json:"tags"`
}

// Sentence is an example sentence and its meaning.
type Sentence struct {
	Sentence string `json:"sentence"`
	Meaning  string `json:"meaning"`
}

// String returns a pointer to s, for optional Word fields.
func String(s string) *string {
	return &s
}

// Validate checks the required fields.
func (w *Word) Validate() error {
	if strings.TrimSpace(w.DutchWord) == "" {
		return errors.New("E301").WithDetail("dutchWord is required")
	}
	if strings.TrimSpace(w.EnglishTranslation) == "" {
		return errors.New("E301").WithDetail("englishTranslation is required")
	}
	for i, s := range w.Sentences {
		if strings.TrimSpace(s.Sentence) == "" {
			return errors.New("E301").WithDetailf("sentence %d is empty", i+1)
		}
	}
	return nil
}

// normalize replaces nil collections with empty ones so words encode as
// [] rather than null.
func (w *Word) normalize() {
	if w.Sentences == nil {
		w.Sentences = []Sentence{}
	}
	if w.Notes == nil {
		w.Notes = []string{}
	}
	if w.Tags == nil {
		w.Tags = []string{}
	}
}
