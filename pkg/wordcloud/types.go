// Package wordcloud defines the shared types of the keyword pipeline:
// scored terms produced by analysis and positioned points produced by
// layout. The pipeline itself lives in the analysis and layout
// subpackages; both are pure and safe for concurrent use.
package wordcloud

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// ScoredTerm is a single keyword with its normalized weight and its raw
// occurrence count in the analyzed document.
type ScoredTerm struct {
	Term      string  `json:"term"`
	Weight    float64 `json:"weight"`
	Frequency int     `json:"frequency"`
}

// RankedKeywordSet is an ordered collection of scored terms, heaviest
// first; entries with equal weight are ordered alphabetically. No two
// entries share a stem equivalence class. The set is a value: once
// returned it is never mutated by the pipeline.
type RankedKeywordSet []ScoredTerm

// Terms returns the surface forms in ranked order.
func (s RankedKeywordSet) Terms() []string {
	terms := make([]string, len(s))
	for i, st := range s {
		terms[i] = st.Term
	}
	return terms
}

// LayoutPoint is a keyword placed in 3D space. Weight and Frequency are
// carried through from the analyzed term so renderers need only this
// type.
type LayoutPoint struct {
	Term      string  `json:"term"`
	Position  r3.Vec  `json:"position"`
	Size      float64 `json:"size"`
	Weight    float64 `json:"weight"`
	Frequency int     `json:"frequency"`
}

// Document is the envelope for a full text analysis. WordCount counts
// word tokens seen before stop-word and length filtering; Sentences is
// the number of detected sentences.
type Document struct {
	Keywords  RankedKeywordSet `json:"keywords"`
	WordCount int              `json:"word_count"`
	Sentences int              `json:"sentences"`
}

// CorpusStats supplies background relative term frequencies for inverse
// document frequency weighting. FrequencyOf reports the expected
// relative frequency of term in the reference corpus, in [0,1].
// Implementations may smooth; an unsmoothed implementation returns 0
// for unknown terms.
type CorpusStats interface {
	FrequencyOf(term string) float64
}

// Stemmer maps a term to the key of its equivalence class. Terms with
// equal keys are merged into a single keyword during selection.
type Stemmer interface {
	Stem(term string) string
}
