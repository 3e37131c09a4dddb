package analysis

import (
	"math"
	"slices"

	"github.com/pkg/errors"

	"github.com/wordsphere/wordsphere/pkg/wordcloud"
)

// DefaultMaxKeywords is the selection cap when none is configured.
const DefaultMaxKeywords = 50

// Selector merges stem-equivalent terms and keeps the heaviest K.
type Selector struct {
	maxKeywords int
	stemmer     wordcloud.Stemmer
}

// NewSelector builds a selector keeping at most maxKeywords entries.
// A nil stemmer falls back to PorterStemmer. maxKeywords must be
// positive.
func NewSelector(maxKeywords int, stemmer wordcloud.Stemmer) (*Selector, error) {
	if maxKeywords <= 0 {
		return nil, errors.Wrapf(wordcloud.ErrInvalidConfig, "max keywords must be positive, got %d", maxKeywords)
	}
	if stemmer == nil {
		stemmer = PorterStemmer{}
	}
	return &Selector{maxKeywords: maxKeywords, stemmer: stemmer}, nil
}

// Select folds scored terms into stem equivalence classes and returns
// the ranked set. Per class: frequency is the sum over members, weight
// is the maximum, and the surface form is the most frequent member,
// ties broken by shortest then alphabetical. The merged list is
// re-sorted by weight descending (ties alphabetical) and truncated to
// the configured cap.
func (s *Selector) Select(scored []wordcloud.ScoredTerm) wordcloud.RankedKeywordSet {
	if len(scored) == 0 {
		return wordcloud.RankedKeywordSet{}
	}

	type class struct {
		surface   wordcloud.ScoredTerm
		weight    float64
		frequency int
	}
	classes := make(map[string]*class, len(scored))
	order := make([]string, 0, len(scored))

	for _, st := range scored {
		key := stemTerm(s.stemmer.Stem, st.Term)
		c, ok := classes[key]
		if !ok {
			classes[key] = &class{surface: st, weight: st.Weight, frequency: st.Frequency}
			order = append(order, key)
			continue
		}
		c.weight = math.Max(c.weight, st.Weight)
		c.frequency += st.Frequency
		if betterSurface(st, c.surface) {
			c.surface = st
		}
	}

	merged := make(wordcloud.RankedKeywordSet, 0, len(order))
	for _, key := range order {
		c := classes[key]
		merged = append(merged, wordcloud.ScoredTerm{
			Term:      c.surface.Term,
			Weight:    c.weight,
			Frequency: c.frequency,
		})
	}

	slices.SortStableFunc(merged, cmpScored)
	if len(merged) > s.maxKeywords {
		merged = merged[:s.maxKeywords]
	}
	return merged
}

// betterSurface reports whether a should represent the class instead
// of b: more frequent wins, then shorter, then alphabetical.
func betterSurface(a, b wordcloud.ScoredTerm) bool {
	if a.Frequency != b.Frequency {
		return a.Frequency > b.Frequency
	}
	if len(a.Term) != len(b.Term) {
		return len(a.Term) < len(b.Term)
	}
	return a.Term < b.Term
}
