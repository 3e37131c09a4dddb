package analysis

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
)

// bigramJoiner glues the two halves of a bigram candidate. Stemming is
// applied to each half separately.
const bigramJoiner = "_"

// PorterStemmer applies the classic Porter algorithm. It is the default
// stemmer: "running" and "run" fold together, as do "cats" and "cat".
type PorterStemmer struct{}

// Stem implements wordcloud.Stemmer.
func (PorterStemmer) Stem(term string) string {
	return porterstemmer.StemString(term)
}

// SuffixStemmer is a lighter alternative to Porter: one plural pass
// followed by at most one derivational suffix strip. It conflates less
// aggressively, which keeps technical vocabulary apart ("server" stays
// "server").
type SuffixStemmer struct{}

// Suffixes checked longest first; only one is removed. "er" is absent
// on purpose: too many English roots end in it.
var derivationalSuffixes = []string{
	"ization", "izing", "ising", "ational", "ation",
	"ments", "ment", "ness", "less",
	"able", "ible", "tion", "sion", "ally",
	"ful", "ous", "ive", "ing", "ed", "ly",
}

// Stem implements wordcloud.Stemmer.
func (SuffixStemmer) Stem(term string) string {
	if len(term) < 4 {
		return term
	}

	switch {
	case len(term) > 4 && strings.HasSuffix(term, "ies"):
		term = term[:len(term)-3] + "y"
	case len(term) > 4 && strings.HasSuffix(term, "es") && term[len(term)-3] != 's':
		term = term[:len(term)-2]
	case term[len(term)-1] == 's' && term[len(term)-2] != 's':
		term = term[:len(term)-1]
	}

	for _, suffix := range derivationalSuffixes {
		if len(term) > len(suffix)+2 && strings.HasSuffix(term, suffix) {
			return term[:len(term)-len(suffix)]
		}
	}
	return term
}

// NoopStemmer disables merging: every surface form is its own class.
type NoopStemmer struct{}

// Stem implements wordcloud.Stemmer.
func (NoopStemmer) Stem(term string) string { return term }

// stemTerm applies the stemmer to a term, handling bigram candidates
// half by half so "rising_prices" and "rise_price" can merge.
func stemTerm(stem func(string) string, term string) string {
	head, tail, isBigram := strings.Cut(term, bigramJoiner)
	if !isBigram {
		return stem(term)
	}
	return stem(head) + bigramJoiner + stem(tail)
}
