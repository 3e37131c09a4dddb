package analysis

import (
	"math"
	"slices"
	"strings"

	"github.com/wordsphere/wordsphere/pkg/wordcloud"
)

const (
	// idfSmoothing keeps the inverse frequency finite for terms the
	// corpus has never seen.
	idfSmoothing = 1e-6

	// maxCandidates caps the distinct terms scored per document.
	maxCandidates = 10000
)

// Weigher scores terms by TF-IDF against a corpus statistic and
// normalizes the result to [0,1].
type Weigher struct {
	corpus wordcloud.CorpusStats
}

// NewWeigher builds a weigher over the given corpus statistic.
func NewWeigher(corpus wordcloud.CorpusStats) *Weigher {
	return &Weigher{corpus: corpus}
}

// Weigh computes one scored entry per distinct term in terms. Term
// frequency is the count normalized by document length; the inverse
// document frequency factor is ln(1/(f+eps))+1 over the corpus relative
// frequency f, so it stays positive and falls monotonically as f grows.
// Raw scores are min-max normalized: the strongest term gets weight
// 1.0, the weakest 0.0, and a flat distribution maps every term to 1.0.
// The result is sorted by weight descending, ties alphabetical.
func (w *Weigher) Weigh(terms []string) []wordcloud.ScoredTerm {
	if len(terms) == 0 {
		return nil
	}

	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		if _, seen := counts[term]; !seen && len(counts) >= maxCandidates {
			continue
		}
		counts[term]++
	}

	docLen := float64(len(terms))
	minRaw, maxRaw := math.Inf(1), math.Inf(-1)
	scored := make([]wordcloud.ScoredTerm, 0, len(counts))
	for term, count := range counts {
		tf := float64(count) / docLen
		idf := math.Log(1/(w.corpus.FrequencyOf(term)+idfSmoothing)) + 1
		raw := tf * idf
		minRaw = math.Min(minRaw, raw)
		maxRaw = math.Max(maxRaw, raw)
		scored = append(scored, wordcloud.ScoredTerm{Term: term, Weight: raw, Frequency: count})
	}

	spread := maxRaw - minRaw
	for i := range scored {
		if spread == 0 {
			scored[i].Weight = 1.0
		} else {
			scored[i].Weight = (scored[i].Weight - minRaw) / spread
		}
	}

	slices.SortStableFunc(scored, cmpScored)
	return scored
}

// cmpScored orders by weight descending with alphabetical tie-breaking,
// the total order used everywhere a keyword list is sorted.
func cmpScored(a, b wordcloud.ScoredTerm) int {
	if a.Weight != b.Weight {
		if a.Weight > b.Weight {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Term, b.Term)
}

// withBigrams appends adjacent-pair candidates to the unigram sequence.
// Pairs are joined with bigramJoiner and scored like any other term.
func withBigrams(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}
	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 1; i < len(tokens); i++ {
		out = append(out, tokens[i-1]+bigramJoiner+tokens[i])
	}
	return out
}
