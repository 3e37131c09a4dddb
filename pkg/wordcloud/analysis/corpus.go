package analysis

import (
	"bytes"
	"cmp"
	_ "embed"
	"slices"
	"strconv"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

//go:embed freq.txt
var freqRaw []byte

// freqScale converts the embedded counts, stored per million tokens,
// into relative frequencies.
const freqScale = 1_000_000

// CorpusTable is a background word-frequency table. It is the default
// corpus statistic: common English words get low inverse document
// frequency, unknown words get the maximum.
type CorpusTable struct {
	freq map[string]int64
}

// NewCorpusTable builds a table from counts per million tokens.
// Negative counts are dropped.
func NewCorpusTable(countsPerMillion map[string]int64) *CorpusTable {
	freq := make(map[string]int64, len(countsPerMillion))
	for term, count := range countsPerMillion {
		if count < 0 {
			continue
		}
		freq[term] = count
	}
	return &CorpusTable{freq: freq}
}

// FrequencyOf implements wordcloud.CorpusStats. Unknown terms report 0.
func (t *CorpusTable) FrequencyOf(term string) float64 {
	return float64(t.freq[term]) / freqScale
}

// DefaultCorpus returns the table parsed from the embedded frequency
// file, shared by all callers. The file holds "word count" lines with
// counts per million tokens; malformed lines are skipped.
var DefaultCorpus = sync.OnceValue(func() *CorpusTable {
	lines := bytes.Split(freqRaw, []byte("\n"))
	freq := make(map[string]int64, len(lines))

	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		sp := bytes.LastIndexByte(line, ' ')
		if sp <= 0 {
			continue
		}
		count, err := strconv.ParseInt(string(line[sp+1:]), 10, 64)
		if err != nil || count < 0 {
			continue
		}
		freq[string(line[:sp])] = count
	}
	return &CorpusTable{freq: freq}
})

// SentenceStats derives document frequencies from the article itself,
// treating each sentence as a mini-document: terms concentrated in few
// sentences are more discriminative than terms spread across all of
// them. Frequencies are smoothed so a term present in every sentence
// still scores above zero.
type SentenceStats struct {
	df    map[string]int
	total int
}

// NewSentenceStats counts, for every term, the number of sentences it
// appears in. sentenceTerms holds the tokenized terms of one sentence
// per element.
func NewSentenceStats(sentenceTerms [][]string) *SentenceStats {
	df := make(map[string]int)
	for _, terms := range sentenceTerms {
		seen := mapset.NewThreadUnsafeSet[string]()
		for _, term := range terms {
			if seen.Add(term) {
				df[term]++
			}
		}
	}
	return &SentenceStats{df: df, total: len(sentenceTerms)}
}

// FrequencyOf implements wordcloud.CorpusStats with the smoothed ratio
// (1+df)/(1+sentences).
func (s *SentenceStats) FrequencyOf(term string) float64 {
	if s.total == 0 {
		return 0
	}
	return float64(1+s.df[term]) / float64(1+s.total)
}

// RankStats is the corpus-free fallback: terms are ranked by their
// in-document count and the rank position stands in for a relative
// corpus frequency. The most frequent term gets the smallest pseudo
// frequency, so ranking degrades to plain frequency ordering when no
// real corpus is available.
type RankStats struct {
	freq map[string]float64
}

// NewRankStats ranks the distinct terms of the document by count
// descending, ties alphabetical.
func NewRankStats(terms []string) *RankStats {
	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		counts[term]++
	}

	type termCount struct {
		term  string
		count int
	}
	order := make([]termCount, 0, len(counts))
	for term, count := range counts {
		order = append(order, termCount{term: term, count: count})
	}
	slices.SortFunc(order, func(a, b termCount) int {
		if a.count != b.count {
			return cmp.Compare(b.count, a.count)
		}
		return cmp.Compare(a.term, b.term)
	})

	freq := make(map[string]float64, len(order))
	denom := float64(len(order) + 1)
	for i, tc := range order {
		freq[tc.term] = float64(i+1) / denom
	}
	return &RankStats{freq: freq}
}

// FrequencyOf implements wordcloud.CorpusStats. Unknown terms report 0.
func (r *RankStats) FrequencyOf(term string) float64 {
	return r.freq[term]
}
