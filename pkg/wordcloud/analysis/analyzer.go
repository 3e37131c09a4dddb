// Package analysis turns raw text into ranked, weighted keywords.
//
// The pipeline runs in three stages: tokenization (sentence and word
// segmentation, normalization, stop-word and length filtering),
// TF-IDF weighting against pluggable corpus statistics, and selection
// (stem-based deduplication plus a top-K cut). Analyze and
// AnalyzeDocument are the entry points; the stage types are exported
// for callers that need only one stage.
package analysis

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"

	"github.com/wordsphere/wordsphere/pkg/wordcloud"
)

// Default length bounds for word tokens.
const (
	DefaultMinWordLength = 3
	DefaultMaxWordLength = 32
)

type config struct {
	maxKeywords    int
	minWordLen     int
	maxWordLen     int
	stopWords      mapset.Set[string]
	stemmer        wordcloud.Stemmer
	corpus         wordcloud.CorpusStats
	corpusSet      bool
	sentenceCorpus bool
	bigrams        bool
}

// Option adjusts analysis behavior.
type Option func(*config)

// WithMaxKeywords caps the ranked set at n entries. n must be positive.
func WithMaxKeywords(n int) Option {
	return func(c *config) { c.maxKeywords = n }
}

// WithMinWordLength drops tokens shorter than n runes.
func WithMinWordLength(n int) Option {
	return func(c *config) { c.minWordLen = n }
}

// WithMaxWordLength drops tokens longer than n runes. Zero disables
// the upper bound.
func WithMaxWordLength(n int) Option {
	return func(c *config) { c.maxWordLen = n }
}

// WithStopWords replaces the built-in stop-word set. A nil set keeps
// every token.
func WithStopWords(set mapset.Set[string]) Option {
	return func(c *config) { c.stopWords = set }
}

// WithStemmer replaces the Porter stemmer used to merge inflected
// forms. NoopStemmer disables merging entirely.
func WithStemmer(s wordcloud.Stemmer) Option {
	return func(c *config) { c.stemmer = s }
}

// WithCorpus supplies the corpus statistics consulted for inverse
// document frequency. Passing nil switches to in-document rank
// statistics, which need no external data.
func WithCorpus(stats wordcloud.CorpusStats) Option {
	return func(c *config) {
		c.corpus = stats
		c.corpusSet = true
	}
}

// WithSentenceCorpus derives document frequencies from the text's own
// sentences instead of an external corpus. Texts with fewer than two
// sentences fall back to the configured or default corpus.
func WithSentenceCorpus() Option {
	return func(c *config) { c.sentenceCorpus = true }
}

// WithBigrams adds adjacent token pairs to the candidate terms.
func WithBigrams() Option {
	return func(c *config) { c.bigrams = true }
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		maxKeywords: DefaultMaxKeywords,
		minWordLen:  DefaultMinWordLength,
		maxWordLen:  DefaultMaxWordLength,
		stopWords:   defaultStopWords,
		stemmer:     PorterStemmer{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.maxKeywords <= 0 {
		return nil, errors.Wrapf(wordcloud.ErrInvalidConfig, "max keywords must be positive, got %d", cfg.maxKeywords)
	}
	if cfg.minWordLen < 1 {
		return nil, errors.Wrapf(wordcloud.ErrInvalidConfig, "min word length must be positive, got %d", cfg.minWordLen)
	}
	if cfg.maxWordLen > 0 && cfg.maxWordLen < cfg.minWordLen {
		return nil, errors.Wrapf(wordcloud.ErrInvalidConfig, "max word length %d below min word length %d", cfg.maxWordLen, cfg.minWordLen)
	}
	return cfg, nil
}

// Analyze extracts ranked keywords from text. Empty or
// whitespace-only text yields an empty, non-nil set.
func Analyze(text string, opts ...Option) (wordcloud.RankedKeywordSet, error) {
	doc, err := AnalyzeDocument(text, opts...)
	if err != nil {
		return nil, err
	}
	return doc.Keywords, nil
}

// AnalyzeDocument extracts ranked keywords along with document
// statistics. Empty or whitespace-only text yields a document with an
// empty keyword set and zero counts.
func AnalyzeDocument(text string, opts ...Option) (*wordcloud.Document, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	tok := NewTokenizer(cfg.minWordLen, cfg.maxWordLen, cfg.stopWords)
	stream, err := tok.Tokenize(text)
	if err != nil {
		return nil, err
	}

	doc := &wordcloud.Document{
		Keywords:  wordcloud.RankedKeywordSet{},
		WordCount: stream.WordCount,
		Sentences: len(stream.Sentences),
	}
	if len(stream.Tokens) == 0 {
		return doc, nil
	}

	terms := stream.Tokens
	if cfg.bigrams {
		terms = withBigrams(terms)
	}

	corpus, err := cfg.resolveCorpus(tok, stream, terms)
	if err != nil {
		return nil, err
	}
	scored := NewWeigher(corpus).Weigh(terms)

	sel, err := NewSelector(cfg.maxKeywords, cfg.stemmer)
	if err != nil {
		return nil, err
	}
	doc.Keywords = sel.Select(scored)
	return doc, nil
}

// resolveCorpus picks the statistics source for IDF. Sentence-derived
// frequencies need at least two sentences to carry any signal.
func (c *config) resolveCorpus(tok *Tokenizer, stream *TokenStream, terms []string) (wordcloud.CorpusStats, error) {
	if c.sentenceCorpus && len(stream.Sentences) >= 2 {
		perSentence := make([][]string, 0, len(stream.Sentences))
		for _, sent := range stream.Sentences {
			ss, err := tok.Tokenize(sent)
			if err != nil {
				return nil, errors.Wrap(err, "tokenize sentence")
			}
			sentTerms := ss.Tokens
			if c.bigrams {
				sentTerms = withBigrams(sentTerms)
			}
			perSentence = append(perSentence, sentTerms)
		}
		return NewSentenceStats(perSentence), nil
	}
	if c.corpusSet {
		if c.corpus == nil {
			return NewRankStats(terms), nil
		}
		return c.corpus, nil
	}
	return DefaultCorpus(), nil
}
