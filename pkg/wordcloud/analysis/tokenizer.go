package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/jdkato/prose/v2"
	"github.com/mingrammer/commonregex"
	"github.com/pkg/errors"
)

// TokenStream is the output of tokenization: the surviving normalized
// tokens in document order, the number of word tokens seen before
// filtering, and the raw sentence strings.
type TokenStream struct {
	Tokens    []string
	WordCount int
	Sentences []string
}

// Tokenizer segments text into normalized word tokens. Tokens are
// lowercased and stripped of non-alphanumeric runes; digits-only
// tokens, tokens outside the configured length bounds, and stop words
// are filtered out.
type Tokenizer struct {
	minLen    int
	maxLen    int
	stopWords mapset.Set[string]
}

// NewTokenizer builds a tokenizer with the given length bounds and
// stop-word set. A nil set keeps every token.
func NewTokenizer(minLen, maxLen int, stopWords mapset.Set[string]) *Tokenizer {
	if stopWords == nil {
		stopWords = mapset.NewSet[string]()
	}
	return &Tokenizer{minLen: minLen, maxLen: maxLen, stopWords: stopWords}
}

// Tokenize runs sentence and token segmentation over text and applies
// normalization and filtering. Empty or whitespace-only text yields an
// empty stream.
func (t *Tokenizer) Tokenize(text string) (*TokenStream, error) {
	if strings.TrimSpace(text) == "" {
		return &TokenStream{}, nil
	}

	doc, err := prose.NewDocument(scrub(text),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, errors.Wrap(err, "segment text")
	}

	stream := &TokenStream{}
	for _, sent := range doc.Sentences() {
		stream.Sentences = append(stream.Sentences, sent.Text)
	}

	for _, tok := range doc.Tokens() {
		norm := normalizeToken(tok.Text)
		if norm == "" {
			continue
		}
		stream.WordCount++
		if t.reject(norm) {
			continue
		}
		stream.Tokens = append(stream.Tokens, norm)
	}
	return stream, nil
}

func (t *Tokenizer) reject(norm string) bool {
	if digitsOnly(norm) {
		return true
	}
	if n := utf8.RuneCountInString(norm); n < t.minLen || (t.maxLen > 0 && n > t.maxLen) {
		return true
	}
	return t.stopWords.Contains(norm)
}

// scrub removes email addresses and URLs before segmentation; their
// fragments otherwise survive normalization as junk tokens. Emails go
// first because the link pattern also matches the bare domain inside
// an address.
func scrub(text string) string {
	for _, email := range commonregex.Emails(text) {
		text = strings.ReplaceAll(text, email, " ")
	}
	for _, link := range commonregex.Links(text) {
		text = strings.ReplaceAll(text, link, " ")
	}
	return text
}

// normalizeToken lowercases raw and keeps only letters and digits.
// Returns "" for punctuation-only tokens.
func normalizeToken(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
