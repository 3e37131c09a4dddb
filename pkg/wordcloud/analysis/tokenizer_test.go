package analysis

import (
	"slices"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		input         string
		minLen        int
		maxLen        int
		stopWords     []string
		wantTokens    []string
		wantWordCount int
		wantSentences int
	}{
		{
			name:   "empty string",
			input:  "",
			minLen: 3,
		},
		{
			name:   "whitespace only",
			input:  "   \n\t  ",
			minLen: 3,
		},
		{
			name:          "basic sentence with stop words",
			input:         "The quick brown fox jumps over the lazy dog. The dog barks.",
			minLen:        3,
			stopWords:     []string{"the", "over"},
			wantTokens:    []string{"quick", "brown", "fox", "jumps", "lazy", "dog", "dog", "barks"},
			wantWordCount: 12,
			wantSentences: 2,
		},
		{
			name:          "digits-only tokens dropped",
			input:         "election results 2024",
			minLen:        3,
			wantTokens:    []string{"election", "results"},
			wantWordCount: 3,
			wantSentences: 1,
		},
		{
			name:          "mixed alphanumeric kept",
			input:         "covid19 vaccines arrived",
			minLen:        3,
			wantTokens:    []string{"covid19", "vaccines", "arrived"},
			wantWordCount: 3,
			wantSentences: 1,
		},
		{
			name:          "short tokens dropped",
			input:         "we go to germany",
			minLen:        3,
			wantTokens:    []string{"germany"},
			wantWordCount: 4,
			wantSentences: 1,
		},
		{
			name:          "long tokens dropped",
			input:         "short pneumonoultramicroscopicsilicovolcanoconiosis word",
			minLen:        3,
			maxLen:        32,
			wantTokens:    []string{"short", "word"},
			wantWordCount: 3,
			wantSentences: 1,
		},
		{
			name:          "punctuation stripped from tokens",
			input:         "well-known facts, so-called experts!",
			minLen:        3,
			wantTokens:    []string{"wellknown", "facts", "socalled", "experts"},
			wantWordCount: 4,
			wantSentences: 1,
		},
		{
			name:          "urls scrubbed",
			input:         "details at https://example.com/long/path today",
			minLen:        3,
			wantTokens:    []string{"details", "today"},
			wantWordCount: 3,
			wantSentences: 1,
		},
		{
			name:          "emails scrubbed",
			input:         "contact reporter@example.com directly",
			minLen:        3,
			wantTokens:    []string{"contact", "directly"},
			wantWordCount: 2,
			wantSentences: 1,
		},
		{
			name:          "unicode letters survive normalization",
			input:         "café culture thrives",
			minLen:        3,
			wantTokens:    []string{"café", "culture", "thrives"},
			wantWordCount: 3,
			wantSentences: 1,
		},
		{
			name:          "uppercase folded",
			input:         "NASA launched TWICE",
			minLen:        3,
			wantTokens:    []string{"nasa", "launched", "twice"},
			wantWordCount: 3,
			wantSentences: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stop mapset.Set[string]
			if tt.stopWords != nil {
				stop = mapset.NewSet(tt.stopWords...)
			}
			tok := NewTokenizer(tt.minLen, tt.maxLen, stop)

			got, err := tok.Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if !slices.Equal(got.Tokens, tt.wantTokens) {
				t.Errorf("Tokenize() tokens = %v, want %v", got.Tokens, tt.wantTokens)
			}
			if got.WordCount != tt.wantWordCount {
				t.Errorf("Tokenize() word count = %d, want %d", got.WordCount, tt.wantWordCount)
			}
			if len(got.Sentences) != tt.wantSentences {
				t.Errorf("Tokenize() sentences = %d, want %d", len(got.Sentences), tt.wantSentences)
			}
		})
	}
}

func TestTokenizeDefaultStopWords(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(3, 0, DefaultStopWords())
	got, err := tok.Tokenize("The government said the new policy would help people.")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	want := []string{"government", "new", "policy", "help"}
	if !slices.Equal(got.Tokens, want) {
		t.Errorf("Tokenize() tokens = %v, want %v", got.Tokens, want)
	}
}

func TestTokenizeNilStopWords(t *testing.T) {
	t.Parallel()

	tok := NewTokenizer(1, 0, nil)
	got, err := tok.Tokenize("the and only")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(got.Tokens) != 3 {
		t.Errorf("Tokenize() with nil stop words dropped tokens: %v", got.Tokens)
	}
}

func TestTokenizeMalformedUTF8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"invalid byte sequence", "report\xFF\xFEing"},
		{"truncated multibyte", "report\xC3"},
		{"null bytes", "report\x00ing"},
	}

	tok := NewTokenizer(3, 0, DefaultStopWords())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("panicked on %q: %v", tt.name, r)
				}
			}()
			_, _ = tok.Tokenize(tt.input)
		})
	}
}

func TestNormalizeToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"Hello", "hello"},
		{"it's", "its"},
		{"U.S.A.", "usa"},
		{"...", ""},
		{"covid-19", "covid19"},
		{"CAFÉ", "café"},
	}

	for _, tt := range tests {
		if got := normalizeToken(tt.raw); got != tt.want {
			t.Errorf("normalizeToken(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
