package analysis

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// defaultStopWords is the standard English list extended with the
// reporting verbs and filler nouns that dominate news prose. Entries
// are stored the way tokens look after normalization, so contracted
// forms appear without apostrophes.
var defaultStopWords = mapset.NewSet[string](
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
	"you", "your", "yours", "yourself", "yourselves", "youre", "youve", "youll", "youd",
	"he", "him", "his", "himself", "she", "her", "hers", "herself", "shes",
	"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
	"what", "which", "who", "whom", "this", "that", "thatll", "these", "those",
	"am", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "having", "do", "does", "did", "doing",
	"a", "an", "the", "and", "but", "if", "or", "because", "as", "until", "while",
	"of", "at", "by", "for", "with", "about", "against", "between", "into",
	"through", "during", "before", "after", "above", "below",
	"to", "from", "up", "down", "in", "out", "on", "off", "over", "under",
	"again", "further", "then", "once", "here", "there",
	"when", "where", "why", "how",
	"all", "any", "both", "each", "few", "more", "most", "other", "some", "such",
	"no", "nor", "not", "only", "own", "same", "so", "than", "too", "very",
	"can", "will", "just", "dont", "should", "shouldve", "now",
	"aint", "arent", "couldnt", "didnt", "doesnt", "hadnt", "hasnt", "havent",
	"isnt", "mightnt", "mustnt", "neednt", "shant", "shouldnt", "wasnt",
	"werent", "wont", "wouldnt", "nt",

	// News-prose extension: attribution verbs, hedges, and counting
	// words that crowd out real topics in article text.
	"said", "say", "says", "saying", "according", "told", "tell", "asked",
	"would", "could", "also", "may", "might", "must", "shall",
	"one", "two", "three", "first", "second", "like", "well",
	"get", "got", "make", "made", "take", "taken", "go", "going",
	"come", "coming", "see", "seen", "know", "known", "think", "thought",
	"find", "found", "give", "given", "use", "used", "want", "wanted",
	"look", "looked", "year", "years", "time", "times", "people", "person",
	"thing", "things", "way", "ways", "day", "days",
)

// DefaultStopWords returns a copy of the built-in English stop-word
// set. Callers may add to or remove from the copy and pass it back via
// WithStopWords without affecting other analyses.
func DefaultStopWords() mapset.Set[string] {
	return defaultStopWords.Clone()
}
