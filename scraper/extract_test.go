package scraper

import (
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScraper() *Scraper {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(nil, logger, Config{})
}

const articlePage = `<!DOCTYPE html>
<html>
<head>
  <title>Fallback Title | Site</title>
  <meta property="og:title" content="OG Title">
</head>
<body>
  <nav><ul><li>Home</li><li>Politics</li></ul></nav>
  <header><h1>Rail Expansion Approved</h1></header>
  <article>
    <p>The council approved the rail expansion on Tuesday after months of public debate.</p>
    <p>Construction begins next spring along the riverfront corridor near the university.</p>
    <p>Subscribe to our newsletter</p>
    <p>Officials expect shorter commutes and less congestion across the downtown core.</p>
  </article>
  <footer><p>All rights reserved.</p></footer>
  <script>var tracker = 1;</script>
</body>
</html>`

func TestExtractHTMLArticleContainer(t *testing.T) {
	title, text, err := testScraper().extractHTML([]byte(articlePage))
	require.NoError(t, err)

	assert.Equal(t, "Rail Expansion Approved", title)
	assert.Contains(t, text, "council approved the rail expansion")
	assert.Contains(t, text, "less congestion")

	// Chrome and boilerplate must not leak into the text.
	assert.NotContains(t, text, "Subscribe")
	assert.NotContains(t, text, "Home")
	assert.NotContains(t, text, "All rights reserved")
	assert.NotContains(t, text, "var tracker")
}

const jsonLDPage = `<!DOCTYPE html>
<html>
<head>
<title>Ignored Title</title>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"NewsArticle","headline":"Storm Damages Coastal Homes","articleBody":"A powerful storm damaged dozens of coastal homes overnight. Emergency crews responded before dawn and evacuated residents to nearby shelters."}
</script>
</head>
<body><h1>DOM Headline</h1><p>DOM paragraph that should lose to the structured body.</p></body>
</html>`

func TestExtractHTMLPrefersJSONLD(t *testing.T) {
	title, text, err := testScraper().extractHTML([]byte(jsonLDPage))
	require.NoError(t, err)

	assert.Equal(t, "Storm Damages Coastal Homes", title)
	assert.Contains(t, text, "powerful storm damaged")
	assert.NotContains(t, text, "DOM paragraph")
}

const graphLDPage = `<!DOCTYPE html>
<html>
<head>
<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"WebPage","name":"wrapper"},
  {"@type":["ReportageNewsArticle","Article"],"headline":"Graph Wrapped Headline","articleBody":"Article body carried inside a graph node, long enough to stand on its own as extracted text."}
]}
</script>
</head>
<body><p>Unused fallback paragraph.</p></body>
</html>`

func TestExtractHTMLJSONLDGraph(t *testing.T) {
	title, text, err := testScraper().extractHTML([]byte(graphLDPage))
	require.NoError(t, err)

	assert.Equal(t, "Graph Wrapped Headline", title)
	assert.Contains(t, text, "inside a graph node")
}

func TestExtractHTMLIgnoresNonArticleJSONLD(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">{"@type":"Organization","name":"Acme"}</script>
<script type="application/ld+json">not json at all</script>
</head>
<body><h1>Real Headline</h1><article><p>Paragraph text that survives because no article node matched in the metadata blocks.</p></article></body></html>`

	title, text, err := testScraper().extractHTML([]byte(page))
	require.NoError(t, err)

	assert.Equal(t, "Real Headline", title)
	assert.Contains(t, text, "Paragraph text that survives")
}

func TestExtractHTMLTitleFallbacks(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{
			name: "og:title when no h1",
			page: `<html><head><meta property="og:title" content="OG Wins"><title>Tag Title</title></head><body><p>x</p></body></html>`,
			want: "OG Wins",
		},
		{
			name: "meta name title next",
			page: `<html><head><meta name="title" content="Meta Wins"><title>Tag Title</title></head><body><p>x</p></body></html>`,
			want: "Meta Wins",
		},
		{
			name: "title tag last",
			page: `<html><head><title>Tag Wins</title></head><body><p>x</p></body></html>`,
			want: "Tag Wins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, _, err := testScraper().extractHTML([]byte(tt.page))
			require.NoError(t, err)
			assert.Equal(t, tt.want, title)
		})
	}
}

func TestExtractHTMLMarkdownFallback(t *testing.T) {
	page := `<html><head><title>Div Soup</title></head><body>
<div>Plain block text sitting directly in divs without any paragraph markup, long enough that the fallback conversion has something substantial to return.</div>
</body></html>`

	title, text, err := testScraper().extractHTML([]byte(page))
	require.NoError(t, err)

	assert.Equal(t, "Div Soup", title)
	assert.Contains(t, text, "Plain block text")
}

func TestIsBoilerplate(t *testing.T) {
	assert.True(t, isBoilerplate("Subscribe to our newsletter"))
	assert.True(t, isBoilerplate("advertisement"))
	assert.True(t, isBoilerplate("Privacy Policy | Terms of Service"))

	// Long paragraphs are kept even when a phrase matches.
	long := "The cookie factory expanded production this quarter. " + strings.Repeat("More detail about the expansion follows here. ", 5)
	assert.False(t, isBoilerplate(long))
	assert.False(t, isBoilerplate("Regular article sentence about policy."))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a\n\n b\tc "))
	assert.Equal(t, "", collapseWhitespace(" \n\t "))
}

func TestPDFTitle(t *testing.T) {
	assert.Equal(t, "A Longer Heading Line", pdfTitle("Short\nA Longer Heading Line\nBody text follows."))
	assert.Equal(t, "", pdfTitle(""))
	assert.Equal(t, "", pdfTitle("tiny\nok"))

	long := strings.Repeat("x", 300)
	got := pdfTitle(long)
	assert.Len(t, []rune(got), pdfTitleMaxRunes)
}
