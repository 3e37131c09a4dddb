package scraper

import (
	"bytes"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
)

// removeSelectors strips page chrome before text extraction.
const removeSelectors = "script, style, nav, header, footer, aside, iframe, noscript, form"

// articleSelectors are tried in order; the first match becomes the
// content container.
var articleSelectors = []string{
	"article",
	"[role=article]",
	"div.article-body",
	"div.article-content",
	"div.story-body",
	"div.post-content",
	"div.entry-content",
	"main",
	"[itemprop=articleBody]",
	"div#content",
}

// boilerplatePhrases flag short paragraphs as navigation or legal
// chrome rather than article text.
var boilerplatePhrases = []string{
	"cookie",
	"subscribe",
	"newsletter",
	"sign up",
	"sign in",
	"log in",
	"advertisement",
	"all rights reserved",
	"terms of service",
	"privacy policy",
	"read more",
	"share this",
	"follow us",
	"related articles",
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	mdImage       = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	mdLink        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdSyntax      = regexp.MustCompile("[#*_`>|]+")
)

// extractHTML pulls the title and readable text out of an HTML page.
// JSON-LD article metadata wins when present; otherwise text comes
// from the first matching content container with boilerplate
// paragraphs dropped. Pages that still yield too little text fall
// back to a whole-page markdown conversion.
func (s *Scraper) extractHTML(content []byte) (title, text string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", "", errors.Wrap(err, "parse HTML")
	}

	ld := extractJSONLD(doc)

	title = firstNonEmpty(
		ld.Headline,
		strings.TrimSpace(doc.Find("h1").First().Text()),
		metaContent(doc, `meta[property="og:title"]`),
		metaContent(doc, `meta[name="title"]`),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)

	if ld.Body != "" {
		return title, collapseWhitespace(ld.Body), nil
	}

	doc.Find(removeSelectors).Remove()

	container := doc.Find("body")
	for _, sel := range articleSelectors {
		if match := doc.Find(sel); match.Length() > 0 {
			container = match.First()
			break
		}
	}

	var parts []string
	container.Find("p, h1, h2, h3, h4, h5, h6, li, blockquote").Each(func(_ int, sel *goquery.Selection) {
		para := collapseWhitespace(sel.Text())
		if para == "" || isBoilerplate(para) {
			return
		}
		parts = append(parts, para)
	})

	text = strings.Join(parts, " ")
	if len(text) < s.minContent {
		if md := fallbackMarkdown(content); len(md) > len(text) {
			text = md
		}
	}
	return title, text, nil
}

// isBoilerplate reports whether a short paragraph looks like page
// chrome. Long paragraphs are always kept since the trigger phrases
// occur in real article text too.
func isBoilerplate(para string) bool {
	if len(para) > 200 {
		return false
	}
	lower := strings.ToLower(para)
	for _, phrase := range boilerplatePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// fallbackMarkdown converts the whole page to markdown and strips the
// markup, for pages whose structure defeats selector extraction.
func fallbackMarkdown(content []byte) string {
	md, err := htmltomarkdown.ConvertString(string(content))
	if err != nil {
		return ""
	}
	md = mdImage.ReplaceAllString(md, " ")
	md = mdLink.ReplaceAllString(md, "$1")
	md = mdSyntax.ReplaceAllString(md, " ")
	return collapseWhitespace(md)
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
