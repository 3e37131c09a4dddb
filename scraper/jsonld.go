package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// jsonLD holds the article fields mined from schema.org metadata.
type jsonLD struct {
	Headline string
	Body     string
}

// articleTypes are the schema.org types treated as articles.
var articleTypes = map[string]bool{
	"Article":              true,
	"NewsArticle":          true,
	"BlogPosting":          true,
	"ReportageNewsArticle": true,
}

// extractJSONLD scans ld+json script blocks for an article node and
// returns its headline and body. Nodes may sit at the top level, in a
// top-level array, or under @graph.
func extractJSONLD(doc *goquery.Document) jsonLD {
	var ld jsonLD
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := sel.Text()
		if !gjson.Valid(raw) {
			return true
		}
		for _, node := range flattenLDNodes(gjson.Parse(raw)) {
			if !isArticleType(node.Get("@type")) {
				continue
			}
			headline := strings.TrimSpace(node.Get("headline").String())
			body := strings.TrimSpace(node.Get("articleBody").String())
			if headline == "" && body == "" {
				continue
			}
			ld.Headline, ld.Body = headline, body
			return false
		}
		return true
	})
	return ld
}

// flattenLDNodes expands top-level arrays and @graph wrappers into
// candidate nodes.
func flattenLDNodes(root gjson.Result) []gjson.Result {
	var nodes []gjson.Result
	if root.IsArray() {
		nodes = append(nodes, root.Array()...)
	} else {
		nodes = append(nodes, root)
	}
	if graph := root.Get("@graph"); graph.IsArray() {
		nodes = append(nodes, graph.Array()...)
	}
	return nodes
}

// isArticleType handles both scalar and array @type values.
func isArticleType(t gjson.Result) bool {
	if t.IsArray() {
		for _, v := range t.Array() {
			if articleTypes[v.String()] {
				return true
			}
		}
		return false
	}
	return articleTypes[t.String()]
}
