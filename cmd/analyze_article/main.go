package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/wordsphere/wordsphere/api"
	"github.com/wordsphere/wordsphere/pkg/wordcloud/analysis"
	"github.com/wordsphere/wordsphere/pkg/wordcloud/layout"
	"github.com/wordsphere/wordsphere/scraper"
	"github.com/wordsphere/wordsphere/services"
)

var (
	articleURL = flag.String("url", "", "URL of the article to analyze")
	inputFile  = flag.String("file", "", "Local text file to analyze instead of a URL")
	topN       = flag.Int("top", analysis.DefaultMaxKeywords, "Maximum number of keywords to keep")
	bigrams    = flag.Bool("bigrams", false, "Include adjacent word pairs as candidate terms")
	pretty     = flag.Bool("pretty", false, "Indent the JSON output")
	outputFile = flag.String("output", "", "Output file path, defaults to stdout")
	logLevel   = flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	// Configure logging
	logger := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatalf("Invalid log level: %v", err)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if (*articleURL == "") == (*inputFile == "") {
		logger.Fatal("Exactly one of -url or -file must be given")
	}

	var title, text, sourceURL string
	if *articleURL != "" {
		sc := scraper.New(services.DefaultHTTPClient(), logger, scraper.Config{})
		art, err := sc.Fetch(context.Background(), *articleURL)
		if err != nil {
			logger.Fatalf("Failed to fetch article: %v", err)
		}
		title, text, sourceURL = art.Title, art.Text, art.URL
	} else {
		content, err := os.ReadFile(*inputFile)
		if err != nil {
			logger.Fatalf("Failed to read file %s: %v", *inputFile, err)
		}
		title = filepath.Base(*inputFile)
		text = string(content)
	}

	opts := []analysis.Option{analysis.WithMaxKeywords(*topN)}
	if *bigrams {
		opts = append(opts, analysis.WithBigrams())
	}

	doc, err := analysis.AnalyzeDocument(text, opts...)
	if err != nil {
		logger.Fatalf("Analysis failed: %v", err)
	}
	if len(doc.Keywords) == 0 {
		logger.Fatal("No keywords extracted")
	}

	points, err := layout.Layout(doc.Keywords)
	if err != nil {
		logger.Fatalf("Layout failed: %v", err)
	}

	words := make([]api.WordPoint, 0, len(points))
	for _, p := range points {
		words = append(words, api.NewWordPoint(p))
	}
	resp := api.AnalyzeResponse{
		Words:        words,
		ArticleTitle: title,
		WordCount:    doc.WordCount,
		URL:          sourceURL,
	}

	var out []byte
	if *pretty {
		out, err = json.MarshalIndent(resp, "", "  ")
	} else {
		out, err = json.Marshal(resp)
	}
	if err != nil {
		logger.Fatalf("Failed to encode output: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, out, 0o644); err != nil {
			logger.Fatalf("Failed to write output: %v", err)
		}
		logger.Infof("Analysis saved to %s", *outputFile)
	} else {
		os.Stdout.Write(append(out, '\n'))
	}

	logger.Infof("Extracted %d keywords from %d words", len(doc.Keywords), doc.WordCount)
}
