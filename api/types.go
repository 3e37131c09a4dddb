package api

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/wordsphere/wordsphere/pkg/wordcloud"
)

// WordPoint is one placed keyword in an API response.
type WordPoint struct {
	Word      string  `json:"word"`
	Weight    float64 `json:"weight"`
	Frequency int     `json:"frequency"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Size      float64 `json:"size"`
}

// NewWordPoint converts a layout point to its response shape. The
// weight is rounded to three decimals for presentation; positions and
// sizes keep full precision.
func NewWordPoint(p wordcloud.LayoutPoint) WordPoint {
	return WordPoint{
		Word:      p.Term,
		Weight:    round3(p.Weight),
		Frequency: p.Frequency,
		X:         p.Position.X,
		Y:         p.Position.Y,
		Z:         p.Position.Z,
		Size:      p.Size,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalyzeResponse is the body of a successful POST /analyze.
type AnalyzeResponse struct {
	Words        []WordPoint `json:"words"`
	ArticleTitle string      `json:"article_title"`
	WordCount    int         `json:"word_count"`
	URL          string      `json:"url"`
}

// WordInput is one weighted term in a POST /layout request.
type WordInput struct {
	Word      string  `json:"word"`
	Weight    float64 `json:"weight"`
	Frequency int     `json:"frequency"`
}

// LayoutOptions overrides the configured placement constants. Nil
// fields keep the server defaults.
type LayoutOptions struct {
	BaseRadius   *float64 `json:"r_base"`
	RadiusSpread *float64 `json:"r_spread"`
	BaseSize     *float64 `json:"s_base"`
	SizeSpread   *float64 `json:"s_spread"`
}

// LayoutRequest is the body of POST /layout.
type LayoutRequest struct {
	Words   []WordInput    `json:"words"`
	Options *LayoutOptions `json:"options,omitempty"`
}

// LayoutResponse is the body of a successful POST /layout.
type LayoutResponse struct {
	Words []WordPoint `json:"words"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
