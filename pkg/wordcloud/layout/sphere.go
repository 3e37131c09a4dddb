// Package layout places ranked keywords on a sphere.
//
// Points follow a golden-spiral distribution: rank index i of n maps
// to inclination phi = arccos(-1 + 2i/n) and azimuth
// theta = sqrt(n*pi) * phi, which spreads points evenly without
// clustering at the poles. Weight drives the rest: heavier terms sit
// closer to the center and render larger.
package layout

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/wordsphere/wordsphere/pkg/wordcloud"
)

// Default placement constants. Radius shrinks as weight grows, size
// grows with weight.
const (
	DefaultBaseRadius   = 5.0
	DefaultRadiusSpread = 3.0
	DefaultBaseSize     = 0.2
	DefaultSizeSpread   = 0.8
)

type config struct {
	baseRadius   float64
	radiusSpread float64
	baseSize     float64
	sizeSpread   float64
}

// Option adjusts placement constants.
type Option func(*config)

// WithBaseRadius sets the radius for a full-weight term.
func WithBaseRadius(r float64) Option {
	return func(c *config) { c.baseRadius = r }
}

// WithRadiusSpread sets how far a zero-weight term sits beyond the
// base radius.
func WithRadiusSpread(r float64) Option {
	return func(c *config) { c.radiusSpread = r }
}

// WithBaseSize sets the render size for a zero-weight term.
func WithBaseSize(s float64) Option {
	return func(c *config) { c.baseSize = s }
}

// WithSizeSpread sets how much size grows between zero and full
// weight.
func WithSizeSpread(s float64) Option {
	return func(c *config) { c.sizeSpread = s }
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		baseRadius:   DefaultBaseRadius,
		radiusSpread: DefaultRadiusSpread,
		baseSize:     DefaultBaseSize,
		sizeSpread:   DefaultSizeSpread,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.baseRadius < 0 {
		return nil, errors.Wrapf(wordcloud.ErrInvalidConfig, "base radius must be non-negative, got %g", cfg.baseRadius)
	}
	if cfg.radiusSpread < 0 {
		return nil, errors.Wrapf(wordcloud.ErrInvalidConfig, "radius spread must be non-negative, got %g", cfg.radiusSpread)
	}
	if cfg.baseSize < 0 {
		return nil, errors.Wrapf(wordcloud.ErrInvalidConfig, "base size must be non-negative, got %g", cfg.baseSize)
	}
	if cfg.sizeSpread < 0 {
		return nil, errors.Wrapf(wordcloud.ErrInvalidConfig, "size spread must be non-negative, got %g", cfg.sizeSpread)
	}
	return cfg, nil
}

// Layout assigns every keyword a position on the spiral and a render
// size. Input order is rank order and is preserved in the output. The
// mapping is pure: the same keywords and options always produce the
// same points. An empty set yields an empty, non-nil slice.
func Layout(keywords wordcloud.RankedKeywordSet, opts ...Option) ([]wordcloud.LayoutPoint, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	points := make([]wordcloud.LayoutPoint, 0, len(keywords))
	if len(keywords) == 0 {
		return points, nil
	}

	n := float64(len(keywords))
	for i, kw := range keywords {
		phi := math.Acos(-1 + 2*float64(i)/n)
		theta := math.Sqrt(n*math.Pi) * phi
		sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
		unit := r3.Vec{
			X: math.Cos(theta) * sinPhi,
			Y: math.Sin(theta) * sinPhi,
			Z: cosPhi,
		}

		radius := cfg.baseRadius + (1-kw.Weight)*cfg.radiusSpread
		points = append(points, wordcloud.LayoutPoint{
			Term:      kw.Term,
			Position:  r3.Scale(radius, unit),
			Size:      cfg.baseSize + kw.Weight*cfg.sizeSpread,
			Weight:    kw.Weight,
			Frequency: kw.Frequency,
		})
	}
	return points, nil
}
