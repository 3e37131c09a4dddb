package wordcloud

import "errors"

var (
	// ErrEmptyInput marks input that yielded no usable content. The
	// analysis and layout operations return empty results instead of
	// this error; the scraper and the HTTP layer use it to classify
	// the condition for callers.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidConfig marks structurally invalid options, detected
	// before any analysis or layout work starts.
	ErrInvalidConfig = errors.New("invalid configuration")
)
