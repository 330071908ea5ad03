// Package result defines the annotated output of a search call.
package result

import (
	"github.com/shelfdex/shelfdex/internal/domain/record"
	"github.com/shelfdex/shelfdex/internal/domain/search/span"
)

// Highlight carries the merged match spans for one field of one record.
// For the tags field, Value holds the individual tag that matched and the
// spans index into that tag's text.
type Highlight struct {
	field string
	value string
	spans []span.Span
}

// NewHighlight creates a field highlight.
func NewHighlight(field, value string, spans []span.Span) Highlight {
	return Highlight{field: field, value: value, spans: spans}
}

// Field returns the matched field name ("title", "description", "tags").
func (h *Highlight) Field() string { return h.field }

// Value returns the text the spans index into.
func (h *Highlight) Value() string { return h.value }

// Spans returns the merged highlight ranges.
func (h *Highlight) Spans() []span.Span { return h.spans }

// Result is a single search hit: a record, an optional relevance score
// (absent when no query text was given), and its field highlights.
type Result struct {
	rec        record.Record
	scored     bool
	score      float64
	highlights []Highlight
}

// NewScored creates a ranked result. Lower score is better, 0 is ideal.
func NewScored(rec record.Record, score float64, highlights []Highlight) Result {
	return Result{rec: rec, scored: true, score: score, highlights: highlights}
}

// Unscored wraps a record with no score and no spans (empty-query passthrough).
func Unscored(rec record.Record) Result {
	return Result{rec: rec}
}

// Record returns the underlying catalog entry.
func (r *Result) Record() record.Record { return r.rec }

// Scored reports whether a relevance score is present.
func (r *Result) Scored() bool { return r.scored }

// Score returns the aggregate relevance cost (valid only when Scored).
func (r *Result) Score() float64 { return r.score }

// Highlights returns the per-field match annotations.
func (r *Result) Highlights() []Highlight { return r.highlights }

// Page is one truncated slice of the filtered and sorted result list.
type Page struct {
	total   int
	results []Result
}

// NewPage creates a result page. total is the pre-truncation count of
// filtered and sorted results, which drives "N results" reporting.
func NewPage(total int, results []Result) Page {
	return Page{total: total, results: results}
}

// Total returns the pre-truncation result count.
func (p *Page) Total() int { return p.total }

// Results returns the truncated, ordered results.
func (p *Page) Results() []Result { return p.results }
