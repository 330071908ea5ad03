package shelfdex

import (
	"time"

	domrec "github.com/shelfdex/shelfdex/internal/domain/record"
	"github.com/shelfdex/shelfdex/internal/domain/search/result"
)

// Sort mode values for SearchOptions.Sort.
const (
	SortRelevance = "relevance"
	SortNewest    = "newest"
	SortOldest    = "oldest"
)

// NewRecord is the payload for AddRecord.
type NewRecord struct {
	Title       string
	Description string
	Tags        []string
	Date        time.Time
}

// Record is one catalog entry.
type Record struct {
	ID          int
	Title       string
	Description string
	Tags        []string
	Date        time.Time
}

// Span is a half-open [Start, End) character range.
type Span struct {
	Start int
	End   int
}

// Highlight carries the merged match spans for one field of a result.
type Highlight struct {
	Field string
	Value string
	Spans []Span
}

// Result is a single search hit. Score is nil for unranked passthrough
// results (empty query); lower scores are better.
type Result struct {
	Record     Record
	Score      *float64
	Highlights []Highlight
}

// Page is one truncated slice of the filtered and sorted result list.
// Total is the pre-truncation count.
type Page struct {
	Total   int
	Results []Result
}

// SearchOptions tune a single Search call. Zero values mean: sort by
// relevance, default page size.
type SearchOptions struct {
	Tag      string
	Sort     string
	PageSize int
}

func recordFromDomain(rec domrec.Record) Record {
	return Record{
		ID:          rec.ID(),
		Title:       rec.Title(),
		Description: rec.Description(),
		Tags:        rec.Tags(),
		Date:        rec.Date(),
	}
}

func resultFromDomain(res result.Result) Result {
	out := Result{Record: recordFromDomain(res.Record())}
	if res.Scored() {
		score := res.Score()
		out.Score = &score
	}
	for _, h := range res.Highlights() {
		spans := make([]Span, 0, len(h.Spans()))
		for _, s := range h.Spans() {
			spans = append(spans, Span{Start: s.Start(), End: s.End()})
		}
		out.Highlights = append(out.Highlights, Highlight{
			Field: h.Field(),
			Value: h.Value(),
			Spans: spans,
		})
	}
	return out
}

func pageFromDomain(page result.Page) Page {
	out := Page{Total: page.Total(), Results: make([]Result, 0, len(page.Results()))}
	for _, res := range page.Results() {
		out.Results = append(out.Results, resultFromDomain(res))
	}
	return out
}
