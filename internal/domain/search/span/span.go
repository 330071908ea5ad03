// Package span defines highlight ranges within a matched field.
package span

import "sort"

// Span is a half-open character range [start, end) within one field's text.
type Span struct {
	start int
	end   int
}

// New creates a span. Callers are expected to pass start <= end.
func New(start, end int) Span {
	return Span{start: start, end: end}
}

// Start returns the inclusive start offset.
func (s Span) Start() int { return s.start }

// End returns the exclusive end offset.
func (s Span) End() int { return s.end }

// Len returns the number of characters covered.
func (s Span) Len() int { return s.end - s.start }

// Covers reports whether [start, end) lies entirely within s.
func (s Span) Covers(start, end int) bool {
	return s.start <= start && end <= s.end
}

// Merge sorts spans by start offset and coalesces overlapping or adjacent
// ranges: [2,5) and [4,8) become [2,8). The input is not modified.
func Merge(spans []Span) []Span {
	if len(spans) <= 1 {
		return spans
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].end < sorted[j].end
	})

	merged := sorted[:1]
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
