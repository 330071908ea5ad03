package search

import "github.com/shelfdex/shelfdex/internal/domain/search/span"

// chunkSize is the widest pattern one bitap state word can hold. Longer
// patterns are matched per chunk and their costs averaged.
const chunkSize = 64

// fieldMatch is the matcher's verdict for one field: where the query
// approximately occurred and how well. Cost is normalized to [0,1] where 0 is
// an exact contiguous substring and 1 the worst tolerated approximation.
type fieldMatch struct {
	cost  float64
	spans []span.Span
}

// matcher finds approximate occurrences of a query inside a field's text
// using the Wu-Manber bitap recurrence (shift-and with errors). It tolerates
// insertions, deletions, and substitutions up to floor(threshold * len(query))
// edits; a transposition costs two edits and fits the budget for queries of
// six characters or more at the default threshold.
type matcher struct {
	threshold float64
}

// match reports whether pattern approximately occurs in text. Both inputs
// must already be case-folded and non-empty; rejecting empty queries is the
// caller's responsibility.
func (m *matcher) match(pattern, text string) (fieldMatch, bool) {
	if pattern == "" || text == "" {
		return fieldMatch{}, false
	}

	hits := alphabetHits(pattern, text)

	var (
		rawCost float64
		spans   []span.Span
		chunks  int
	)
	for off := 0; off < len(pattern); off += chunkSize {
		chunk := pattern[off:min(off+chunkSize, len(pattern))]
		best, ok := bitap(chunk, text, m.maxErrors(len(chunk)))
		if !ok {
			return fieldMatch{}, false
		}
		rawCost += float64(best.errors) / float64(len(chunk))
		spans = append(spans, hitSpans(hits, best.start, best.end)...)
		chunks++
	}

	cost := rawCost / float64(chunks) / m.threshold
	if cost > 1 {
		cost = 1
	}
	return fieldMatch{cost: cost, spans: spans}, true
}

// maxErrors is the edit budget for a pattern of length n: proportional to the
// query length, and always below n so a match must consume at least one
// pattern character.
func (m *matcher) maxErrors(n int) int {
	k := int(m.threshold * float64(n))
	if k >= n {
		k = n - 1
	}
	return k
}

// bitapHit is the best occurrence found: edit count and the approximate
// half-open window [start, end) it occupies in the text.
type bitapHit struct {
	errors int
	start  int
	end    int
}

// bitap runs the shift-and recurrence with up to maxErrors edits. State word
// d tracks, per bit i, whether pattern[0..i] matches a suffix of the text
// read so far with at most d edits. The lowest error count wins; ties break
// to the earliest match position. Patterns wider than one state word must be
// chunked by the caller.
func bitap(pattern, text string, maxErrors int) (bitapHit, bool) {
	n := len(pattern)
	if n == 0 || n > chunkSize {
		return bitapHit{}, false
	}

	var masks [256]uint64
	for i := 0; i < n; i++ {
		masks[pattern[i]] |= 1 << uint(i)
	}
	accept := uint64(1) << uint(n-1)

	r := make([]uint64, maxErrors+1)
	for d := range r {
		// Allow a match to begin with d leading pattern deletions.
		r[d] = (1 << uint(d)) - 1
	}

	best := bitapHit{errors: maxErrors + 1}
	for i := 0; i < len(text); i++ {
		cm := masks[text[i]]

		prev := r[0]
		r[0] = ((r[0] << 1) | 1) & cm
		for d := 1; d <= maxErrors; d++ {
			old := r[d]
			// match | insertion | substitution/deletion
			r[d] = (((old << 1) | 1) & cm) |
				prev |
				((prev|r[d-1])<<1) | 1
			prev = old
		}

		for d := 0; d < best.errors && d <= maxErrors; d++ {
			if r[d]&accept != 0 {
				end := i + 1
				start := end - n - d
				if start < 0 {
					start = 0
				}
				best = bitapHit{errors: d, start: start, end: end}
				break
			}
		}
		if best.errors == 0 {
			// An exact occurrence cannot be beaten, and scanning further
			// would only find later ones.
			break
		}
	}

	if best.errors > maxErrors {
		return bitapHit{}, false
	}
	return best, true
}

// alphabetHits marks every text position whose character occurs anywhere in
// the pattern. Consecutive runs of hits inside the match window become the
// highlight spans.
func alphabetHits(pattern, text string) []bool {
	var present [256]bool
	for i := 0; i < len(pattern); i++ {
		present[pattern[i]] = true
	}
	hits := make([]bool, len(text))
	for i := 0; i < len(text); i++ {
		hits[i] = present[text[i]]
	}
	return hits
}

// hitSpans extracts runs of alphabet hits within [start, end). When edits
// wiped out every run, the whole window is highlighted.
func hitSpans(hits []bool, start, end int) []span.Span {
	if end > len(hits) {
		end = len(hits)
	}
	var spans []span.Span
	runStart := -1
	for i := start; i < end; i++ {
		switch {
		case hits[i] && runStart < 0:
			runStart = i
		case !hits[i] && runStart >= 0:
			spans = append(spans, span.New(runStart, i))
			runStart = -1
		}
	}
	if runStart >= 0 {
		spans = append(spans, span.New(runStart, end))
	}
	if len(spans) == 0 {
		spans = append(spans, span.New(start, end))
	}
	return spans
}
