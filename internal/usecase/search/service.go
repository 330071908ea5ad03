// Package search implements the relevance pipeline: approximate matching,
// field scoring, highlight assembly, and the filter/sort/paginate stage.
package search

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shelfdex/shelfdex/internal/domain"
	"github.com/shelfdex/shelfdex/internal/domain/record"
	"github.com/shelfdex/shelfdex/internal/domain/search/mode"
	"github.com/shelfdex/shelfdex/internal/domain/search/query"
	"github.com/shelfdex/shelfdex/internal/domain/search/result"
	"github.com/shelfdex/shelfdex/internal/domain/search/span"
	"github.com/shelfdex/shelfdex/internal/textnorm"
)

// Searchable field names, as exposed in result highlights.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTags        = "tags"
)

// DefaultThreshold is the product's tolerated edit fraction. It lives in
// configuration, not code; see config.SearchConfig.
const DefaultThreshold = 0.36

// weightEpsilon is the tolerance for the weights-sum-to-one invariant.
const weightEpsilon = 1e-9

// Weights are the per-field relevance weights. They must sum to 1.
type Weights struct {
	Title       float64
	Tags        float64
	Description float64
}

// DefaultWeights returns the product weighting: title 0.6, tags 0.25,
// description 0.15.
func DefaultWeights() Weights {
	return Weights{Title: 0.6, Tags: 0.25, Description: 0.15}
}

// Validate rejects weights that are negative or do not sum to 1.
// No silent clamping.
func (w Weights) Validate() error {
	if w.Title < 0 || w.Tags < 0 || w.Description < 0 {
		return fmt.Errorf("%w: field weights must be non-negative", domain.ErrInvalidConfiguration)
	}
	if sum := w.Title + w.Tags + w.Description; math.Abs(sum-1) > weightEpsilon {
		return fmt.Errorf("%w: field weights must sum to 1, got %v", domain.ErrInvalidConfiguration, sum)
	}
	return nil
}

// Config holds the matching parameters.
type Config struct {
	// Threshold is the tolerated edit fraction of the query length, in (0,1].
	Threshold float64
	// Weights are the per-field scoring weights.
	Weights Weights
}

// Service executes search queries against a record collection snapshot.
// It is pure and synchronous: no I/O beyond the repository read, no mutable
// state between calls.
type Service struct {
	repo    RecordLister
	matcher matcher
	weights Weights
}

// New validates the configuration and creates a search service.
func New(repo RecordLister, cfg Config) (*Service, error) {
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("%w: threshold must be in (0,1], got %v", domain.ErrInvalidConfiguration, cfg.Threshold)
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		repo:    repo,
		matcher: matcher{threshold: cfg.Threshold},
		weights: cfg.Weights,
	}, nil
}

// Search runs the full pipeline and returns one ordered result page plus the
// pre-truncation total. An empty collection yields an empty page, total 0.
func (s *Service) Search(ctx context.Context, q query.Query) (result.Page, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return result.Page{}, fmt.Errorf("list records: %w", err)
	}

	text := textnorm.Fold(q.Text())

	var results []result.Result
	if text == "" {
		// Unranked passthrough: every record, no score, no spans.
		results = make([]result.Result, 0, len(records))
		for _, rec := range records {
			results = append(results, result.Unscored(rec))
		}
	} else {
		for _, rec := range records {
			if res, ok := s.scoreRecord(rec, text); ok {
				results = append(results, res)
			}
		}
	}

	if tag := q.ActiveTag(); tag != "" {
		filtered := results[:0]
		for _, res := range results {
			rec := res.Record()
			if rec.HasTag(tag) {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}

	sortResults(results, q.SortMode())

	total := len(results)
	if len(results) > q.PageSize() {
		results = results[:q.PageSize()]
	}

	return result.NewPage(total, results), nil
}

// scoreRecord matches the query against every searchable field and folds the
// per-field costs into one aggregate score. A field that does not match
// contributes its full weight as a penalty; a record where no field matches
// is excluded entirely.
func (s *Service) scoreRecord(rec record.Record, text string) (result.Result, bool) {
	var (
		score      float64
		matched    bool
		highlights []result.Highlight
	)

	contribute := func(field, value string, weight float64) {
		m, ok := s.matcher.match(text, textnorm.Fold(value))
		if !ok {
			score += weight
			return
		}
		matched = true
		score += weight * m.cost
		highlights = append(highlights, result.NewHighlight(field, value, span.Merge(m.spans)))
	}

	contribute(FieldTitle, rec.Title(), s.weights.Title)
	contribute(FieldDescription, rec.Description(), s.weights.Description)

	// Tags match as a set: the best (lowest-cost) tag wins.
	if tag, m, ok := s.bestTag(rec.Tags(), text); ok {
		matched = true
		score += s.weights.Tags * m.cost
		highlights = append(highlights, result.NewHighlight(FieldTags, tag, span.Merge(m.spans)))
	} else {
		score += s.weights.Tags
	}

	if !matched {
		return result.Result{}, false
	}
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return result.NewScored(rec, score, highlights), true
}

func (s *Service) bestTag(tags []string, text string) (string, fieldMatch, bool) {
	var (
		bestTag   string
		bestMatch fieldMatch
		found     bool
	)
	for _, tag := range tags {
		m, ok := s.matcher.match(text, textnorm.Fold(tag))
		if !ok {
			continue
		}
		if !found || m.cost < bestMatch.cost {
			bestTag, bestMatch, found = tag, m, true
		}
	}
	return bestTag, bestMatch, found
}

// sortResults orders results in place. All sorts are stable so that ties
// preserve original collection order; relevance without scores is a no-op.
func sortResults(results []result.Result, m mode.Mode) {
	switch m {
	case mode.Relevance:
		if len(results) > 0 && results[0].Scored() {
			sort.SliceStable(results, func(i, j int) bool {
				return results[i].Score() < results[j].Score()
			})
		}
	case mode.Newest:
		sort.SliceStable(results, func(i, j int) bool {
			ri, rj := results[i].Record(), results[j].Record()
			return ri.Date().After(rj.Date())
		})
	case mode.Oldest:
		sort.SliceStable(results, func(i, j int) bool {
			ri, rj := results[i].Record(), results[j].Record()
			return ri.Date().Before(rj.Date())
		})
	}
}
