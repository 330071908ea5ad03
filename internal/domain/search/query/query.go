// Package query defines the per-request search configuration.
package query

import (
	"fmt"
	"strings"

	"github.com/shelfdex/shelfdex/internal/domain"
	"github.com/shelfdex/shelfdex/internal/domain/search/mode"
)

// MaxTextLength is the maximum allowed query text length.
const MaxTextLength = 512

// Query is a validated search configuration. It is constructed fresh per
// request and holds no cross-request state.
type Query struct {
	text      string
	activeTag string
	sortMode  mode.Mode
	pageSize  int
}

// New validates and normalizes search parameters.
// Empty (or whitespace-only) text means "no relevance filtering, return all
// records". Sort mode defaults to relevance. Page size must be positive;
// defaulting optional fields is the caller's job, not the core's.
func New(text, activeTag string, m mode.Mode, pageSize int) (Query, error) {
	text = strings.TrimSpace(text)
	if len(text) > MaxTextLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidConfiguration, MaxTextLength)
	}
	if m == "" {
		m = mode.Relevance
	}
	if !m.IsValid() {
		return Query{}, fmt.Errorf("%w: unknown sort mode %q", domain.ErrInvalidConfiguration, m)
	}
	if pageSize <= 0 {
		return Query{}, fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidConfiguration, pageSize)
	}

	return Query{
		text:      text,
		activeTag: activeTag,
		sortMode:  m,
		pageSize:  pageSize,
	}, nil
}

// Text returns the trimmed query text (may be empty).
func (q *Query) Text() string { return q.text }

// ActiveTag returns the exact-match tag filter ("" when unset).
func (q *Query) ActiveTag() string { return q.activeTag }

// SortMode returns the result ordering strategy.
func (q *Query) SortMode() mode.Mode { return q.sortMode }

// PageSize returns the result truncation limit.
func (q *Query) PageSize() int { return q.pageSize }
