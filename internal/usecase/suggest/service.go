// Package suggest implements the autocomplete aid: a cheap case-insensitive
// substring scan over title words and tags, separate from the fuzzy search
// path. Results are not scored.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/shelfdex/shelfdex/internal/domain/record"
	"github.com/shelfdex/shelfdex/internal/textnorm"
)

// Defaults for the suggestion scan.
const (
	DefaultMinLength = 2
	DefaultLimit     = 8
)

// RecordLister is the consumer interface for the record store.
type RecordLister interface {
	List(ctx context.Context) ([]record.Record, error)
}

// Service produces query completions from the record collection.
type Service struct {
	repo      RecordLister
	minLength int
	limit     int
}

// New creates a suggestion service. minLength and limit fall back to the
// defaults (2 and 8) when non-positive.
func New(repo RecordLister, minLength, limit int) *Service {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{repo: repo, minLength: minLength, limit: limit}
}

// Suggest returns up to limit distinct tokens (title words and tags)
// containing the normalized query as a substring, in the order they are
// first encountered in the collection. Queries shorter than the minimum
// length yield no suggestions.
func (s *Service) Suggest(ctx context.Context, q string) ([]string, error) {
	needle := textnorm.Fold(strings.TrimSpace(q))
	if len(needle) < s.minLength {
		return nil, nil
	}

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	seen := make(map[string]bool)
	var out []string
	add := func(token string) bool {
		folded := textnorm.Fold(token)
		if seen[folded] || !strings.Contains(folded, needle) {
			return false
		}
		seen[folded] = true
		out = append(out, token)
		return len(out) >= s.limit
	}

	for _, rec := range records {
		for _, word := range strings.Fields(rec.Title()) {
			if add(word) {
				return out, nil
			}
		}
		for _, tag := range rec.Tags() {
			if add(tag) {
				return out, nil
			}
		}
	}
	return out, nil
}
