package search

import (
	"context"

	"github.com/shelfdex/shelfdex/internal/domain/record"
)

// RecordLister is the consumer interface for the record store (ISP).
// List must return an immutable snapshot of the collection in insertion
// order; the search pipeline only ever reads it.
type RecordLister interface {
	List(ctx context.Context) ([]record.Record, error)
}
