package record

import (
	"context"

	domrec "github.com/shelfdex/shelfdex/internal/domain/record"
)

// Repository is the record store contract. Append assigns the next integer
// identifier under a single mutual-exclusion scope and returns the stored
// record; identifiers are never reused. List returns an immutable snapshot
// in insertion order.
type Repository interface {
	List(ctx context.Context) ([]domrec.Record, error)
	Get(ctx context.Context, id int) (domrec.Record, error)
	Append(ctx context.Context, rec domrec.Record) (domrec.Record, error)
}
