// Package record implements the record ingestion and listing use cases.
package record

import (
	"context"
	"fmt"
	"time"

	domrec "github.com/shelfdex/shelfdex/internal/domain/record"
)

// Service handles record creation and retrieval.
type Service struct {
	repo Repository
}

// New creates a record service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the payload and appends it to the store. The returned
// record carries the newly assigned identifier.
func (s *Service) Create(
	ctx context.Context, title, description string, tags []string, date time.Time,
) (domrec.Record, error) {
	rec, err := domrec.New(title, description, tags, date)
	if err != nil {
		return domrec.Record{}, err
	}

	stored, err := s.repo.Append(ctx, rec)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("append record: %w", err)
	}
	return stored, nil
}

// List returns a snapshot of the whole collection in insertion order.
func (s *Service) List(ctx context.Context) ([]domrec.Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id int) (domrec.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("get record %d: %w", id, err)
	}
	return rec, nil
}
