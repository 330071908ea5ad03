// Package memory implements the record repository as a flat, order-preserving
// in-process collection: a growable slice behind an incrementing id counter.
package memory

import (
	"context"
	"sync"

	"github.com/shelfdex/shelfdex/internal/domain"
	domrec "github.com/shelfdex/shelfdex/internal/domain/record"
)

// Repo is the in-memory record store. A single mutex scope guards both the
// identifier counter and the backing collection; readers always receive a
// copy-on-read snapshot, never a live reference.
type Repo struct {
	mu      sync.RWMutex
	nextID  int
	records []domrec.Record
}

// New creates an empty in-memory repository. Identifiers start at 1.
func New() *Repo {
	return &Repo{nextID: 1}
}

// Append assigns the next identifier and stores the record.
func (r *Repo) Append(_ context.Context, rec domrec.Record) (domrec.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := rec.WithID(r.nextID)
	r.nextID++
	r.records = append(r.records, stored)
	return stored, nil
}

// List returns a snapshot of the collection in insertion order.
func (r *Repo) List(_ context.Context) ([]domrec.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]domrec.Record, len(r.records))
	copy(snapshot, r.records)
	return snapshot, nil
}

// Get returns the record with the given id.
func (r *Repo) Get(_ context.Context, id int) (domrec.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return domrec.Record{}, domain.ErrRecordNotFound
}

// Ping implements the health check; an in-process store is always reachable.
func (r *Repo) Ping(_ context.Context) error { return nil }
