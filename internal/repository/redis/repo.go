// Package redis implements the record repository over a Redis-backed
// key-value store, for deployments that want the catalog to survive restarts.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shelfdex/shelfdex/internal/db"
	"github.com/shelfdex/shelfdex/internal/domain"
	domrec "github.com/shelfdex/shelfdex/internal/domain/record"
)

// store is the consumer interface for records (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	MGet(ctx context.Context, keys []string) ([][]byte, error)
	Incr(ctx context.Context, key string) (int64, error)
	RPush(ctx context.Context, key, value string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	Ping(ctx context.Context) error
}

// Repo implements usecase/record.Repository on top of db.Store.
// Layout: <prefix>record:<id> holds the JSON record, <prefix>records the
// insertion-ordered id list, <prefix>next_id the identifier counter.
type Repo struct {
	store  store
	prefix string
}

// New creates a Redis-backed record repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// Append reserves the next identifier via INCR and stores the record.
// INCR is atomic, so identifiers are unique and never reused even with
// concurrent writers.
func (r *Repo) Append(ctx context.Context, rec domrec.Record) (domrec.Record, error) {
	id, err := r.store.Incr(ctx, r.prefix+"next_id")
	if err != nil {
		return domrec.Record{}, fmt.Errorf("reserve id: %w", err)
	}

	stored := rec.WithID(int(id))
	data, err := marshalRecord(&stored)
	if err != nil {
		return domrec.Record{}, err
	}
	if err := r.store.Set(ctx, r.recordKey(int(id)), data); err != nil {
		return domrec.Record{}, fmt.Errorf("store record %d: %w", id, err)
	}
	if err := r.store.RPush(ctx, r.prefix+"records", strconv.FormatInt(id, 10)); err != nil {
		return domrec.Record{}, fmt.Errorf("index record %d: %w", id, err)
	}
	return stored, nil
}

// List returns all records in insertion order.
func (r *Repo) List(ctx context.Context) ([]domrec.Record, error) {
	ids, err := r.store.LRange(ctx, r.prefix+"records", 0, -1)
	if err != nil {
		return nil, fmt.Errorf("list record ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.prefix + "record:" + id
	}
	values, err := r.store.MGet(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	records := make([]domrec.Record, 0, len(values))
	for i, data := range values {
		if data == nil {
			// Id list and record keys drifted apart; skip the hole rather
			// than fail the whole snapshot.
			continue
		}
		rec, err := unmarshalRecord(data)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", ids[i], err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Get returns one record by id.
func (r *Repo) Get(ctx context.Context, id int) (domrec.Record, error) {
	data, err := r.store.Get(ctx, r.recordKey(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domrec.Record{}, domain.ErrRecordNotFound
		}
		return domrec.Record{}, fmt.Errorf("get record %d: %w", id, err)
	}
	return unmarshalRecord(data)
}

// Ping reports backend availability for health checks.
func (r *Repo) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func (r *Repo) recordKey(id int) string {
	return r.prefix + "record:" + strconv.Itoa(id)
}
