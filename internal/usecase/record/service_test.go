package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shelfdex/shelfdex/internal/domain"
	domrec "github.com/shelfdex/shelfdex/internal/domain/record"
)

type stubRepo struct {
	records   []domrec.Record
	listErr   error
	appendErr error
}

func (s *stubRepo) List(_ context.Context) ([]domrec.Record, error) {
	return s.records, s.listErr
}

func (s *stubRepo) Get(_ context.Context, id int) (domrec.Record, error) {
	for _, rec := range s.records {
		if rec.ID() == id {
			return rec, nil
		}
	}
	return domrec.Record{}, domain.ErrRecordNotFound
}

func (s *stubRepo) Append(_ context.Context, rec domrec.Record) (domrec.Record, error) {
	if s.appendErr != nil {
		return domrec.Record{}, s.appendErr
	}
	stored := rec.WithID(len(s.records) + 1)
	s.records = append(s.records, stored)
	return stored, nil
}

func testDate() time.Time {
	return time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)
}

func TestCreate(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	rec, err := svc.Create(context.Background(), "Beginner's Guide to JavaScript", "Learn the basics.", []string{"javascript"}, testDate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID() != 1 {
		t.Errorf("ID() = %d, want 1", rec.ID())
	}
	if len(repo.records) != 1 {
		t.Errorf("repo holds %d records, want 1", len(repo.records))
	}
}

func TestCreate_InvalidRecordNotStored(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)

	_, err := svc.Create(context.Background(), "", "", nil, testDate())
	if !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("error = %v, want ErrInvalidRecord", err)
	}
	if len(repo.records) != 0 {
		t.Error("invalid record must not reach the store")
	}
}

func TestCreate_AppendError(t *testing.T) {
	wantErr := errors.New("store down")
	svc := New(&stubRepo{appendErr: wantErr})

	if _, err := svc.Create(context.Background(), "t", "", nil, testDate()); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped store error", err)
	}
}

func TestGet(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo)
	created, err := svc.Create(context.Background(), "t", "", nil, testDate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID() != created.ID() || got.Title() != "t" {
		t.Errorf("Get returned %+v", got)
	}

	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("error = %v, want ErrRecordNotFound", err)
	}
}

func TestList_Error(t *testing.T) {
	wantErr := errors.New("store down")
	svc := New(&stubRepo{listErr: wantErr})
	if _, err := svc.List(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped store error", err)
	}
}
