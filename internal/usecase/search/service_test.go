package search

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shelfdex/shelfdex/internal/domain"
	"github.com/shelfdex/shelfdex/internal/domain/record"
	"github.com/shelfdex/shelfdex/internal/domain/search/mode"
	"github.com/shelfdex/shelfdex/internal/domain/search/query"
	"github.com/shelfdex/shelfdex/internal/domain/search/result"
)

type stubLister struct {
	records []record.Record
	err     error
}

func (s *stubLister) List(_ context.Context) ([]record.Record, error) {
	return s.records, s.err
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testCatalog() []record.Record {
	return []record.Record{
		record.Reconstruct(1, "Beginner's Guide to JavaScript", "", []string{"javascript", "programming", "guide"}, date(2025, 4, 2)),
		record.Reconstruct(2, "Advanced Python Patterns", "", []string{"python", "programming"}, date(2024, 11, 15)),
		record.Reconstruct(3, "Mediterranean Diet Basics", "", []string{"health", "food"}, date(2024, 1, 10)),
		record.Reconstruct(4, "Street Food Guide", "", []string{"food", "guide", "local"}, date(2023, 5, 20)),
	}
}

func newTestService(t *testing.T, records []record.Record) *Service {
	t.Helper()
	svc, err := New(&stubLister{records: records}, Config{
		Threshold: DefaultThreshold,
		Weights:   DefaultWeights(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func mustQuery(t *testing.T, text, tag string, m mode.Mode, pageSize int) query.Query {
	t.Helper()
	q, err := query.New(text, tag, m, pageSize)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

func ids(page result.Page) []int {
	var out []int
	for _, res := range page.Results() {
		rec := res.Record()
		out = append(out, rec.ID())
	}
	return out
}

func TestSearch_RelevanceOrder(t *testing.T) {
	svc := newTestService(t, testCatalog())

	page, err := svc.Search(context.Background(), mustQuery(t, "guide", "", mode.Relevance, 10))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total() != 2 {
		t.Errorf("Total() = %d, want 2", page.Total())
	}
	ids := ids(page)
	// Equal scores, so collection order decides.
	if !reflect.DeepEqual(ids, []int{1, 4}) {
		t.Errorf("result ids = %v, want [1 4]", ids)
	}
	for _, res := range page.Results() {
		if !res.Scored() {
			t.Error("text query must yield scored results")
		}
		if res.Score() < 0 || res.Score() > 1 {
			t.Errorf("score %v outside [0,1]", res.Score())
		}
	}
}

func TestSearch_OldestOrder(t *testing.T) {
	svc := newTestService(t, testCatalog())

	page, err := svc.Search(context.Background(), mustQuery(t, "guide", "", mode.Oldest, 10))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ids(page); !reflect.DeepEqual(got, []int{4, 1}) {
		t.Errorf("result ids = %v, want [4 1]", got)
	}
}

func TestSearch_NewestOrder(t *testing.T) {
	svc := newTestService(t, testCatalog())

	page, err := svc.Search(context.Background(), mustQuery(t, "", "", mode.Newest, 10))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ids(page); !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Errorf("result ids = %v, want newest first [1 2 3 4]", got)
	}
}

func TestSearch_EmptyQueryPassthrough(t *testing.T) {
	svc := newTestService(t, testCatalog())

	page, err := svc.Search(context.Background(), mustQuery(t, "", "", mode.Relevance, 10))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total() != 4 {
		t.Errorf("Total() = %d, want 4", page.Total())
	}
	if got := ids(page); !reflect.DeepEqual(got, []int{1, 2, 3, 4}) {
		t.Errorf("result ids = %v, want collection order", got)
	}
	for _, res := range page.Results() {
		if res.Scored() {
			t.Error("empty query must yield unscored results")
		}
		if len(res.Highlights()) != 0 {
			t.Error("empty query must yield no highlights")
		}
	}
}

func TestSearch_FuzzyTypo(t *testing.T) {
	svc := newTestService(t, testCatalog())

	page, err := svc.Search(context.Background(), mustQuery(t, "javscript", "", mode.Relevance, 10))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total() != 1 {
		t.Fatalf("Total() = %d, want 1", page.Total())
	}
	res := page.Results()[0]
	rec := res.Record()
	if rec.ID() != 1 {
		t.Fatalf("record id = %d, want 1", rec.ID())
	}
	if res.Score() <= 0 || res.Score() >= 1 {
		t.Errorf("score = %v, want a non-exact score inside (0,1)", res.Score())
	}

	var found bool
	for _, h := range res.Highlights() {
		if h.Field() != FieldTitle {
			continue
		}
		found = true
		spans := h.Spans()
		if len(spans) != 1 || !spans[0].Covers(20, 30) {
			t.Errorf("title spans = %v, want one span covering the word javascript", spans)
		}
	}
	if !found {
		t.Error("expected a title highlight")
	}
}

func TestSearch_NoMatchExcluded(t *testing.T) {
	svc := newTestService(t, testCatalog())

	page, err := svc.Search(context.Background(), mustQuery(t, "quantum", "", mode.Relevance, 10))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total() != 0 || len(page.Results()) != 0 {
		t.Errorf("got %d results, want none", page.Total())
	}
}

func TestSearch_TagFilter(t *testing.T) {
	svc := newTestService(t, testCatalog())

	page, err := svc.Search(context.Background(), mustQuery(t, "", "food", mode.Relevance, 10))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ids(page); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("result ids = %v, want [3 4]", got)
	}
}

func TestSearch_TagFilterIsCaseSensitive(t *testing.T) {
	svc := newTestService(t, testCatalog())

	page, err := svc.Search(context.Background(), mustQuery(t, "", "Food", mode.Relevance, 10))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total() != 0 {
		t.Errorf("Total() = %d, tag filtering must be exact and case-sensitive", page.Total())
	}
}

func TestSearch_TagFilterCombinesWithText(t *testing.T) {
	svc := newTestService(t, testCatalog())

	page, err := svc.Search(context.Background(), mustQuery(t, "guide", "food", mode.Relevance, 10))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ids(page); !reflect.DeepEqual(got, []int{4}) {
		t.Errorf("result ids = %v, want [4]", got)
	}
}

func TestSearch_Pagination(t *testing.T) {
	svc := newTestService(t, testCatalog())

	page, err := svc.Search(context.Background(), mustQuery(t, "", "", mode.Relevance, 1))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total() != 4 {
		t.Errorf("Total() = %d, want pre-truncation count 4", page.Total())
	}
	if got := ids(page); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("result ids = %v, want [1]", got)
	}

	page, err = svc.Search(context.Background(), mustQuery(t, "", "", mode.Relevance, 100))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Results()) != 4 {
		t.Errorf("got %d results, page size above total must return everything", len(page.Results()))
	}
}

func TestSearch_Idempotent(t *testing.T) {
	svc := newTestService(t, testCatalog())
	q := mustQuery(t, "guide", "", mode.Relevance, 10)

	first, err := svc.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	second, err := svc.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical query and collection must produce identical pages")
	}
}

func TestSearch_EmptyCollection(t *testing.T) {
	svc := newTestService(t, nil)

	page, err := svc.Search(context.Background(), mustQuery(t, "guide", "", mode.Relevance, 10))
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total() != 0 || len(page.Results()) != 0 {
		t.Error("empty collection must yield an empty page")
	}
}

func TestSearch_RepoError(t *testing.T) {
	wantErr := errors.New("store down")
	svc, err := New(&stubLister{err: wantErr}, Config{Threshold: DefaultThreshold, Weights: DefaultWeights()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := svc.Search(context.Background(), mustQuery(t, "guide", "", mode.Relevance, 10)); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped store error", err)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero threshold", Config{Threshold: 0, Weights: DefaultWeights()}},
		{"threshold above one", Config{Threshold: 1.5, Weights: DefaultWeights()}},
		{"weights below one", Config{Threshold: 0.36, Weights: Weights{Title: 0.5, Tags: 0.2, Description: 0.2}}},
		{"negative weight", Config{Threshold: 0.36, Weights: Weights{Title: 1.2, Tags: -0.1, Description: -0.1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(&stubLister{}, tt.cfg)
			if !errors.Is(err, domain.ErrInvalidConfiguration) {
				t.Errorf("error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestWeights_ValidateAcceptsDefaults(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Errorf("default weights must validate: %v", err)
	}
}
