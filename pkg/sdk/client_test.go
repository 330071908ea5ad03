package shelfdex

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shelfdex/shelfdex/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newSeededClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	client, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()
	records := []NewRecord{
		{Title: "Beginner's Guide to JavaScript", Tags: []string{"javascript", "programming", "guide"}, Date: date(2025, 4, 2)},
		{Title: "Advanced Python Patterns", Tags: []string{"python", "programming"}, Date: date(2024, 11, 15)},
		{Title: "Street Food Guide", Tags: []string{"food", "guide", "local"}, Date: date(2023, 5, 20)},
	}
	for _, rec := range records {
		if _, err := client.AddRecord(ctx, rec); err != nil {
			t.Fatalf("AddRecord(%q): %v", rec.Title, err)
		}
	}
	return client
}

func TestClient_AddAndList(t *testing.T) {
	client := newSeededClient(t)

	records, err := client.Records(context.Background())
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].ID != 1 || records[2].ID != 3 {
		t.Errorf("ids = %d..%d, want 1..3", records[0].ID, records[2].ID)
	}
}

func TestClient_AddRecord_Invalid(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = client.AddRecord(context.Background(), NewRecord{Title: "", Date: date(2025, 1, 1)})
	if !errors.Is(err, domain.ErrInvalidRecord) {
		t.Errorf("error = %v, want ErrInvalidRecord", err)
	}
}

func TestClient_Search(t *testing.T) {
	client := newSeededClient(t)

	page, err := client.Search(context.Background(), "guide", SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("Total = %d, want 2", page.Total)
	}
	if page.Results[0].Record.ID != 1 || page.Results[1].Record.ID != 3 {
		t.Errorf("result ids = %d, %d", page.Results[0].Record.ID, page.Results[1].Record.ID)
	}
	if page.Results[0].Score == nil {
		t.Error("text search must carry scores")
	}
	if len(page.Results[0].Highlights) == 0 {
		t.Error("text search must carry highlights")
	}
}

func TestClient_Search_SortAndTag(t *testing.T) {
	client := newSeededClient(t)
	ctx := context.Background()

	page, err := client.Search(ctx, "guide", SearchOptions{Sort: SortOldest})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Results[0].Record.ID != 3 {
		t.Errorf("oldest first: got id %d, want 3", page.Results[0].Record.ID)
	}

	page, err = client.Search(ctx, "", SearchOptions{Tag: "food"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 1 || page.Results[0].Record.ID != 3 {
		t.Errorf("tag filter: %+v", page)
	}
}

func TestClient_Search_PageSize(t *testing.T) {
	client := newSeededClient(t, WithDefaultPageSize(1))

	page, err := client.Search(context.Background(), "", SearchOptions{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 3 || len(page.Results) != 1 {
		t.Errorf("Total = %d, results = %d, want 3 and 1", page.Total, len(page.Results))
	}

	page, err = client.Search(context.Background(), "", SearchOptions{PageSize: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(page.Results) != 2 {
		t.Errorf("explicit page size: got %d results, want 2", len(page.Results))
	}
}

func TestClient_Suggest(t *testing.T) {
	client := newSeededClient(t)

	got, err := client.Suggest(context.Background(), "gu")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) == 0 || got[0] != "Guide" {
		t.Errorf("Suggest = %v, want Guide first", got)
	}
}

func TestNew_RejectsBadOptions(t *testing.T) {
	if _, err := New(WithThreshold(2)); !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Errorf("threshold 2: error = %v, want ErrInvalidConfiguration", err)
	}
	if _, err := New(WithWeights(0.5, 0.2, 0.2)); !errors.Is(err, domain.ErrInvalidConfiguration) {
		t.Errorf("bad weights: error = %v, want ErrInvalidConfiguration", err)
	}
}
