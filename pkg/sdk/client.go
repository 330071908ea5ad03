package shelfdex

import (
	"context"
	"fmt"

	"github.com/shelfdex/shelfdex/internal/domain/search/mode"
	"github.com/shelfdex/shelfdex/internal/domain/search/query"
	memoryrepo "github.com/shelfdex/shelfdex/internal/repository/memory"
	recorduc "github.com/shelfdex/shelfdex/internal/usecase/record"
	searchuc "github.com/shelfdex/shelfdex/internal/usecase/search"
	suggestuc "github.com/shelfdex/shelfdex/internal/usecase/suggest"
)

// Client is the embedded shelfdex entry point.
type Client struct {
	records         *recorduc.Service
	search          *searchuc.Service
	suggest         *suggestuc.Service
	defaultPageSize int
}

// New creates an embedded client over a fresh in-memory catalog.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		threshold:       searchuc.DefaultThreshold,
		titleWeight:     0.6,
		tagsWeight:      0.25,
		descWeight:      0.15,
		defaultPageSize: 10,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	repo := memoryrepo.New()
	searchSvc, err := searchuc.New(repo, searchuc.Config{
		Threshold: cfg.threshold,
		Weights: searchuc.Weights{
			Title:       cfg.titleWeight,
			Tags:        cfg.tagsWeight,
			Description: cfg.descWeight,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("configure search: %w", err)
	}

	return &Client{
		records:         recorduc.New(repo),
		search:          searchSvc,
		suggest:         suggestuc.New(repo, cfg.suggestMinLength, cfg.suggestLimit),
		defaultPageSize: cfg.defaultPageSize,
	}, nil
}

// AddRecord validates and appends a record, returning it with the newly
// assigned identifier.
func (c *Client) AddRecord(ctx context.Context, rec NewRecord) (Record, error) {
	stored, err := c.records.Create(ctx, rec.Title, rec.Description, rec.Tags, rec.Date)
	if err != nil {
		return Record{}, err
	}
	return recordFromDomain(stored), nil
}

// Records returns the whole collection in insertion order.
func (c *Client) Records(ctx context.Context) ([]Record, error) {
	records, err := c.records.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		out = append(out, recordFromDomain(rec))
	}
	return out, nil
}

// Search runs the relevance pipeline. Empty text returns every record
// unscored, in insertion order, subject only to the tag filter.
func (c *Client) Search(ctx context.Context, text string, opts SearchOptions) (Page, error) {
	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = c.defaultPageSize
	}
	q, err := query.New(text, opts.Tag, mode.Mode(opts.Sort), pageSize)
	if err != nil {
		return Page{}, err
	}
	page, err := c.search.Search(ctx, q)
	if err != nil {
		return Page{}, err
	}
	return pageFromDomain(page), nil
}

// Suggest returns query completions for a partial query.
func (c *Client) Suggest(ctx context.Context, text string) ([]string, error) {
	return c.suggest.Suggest(ctx, text)
}
