package shelfdex

// Option configures a Client.
type Option interface {
	apply(*clientConfig)
}

type clientConfig struct {
	threshold        float64
	titleWeight      float64
	tagsWeight       float64
	descWeight       float64
	suggestMinLength int
	suggestLimit     int
	defaultPageSize  int
}

type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

// WithThreshold overrides the tolerated edit fraction (default 0.36).
func WithThreshold(threshold float64) Option {
	return optionFunc(func(c *clientConfig) { c.threshold = threshold })
}

// WithWeights overrides the per-field relevance weights
// (default 0.6/0.25/0.15). They must sum to 1.
func WithWeights(title, tags, description float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.titleWeight = title
		c.tagsWeight = tags
		c.descWeight = description
	})
}

// WithSuggestLimits overrides the suggestion minimum query length and result
// cap (defaults 2 and 8).
func WithSuggestLimits(minLength, limit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.suggestMinLength = minLength
		c.suggestLimit = limit
	})
}

// WithDefaultPageSize overrides the page size used when SearchOptions leaves
// PageSize unset (default 10).
func WithDefaultPageSize(size int) Option {
	return optionFunc(func(c *clientConfig) { c.defaultPageSize = size })
}
