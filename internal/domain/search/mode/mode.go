// Package mode defines the result ordering strategies.
package mode

// Mode selects how search results are ordered.
type Mode string

const (
	// Relevance orders by ascending aggregate match cost (best first).
	Relevance Mode = "relevance"
	// Newest orders by date, most recent first.
	Newest Mode = "newest"
	// Oldest orders by date, oldest first.
	Oldest Mode = "oldest"
)

// IsValid reports whether m is a known sort mode.
func (m Mode) IsValid() bool {
	switch m {
	case Relevance, Newest, Oldest:
		return true
	}
	return false
}
