package record

import (
	"fmt"
	"time"

	"github.com/shelfdex/shelfdex/internal/domain"
)

// Size limits for record fields.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 4096
	MaxTags              = 16
	MaxTagLength         = 64
)

// Record is one searchable catalog entry (immutable value object).
// The id is assigned by the repository on append and never reused.
type Record struct {
	id          int
	title       string
	description string
	tags        []string
	date        time.Time
}

// New validates and creates a Record with no id assigned yet.
// Title: non-empty, max 200 chars. Tags: non-empty, unique per record.
func New(title, description string, tags []string, date time.Time) (Record, error) {
	if title == "" {
		return Record{}, fmt.Errorf("%w: title is required", domain.ErrInvalidRecord)
	}
	if len(title) > MaxTitleLength {
		return Record{}, fmt.Errorf("%w: title too long (max %d)", domain.ErrInvalidRecord, MaxTitleLength)
	}
	if len(description) > MaxDescriptionLength {
		return Record{}, fmt.Errorf("%w: description too long (max %d)", domain.ErrInvalidRecord, MaxDescriptionLength)
	}
	if len(tags) > MaxTags {
		return Record{}, fmt.Errorf("%w: too many tags (max %d)", domain.ErrInvalidRecord, MaxTags)
	}
	if date.IsZero() {
		return Record{}, fmt.Errorf("%w: date is required", domain.ErrInvalidRecord)
	}
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if tag == "" {
			return Record{}, fmt.Errorf("%w: empty tag", domain.ErrInvalidRecord)
		}
		if len(tag) > MaxTagLength {
			return Record{}, fmt.Errorf("%w: tag %q too long (max %d)", domain.ErrInvalidRecord, tag, MaxTagLength)
		}
		if seen[tag] {
			return Record{}, fmt.Errorf("%w: duplicate tag %q", domain.ErrInvalidRecord, tag)
		}
		seen[tag] = true
	}

	return Record{
		title:       title,
		description: description,
		tags:        cloneTags(tags),
		date:        date,
	}, nil
}

// Reconstruct creates a Record without validation (storage hydration).
func Reconstruct(id int, title, description string, tags []string, date time.Time) Record {
	return Record{id: id, title: title, description: description, tags: tags, date: date}
}

// WithID returns a copy with the given identifier set.
func (r *Record) WithID(id int) Record {
	return Record{id: id, title: r.title, description: r.description, tags: r.tags, date: r.date}
}

// ID returns the record identifier (0 until appended to a store).
func (r *Record) ID() int { return r.id }

// Title returns the primary display string.
func (r *Record) Title() string { return r.title }

// Description returns the longer free-text field.
func (r *Record) Description() string { return r.description }

// Tags returns the category tags.
func (r *Record) Tags() []string { return r.tags }

// Date returns the calendar date used for chronological sorting.
func (r *Record) Date() time.Time { return r.date }

// HasTag reports exact, case-sensitive tag membership.
func (r *Record) HasTag(tag string) bool {
	for _, t := range r.tags {
		if t == tag {
			return true
		}
	}
	return false
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	c := make([]string, len(tags))
	copy(c, tags)
	return c
}
