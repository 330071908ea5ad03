// Package seed loads sample catalog data from a YAML file at startup.
package seed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	recorduc "github.com/shelfdex/shelfdex/internal/usecase/record"
)

const dateLayout = "2006-01-02"

// Entry is one seed record as written in the YAML file.
type Entry struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Date        string   `yaml:"date"`
}

// Load reads seed entries from path.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return entries, nil
}

// Apply creates every entry through the record service, preserving file
// order so that seeded collections keep their intended insertion order.
func Apply(ctx context.Context, svc *recorduc.Service, entries []Entry) (int, error) {
	for i, e := range entries {
		date, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			return i, fmt.Errorf("seed entry %d: parse date %q: %w", i, e.Date, err)
		}
		if _, err := svc.Create(ctx, e.Title, e.Description, e.Tags, date); err != nil {
			return i, fmt.Errorf("seed entry %d (%q): %w", i, e.Title, err)
		}
	}
	return len(entries), nil
}
