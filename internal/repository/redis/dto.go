package redis

import (
	"encoding/json"
	"fmt"
	"time"

	domrec "github.com/shelfdex/shelfdex/internal/domain/record"
)

const dateLayout = "2006-01-02"

// recordDTO is the stored JSON shape of a record.
type recordDTO struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
}

func marshalRecord(rec *domrec.Record) ([]byte, error) {
	dto := recordDTO{
		ID:          rec.ID(),
		Title:       rec.Title(),
		Description: rec.Description(),
		Tags:        rec.Tags(),
		Date:        rec.Date().Format(dateLayout),
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return nil, fmt.Errorf("marshal record %d: %w", rec.ID(), err)
	}
	return data, nil
}

func unmarshalRecord(data []byte) (domrec.Record, error) {
	var dto recordDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domrec.Record{}, fmt.Errorf("unmarshal record: %w", err)
	}
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("parse record %d date %q: %w", dto.ID, dto.Date, err)
	}
	return domrec.Reconstruct(dto.ID, dto.Title, dto.Description, dto.Tags, date), nil
}
