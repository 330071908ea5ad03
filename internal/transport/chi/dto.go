package chi

import (
	domrec "github.com/shelfdex/shelfdex/internal/domain/record"
	"github.com/shelfdex/shelfdex/internal/domain/search/result"
)

const dateLayout = "2006-01-02"

// recordDTO is the wire shape of a catalog record.
type recordDTO struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
}

// createRecordRequest is the POST /records payload.
type createRecordRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
}

// highlightDTO carries the merged match spans for one field. Indices are
// half-open [start, end) pairs into Value.
type highlightDTO struct {
	Field   string   `json:"field"`
	Value   string   `json:"value"`
	Indices [][2]int `json:"indices"`
}

// searchResultDTO is one search hit. Score is omitted for unranked
// passthrough results (empty query).
type searchResultDTO struct {
	Record  recordDTO      `json:"record"`
	Score   *float64       `json:"score,omitempty"`
	Matches []highlightDTO `json:"matches,omitempty"`
}

// searchResponse is the GET /search payload.
type searchResponse struct {
	Total   int               `json:"total"`
	Results []searchResultDTO `json:"results"`
}

// suggestResponse is the GET /suggest payload.
type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// errorResponse is the uniform error payload.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func recordToDTO(rec domrec.Record) recordDTO {
	tags := rec.Tags()
	if tags == nil {
		tags = []string{}
	}
	return recordDTO{
		ID:          rec.ID(),
		Title:       rec.Title(),
		Description: rec.Description(),
		Tags:        tags,
		Date:        rec.Date().Format(dateLayout),
	}
}

func resultToDTO(res result.Result) searchResultDTO {
	dto := searchResultDTO{Record: recordToDTO(res.Record())}
	if res.Scored() {
		score := res.Score()
		dto.Score = &score
	}
	for _, h := range res.Highlights() {
		spans := h.Spans()
		indices := make([][2]int, len(spans))
		for i, s := range spans {
			indices[i] = [2]int{s.Start(), s.End()}
		}
		dto.Matches = append(dto.Matches, highlightDTO{
			Field:   h.Field(),
			Value:   h.Value(),
			Indices: indices,
		})
	}
	return dto
}

func pageToDTO(page result.Page) searchResponse {
	resp := searchResponse{
		Total:   page.Total(),
		Results: make([]searchResultDTO, 0, len(page.Results())),
	}
	for _, res := range page.Results() {
		resp.Results = append(resp.Results, resultToDTO(res))
	}
	return resp
}
