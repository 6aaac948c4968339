package analysis

import (
	"time"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// MeetingPayload is one meeting document in an analysis request. Date is
// YYYY-MM-DD; an empty transcript is allowed and analyzes to zero statistics.
type MeetingPayload struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Date         string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Participants []string `json:"participants"`
	Transcript   string   `json:"transcript"`
}

// ToRecord converts the payload to the canonical pipeline shape.
func (p MeetingPayload) ToRecord() entities.MeetingRecord {
	rec := entities.MeetingRecord{
		ID:           p.ID,
		Title:        p.Title,
		Participants: p.Participants,
		Transcript:   p.Transcript,
	}
	if p.Date != "" {
		if date, err := time.Parse("2006-01-02", p.Date); err == nil {
			rec.Date = date
		}
	}
	return rec
}

// Options selects the template for an analysis request.
type Options struct {
	Template           string `json:"template"`
	Version            string `json:"version" validate:"omitempty,templateversion"`
	CustomPrompt       string `json:"custom_prompt"`
	CustomInstructions string `json:"custom_instructions"`
	Date               string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// AnalyzeMeetingRequest asks for a single-meeting analysis.
type AnalyzeMeetingRequest struct {
	Meeting MeetingPayload `json:"meeting" validate:"required"`
	Options
}

// AnalyzeBatchRequest asks for an isolated per-meeting analysis of several
// meetings.
type AnalyzeBatchRequest struct {
	Meetings []MeetingPayload `json:"meetings" validate:"required,min=1,dive"`
	Options
}

// AnalyzeAggregatedRequest asks for one combined analysis across meetings.
type AnalyzeAggregatedRequest struct {
	Meetings []MeetingPayload `json:"meetings" validate:"required,min=1,dive"`
	Options
}

// ExportRequest asks for an exported report over a batch of meetings.
type ExportRequest struct {
	Meetings []MeetingPayload `json:"meetings" validate:"required,min=1,dive"`
	Format   string           `json:"format" validate:"required,reportformat"`
	Title    string           `json:"title"`
	Store    bool             `json:"store"`
	Options
}

// ToRecords converts meeting payloads preserving order.
func ToRecords(payloads []MeetingPayload) []entities.MeetingRecord {
	records := make([]entities.MeetingRecord, 0, len(payloads))
	for _, p := range payloads {
		records = append(records, p.ToRecord())
	}
	return records
}
