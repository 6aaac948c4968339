package ingest

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	"github.com/johnquangdev/meeting-insights/internal/usecase/transcript"
)

// Decoder converts raw meeting documents into the canonical MeetingRecord.
// Two schemas are accepted: the analysis schema (title/date/participants/
// transcript) and the drive-export schema (name/createdTime/content, where
// the transcript is one section of the exported document). Source documents
// are never mutated.
type Decoder struct {
	parser *transcript.Parser
}

// NewDecoder creates a new Decoder instance
func NewDecoder() *Decoder {
	return &Decoder{parser: transcript.NewParser()}
}

var (
	transcriptMarker = regexp.MustCompile(`(?im)^.*(transcript|스크립트).*$`)
	exportDateLine   = regexp.MustCompile(`^([A-Z][a-z]{2}\s+\d{1,2},\s+\d{4}|\d{4}년\s+\d{1,2}월\s+\d{1,2}일)$`)
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Decode normalizes one raw document. A document with neither a transcript
// nor exportable content is rejected.
func (d *Decoder) Decode(doc map[string]interface{}) (entities.MeetingRecord, error) {
	rec := entities.MeetingRecord{
		ID:    stringField(doc, "id", "_id", "file_id"),
		Title: stringField(doc, "title"),
	}
	if rec.Title == "" {
		rec.Title = stringField(doc, "name")
	}
	if rec.Title == "" {
		rec.Title = "Untitled Meeting"
	}

	rec.Transcript = stringField(doc, "transcript")
	if rec.Transcript == "" {
		content := stringField(doc, "content")
		if content == "" {
			return entities.MeetingRecord{}, fmt.Errorf("%w: no transcript or content", errors.ErrInvalidMeetingDoc)
		}
		rec.Transcript = ExtractTranscriptSection(content)
	}

	if raw := stringField(doc, "date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			return entities.MeetingRecord{}, fmt.Errorf("%w: bad date %q", errors.ErrInvalidMeetingDoc, raw)
		}
		rec.Date = date
	} else if raw := stringField(doc, "createdTime"); raw != "" {
		// Export timestamps are best effort; a malformed one loses the
		// date but keeps the meeting.
		if date, err := parseDate(raw); err == nil {
			rec.Date = date
		}
	}

	if list, ok := doc["participants"].([]interface{}); ok {
		for _, item := range list {
			if name, ok := item.(string); ok && name != "" {
				rec.Participants = append(rec.Participants, name)
			}
		}
	} else if list, ok := doc["participants"].([]string); ok {
		rec.Participants = append(rec.Participants, list...)
	}
	if len(rec.Participants) == 0 {
		rec.Participants = d.extractParticipants(rec.Transcript)
	}

	return rec, nil
}

// DecodeAll normalizes a batch of documents, keeping input order. The first
// invalid document fails the batch with its index.
func (d *Decoder) DecodeAll(docs []map[string]interface{}) ([]entities.MeetingRecord, error) {
	records := make([]entities.MeetingRecord, 0, len(docs))
	for i, doc := range docs {
		rec, err := d.Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// ExtractTranscriptSection pulls the transcript section out of an exported
// meeting document. Everything from the transcript marker line to the end of
// the document is kept, minus the marker line itself and the date/title lines
// export tools put right after it. Without a marker the whole content is the
// transcript.
func ExtractTranscriptSection(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	loc := transcriptMarker.FindStringIndex(content)
	if loc == nil {
		return content
	}

	lines := strings.Split(content[loc[0]:], "\n")
	start := 1
	if start < len(lines) && exportDateLine.MatchString(strings.TrimSpace(lines[start])) {
		start++
	}
	if start < len(lines) {
		title := lines[start]
		if strings.Contains(title, " - Transcript") || strings.Contains(title, " - 스크립트") {
			start++
		}
	}
	return strings.TrimSpace(strings.Join(lines[start:], "\n"))
}

// extractParticipants derives the raw speaker labels from the transcript when
// the document carries no participant list.
func (d *Decoder) extractParticipants(raw string) []string {
	parsed := d.parser.Parse(raw)
	seen := map[string]struct{}{}
	var participants []string
	for _, stmt := range parsed.Statements {
		if _, ok := seen[stmt.Speaker]; ok {
			continue
		}
		seen[stmt.Speaker] = struct{}{}
		participants = append(participants, stmt.Speaker)
	}
	return participants
}

func stringField(doc map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := doc[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", raw)
}
