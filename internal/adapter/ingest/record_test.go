package ingest

import (
	stderrors "errors"
	"reflect"
	"testing"
	"time"

	usecaseerrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
)

func TestDecode_AnalysisSchema(t *testing.T) {
	d := NewDecoder()
	rec, err := d.Decode(map[string]interface{}{
		"id":           "m-1",
		"title":        "Weekly Sync",
		"date":         "2024-12-01",
		"participants": []interface{}{"Kim", "Lee"},
		"transcript":   "[00:01:00] Kim: hello",
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if rec.ID != "m-1" || rec.Title != "Weekly Sync" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !rec.Date.Equal(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", rec.Date)
	}
	if !reflect.DeepEqual(rec.Participants, []string{"Kim", "Lee"}) {
		t.Fatalf("unexpected participants: %v", rec.Participants)
	}
}

func TestDecode_DriveExportSchema(t *testing.T) {
	d := NewDecoder()
	rec, err := d.Decode(map[string]interface{}{
		"name":        "SYB call",
		"createdTime": "2025-11-17T10:17:47.962Z",
		"content":     "Meeting notes\nsome summary\n\n📖 Transcript\nNov 17, 2025\nSYB call - Transcript\n00:00:00\nKim: hello there\nLee: hi",
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if rec.Title != "SYB call" {
		t.Fatalf("name not used as title: %+v", rec)
	}
	if rec.Date.Year() != 2025 || rec.Date.Month() != time.November {
		t.Fatalf("createdTime not parsed: %v", rec.Date)
	}
	if rec.Transcript == "" || rec.Transcript[:8] != "00:00:00" {
		t.Fatalf("transcript section not extracted: %q", rec.Transcript)
	}
	// Participants fall back to the speakers found in the transcript.
	if !reflect.DeepEqual(rec.Participants, []string{"Kim", "Lee"}) {
		t.Fatalf("unexpected participants: %v", rec.Participants)
	}
}

func TestDecode_MissingTranscriptAndContent(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode(map[string]interface{}{"title": "empty"})
	if !stderrors.Is(err, usecaseerrors.ErrInvalidMeetingDoc) {
		t.Fatalf("expected ErrInvalidMeetingDoc, got %v", err)
	}
}

func TestDecode_BadExplicitDate(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode(map[string]interface{}{
		"title":      "x",
		"date":       "last tuesday",
		"transcript": "Kim: hi",
	})
	if !stderrors.Is(err, usecaseerrors.ErrInvalidMeetingDoc) {
		t.Fatalf("expected ErrInvalidMeetingDoc, got %v", err)
	}
}

func TestDecode_UntitledFallback(t *testing.T) {
	d := NewDecoder()
	rec, err := d.Decode(map[string]interface{}{"transcript": "Kim: hi"})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if rec.Title != "Untitled Meeting" {
		t.Fatalf("unexpected title: %q", rec.Title)
	}
}

func TestExtractTranscriptSection_NoMarker(t *testing.T) {
	content := "Kim: hello\nLee: hi"
	if got := ExtractTranscriptSection(content); got != content {
		t.Fatalf("content without marker must pass through, got %q", got)
	}
}

func TestDecodeAll_ReportsFailingIndex(t *testing.T) {
	d := NewDecoder()
	_, err := d.DecodeAll([]map[string]interface{}{
		{"transcript": "Kim: ok"},
		{"title": "broken"},
	})
	if err == nil || !stderrors.Is(err, usecaseerrors.ErrInvalidMeetingDoc) {
		t.Fatalf("expected wrapped ErrInvalidMeetingDoc, got %v", err)
	}
}
