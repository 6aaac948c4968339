package exporter

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	usecaseerrors "github.com/johnquangdev/meeting-insights/internal/usecase/errors"
)

func sampleResults() []entities.AnalysisResult {
	v := "2.0"
	return []entities.AnalysisResult{
		{
			MeetingID:    "m-1",
			MeetingTitle: "Weekly Sync",
			Status:       entities.AnalysisStatusSuccess,
			Analysis:     "Kim drove the planning discussion.",
			ParticipantStats: entities.StatsByParticipant{
				"Kim": {SpeakCount: 3, TotalWords: 30},
				"Lee": {SpeakCount: 1, TotalWords: 10},
			},
			TotalStatements: 4,
			TemplateUsed:    "default",
			TemplateVersion: &v,
			ModelUsed:       "gemini-test",
		},
		{
			MeetingID:    "m-2",
			MeetingTitle: "Retro",
			Status:       entities.AnalysisStatusError,
			ErrorMessage: "model call failed",
			ParticipantStats: entities.StatsByParticipant{
				"Kim": {SpeakCount: 2, TotalWords: 10},
			},
			TemplateUsed: "default",
			ModelUsed:    "gemini-test",
		},
	}
}

func TestBuildRows(t *testing.T) {
	rows := BuildRows(sampleResults())

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	kim := rows[0]
	if kim.Name != "Kim" || kim.Meetings != 2 || kim.SpeakCount != 5 || kim.TotalWords != 40 {
		t.Fatalf("unexpected top row: %+v", kim)
	}
	if kim.Share != 80 {
		t.Fatalf("expected 80%% share, got %v", kim.Share)
	}
	if rows[1].Name != "Lee" || rows[1].Meetings != 1 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestExportCSV(t *testing.T) {
	data, err := ExportCSV(sampleResults(), ReportMeta{})
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("csv must start with a UTF-8 BOM")
	}
	text := string(data)
	if !strings.Contains(text, "name,meetings,statements,words,share_percent") {
		t.Fatalf("missing header:\n%s", text)
	}
	if !strings.Contains(text, "Kim,2,5,40,80.0") {
		t.Fatalf("missing Kim row:\n%s", text)
	}
}

func TestExportText(t *testing.T) {
	data, err := ExportText(sampleResults(), ReportMeta{
		Title:       "December Review",
		GeneratedAt: time.Date(2024, 12, 31, 18, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("ExportText failed: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"December Review",
		"Generated: 2024-12-31 18:00",
		"Kim drove the planning discussion.",
		"Analysis failed: model call failed",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}
}

func TestExportExcel(t *testing.T) {
	data, err := ExportExcel(sampleResults(), ReportMeta{})
	if err != nil {
		t.Fatalf("ExportExcel failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("failed to read summary sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "Kim" || rows[1][3] != "40" {
		t.Fatalf("unexpected summary row: %v", rows[1])
	}

	meetings, err := f.GetRows(meetingsSheet)
	if err != nil {
		t.Fatalf("failed to read meetings sheet: %v", err)
	}
	if len(meetings) != 3 {
		t.Fatalf("expected header + 2 meetings, got %d", len(meetings))
	}
	if meetings[2][2] != "error" || meetings[2][7] != "model call failed" {
		t.Fatalf("unexpected meeting row: %v", meetings[2])
	}
}

func TestExport_Dispatch(t *testing.T) {
	for format, wantType := range map[Format]string{
		FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		FormatCSV:  "text/csv",
		FormatTXT:  "text/plain",
	} {
		data, contentType, ext, err := Export(format, sampleResults(), ReportMeta{})
		if err != nil {
			t.Fatalf("Export(%s) failed: %v", format, err)
		}
		if len(data) == 0 || contentType != wantType || ext != string(format) {
			t.Fatalf("Export(%s) = %q %q", format, contentType, ext)
		}
	}
}

func TestExport_Unsupported(t *testing.T) {
	_, _, _, err := Export("pdf", sampleResults(), ReportMeta{})
	if !stderrors.Is(err, usecaseerrors.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExport_Empty(t *testing.T) {
	_, _, _, err := Export(FormatCSV, nil, ReportMeta{})
	if !stderrors.Is(err, usecaseerrors.ErrEmptyReport) {
		t.Fatalf("expected ErrEmptyReport, got %v", err)
	}
}
