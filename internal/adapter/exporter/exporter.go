package exporter

import (
	"sort"
	"time"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/usecase/errors"
)

// Format selects the report output encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatTXT  Format = "txt"
)

// ReportMeta labels an exported report.
type ReportMeta struct {
	Title       string
	GeneratedAt time.Time
}

// Row is one participant line in the team summary, merged across every
// analyzed meeting.
type Row struct {
	Name       string
	Meetings   int
	SpeakCount int
	TotalWords int
	Share      float64
}

// BuildRows merges participant statistics across analysis results into
// summary rows, ordered by word count descending so the most active
// participants lead the report. Share is the participant's slice of all
// words spoken.
func BuildRows(results []entities.AnalysisResult) []Row {
	type acc struct {
		meetings   int
		speakCount int
		totalWords int
	}
	byName := map[string]*acc{}
	totalWords := 0

	for _, result := range results {
		for name, ps := range result.ParticipantStats {
			a, ok := byName[name]
			if !ok {
				a = &acc{}
				byName[name] = a
			}
			if ps.SpeakCount > 0 {
				a.meetings++
			}
			a.speakCount += ps.SpeakCount
			a.totalWords += ps.TotalWords
			totalWords += ps.TotalWords
		}
	}

	rows := make([]Row, 0, len(byName))
	for name, a := range byName {
		share := 0.0
		if totalWords > 0 {
			share = float64(a.totalWords) / float64(totalWords) * 100
		}
		rows = append(rows, Row{
			Name:       name,
			Meetings:   a.meetings,
			SpeakCount: a.speakCount,
			TotalWords: a.totalWords,
			Share:      share,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalWords != rows[j].TotalWords {
			return rows[i].TotalWords > rows[j].TotalWords
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// Export renders the analysis results in the requested format and returns the
// encoded report with its MIME content type and file extension.
func Export(format Format, results []entities.AnalysisResult, meta ReportMeta) (data []byte, contentType, ext string, err error) {
	if len(results) == 0 {
		return nil, "", "", errors.ErrEmptyReport
	}
	switch format {
	case FormatXLSX:
		data, err = ExportExcel(results, meta)
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", err
	case FormatCSV:
		data, err = ExportCSV(results, meta)
		return data, "text/csv", "csv", err
	case FormatTXT:
		data, err = ExportText(results, meta)
		return data, "text/plain", "txt", err
	default:
		return nil, "", "", errors.ErrUnsupportedFormat
	}
}
