package exporter

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// ExportText renders a plain-text report: the team summary table followed by
// every analysis body.
func ExportText(results []entities.AnalysisResult, meta ReportMeta) ([]byte, error) {
	var b strings.Builder

	title := meta.Title
	if title == "" {
		title = "Team Meeting Report"
	}
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n")
	if !meta.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n", meta.GeneratedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&b, "Meetings analyzed: %d\n\n", len(results))

	b.WriteString("Team Summary\n------------\n")
	fmt.Fprintf(&b, "%-24s %9s %11s %8s %8s\n", "Name", "Meetings", "Statements", "Words", "Share")
	for _, row := range BuildRows(results) {
		fmt.Fprintf(&b, "%-24s %9d %11d %8d %7.1f%%\n",
			row.Name, row.Meetings, row.SpeakCount, row.TotalWords, row.Share)
	}

	for _, result := range results {
		b.WriteString("\n")
		header := fmt.Sprintf("Meeting: %s (%s)", result.MeetingTitle, result.MeetingID)
		b.WriteString(header + "\n")
		b.WriteString(strings.Repeat("-", len(header)) + "\n")
		if result.Status == entities.AnalysisStatusError {
			fmt.Fprintf(&b, "Analysis failed: %s\n", result.ErrorMessage)
			continue
		}
		b.WriteString(result.Analysis + "\n")
	}

	return []byte(b.String()), nil
}
