package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// ExportCSV renders the merged team summary as CSV. The UTF-8 BOM keeps
// Excel from mangling non-ASCII participant names.
func ExportCSV(results []entities.AnalysisResult, _ ReportMeta) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"name", "meetings", "statements", "words", "share_percent"}); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range BuildRows(results) {
		record := []string{
			row.Name,
			strconv.Itoa(row.Meetings),
			strconv.Itoa(row.SpeakCount),
			strconv.Itoa(row.TotalWords),
			fmt.Sprintf("%.1f", row.Share),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
