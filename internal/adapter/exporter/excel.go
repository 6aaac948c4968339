package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

const (
	summarySheet  = "Team Summary"
	meetingsSheet = "Meetings"
)

// ExportExcel renders the results as a workbook: one sheet with the merged
// team summary and one sheet listing every analyzed meeting.
func ExportExcel(results []entities.AnalysisResult, meta ReportMeta) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), summarySheet)
	if _, err := f.NewSheet(meetingsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	summaryHeaders := []string{"Name", "Meetings", "Statements", "Words", "Share %"}
	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summarySheet, cell, h)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "E1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range BuildRows(results) {
		r := i + 2
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), row.Name)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), row.Meetings)
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", r), row.SpeakCount)
		f.SetCellValue(summarySheet, fmt.Sprintf("D%d", r), row.TotalWords)
		f.SetCellValue(summarySheet, fmt.Sprintf("E%d", r), fmt.Sprintf("%.1f", row.Share))
	}
	f.SetColWidth(summarySheet, "A", "A", 24)
	f.SetColWidth(summarySheet, "B", "E", 12)

	meetingHeaders := []string{"Meeting ID", "Title", "Status", "Template", "Version", "Model", "Statements", "Error"}
	for i, h := range meetingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(meetingsSheet, cell, h)
	}
	if err := f.SetCellStyle(meetingsSheet, "A1", "H1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, result := range results {
		r := i + 2
		version := ""
		if result.TemplateVersion != nil {
			version = *result.TemplateVersion
		}
		f.SetCellValue(meetingsSheet, fmt.Sprintf("A%d", r), result.MeetingID)
		f.SetCellValue(meetingsSheet, fmt.Sprintf("B%d", r), result.MeetingTitle)
		f.SetCellValue(meetingsSheet, fmt.Sprintf("C%d", r), string(result.Status))
		f.SetCellValue(meetingsSheet, fmt.Sprintf("D%d", r), result.TemplateUsed)
		f.SetCellValue(meetingsSheet, fmt.Sprintf("E%d", r), version)
		f.SetCellValue(meetingsSheet, fmt.Sprintf("F%d", r), result.ModelUsed)
		f.SetCellValue(meetingsSheet, fmt.Sprintf("G%d", r), result.TotalStatements)
		f.SetCellValue(meetingsSheet, fmt.Sprintf("H%d", r), result.ErrorMessage)
	}
	f.SetColWidth(meetingsSheet, "A", "B", 28)
	f.SetColWidth(meetingsSheet, "C", "H", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
