package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-insights/internal/adapter/exporter"
)

func newExportCmd() *cobra.Command {
	var format string
	var outPath string
	var title string

	cmd := &cobra.Command{
		Use:   "export <file> [file...]",
		Short: "Analyze meetings and write a team report file",
		Long: `Analyze the given meetings as a batch and write the merged team report
in the chosen format. Supported formats are xlsx, csv, and txt.

Examples:
  # Spreadsheet with summary and per-meeting sheets
  insights export --format xlsx --out team-report.xlsx exports/*.json

  # CSV of per-participant totals
  insights export --format csv --out stats.csv exports/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			svc, err := buildService(logger)
			if err != nil {
				return err
			}

			meetings, err := loadMeetings(args)
			if err != nil {
				return err
			}

			results, err := svc.AnalyzeBatch(cmd.Context(), meetings, analyzeOptions())
			if err != nil {
				return err
			}

			meta := exporter.ReportMeta{Title: title, GeneratedAt: time.Now().UTC()}
			data, _, ext, err := exporter.Export(exporter.Format(format), results, meta)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = fmt.Sprintf("team-report-%s.%s", time.Now().UTC().Format("20060102-150405"), ext)
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			fmt.Printf("Report written to %s (%d meetings, %d bytes)\n", outPath, len(results), len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "report format: xlsx, csv, or txt")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (default team-report-<timestamp>.<ext>)")
	cmd.Flags().StringVar(&title, "title", "Team Report", "report title")

	return cmd
}
