package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func newDailyReportCmd() *cobra.Command {
	var date string
	var instructions string

	cmd := &cobra.Command{
		Use:   "daily-report <file> [file...]",
		Short: "Generate a cross-meeting daily report",
		Long: `Combine the given meetings into one aggregated analysis using the
daily_report template. Meetings are ordered by date and the prompt carries
merged speaking statistics across all of them.

The --date value is substituted into the template as-is; use whatever form
the report should display.

Examples:
  # Report over today's exported meetings
  insights daily-report --date 2026-08-24 exports/*.json

  # Use a different aggregation template
  insights daily-report --template weekly_report exports/*.json`,
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

			opts := analyzeOptions()
			if opts.Template == "" {
				opts.Template = "daily_report"
			}
			opts.Date = date
			opts.CustomInstructions = instructions

			result, err := svc.AnalyzeAggregated(cmd.Context(), meetings, opts)
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				return printJSON(result)
			}
			printAggregated(result)
			if result.Status == entities.AnalysisStatusError {
				return fmt.Errorf("aggregated analysis failed: %s", result.ErrorMessage)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "report date substituted into the template")
	cmd.Flags().StringVar(&instructions, "instructions", "", "additional instructions appended to the template")

	return cmd
}

// printAggregated renders an aggregated result as readable text.
func printAggregated(result entities.AggregatedResult) {
	fmt.Printf("=== Aggregated Report (%d meetings) ===\n", result.MeetingCount)
	for _, title := range result.MeetingTitles {
		fmt.Printf("  - %s\n", title)
	}

	if result.Status == entities.AnalysisStatusError {
		fmt.Printf("\nAnalysis failed: %s\n", result.ErrorMessage)
		return
	}

	fmt.Println("\nParticipation:")
	for _, p := range result.Participants {
		fmt.Printf("  %-24s %4d statements, %6d words (%.1f%%)\n",
			p.Name, p.SpeakCount, p.WordCount, p.Percentage)
	}

	fmt.Printf("\n%s\n", result.Analysis)
}
