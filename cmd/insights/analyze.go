package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

func newAnalyzeCmd() *cobra.Command {
	var customPrompt string
	var instructions string

	cmd := &cobra.Command{
		Use:   "analyze <file> [file...]",
		Short: "Analyze one or more meeting transcripts",
		Long: `Analyze meeting transcripts with the configured Gemini model.

With a single file containing one meeting the result is printed directly;
with multiple meetings they are analyzed concurrently and one result is
printed per meeting. A failure on one meeting does not stop the others.

Examples:
  # Analyze one meeting
  insights analyze standup.json

  # Analyze a directory of exports with a custom template
  insights analyze --template comprehensive_review exports/*.json

  # Bypass the template registry entirely
  insights analyze --prompt "List every decision made." standup.json`,
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
			opts.CustomPrompt = customPrompt
			opts.CustomInstructions = instructions

			results, err := svc.AnalyzeBatch(cmd.Context(), meetings, opts)
			if err != nil {
				return err
			}

			if outputFormat == "json" {
				return printJSON(results)
			}

			failed := 0
			for _, result := range results {
				printResult(result)
				if result.Status == entities.AnalysisStatusError {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d meetings failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&customPrompt, "prompt", "", "full custom prompt, bypasses the template registry")
	cmd.Flags().StringVar(&instructions, "instructions", "", "additional instructions appended to the template")

	return cmd
}

// printResult renders one analysis result as readable text.
func printResult(result entities.AnalysisResult) {
	title := result.MeetingTitle
	if title == "" {
		title = result.MeetingID
	}
	fmt.Printf("=== %s ===\n", title)

	if result.Status == entities.AnalysisStatusError {
		fmt.Printf("Analysis failed: %s\n\n", result.ErrorMessage)
		return
	}

	version := "custom"
	if result.TemplateVersion != nil {
		version = *result.TemplateVersion
	}
	fmt.Printf("Template: %s@%s | Model: %s | Statements: %d\n\n",
		result.TemplateUsed, version, result.ModelUsed, result.TotalStatements)

	for _, name := range result.ParticipantStats.Participants() {
		stats := result.ParticipantStats[name]
		fmt.Printf("  %-24s %4d statements, %6d words\n", name, stats.SpeakCount, stats.TotalWords)
	}

	fmt.Printf("\n%s\n\n", result.Analysis)
}
