// Package main provides the insights CLI entry point.
// insights analyzes meeting transcripts with Gemini from the command line,
// without running the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags shared by the subcommands.
var (
	outputFormat string
	templateName string
	templateVer  string
	aliasFile    string
	verbose      bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Analyze meeting transcripts from the command line",
		Long: `insights runs the meeting analysis pipeline directly against meeting
documents on disk. Documents are JSON files containing either a single
meeting object or an array of them, with at least a transcript field.

Configuration comes from the environment (or a .env file); GEMINI_API_KEY
is required.

Examples:
  # Analyze one meeting
  insights analyze meeting.json

  # Analyze several meetings with a pinned template version
  insights analyze --template leadership --template-version 1.0 *.json

  # Cross-meeting daily report
  insights daily-report --date 2026-08-24 meetings/*.json

  # Export a team report spreadsheet
  insights export --format xlsx --out report.xlsx meetings/*.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text or json")
	cmd.PersistentFlags().StringVar(&templateName, "template", "", "prompt template name")
	cmd.PersistentFlags().StringVar(&templateVer, "template-version", "", "template version (default latest)")
	cmd.PersistentFlags().StringVar(&aliasFile, "alias-file", "", "JSON file mapping raw speaker names to canonical names")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newDailyReportCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newTemplatesCmd())
	cmd.AddCommand(newTokenCmd())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
