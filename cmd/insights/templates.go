package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-insights/internal/usecase/prompt"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the available prompt templates",
		Long: `List the built-in prompt templates with their versions. The latest
version of each template is what an unpinned analysis run uses.

Examples:
  insights templates
  insights templates -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			registry, err := prompt.NewRegistry(logger)
			if err != nil {
				return err
			}

			infos := registry.ListTemplates()
			if outputFormat == "json" {
				return printJSON(infos)
			}

			for _, info := range infos {
				fmt.Printf("%-24s latest %-6s versions: %s\n",
					info.Name, info.LatestVersion, strings.Join(info.Versions, ", "))
				if info.Description != "" {
					fmt.Printf("%24s %s\n", "", info.Description)
				}
			}
			return nil
		},
	}
	return cmd
}
