package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/adapter/ingest"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-insights/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-insights/internal/usecase/prompt"
	"github.com/johnquangdev/meeting-insights/internal/usecase/transcript"
	pkgai "github.com/johnquangdev/meeting-insights/pkg/ai"
	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// newLogger builds the CLI logger. Quiet by default so command output stays
// parseable; --verbose switches to full development logging.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewNop(), nil
}

// buildService wires the analysis pipeline for a single CLI invocation. The
// cache is in-memory; repeated prompts within one run still hit it.
func buildService(logger *zap.Logger) (analysis.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	aliases := map[string]string{}
	path := aliasFile
	if path == "" {
		path = cfg.Analysis.AliasFile
	}
	if path != "" {
		aliases, err = transcript.LoadAliases(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load speaker aliases: %w", err)
		}
	}

	registry, err := prompt.NewRegistry(logger)
	if err != nil {
		return nil, err
	}

	svc := analysis.NewService(
		transcript.NewNormalizer(aliases),
		registry,
		pkgai.NewGeminiClient(&cfg.Gemini),
		cache.NewMemoryStore(),
		logger,
		analysis.Config{
			DefaultTemplate: cfg.Analysis.DefaultTemplate,
			DefaultVersion:  cfg.Analysis.DefaultVersion,
			MaxConcurrency:  cfg.Analysis.MaxConcurrency,
			MaxRetries:      cfg.Analysis.MaxRetries,
			CacheTTL:        cfg.Analysis.CacheTTL,
		},
	)
	return svc, nil
}

// loadMeetings reads meeting documents from the given JSON files. Each file
// holds either one meeting object or an array of them.
func loadMeetings(paths []string) ([]entities.MeetingRecord, error) {
	decoder := ingest.NewDecoder()

	var meetings []entities.MeetingRecord
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var docs []map[string]interface{}
		if err := json.Unmarshal(data, &docs); err != nil {
			var doc map[string]interface{}
			if err := json.Unmarshal(data, &doc); err != nil {
				return nil, fmt.Errorf("%s is not a meeting document or array: %w", path, err)
			}
			docs = []map[string]interface{}{doc}
		}

		records, err := decoder.DecodeAll(docs)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		meetings = append(meetings, records...)
	}
	return meetings, nil
}

// analyzeOptions builds the usecase options from the global flags.
func analyzeOptions() analysis.AnalyzeOptions {
	return analysis.AnalyzeOptions{
		Template: templateName,
		Version:  templateVer,
	}
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
