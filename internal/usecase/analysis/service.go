package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-insights/internal/usecase/errors"
	"github.com/johnquangdev/meeting-insights/internal/usecase/prompt"
	"github.com/johnquangdev/meeting-insights/internal/usecase/transcript"
	"github.com/johnquangdev/meeting-insights/pkg/jobcontext"
)

// CustomTemplateName is recorded as template_used when a caller-supplied
// prompt bypassed the registry. Custom prompts have no version.
const CustomTemplateName = "custom"

// DefaultTemplate is used when the caller does not name one.
const DefaultTemplate = "default"

// Generator produces analysis text from an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// AnalyzeOptions selects the template and extra instructions for a run.
// CustomPrompt replaces the registry template entirely; Date overrides the
// anchor derived from the meeting dates.
type AnalyzeOptions struct {
	Template           string
	Version            string
	CustomPrompt       string
	CustomInstructions string
	Date               string
}

// Service runs the transcript analysis pipeline: parse, normalize, aggregate
// stats, assemble the prompt, and call the model.
type Service interface {
	AnalyzeMeeting(ctx context.Context, meeting entities.MeetingRecord, opts AnalyzeOptions) (entities.AnalysisResult, error)
	AnalyzeBatch(ctx context.Context, meetings []entities.MeetingRecord, opts AnalyzeOptions) ([]entities.AnalysisResult, error)
	AnalyzeAggregated(ctx context.Context, meetings []entities.MeetingRecord, opts AnalyzeOptions) (entities.AggregatedResult, error)
}

// Config tunes the service. Zero values fall back to safe defaults.
// DefaultTemplate and DefaultVersion apply when a request names neither a
// template nor a custom prompt.
type Config struct {
	DefaultTemplate string
	DefaultVersion  string
	MaxConcurrency  int
	MaxRetries      int
	CacheTTL        time.Duration
}

type service struct {
	parser     *transcript.Parser
	normalizer *transcript.Normalizer
	aggregator *transcript.Aggregator
	registry   *prompt.Registry
	assembler  *prompt.Assembler
	generator  Generator
	store      cache.Store
	logger     *zap.Logger

	defaultTemplate string
	defaultVersion  string
	maxConcurrency  int
	maxRetries      int
	cacheTTL        time.Duration
}

// NewService creates the analysis service. The cache store may be nil, in
// which case every analysis goes to the model.
func NewService(
	normalizer *transcript.Normalizer,
	registry *prompt.Registry,
	generator Generator,
	store cache.Store,
	logger *zap.Logger,
	cfg Config,
) Service {
	if cfg.DefaultTemplate == "" {
		cfg.DefaultTemplate = DefaultTemplate
	}
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 4
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 3
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &service{
		parser:          transcript.NewParser(),
		normalizer:      normalizer,
		aggregator:      transcript.NewAggregator(),
		registry:        registry,
		assembler:       prompt.NewAssembler(),
		generator:       generator,
		store:           store,
		logger:          logger,
		defaultTemplate: cfg.DefaultTemplate,
		defaultVersion:  cfg.DefaultVersion,
		maxConcurrency:  cfg.MaxConcurrency,
		maxRetries:      cfg.MaxRetries,
		cacheTTL:        cfg.CacheTTL,
	}
}

// resolvedPrompt carries the template choice a run actually used.
type resolvedPrompt struct {
	content  string
	template string
	version  *string
}

// resolvePrompt picks the template content for the run. A custom prompt wins
// over everything and is recorded without a version. An explicitly requested
// version that does not exist is an error, never a fallback.
func (s *service) resolvePrompt(opts AnalyzeOptions) (resolvedPrompt, error) {
	if opts.CustomPrompt != "" {
		return resolvedPrompt{content: opts.CustomPrompt, template: CustomTemplateName}, nil
	}

	name := opts.Template
	if name == "" {
		name = s.defaultTemplate
	}
	version := opts.Version
	if version == "" {
		version = s.defaultVersion
	}

	tmpl, resolved, err := s.registry.Resolve(name, version)
	if err != nil {
		return resolvedPrompt{}, err
	}
	return resolvedPrompt{content: tmpl.Content, template: name, version: &resolved}, nil
}

// prepare parses and normalizes one transcript and collects its statistics.
func (s *service) prepare(raw string) (entities.ParsedTranscript, entities.StatsByParticipant) {
	parsed := s.parser.Parse(raw)
	for i := range parsed.Statements {
		parsed.Statements[i].Speaker = s.normalizer.Normalize(parsed.Statements[i].Speaker)
	}
	return parsed, s.aggregator.Collect(parsed.Statements)
}

// AnalyzeMeeting analyzes a single meeting. An empty transcript is not an
// error: the result reports zero statistics and the model still sees the
// meeting context. Model failures are recorded in the result status so batch
// callers can keep going.
func (s *service) AnalyzeMeeting(ctx context.Context, meeting entities.MeetingRecord, opts AnalyzeOptions) (entities.AnalysisResult, error) {
	rp, err := s.resolvePrompt(opts)
	if err != nil {
		return entities.AnalysisResult{}, err
	}

	parsed, stats := s.prepare(meeting.Transcript)

	date := opts.Date
	if date == "" && !meeting.Date.IsZero() {
		date = meeting.Date.Format("2006-01-02")
	}

	formatted := s.assembler.FormatTranscript(meeting, parsed, stats)
	assembled := s.assembler.Assemble(rp.content, prompt.Request{
		FormattedText:      formatted,
		Participants:       stats.Participants(),
		CustomInstructions: opts.CustomInstructions,
		Date:               date,
	})

	result := entities.AnalysisResult{
		MeetingID:        meeting.ID,
		MeetingTitle:     meeting.Title,
		Status:           entities.AnalysisStatusSuccess,
		ParticipantStats: stats,
		TotalStatements:  stats.TotalStatements(),
		TemplateUsed:     rp.template,
		TemplateVersion:  rp.version,
		ModelUsed:        s.generator.Model(),
		Timestamp:        time.Now().UTC(),
	}

	analysis, err := s.generate(ctx, assembled)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Meeting analysis failed",
				zap.String("meeting_id", meeting.ID),
				zap.String("template", rp.template),
				zap.Error(err))
		}
		result.Status = entities.AnalysisStatusError
		result.ErrorMessage = err.Error()
		return result, nil
	}

	result.Analysis = analysis
	if s.logger != nil {
		s.logger.Info("✅ Meeting analyzed",
			zap.String("meeting_id", meeting.ID),
			zap.String("template", rp.template),
			zap.Int("statements", result.TotalStatements))
	}
	return result, nil
}

// AnalyzeBatch analyzes meetings concurrently with per-meeting isolation:
// one failed meeting never aborts the rest, and results come back in input
// order.
func (s *service) AnalyzeBatch(ctx context.Context, meetings []entities.MeetingRecord, opts AnalyzeOptions) ([]entities.AnalysisResult, error) {
	if len(meetings) == 0 {
		return nil, errors.ErrNoMeetings
	}

	// Resolve once up front so a bad template fails the whole request
	// before any model call.
	if _, err := s.resolvePrompt(opts); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("🔄 Batch analysis started",
			zap.Int("meetings", len(meetings)),
			zap.Int("concurrency", s.maxConcurrency))
	}

	results := make([]entities.AnalysisResult, len(meetings))
	sem := make(chan struct{}, s.maxConcurrency)
	var wg sync.WaitGroup

	for i, meeting := range meetings {
		wg.Add(1)
		go func(idx int, m entities.MeetingRecord) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			jobCtx, cancel := jobcontext.JobBegin(ctx, uuid.New(), "meeting_analysis", idx)
			defer cancel()

			result, err := s.AnalyzeMeeting(jobCtx, m, opts)
			if s.logger != nil {
				jobID, _ := jobcontext.JobID(jobCtx)
				s.logger.Debug("Batch job finished",
					zap.String("job_id", jobID.String()),
					zap.Int("slot", jobcontext.WorkerSlot(jobCtx)),
					zap.Duration("elapsed", jobcontext.Elapsed(jobCtx)),
					zap.String("meeting_id", m.ID))
			}
			if err != nil {
				result = entities.AnalysisResult{
					MeetingID:    m.ID,
					MeetingTitle: m.Title,
					Status:       entities.AnalysisStatusError,
					ErrorMessage: err.Error(),
					ModelUsed:    s.generator.Model(),
					Timestamp:    time.Now().UTC(),
				}
			}
			results[idx] = result
		}(i, meeting)
	}
	wg.Wait()

	if s.logger != nil {
		failed := 0
		for _, r := range results {
			if r.Status == entities.AnalysisStatusError {
				failed++
			}
		}
		s.logger.Info("✅ Batch analysis finished",
			zap.Int("meetings", len(meetings)),
			zap.Int("failed", failed))
	}
	return results, nil
}

// AnalyzeAggregated combines several meetings into one document, ordered by
// date, and analyzes them together with cross-meeting statistics.
func (s *service) AnalyzeAggregated(ctx context.Context, meetings []entities.MeetingRecord, opts AnalyzeOptions) (entities.AggregatedResult, error) {
	if len(meetings) == 0 {
		return entities.AggregatedResult{}, errors.ErrNoMeetings
	}

	if opts.Template == "" && opts.CustomPrompt == "" {
		opts.Template = "comprehensive_review"
	}
	rp, err := s.resolvePrompt(opts)
	if err != nil {
		return entities.AggregatedResult{}, err
	}

	sorted := make([]entities.MeetingRecord, len(meetings))
	copy(sorted, meetings)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	perMeeting := make([]entities.StatsByParticipant, 0, len(sorted))
	titles := make([]string, 0, len(sorted))
	participantSet := map[string]struct{}{}
	for _, m := range sorted {
		_, stats := s.prepare(m.Transcript)
		perMeeting = append(perMeeting, stats)
		titles = append(titles, m.Title)
		for _, p := range m.Participants {
			participantSet[s.normalizer.Normalize(p)] = struct{}{}
		}
		for name := range stats {
			participantSet[name] = struct{}{}
		}
	}
	merged := s.aggregator.Merge(perMeeting)

	participants := make([]string, 0, len(participantSet))
	for p := range participantSet {
		participants = append(participants, p)
	}
	sort.Strings(participants)

	totalWords := 0
	for _, ps := range merged {
		totalWords += ps.TotalWords
	}
	aggParticipants := make([]entities.AggregatedParticipant, 0, len(participants))
	for _, p := range participants {
		ps := merged[p]
		if ps == nil {
			ps = &entities.ParticipantStats{}
		}
		share := 0.0
		if totalWords > 0 {
			share = float64(ps.TotalWords) / float64(totalWords) * 100
		}
		aggParticipants = append(aggParticipants, entities.AggregatedParticipant{
			Name:       p,
			SpeakCount: ps.SpeakCount,
			WordCount:  ps.TotalWords,
			Percentage: roundShare(share),
		})
	}

	date := opts.Date
	if date == "" && !sorted[0].Date.IsZero() {
		date = sorted[0].Date.Format("2006-01-02")
	}

	instructions := opts.CustomInstructions
	if rp.template == "daily_report" {
		note := fmt.Sprintf("Important: exactly %d meeting(s) were analyzed. Use this number wherever the report states a meeting count.", len(sorted))
		if instructions != "" {
			instructions += "\n\n"
		}
		instructions += note
	}

	aggregated := s.assembler.FormatAggregated(sorted)
	assembled := s.assembler.Assemble(rp.content, prompt.Request{
		FormattedText:      aggregated,
		Participants:       participants,
		CustomInstructions: instructions,
		Date:               date,
		MeetingsData:       aggregated,
	})

	result := entities.AggregatedResult{
		Status:        entities.AnalysisStatusSuccess,
		MeetingCount:  len(sorted),
		MeetingTitles: titles,
		DateRange: entities.DateRange{
			Start: sorted[0].Date,
			End:   sorted[len(sorted)-1].Date,
		},
		Participants:    aggParticipants,
		TemplateUsed:    rp.template,
		TemplateVersion: rp.version,
		ModelUsed:       s.generator.Model(),
		Timestamp:       time.Now().UTC(),
	}

	analysis, err := s.generate(ctx, assembled)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Aggregated analysis failed",
				zap.Int("meetings", len(sorted)),
				zap.String("template", rp.template),
				zap.Error(err))
		}
		result.Status = entities.AnalysisStatusError
		result.ErrorMessage = err.Error()
		return result, nil
	}

	result.Analysis = analysis
	if s.logger != nil {
		s.logger.Info("✅ Aggregated analysis finished",
			zap.Int("meetings", len(sorted)),
			zap.String("template", rp.template))
	}
	return result, nil
}

// generate calls the model with caching and retry. Only transient failures
// retry; anything the model rejects outright is permanent.
func (s *service) generate(ctx context.Context, assembled string) (string, error) {
	key := cacheKey(assembled, s.generator.Model())
	if s.store != nil {
		if cached, ok := s.store.Get(ctx, key); ok {
			if s.logger != nil {
				s.logger.Debug("Analysis cache hit", zap.String("key", key))
			}
			return cached, nil
		}
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.maxRetries)),
		ctx,
	)

	var analysis string
	operation := func() error {
		text, err := s.generator.Generate(ctx, assembled)
		if err != nil {
			if jobcontext.IsRetryableError(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		if text == "" {
			return backoff.Permanent(errors.ErrEmptyModelResponse)
		}
		analysis = text
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrModelCall, err)
	}

	if s.store != nil {
		s.store.Set(ctx, key, analysis, s.cacheTTL)
	}
	return analysis, nil
}

func cacheKey(prompt, model string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return "analysis:" + hex.EncodeToString(sum[:])
}

func roundShare(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
