package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-insights/errors"
	analysisdto "github.com/johnquangdev/meeting-insights/internal/adapter/dto/analysis"
	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
	"github.com/johnquangdev/meeting-insights/internal/domain/repositories"
	analysisUsecase "github.com/johnquangdev/meeting-insights/internal/usecase/analysis"
)

// Analysis handles analysis-related HTTP requests
type Analysis struct {
	service  analysisUsecase.Service
	meetings repositories.MeetingRepository
	records  repositories.AnalysisRepository
	logger   *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler. The repositories may be
// nil when the API runs without a database; meetings and results are then not
// persisted and stored-meeting routes return not found.
func NewAnalysisHandler(service analysisUsecase.Service, meetings repositories.MeetingRepository, records repositories.AnalysisRepository, logger *zap.Logger) *Analysis {
	return &Analysis{
		service:  service,
		meetings: meetings,
		records:  records,
		logger:   logger,
	}
}

func toOptions(opts analysisdto.Options) analysisUsecase.AnalyzeOptions {
	return analysisUsecase.AnalyzeOptions{
		Template:           opts.Template,
		Version:            opts.Version,
		CustomPrompt:       opts.CustomPrompt,
		CustomInstructions: opts.CustomInstructions,
		Date:               opts.Date,
	}
}

// AnalyzeMeeting handles POST /analysis/meetings
func (h *Analysis) AnalyzeMeeting(c echo.Context) error {
	var req analysisdto.AnalyzeMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	record := req.Meeting.ToRecord()
	result, err := h.service.AnalyzeMeeting(c.Request().Context(), record, toOptions(req.Options))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.persistMeeting(c, record)
	h.persist(c, result)
	return HandleSuccess(h.logger, c, result)
}

// AnalyzeBatch handles POST /analysis/meetings/batch
func (h *Analysis) AnalyzeBatch(c echo.Context) error {
	var req analysisdto.AnalyzeBatchRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	records := analysisdto.ToRecords(req.Meetings)
	results, err := h.service.AnalyzeBatch(c.Request().Context(), records, toOptions(req.Options))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	for _, record := range records {
		h.persistMeeting(c, record)
	}
	for _, result := range results {
		h.persist(c, result)
	}
	return HandleSuccess(h.logger, c, results)
}

// AnalyzeAggregated handles POST /analysis/meetings/aggregate
func (h *Analysis) AnalyzeAggregated(c echo.Context) error {
	var req analysisdto.AnalyzeAggregatedRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	records := analysisdto.ToRecords(req.Meetings)
	result, err := h.service.AnalyzeAggregated(c.Request().Context(), records, toOptions(req.Options))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	for _, record := range records {
		h.persistMeeting(c, record)
	}
	return HandleSuccess(h.logger, c, result)
}

// Reanalyze handles POST /analysis/meetings/:id/reanalyze. The meeting is
// loaded from storage by its external ID and run through the pipeline again,
// so a stored transcript can be re-analyzed with a newer template.
func (h *Analysis) Reanalyze(c echo.Context) error {
	meetingID := c.Param("id")
	if meetingID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting id is required"))
	}
	if h.meetings == nil {
		return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID))
	}

	var opts analysisdto.Options
	if err := c.Bind(&opts); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&opts); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	meeting, err := h.meetings.FindByExternalID(c.Request().Context(), meetingID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID))
		}
		return HandleError(h.logger, c, errors.ErrDBQueryFailed(err))
	}

	result, err := h.service.AnalyzeMeeting(c.Request().Context(), meeting.ToRecord(), toOptions(opts))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.persist(c, result)
	return HandleSuccess(h.logger, c, result)
}

// History handles GET /analysis/meetings/:id
func (h *Analysis) History(c echo.Context) error {
	meetingID := c.Param("id")
	if meetingID == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting id is required"))
	}
	if h.records == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("analysis history"))
	}

	records, err := h.records.FindByMeetingID(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrDBQueryFailed(err))
	}
	if len(records) == 0 {
		return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID))
	}
	return HandleSuccess(h.logger, c, records)
}

// persistMeeting upserts the analyzed meeting so its transcript can be
// re-analyzed later. Failures are logged, not surfaced.
func (h *Analysis) persistMeeting(c echo.Context, record entities.MeetingRecord) {
	if h.meetings == nil || record.ID == "" {
		return
	}
	if err := h.meetings.Upsert(c.Request().Context(), entities.NewMeeting(record)); err != nil && h.logger != nil {
		h.logger.Warn("⚠️ Failed to persist meeting",
			zap.String("meeting_id", record.ID),
			zap.Error(err))
	}
}

// persist stores the result when a repository is configured. Persistence
// failures are logged, not surfaced; the analysis already succeeded.
func (h *Analysis) persist(c echo.Context, result entities.AnalysisResult) {
	if h.records == nil {
		return
	}
	if err := h.records.Create(c.Request().Context(), entities.NewAnalysisRecord(result)); err != nil && h.logger != nil {
		h.logger.Warn("⚠️ Failed to persist analysis record",
			zap.String("meeting_id", result.MeetingID),
			zap.Error(err))
	}
}
