package handler

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	analysisdto "github.com/johnquangdev/meeting-insights/internal/adapter/dto/analysis"
	"github.com/johnquangdev/meeting-insights/internal/adapter/exporter"
	"github.com/johnquangdev/meeting-insights/internal/infrastructure/storage"
	analysisUsecase "github.com/johnquangdev/meeting-insights/internal/usecase/analysis"
)

// Report handles report export HTTP requests
type Report struct {
	service analysisUsecase.Service
	store   *storage.ReportStore
	logger  *zap.Logger
}

// NewReportHandler creates a new report handler. The store may be nil; the
// report is then returned inline only.
func NewReportHandler(service analysisUsecase.Service, store *storage.ReportStore, logger *zap.Logger) *Report {
	return &Report{
		service: service,
		store:   store,
		logger:  logger,
	}
}

// List handles GET /reports. It returns the object names of stored reports,
// optionally narrowed by a prefix query parameter. Without object storage
// there is nothing to list.
func (h *Report) List(c echo.Context) error {
	if h.store == nil {
		return HandleError(h.logger, c, errors.ErrNotFound("report storage"))
	}

	prefix := c.QueryParam("prefix")
	if prefix == "" {
		prefix = "reports/"
	}

	reports, err := h.store.ListReports(c.Request().Context(), prefix)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed(err))
	}
	return HandleSuccess(h.logger, c, analysisdto.ListReportsResponse{
		Prefix:  prefix,
		Reports: reports,
		Count:   len(reports),
	})
}

// Export handles POST /reports/export. The meetings are analyzed as a batch
// and the merged team report encoded in the requested format. With store=true
// the file lands in object storage and the response carries a download URL;
// otherwise the encoded file is the response body.
func (h *Report) Export(c echo.Context) error {
	var req analysisdto.ExportRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	results, err := h.service.AnalyzeBatch(c.Request().Context(), analysisdto.ToRecords(req.Meetings), toOptions(req.Options))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	meta := exporter.ReportMeta{Title: req.Title, GeneratedAt: time.Now().UTC()}
	data, contentType, ext, err := exporter.Export(exporter.Format(req.Format), results, meta)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileName := fmt.Sprintf("team-report-%s.%s", time.Now().UTC().Format("20060102-150405"), ext)

	if !req.Store || h.store == nil {
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
		return c.Blob(200, contentType, data)
	}

	objectName := fmt.Sprintf("reports/%s", fileName)
	if err := h.store.SaveReport(c.Request().Context(), objectName, data, contentType); err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed(err))
	}
	url, err := h.store.ReportURL(c.Request().Context(), objectName, 24*time.Hour)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed(err))
	}

	if h.logger != nil {
		h.logger.Info("✅ Report exported",
			zap.String("object", objectName),
			zap.Int("meetings", len(req.Meetings)),
			zap.String("format", req.Format))
	}

	return HandleSuccess(h.logger, c, analysisdto.ExportResponse{
		FileName:    fileName,
		ContentType: contentType,
		Size:        len(data),
		ObjectName:  objectName,
		URL:         url,
	})
}
