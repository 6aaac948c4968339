package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/errors"
	analysisdto "github.com/johnquangdev/meeting-insights/internal/adapter/dto/analysis"
	"github.com/johnquangdev/meeting-insights/internal/usecase/prompt"
)

// Template handles template listing HTTP requests
type Template struct {
	registry *prompt.Registry
	logger   *zap.Logger
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(registry *prompt.Registry, logger *zap.Logger) *Template {
	return &Template{
		registry: registry,
		logger:   logger,
	}
}

// List handles GET /templates
func (h *Template) List(c echo.Context) error {
	infos := h.registry.ListTemplates()
	summaries := make([]analysisdto.TemplateSummary, 0, len(infos))
	for _, info := range infos {
		summaries = append(summaries, analysisdto.TemplateSummary{
			Name:          info.Name,
			LatestVersion: info.LatestVersion,
			Description:   info.Description,
			Versions:      info.Versions,
		})
	}
	return HandleSuccess(h.logger, c, summaries)
}

// Versions handles GET /templates/:name/versions
func (h *Template) Versions(c echo.Context) error {
	name := c.Param("name")
	if name == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("template name is required"))
	}

	versions, err := h.registry.ListVersions(name)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	details := make([]analysisdto.TemplateVersionInfo, 0, len(versions))
	for _, version := range versions {
		tmpl, resolved, err := h.registry.Resolve(name, version)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		details = append(details, analysisdto.TemplateVersionInfo{
			Version:     resolved,
			Description: tmpl.Description,
			IsLatest:    tmpl.IsLatest,
			CreatedAt:   tmpl.CreatedAt,
			Author:      tmpl.Author,
		})
	}
	return HandleSuccess(h.logger, c, details)
}
