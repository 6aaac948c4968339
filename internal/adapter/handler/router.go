package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-insights/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-insights/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg             *config.Config
	analysisHandler *Analysis
	templateHandler *Template
	reportHandler   *Report
	auth            *middleware.AuthMiddleware
}

// NewRouter creates a new router with all handlers. The auth middleware may
// be nil in development; routes are then open.
func NewRouter(cfg *config.Config, analysisHandler *Analysis, templateHandler *Template, reportHandler *Report, auth *middleware.AuthMiddleware) *Router {
	return &Router{
		cfg:             cfg,
		analysisHandler: analysisHandler,
		templateHandler: templateHandler,
		reportHandler:   reportHandler,
		auth:            auth,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")
	if rt.auth != nil {
		v1.Use(rt.auth.Authenticate)
	}

	rt.setupAnalysisRoutes(v1)
	rt.setupTemplateRoutes(v1)
	rt.setupReportRoutes(v1)
}

// setupAnalysisRoutes configures analysis routes
func (rt *Router) setupAnalysisRoutes(g *echo.Group) {
	analysisGroup := g.Group("/analysis")

	analysisGroup.POST("/meetings", rt.analysisHandler.AnalyzeMeeting)
	analysisGroup.POST("/meetings/batch", rt.analysisHandler.AnalyzeBatch)
	analysisGroup.POST("/meetings/aggregate", rt.analysisHandler.AnalyzeAggregated)
	analysisGroup.POST("/meetings/:id/reanalyze", rt.analysisHandler.Reanalyze)
	analysisGroup.GET("/meetings/:id", rt.analysisHandler.History)
}

// setupTemplateRoutes configures template listing routes
func (rt *Router) setupTemplateRoutes(g *echo.Group) {
	templateGroup := g.Group("/templates")

	templateGroup.GET("", rt.templateHandler.List)
	templateGroup.GET("/:name/versions", rt.templateHandler.Versions)
}

// setupReportRoutes configures report routes
func (rt *Router) setupReportRoutes(g *echo.Group) {
	reportGroup := g.Group("/reports")

	reportGroup.GET("", rt.reportHandler.List)
	reportGroup.POST("/export", rt.reportHandler.Export)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	environment := "development"
	if rt.cfg != nil {
		environment = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": environment,
		"time":        time.Now().UTC().Format(time.RFC3339),
	})
}
