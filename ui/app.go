// Package ui exposes the analysis pipeline over HTTP. Rendering lives in
// the browser; these handlers only frame the documented request and
// response shapes.
package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"corrlens/app"
	"corrlens/internal/config"
	"corrlens/ports"
)

// App represents the HTTP application
type App struct {
	router     *chi.Mux
	config     *config.Config
	analysis   *app.AnalysisService
	timeseries *app.TimeSeriesService
	repo       ports.AnalysisRepository // nil when persistence is disabled
}

// NewApp creates the HTTP application around the pipeline services
func NewApp(cfg *config.Config, analysis *app.AnalysisService, timeseries *app.TimeSeriesService, repo ports.AnalysisRepository) *App {
	a := &App{
		router:     chi.NewRouter(),
		config:     cfg,
		analysis:   analysis,
		timeseries: timeseries,
		repo:       repo,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	a.router.Post("/api/upload", a.handleUpload)
	a.router.Post("/api/correlation", a.handleCorrelation)
	a.router.Post("/api/correlation/highest-pair", a.handleHighestPair)
	a.router.Post("/api/timeseries", a.handleTimeSeries)
	a.router.Post("/api/report", a.handleReport)

	a.router.Get("/api/analyses", a.handleListAnalyses)
	a.router.Get("/api/analyses/{id}", a.handleGetAnalysis)
}

// Router exposes the configured router
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server on the configured port
func (a *App) Start() error {
	addr := fmt.Sprintf(":%s", a.config.Server.Port)
	return http.ListenAndServe(addr, a.router)
}
