// Package ui is the HTTP surface. It owns the single in-memory session
// (one dataset and its analysis at a time) and exposes the analysis
// pipeline as a JSON API plus a minimal HTML index.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"datastory/adapters/llm"
	appsvc "datastory/app"
	"datastory/internal"
	"datastory/internal/config"
)

//go:embed templates/*
var embeddedFiles embed.FS

// App wires the router, services, and the session together.
type App struct {
	router    *chi.Mux
	config    *config.Config
	logger    *internal.Logger
	analysis  *appsvc.AnalysisService
	reports   *appsvc.ReportService
	predictor *llm.Predictor
	session   *Session
	templates *template.Template
}

// NewApp builds the application. When no AI key is configured the
// predictor stays nil and the predictions endpoint serves the
// deterministic fallback.
func NewApp(cfg *config.Config, logger *internal.Logger) (*App, error) {
	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		config:    cfg,
		logger:    logger,
		analysis:  appsvc.NewAnalysisService(logger),
		reports:   appsvc.NewReportService(logger),
		session:   NewSession(),
		templates: templates,
	}

	if cfg.AI.Enabled() {
		client, err := llm.NewClient(llm.Config{
			APIKey:      cfg.AI.APIKey,
			BaseURL:     cfg.AI.BaseURL,
			Model:       cfg.AI.Model,
			Timeout:     cfg.AI.Timeout,
			Temperature: cfg.AI.Temperature,
		})
		if err != nil {
			return nil, fmt.Errorf("build llm client: %w", err)
		}
		a.predictor = llm.NewPredictor(client, logger)
	} else {
		logger.Warn("[ui] no OPENAI_API_KEY configured; predictions run in fallback mode")
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/health", a.handleHealth)

	a.router.Post("/api/datasets/upload", a.handleDatasetUpload)

	a.router.Get("/api/analysis", a.handleAnalysis)
	a.router.Get("/api/analysis/statistics", a.handleStatistics)
	a.router.Get("/api/analysis/charts", a.handleCharts)
	a.router.Get("/api/analysis/insights", a.handleInsights)
	a.router.Get("/api/analysis/correlations", a.handleCorrelations)
	a.router.Get("/api/analysis/quality", a.handleQuality)
	a.router.Get("/api/analysis/narrative", a.handleNarrative)
	a.router.Post("/api/analysis/predictions", a.handlePredictions)
}

// Router exposes the handler for tests and embedding.
func (a *App) Router() http.Handler {
	return a.router
}

// Start blocks serving HTTP on the configured port.
func (a *App) Start() error {
	addr := ":" + a.config.Server.Port
	a.logger.Info("[ui] serving on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data any) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("[ui] template %s: %v", templateName, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}
