package ui

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sentidash/domain/dataset"
	"sentidash/ui/templates/fragments"
)

// App is a standalone dashboard serving a single dataset
type App struct {
	router     *chi.Mux
	templates  *template.Template
	dashboards *Dashboards
	kind       dataset.Kind
	config     Config
	logo       string
}

// NewApp creates a standalone dashboard for kind
func NewApp(dashboards *Dashboards, kind dataset.Kind, config Config) (*App, error) {
	if _, ok := dashboards.Section(kind.String()); !ok {
		return nil, fmt.Errorf("no %s dashboard was built", kind)
	}
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	app := &App{
		router:     chi.NewRouter(),
		templates:  templates,
		dashboards: dashboards,
		kind:       kind,
		config:     config,
		logo:       config.logo(),
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(requestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(staticFiles()))
	a.router.Handle("/static/*", http.StripPrefix("/static/", staticFS))
	if a.config.AssetsDir != "" {
		assets := http.FileServer(http.Dir(a.config.AssetsDir))
		a.router.Handle("/assets/*", http.StripPrefix("/assets/", assets))
	}
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/charts/{name}/{file}", a.handleChartPNG)
	a.router.Get("/wordcloud/{file}", a.handleWordCloud)
	a.router.Get("/api/datasets", a.handleReports)
	a.router.Get("/healthz", a.handleHealth)
	a.router.Handle("/metrics", promhttp.Handler())
}

// Handler exposes the router for tests and custom listeners
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves until ctx is cancelled
func (a *App) Start(ctx context.Context, addr string) error {
	return serve(ctx, addr, a.router)
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	body, err := execute(a.templates, templateName, data)
	if err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(body); err != nil {
		log.Printf("Error writing template response: %v", err)
	}
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	sec, _ := a.dashboards.Section(a.kind.String())
	sec.Grid = a.config.Grid
	a.renderTemplate(w, fragments.Page, Page{
		Title:   a.config.Title,
		Heading: a.config.Heading,
		Logo:    a.logo,
		Footer:  a.config.footer(),
		Section: sec,
	})
}

func (a *App) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	body, err := a.dashboards.ChartPNG(chi.URLParam(r, "name"), chi.URLParam(r, "file"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(body)
}

func (a *App) handleWordCloud(w http.ResponseWriter, r *http.Request) {
	body, err := a.dashboards.WordCloudPNG(chi.URLParam(r, "file"))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(body)
}

func (a *App) handleReports(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.dashboards.Reports()); err != nil {
		log.Printf("[API] encode reports: %v", err)
	}
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
