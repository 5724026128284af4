package ui

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sentidash/ui/templates/fragments"
)

const (
	logoFile      = "3.png"
	defaultFooter = "Created using Go and Plotly"
)

// Config holds page settings shared by the combined viewer and the standalone dashboards
type Config struct {
	AssetsDir string
	Title     string
	Heading   string
	Footer    string
	// Grid lays charts out two per row.
	Grid bool
}

func (c Config) footer() string {
	if c.Footer == "" {
		return defaultFooter
	}
	return c.Footer
}

// logo returns the logo URL when the assets directory has one
func (c Config) logo() string {
	if c.AssetsDir == "" {
		return ""
	}
	if _, err := os.Stat(filepath.Join(c.AssetsDir, logoFile)); err != nil {
		return ""
	}
	return "/assets/" + logoFile
}

// Server is the combined viewer: one page with a selector over every dashboard
type Server struct {
	router     *gin.Engine
	templates  *template.Template
	dashboards *Dashboards
	config     Config
	logo       string
}

// NewServer creates the combined viewer over prebuilt dashboards
func NewServer(dashboards *Dashboards, config Config) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:     gin.Default(),
		templates:  templates,
		dashboards: dashboards,
		config:     config,
		logo:       config.logo(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(ginRequestID())

	log.Printf("[Static] Serving static files from embedded FS at /static")
	s.router.StaticFS("/static", http.FS(staticFiles()))
	if s.config.AssetsDir != "" {
		s.router.Static("/assets", s.config.AssetsDir)
	}
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/dashboard/:name", s.handleDashboard)
	s.router.GET("/charts/:name/:file", s.handleChartPNG)
	s.router.GET("/wordcloud/:file", s.handleWordCloud)
	s.router.GET("/api/datasets", s.handleReports)
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// Handler exposes the router for tests and custom listeners
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	return serve(ctx, addr, s.router)
}

func (s *Server) page(selected Section) Page {
	p := Page{
		Title:    s.config.Title,
		Heading:  s.config.Heading,
		Logo:     s.logo,
		Footer:   s.config.footer(),
		Combined: true,
		Section:  selected,
	}
	for _, k := range s.dashboards.Kinds() {
		p.Options = append(p.Options, Option{Value: k.String(), Label: k.Title(), Selected: k == selected.Kind})
	}
	return p
}

func (s *Server) render(c *gin.Context, name string, data interface{}) {
	body, err := execute(s.templates, name, data)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func (s *Server) handleIndex(c *gin.Context) {
	name := c.DefaultQuery("dashboard", s.dashboards.Kinds()[0].String())
	sec, ok := s.dashboards.Section(name)
	if !ok {
		c.String(http.StatusNotFound, "unknown dashboard %q", name)
		return
	}
	s.render(c, fragments.Page, s.page(sec))
}

func (s *Server) handleDashboard(c *gin.Context) {
	name := c.Param("name")
	sec, ok := s.dashboards.Section(name)
	if !ok {
		c.String(http.StatusNotFound, "unknown dashboard %q", name)
		return
	}
	if !isHTMX(c.Request) {
		s.render(c, fragments.Page, s.page(sec))
		return
	}
	s.render(c, fragments.Section, sec)
}

func (s *Server) handleChartPNG(c *gin.Context) {
	body, err := s.dashboards.ChartPNG(c.Param("name"), c.Param("file"))
	if err != nil {
		c.String(statusFor(err), "%v", err)
		return
	}
	c.Data(http.StatusOK, "image/png", body)
}

func (s *Server) handleWordCloud(c *gin.Context) {
	body, err := s.dashboards.WordCloudPNG(c.Param("file"))
	if err != nil {
		c.String(statusFor(err), "%v", err)
		return
	}
	c.Data(http.StatusOK, "image/png", body)
}

func (s *Server) handleReports(c *gin.Context) {
	body, err := json.Marshal(s.dashboards.Reports())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

func (s *Server) handleHealth(c *gin.Context) {
	status := "ok"
	if !s.dashboards.Healthy() {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// serve runs an http.Server on addr and shuts it down when ctx ends
func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("Shutting down server on %s", addr)
		return srv.Shutdown(shutdownCtx)
	}
}
