// Package container wires configuration, dataset builds and the web front end together.
// Every binary builds one container and runs it.
package container

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"sentidash/domain/dataset"
	"sentidash/internal"
	"sentidash/internal/config"
	"sentidash/internal/datasets"
	"sentidash/ui"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Results are set by Load, one per source in selector order.
	Results    []*datasets.Result
	Dashboards *ui.Dashboards
}

// Page settings per binary
var pages = map[config.Variant]ui.Config{
	config.VariantCombined: {Title: "Combined Dashboard", Heading: "Unified Dashboard Viewer"},
	config.VariantMcd:      {Title: "McDonald's Reviews Dashboard", Heading: "McDonald's Reviews Dashboard"},
	config.VariantTwitter:  {Title: "Twitter Sentiment Dashboard", Heading: "Twitter Sentiment Dashboard"},
	config.VariantMovies:   {Title: "Movies Sentiment Analysis Dashboard", Heading: "Movies Sentiment Analysis Dashboard", Grid: true},
}

// New creates a new dependency container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if _, ok := pages[cfg.Variant]; !ok {
		return nil, fmt.Errorf("unknown variant %q", cfg.Variant)
	}

	return &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level)).With("Container"),
	}, nil
}

// Combined reports whether the container runs the combined viewer
func (c *Container) Combined() bool {
	return c.Config.Variant == config.VariantCombined
}

// Sources lists the spreadsheets this binary builds, in selector order
func (c *Container) Sources() []datasets.Source {
	paths := map[dataset.Kind]string{
		dataset.KindMcd:     c.Config.Data.McdFile,
		dataset.KindTwitter: c.Config.Data.TwitterFile,
		dataset.KindMovies:  c.Config.Data.MoviesFile,
	}

	var sources []datasets.Source
	for _, kind := range dataset.Kinds {
		if c.Combined() || string(kind) == string(c.Config.Variant) {
			sources = append(sources, datasets.Source{Kind: kind, Path: paths[kind]})
		}
	}
	return sources
}

// Options returns the build options of this binary
func (c *Container) Options() datasets.Options {
	variant := datasets.Standalone
	if c.Combined() {
		variant = datasets.Combined
	}
	return datasets.Options{
		Variant:            variant,
		FoldCaseReviewTime: c.Config.Data.FoldCaseReviewTime,
	}
}

// UIConfig returns the page settings of this binary
func (c *Container) UIConfig() ui.Config {
	page := pages[c.Config.Variant]
	page.AssetsDir = c.Config.Paths.AssetsDir
	return page
}

// Load builds every dataset once. The combined viewer keeps failed datasets as
// placeholders; a standalone dashboard returns the first failure.
func (c *Container) Load(ctx context.Context) error {
	sources := c.Sources()
	c.Logger.Info("building %d dataset(s) for %s", len(sources), c.Config.Variant)
	for _, src := range sources {
		c.Logger.Debug("%s <- %s", src.Kind, src.Path)
	}

	results := datasets.LoadAll(ctx, sources, c.Options())
	for _, res := range results {
		if res.OK() {
			c.Logger.Info("%s: %d charts, %d rows kept, %d dropped",
				res.Kind, len(res.Charts), res.Report.RowsKept, res.Report.RowsDropped)
			continue
		}
		if !c.Combined() {
			return fmt.Errorf("%s dashboard: %w", res.Kind, res.Err)
		}
		c.Logger.Warn("%s unavailable: %v", res.Kind, res.Err)
	}

	if err := c.writeWordCloud(results); err != nil {
		return err
	}

	dashboards, err := ui.NewDashboards(results)
	if err != nil {
		return err
	}
	c.Results = results
	c.Dashboards = dashboards
	return nil
}

// writeWordCloud saves the word cloud to the configured path, when there is one
func (c *Container) writeWordCloud(results []*datasets.Result) error {
	path := c.Config.Paths.WordCloudPath
	if path == "" || c.Combined() {
		return nil
	}
	for _, res := range results {
		if res.WordCloud == nil {
			continue
		}
		if err := res.WordCloud.WriteFile(path); err != nil {
			return fmt.Errorf("write word cloud: %w", err)
		}
		c.Logger.Info("word cloud written to %s", path)
	}
	return nil
}

// Run serves the built dashboards until ctx is cancelled
func (c *Container) Run(ctx context.Context) error {
	if c.Dashboards == nil {
		return fmt.Errorf("dashboards not loaded")
	}
	addr := c.Config.Addr()

	if c.Combined() {
		gin.SetMode(c.Config.Server.GinMode)
		server, err := ui.NewServer(c.Dashboards, c.UIConfig())
		if err != nil {
			return err
		}
		c.Logger.Info("combined viewer listening on %s", addr)
		return server.Run(ctx, addr)
	}

	app, err := ui.NewApp(c.Dashboards, dataset.Kind(c.Config.Variant), c.UIConfig())
	if err != nil {
		return err
	}
	c.Logger.Info("%s dashboard listening on %s", c.Config.Variant, addr)
	return app.Start(ctx, addr)
}
