package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentidash/domain/dataset"
	"sentidash/internal/datasets"
)

func TestStandaloneApp(t *testing.T) {
	d := newDashboards(t, buildResults(t, datasets.Standalone))
	app, err := NewApp(d, dataset.KindMovies, Config{Title: "Movies", Heading: "Movies Sentiment Analysis Dashboard", Grid: true})
	require.NoError(t, err)

	rec := get(t, app.Handler(), "/", nil)
	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Movies Sentiment Analysis Dashboard")
	assert.Contains(t, body, `id="chart-movies-8"`)
	assert.Contains(t, body, `class="charts grid"`)
	assert.NotContains(t, body, "dashboard-selector")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	rec = get(t, app.Handler(), "/charts/movies/8.png", nil)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = get(t, app.Handler(), "/charts/movies/9.png", nil)
	assert.Equal(t, 404, rec.Code)

	rec = get(t, app.Handler(), "/dashboard/mcd", nil)
	assert.Equal(t, 404, rec.Code, "standalone dashboards have no selector routes")

	rec = get(t, app.Handler(), "/api/datasets", nil)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"movies"`)

	rec = get(t, app.Handler(), "/metrics", nil)
	assert.Equal(t, 200, rec.Code)

	rec = get(t, app.Handler(), "/static/dashboard.js", nil)
	assert.Equal(t, 200, rec.Code)
}

func TestStandaloneWordCloud(t *testing.T) {
	d := newDashboards(t, buildResults(t, datasets.Standalone))
	app, err := NewApp(d, dataset.KindMcd, Config{})
	require.NoError(t, err)

	rec := get(t, app.Handler(), "/", nil)
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "Word Cloud of Reviews")

	rec = get(t, app.Handler(), "/wordcloud/mcd.png", nil)
	assert.Equal(t, 200, rec.Code)
}

func TestNewAppNeedsItsDataset(t *testing.T) {
	d := newDashboards(t, buildResults(t, datasets.Standalone)[:1])
	_, err := NewApp(d, dataset.KindMovies, Config{})
	assert.Error(t, err)
}
