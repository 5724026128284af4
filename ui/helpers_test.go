package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"sentidash/adapters/excel"
	"sentidash/domain/dataset"
	"sentidash/internal/datasets"
	"sentidash/internal/testkit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// buildResults loads the fixture workbooks; twitter is given a table without its columns
func buildResults(t *testing.T, variant datasets.Variant) []*datasets.Result {
	t.Helper()
	fx, err := testkit.WriteFixtures(t.TempDir(), testkit.DefaultGeneratorConfig())
	require.NoError(t, err)

	opts := datasets.Options{Variant: variant, FoldCaseReviewTime: true}
	return []*datasets.Result{
		datasets.Load(dataset.KindMcd, fx.McdFile, opts),
		datasets.Build(dataset.KindTwitter, &excel.ExcelData{Headers: []string{"Text", "Timestamp"}}, opts),
		datasets.Load(dataset.KindMovies, fx.MoviesFile, opts),
	}
}

func newDashboards(t *testing.T, results []*datasets.Result) *Dashboards {
	t.Helper()
	d, err := NewDashboards(results)
	require.NoError(t, err)
	return d
}

func get(t *testing.T, h http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var htmx = map[string]string{"HX-Request": "true"}
