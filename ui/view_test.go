package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentidash/domain/dataset"
	"sentidash/internal/datasets"
)

func TestReportMarkdownEscapes(t *testing.T) {
	md := reportMarkdown([]dataset.Report{{
		Kind:      dataset.KindMcd,
		Source:    "data/my_file|v2.xlsx",
		RowsRead:  10,
		RowsKept:  8,
		ErrorCode: "LOAD_FAILED",
		Error:     "open <nil>",
	}})
	assert.Contains(t, md, `data/my\_file\|v2.xlsx`)
	assert.Contains(t, md, `open \<nil\>`)
}

func TestReportHTMLRendersTable(t *testing.T) {
	html := string(reportHTML([]dataset.Report{
		{Kind: dataset.KindMcd, Source: "reviews.xlsx", Fingerprint: "0123456789abcdef0123", RowsRead: 10, RowsKept: 8, RowsDropped: 2, Charts: 6, WordCloud: true, Duration: time.Second},
		{Kind: dataset.KindTwitter, Source: "tweets.xlsx", ErrorCode: "LOAD_FAILED", Error: "no such file"},
	}))
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "reviews.xlsx")
	assert.Contains(t, html, "<code>0123456789ab</code>")
	assert.Contains(t, html, "<strong>LOAD_FAILED</strong>")
	assert.Contains(t, html, "no such file")
}

func TestNewSectionFailure(t *testing.T) {
	res := &datasets.Result{Kind: dataset.KindMovies, Err: errors.New("boom")}
	sec, err := newSection(res)
	require.NoError(t, err)
	assert.Empty(t, sec.Charts)
	assert.Equal(t, "No movie graphs available.", sec.Placeholder)
	assert.Equal(t, "boom", sec.Reason)
	assert.Empty(t, sec.WordCloud)
}

func TestNewDashboardsRejectsDuplicates(t *testing.T) {
	a := &datasets.Result{Kind: dataset.KindMcd, Err: errors.New("x")}
	_, err := NewDashboards([]*datasets.Result{a, a})
	assert.Error(t, err)

	_, err = NewDashboards(nil)
	assert.Error(t, err)
}
