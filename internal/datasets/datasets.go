// Package datasets builds each dashboard from its spreadsheet: load, clean, aggregate,
// chart and word cloud. A build never panics out; every failure ends up in Result.Err.
package datasets

import (
	stderrors "errors"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"
	"time"

	"sentidash/adapters/excel"
	"sentidash/domain/core"
	"sentidash/domain/dataset"
	"sentidash/domain/sentiment"
	"sentidash/internal/aggregate"
	"sentidash/internal/charts"
	"sentidash/internal/clean"
	"sentidash/internal/errors"
	"sentidash/internal/metrics"
	"sentidash/internal/wordcloud"
)

// Variant selects the chart titles, layout hints and chart list of a dashboard
type Variant int

const (
	// Combined is the variant shown inside the combined viewer
	Combined Variant = iota
	// Standalone is the variant served by the single-dataset binaries
	Standalone
)

func (v Variant) String() string {
	if v == Standalone {
		return "standalone"
	}
	return "combined"
}

// Options configure one build
type Options struct {
	Variant Variant
	// FoldCaseReviewTime lower-cases review_time before keyword matching.
	FoldCaseReviewTime bool
}

// Result is everything a page needs for one dataset. Err is set when the dataset
// could not be built; Charts and WordCloud are then empty.
type Result struct {
	Kind      dataset.Kind
	Charts    []charts.Chart
	WordCloud *wordcloud.Image
	Report    dataset.Report
	Err       error
}

// OK reports whether the dataset was built
func (r *Result) OK() bool {
	return r.Err == nil
}

// Chart returns chart n, counting from 1
func (r *Result) Chart(n int) (charts.Chart, bool) {
	if n < 1 || n > len(r.Charts) {
		return charts.Chart{}, false
	}
	return r.Charts[n-1], true
}

func (r *Result) fail(err error) {
	r.Err = err
	r.Charts = nil
	r.WordCloud = nil
	r.Report.ErrorCode = errors.GetCode(err)
	r.Report.Error = err.Error()
}

// wordCloudSizes holds the canvas for datasets that have a word cloud
var wordCloudSizes = map[dataset.Kind][2]int{
	dataset.KindMcd:     {1600, 700},
	dataset.KindTwitter: {1500, 1000},
}

// built is the output of a per-dataset pipeline before the word cloud
type built struct {
	charts []charts.Chart
	text   string
	stats  clean.Stats
}

func buildReviews(data *excel.ExcelData, opts Options) (built, error) {
	reviews, stats, err := CleanReviews(data, opts.FoldCaseReviewTime)
	if err != nil || len(reviews) == 0 {
		return built{stats: stats}, err
	}
	cs, err := ReviewCharts(reviews, opts.Variant)
	return built{charts: cs, text: ReviewText(reviews), stats: stats}, err
}

func buildPosts(data *excel.ExcelData, opts Options) (built, error) {
	posts, stats, err := CleanPosts(data)
	if err != nil || len(posts) == 0 {
		return built{stats: stats}, err
	}
	cs, err := PostCharts(posts, opts.Variant)
	return built{charts: cs, text: PostText(posts), stats: stats}, err
}

func buildMovies(data *excel.ExcelData, opts Options) (built, error) {
	movies, stats, err := CleanMovies(data)
	if err != nil || len(movies) == 0 {
		return built{stats: stats}, err
	}
	cs, err := MovieCharts(movies, opts.Variant)
	return built{charts: cs, stats: stats}, err
}

var builders = map[dataset.Kind]func(*excel.ExcelData, Options) (built, error){
	dataset.KindMcd:     buildReviews,
	dataset.KindTwitter: buildPosts,
	dataset.KindMovies:  buildMovies,
}

// Load reads the spreadsheet at path and builds the dataset
func Load(kind dataset.Kind, path string, opts Options) *Result {
	start := time.Now()
	data, err := excel.NewDataReader(excel.DefaultExcelConfig(path)).ReadData()
	if err != nil {
		res := &Result{Kind: kind, Report: dataset.Report{Kind: kind, Source: path}}
		res.fail(errors.LoadFailed(path, err))
		res.finish(start)
		return res
	}
	res := build(kind, path, data, opts, start)
	if h, err := core.HashFile(path); err == nil {
		res.Report.Fingerprint = h.String()
	}
	return res
}

// Build builds the dataset from an already loaded table
func Build(kind dataset.Kind, data *excel.ExcelData, opts Options) *Result {
	return build(kind, "", data, opts, time.Now())
}

func build(kind dataset.Kind, source string, data *excel.ExcelData, opts Options, start time.Time) (res *Result) {
	res = &Result{Kind: kind, Report: dataset.Report{Kind: kind, Source: source, RowsRead: data.Len()}}
	defer res.finish(start)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Datasets] %s: panic during build: %v\n%s", kind, r, debug.Stack())
			res.fail(errors.BuildFailed(kind.String(), fmt.Errorf("panic: %v", r)))
		}
	}()

	builder, ok := builders[kind]
	if !ok {
		res.fail(errors.NotFound(fmt.Sprintf("dataset %q", kind)))
		return res
	}

	b, err := builder(data, opts)
	res.Report.RowsKept = b.stats.Kept
	res.Report.RowsDropped = b.stats.Dropped
	switch {
	case err != nil && errors.IsAppError(err):
		res.fail(err)
		return res
	case err != nil && stderrors.Is(err, dataset.ErrMissingColumns):
		res.fail(errors.WithCode(errors.CodeMissingColumns, err))
		return res
	case err != nil:
		res.fail(errors.BuildFailed(kind.String(), err))
		return res
	case b.stats.Kept == 0:
		res.fail(errors.WithCode(errors.CodeEmptyDataset, fmt.Errorf("%s: %w", kind, dataset.ErrNoRows)))
		return res
	}

	res.Charts = b.charts
	if size, ok := wordCloudSizes[kind]; ok {
		img, err := wordcloud.Generate(b.text, wordcloud.NewConfig(size[0], size[1]))
		if err != nil {
			res.fail(errors.BuildFailed(kind.String(), err))
			return res
		}
		res.WordCloud = img
	}
	res.Report.Charts = len(res.Charts)
	res.Report.WordCloud = res.WordCloud != nil
	return res
}

func (r *Result) finish(start time.Time) {
	r.Report.Duration = time.Since(start)
	code := "OK"
	if r.Err != nil {
		code = errors.GetCode(r.Err)
		log.Printf("[Datasets] %s: %v", r.Kind, r.Err)
	} else {
		log.Printf("[Datasets] %s: %d charts from %d of %d rows in %v",
			r.Kind, len(r.Charts), r.Report.RowsKept, r.Report.RowsRead, r.Report.Duration)
	}
	metrics.RecordBuild(r.Kind.String(), code, r.Report.RowsKept, r.Report.RowsDropped, r.Report.Duration)
}

func pick(standalone bool, combined, alone string) string {
	if standalone {
		return alone
	}
	return combined
}

// layout applies the hint only to standalone dashboards
func layout(standalone bool, l charts.Layout) charts.Layout {
	if standalone {
		return l
	}
	return charts.Layout{}
}

// sentimentOrder puts pie slices in display order: positive, neutral, negative
func sentimentOrder(pairs []aggregate.Pair) []aggregate.Pair {
	byKey := make(map[string]aggregate.Pair, len(pairs))
	for _, p := range pairs {
		byKey[p.Key] = p
	}
	ordered := make([]aggregate.Pair, 0, len(pairs))
	for _, label := range sentiment.Labels {
		if p, ok := byKey[label.String()]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
