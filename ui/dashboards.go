package ui

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"sentidash/domain/dataset"
	"sentidash/internal/datasets"
	"sentidash/internal/errors"
	"sentidash/internal/metrics"
)

// Dashboards holds the built datasets and their precomputed sections. It is read-only.
type Dashboards struct {
	order    []dataset.Kind
	results  map[dataset.Kind]*datasets.Result
	sections map[dataset.Kind]Section
}

// NewDashboards precomputes the page sections of every result
func NewDashboards(results []*datasets.Result) (*Dashboards, error) {
	d := &Dashboards{
		results:  make(map[dataset.Kind]*datasets.Result, len(results)),
		sections: make(map[dataset.Kind]Section, len(results)),
	}
	for _, res := range results {
		if res == nil {
			continue
		}
		if _, dup := d.results[res.Kind]; dup {
			return nil, fmt.Errorf("dataset %s given twice", res.Kind)
		}
		sec, err := newSection(res)
		if err != nil {
			return nil, err
		}
		d.order = append(d.order, res.Kind)
		d.results[res.Kind] = res
		d.sections[res.Kind] = sec
	}
	if len(d.order) == 0 {
		return nil, fmt.Errorf("no dashboards to serve")
	}
	return d, nil
}

// Kinds lists the dashboards in the order they were given
func (d *Dashboards) Kinds() []dataset.Kind {
	return d.order
}

// Section returns the precomputed section for a selector value
func (d *Dashboards) Section(name string) (Section, bool) {
	kind, ok := dataset.ParseKind(name)
	if !ok {
		return Section{}, false
	}
	sec, ok := d.sections[kind]
	return sec, ok
}

// Reports returns the load report of every dashboard
func (d *Dashboards) Reports() []dataset.Report {
	reports := make([]dataset.Report, 0, len(d.order))
	for _, k := range d.order {
		reports = append(reports, d.results[k].Report)
	}
	return reports
}

// Healthy reports whether every dashboard was built
func (d *Dashboards) Healthy() bool {
	for _, res := range d.results {
		if !res.OK() {
			return false
		}
	}
	return true
}

func (d *Dashboards) result(name string) (*datasets.Result, error) {
	kind, ok := dataset.ParseKind(name)
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("dashboard %q", name))
	}
	res, ok := d.results[kind]
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("dashboard %q", name))
	}
	return res, nil
}

// ChartPNG renders chart file ("3.png") of a dashboard
func (d *Dashboards) ChartPNG(name, file string) ([]byte, error) {
	res, err := d.result(name)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(strings.TrimSuffix(file, ".png"))
	if err != nil || !strings.HasSuffix(file, ".png") {
		return nil, errors.NotFound(fmt.Sprintf("chart %q", file))
	}
	c, ok := res.Chart(n)
	if !ok {
		return nil, errors.NotFound(fmt.Sprintf("chart %d of %s", n, name))
	}

	var buf bytes.Buffer
	err = c.RenderPNG(&buf)
	metrics.RecordRender(name, string(c.Kind), err)
	if err != nil {
		log.Printf("[Charts] %s chart %d: %v", name, n, err)
		return nil, errors.RenderFailed(fmt.Sprintf("chart %d of %s", n, name), err)
	}
	return buf.Bytes(), nil
}

// WordCloudPNG returns the raw word cloud of file ("mcd.png")
func (d *Dashboards) WordCloudPNG(file string) ([]byte, error) {
	if !strings.HasSuffix(file, ".png") {
		return nil, errors.NotFound(fmt.Sprintf("word cloud %q", file))
	}
	res, err := d.result(strings.TrimSuffix(file, ".png"))
	if err != nil {
		return nil, err
	}
	if res.WordCloud == nil {
		return nil, errors.NotFound(fmt.Sprintf("word cloud of %s", res.Kind))
	}
	return res.WordCloud.PNG, nil
}

// statusFor maps an error code to an HTTP status
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeRenderFailed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
