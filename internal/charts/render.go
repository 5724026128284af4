package charts

import (
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"sentidash/internal/aggregate"
)

const (
	defaultWidth  = 900
	defaultHeight = 500
	boxHalfWidth  = 0.3
)

var seriesColor = drawing.Color{R: 0x63, G: 0x6e, B: 0xfa, A: 0xff}

// RenderPNG draws the chart as a PNG image
func (c Chart) RenderPNG(w io.Writer) error {
	if c.Len() == 0 {
		return fmt.Errorf("chart %q has no data", c.Title)
	}

	height := defaultHeight
	if c.Layout.Height > 0 {
		height = c.Layout.Height
	}

	switch c.Kind {
	case KindPie:
		return c.renderPie(w, height)
	case KindBar:
		return renderBars(w, c.Title, c.YTitle, c.Labels, c.Values, height)
	case KindHistogram:
		labels := make([]string, len(c.Bins))
		counts := make([]float64, len(c.Bins))
		for i, b := range c.Bins {
			labels[i] = fmt.Sprintf("%.3g", b.Lo)
			counts[i] = b.Count
		}
		return renderBars(w, c.Title, c.YTitle, labels, counts, height)
	case KindLine, KindScatter:
		return c.renderXY(w, height)
	case KindBox:
		return c.renderBoxes(w, height)
	}
	return fmt.Errorf("chart %q: unknown kind %q", c.Title, c.Kind)
}

func (c Chart) renderPie(w io.Writer, height int) error {
	values := make([]chart.Value, 0, len(c.Values))
	for i, v := range c.Values {
		values = append(values, chart.Value{Label: c.Labels[i], Value: v})
	}
	pie := chart.PieChart{
		Title:  c.Title,
		Width:  defaultWidth,
		Height: height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func renderBars(w io.Writer, title, yTitle string, labels []string, values []float64, height int) error {
	bars := make([]chart.Value, len(values))
	lo, hi := 0.0, 0.0
	for i, v := range values {
		bars[i] = chart.Value{Label: labels[i], Value: v}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi <= lo {
		hi = lo + 1
	}

	barWidth := (defaultWidth-120)/len(values) - 4
	if barWidth < 4 {
		barWidth = 4
	}

	bc := chart.BarChart{
		Title:      title,
		Width:      defaultWidth,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: 4,
		Background: chart.Style{Padding: chart.Box{Top: 40, Bottom: 40}},
		YAxis: chart.YAxis{
			Name:  yTitle,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}
	return bc.Render(chart.PNG, w)
}

func (c Chart) renderXY(w io.Writer, height int) error {
	xs := c.X
	xAxis := chart.XAxis{Name: c.XTitle}
	if c.Labels != nil {
		xs = make([]float64, len(c.Labels))
		for i := range c.Labels {
			xs[i] = float64(i)
		}
		xAxis.Ticks = categoryTicks(c.Labels, 0, 12)
	}
	xAxis.Range = paddedRange(xs)

	style := chart.Style{StrokeColor: seriesColor, StrokeWidth: 2}
	if c.Kind == KindScatter {
		style = chart.Style{StrokeWidth: chart.Disabled, DotWidth: 3, DotColor: seriesColor}
		if len(c.Color) == len(c.Values) {
			style.DotColorProvider = colorByValue(c.Color)
		}
	}

	graph := chart.Chart{
		Title:  c.Title,
		Width:  defaultWidth,
		Height: height,
		XAxis:  xAxis,
		YAxis:  chart.YAxis{Name: c.YTitle, Range: paddedRange(c.Values)},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: c.Title, Style: style, XValues: xs, YValues: c.Values},
		},
	}
	return graph.Render(chart.PNG, w)
}

func (c Chart) renderBoxes(w io.Writer, height int) error {
	var series []chart.Series
	labels := make([]string, len(c.Boxes))
	var lo, hi []float64
	for i, g := range c.Boxes {
		labels[i] = g.Key
		series = append(series, boxSeries(float64(i), g.Box)...)
		lo = append(lo, g.Box.Min)
		hi = append(hi, g.Box.Max)
	}

	graph := chart.Chart{
		Title:  c.Title,
		Width:  defaultWidth,
		Height: height,
		XAxis: chart.XAxis{
			Name:  c.XTitle,
			Ticks: categoryTicks(labels, 0, len(labels)),
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(len(labels)) - 0.5},
		},
		YAxis:  chart.YAxis{Name: c.YTitle, Range: paddedRange(append(lo, hi...))},
		Series: series,
	}
	return graph.Render(chart.PNG, w)
}

// boxSeries outlines one box at position x: the Q1-Q3 rectangle, the median and both whiskers
func boxSeries(x float64, b aggregate.BoxStats) []chart.Series {
	style := chart.Style{StrokeColor: seriesColor, StrokeWidth: 1.5}
	l, r := x-boxHalfWidth, x+boxHalfWidth
	line := func(xs, ys []float64) chart.Series {
		return chart.ContinuousSeries{Style: style, XValues: xs, YValues: ys}
	}
	return []chart.Series{
		line([]float64{l, r, r, l, l}, []float64{b.Q1, b.Q1, b.Q3, b.Q3, b.Q1}),
		line([]float64{l, r}, []float64{b.Median, b.Median}),
		line([]float64{x, x}, []float64{b.Min, b.Q1}),
		line([]float64{x, x}, []float64{b.Q3, b.Max}),
	}
}

// categoryTicks labels integer positions, thinning to at most max labels
func categoryTicks(labels []string, offset float64, max int) []chart.Tick {
	step := 1
	if max > 0 && len(labels) > max {
		step = (len(labels) + max - 1) / max
	}
	var ticks []chart.Tick
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i) + offset, Label: labels[i]})
	}
	return ticks
}

// paddedRange returns an explicit range when values span zero width, which go-chart rejects
func paddedRange(values []float64) chart.Range {
	if len(values) == 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi > lo {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}

func colorByValue(color []float64) chart.DotColorProvider {
	lo, hi := color[0], color[0]
	for _, v := range color {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
		if index < 0 || index >= len(color) {
			return seriesColor
		}
		return chart.Viridis(color[index], lo, hi)
	}
}
