// Package charts turns aggregated summaries into chart descriptions that the page renders with
// plotly.js and the PNG endpoint renders with go-chart.
package charts

import (
	"sentidash/internal/aggregate"
)

// Kind is the visual form of a chart
type Kind string

const (
	KindPie       Kind = "pie"
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
	KindScatter   Kind = "scatter"
	KindHistogram Kind = "histogram"
	KindBox       Kind = "box"
)

// Layout carries per-chart presentation hints
type Layout struct {
	Height    int `json:"height,omitempty"`
	TickAngle int `json:"tick_angle,omitempty"`
}

// Chart is one figure of a dashboard. Which data fields are set depends on Kind:
// pie and bar use Labels/Values, line uses Labels or X with Values, scatter uses X/Values
// with optional Color and Hover, histogram uses Bins and box uses Boxes.
type Chart struct {
	Kind       Kind                   `json:"kind"`
	Title      string                 `json:"title"`
	XTitle     string                 `json:"x_title,omitempty"`
	YTitle     string                 `json:"y_title,omitempty"`
	ColorTitle string                 `json:"color_title,omitempty"`
	Layout     Layout                 `json:"layout"`
	Labels     []string               `json:"labels,omitempty"`
	X          []float64              `json:"x,omitempty"`
	Values     []float64              `json:"values,omitempty"`
	Color      []float64              `json:"color,omitempty"`
	Hover      []string               `json:"hover,omitempty"`
	Bins       []aggregate.Bin        `json:"bins,omitempty"`
	Boxes      []aggregate.GroupedBox `json:"boxes,omitempty"`
}

// Len is the number of points, slices, bars or boxes the chart draws
func (c Chart) Len() int {
	switch c.Kind {
	case KindHistogram:
		return len(c.Bins)
	case KindBox:
		return len(c.Boxes)
	}
	return len(c.Values)
}

// Pie shows the share of each key
func Pie(title string, pairs []aggregate.Pair) Chart {
	return Chart{
		Kind:   KindPie,
		Title:  title,
		Labels: aggregate.Keys(pairs),
		Values: aggregate.Values(pairs),
	}
}

// Bar draws one bar per key in the given order
func Bar(title, xTitle, yTitle string, pairs []aggregate.Pair) Chart {
	return Chart{
		Kind:   KindBar,
		Title:  title,
		XTitle: xTitle,
		YTitle: yTitle,
		Labels: aggregate.Keys(pairs),
		Values: aggregate.Values(pairs),
	}
}

// NumericBar is Bar for numeric keys such as hours of the day
func NumericBar(title, xTitle, yTitle string, pairs []aggregate.NumericPair) Chart {
	c := Chart{Kind: KindBar, Title: title, XTitle: xTitle, YTitle: yTitle}
	for _, p := range pairs {
		c.Labels = append(c.Labels, formatNumber(p.Key))
		c.Values = append(c.Values, p.Value)
	}
	return c
}

// Line connects the pairs in the given order along a categorical axis
func Line(title, xTitle, yTitle string, pairs []aggregate.Pair) Chart {
	return Chart{
		Kind:   KindLine,
		Title:  title,
		XTitle: xTitle,
		YTitle: yTitle,
		Labels: aggregate.Keys(pairs),
		Values: aggregate.Values(pairs),
	}
}

// NumericLine connects the pairs along a numeric axis
func NumericLine(title, xTitle, yTitle string, pairs []aggregate.NumericPair) Chart {
	c := Chart{Kind: KindLine, Title: title, XTitle: xTitle, YTitle: yTitle}
	for _, p := range pairs {
		c.X = append(c.X, p.Key)
		c.Values = append(c.Values, p.Value)
	}
	return c
}

// Scatter plots one marker per row. color and hover may be nil.
func Scatter(title, xTitle, yTitle string, x, y, color []float64, hover []string) Chart {
	return Chart{
		Kind:   KindScatter,
		Title:  title,
		XTitle: xTitle,
		YTitle: yTitle,
		X:      x,
		Values: y,
		Color:  color,
		Hover:  hover,
	}
}

// WithColor names the colour scale of a scatter
func (c Chart) WithColor(title string) Chart {
	c.ColorTitle = title
	return c
}

// WithLayout sets presentation hints
func (c Chart) WithLayout(l Layout) Chart {
	c.Layout = l
	return c
}

// Histogram draws precomputed bins
func Histogram(title, xTitle string, bins []aggregate.Bin) Chart {
	return Chart{
		Kind:   KindHistogram,
		Title:  title,
		XTitle: xTitle,
		YTitle: "count",
		Bins:   bins,
	}
}

// Box draws one box per group
func Box(title, xTitle, yTitle string, boxes []aggregate.GroupedBox) Chart {
	return Chart{
		Kind:   KindBox,
		Title:  title,
		XTitle: xTitle,
		YTitle: yTitle,
		Boxes:  boxes,
	}
}
