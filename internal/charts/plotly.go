package charts

import (
	"strconv"

	"github.com/goccy/go-json"

	"sentidash/internal/aggregate"
)

// Figure is the plotly.js figure object for one chart
type Figure struct {
	Data   []Trace      `json:"data"`
	Layout FigureLayout `json:"layout"`
}

// Trace is a single plotly.js trace. Only the fields a chart kind uses are set.
type Trace struct {
	Type   string      `json:"type"`
	Mode   string      `json:"mode,omitempty"`
	Name   string      `json:"name,omitempty"`
	Labels []string    `json:"labels,omitempty"`
	Values []float64   `json:"values,omitempty"`
	X      interface{} `json:"x,omitempty"`
	Y      []float64   `json:"y,omitempty"`
	Width  []float64   `json:"width,omitempty"`
	Text   []string    `json:"text,omitempty"`
	Marker *Marker     `json:"marker,omitempty"`

	Q1         []float64 `json:"q1,omitempty"`
	Median     []float64 `json:"median,omitempty"`
	Q3         []float64 `json:"q3,omitempty"`
	LowerFence []float64 `json:"lowerfence,omitempty"`
	UpperFence []float64 `json:"upperfence,omitempty"`
	Mean       []float64 `json:"mean,omitempty"`
}

// Marker styles scatter points
type Marker struct {
	Color      []float64 `json:"color,omitempty"`
	ColorScale string    `json:"colorscale,omitempty"`
	ShowScale  bool      `json:"showscale,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

type ColorBar struct {
	Title Text `json:"title"`
}

type Text struct {
	Text string `json:"text"`
}

// FigureLayout is the plotly.js layout object
type FigureLayout struct {
	Title  Text    `json:"title"`
	XAxis  *Axis   `json:"xaxis,omitempty"`
	YAxis  *Axis   `json:"yaxis,omitempty"`
	Height int     `json:"height,omitempty"`
	BarGap float64 `json:"bargap,omitempty"`
}

type Axis struct {
	Title     Text `json:"title"`
	TickAngle int  `json:"tickangle,omitempty"`
}

// Figure converts the chart into a plotly.js figure
func (c Chart) Figure() Figure {
	fig := Figure{Layout: FigureLayout{Title: Text{c.Title}, Height: c.Layout.Height}}
	if c.Kind != KindPie {
		fig.Layout.XAxis = &Axis{Title: Text{c.XTitle}, TickAngle: c.Layout.TickAngle}
		fig.Layout.YAxis = &Axis{Title: Text{c.YTitle}}
	}

	switch c.Kind {
	case KindPie:
		fig.Data = []Trace{{Type: "pie", Labels: c.Labels, Values: c.Values}}
	case KindBar:
		fig.Data = []Trace{{Type: "bar", X: c.Labels, Y: c.Values}}
	case KindLine:
		t := Trace{Type: "scatter", Mode: "lines", Y: c.Values}
		if c.Labels != nil {
			t.X = c.Labels
		} else {
			t.X = c.X
		}
		fig.Data = []Trace{t}
	case KindScatter:
		t := Trace{Type: "scatter", Mode: "markers", X: c.X, Y: c.Values, Text: c.Hover}
		if len(c.Color) > 0 {
			t.Marker = &Marker{
				Color:      c.Color,
				ColorScale: "Viridis",
				ShowScale:  true,
				ColorBar:   &ColorBar{Title: Text{c.ColorTitle}},
			}
		}
		fig.Data = []Trace{t}
	case KindHistogram:
		fig.Data = []Trace{histogramTrace(c.Bins)}
		fig.Layout.BarGap = 0.05
	case KindBox:
		fig.Data = []Trace{boxTrace(c.Boxes)}
	}
	return fig
}

func histogramTrace(bins []aggregate.Bin) Trace {
	t := Trace{Type: "bar"}
	centers := make([]float64, len(bins))
	for i, b := range bins {
		centers[i] = (b.Lo + b.Hi) / 2
		t.Y = append(t.Y, b.Count)
		t.Width = append(t.Width, b.Hi-b.Lo)
	}
	t.X = centers
	return t
}

func boxTrace(boxes []aggregate.GroupedBox) Trace {
	t := Trace{Type: "box"}
	names := make([]string, len(boxes))
	for i, g := range boxes {
		names[i] = g.Key
		t.Q1 = append(t.Q1, g.Box.Q1)
		t.Median = append(t.Median, g.Box.Median)
		t.Q3 = append(t.Q3, g.Box.Q3)
		t.LowerFence = append(t.LowerFence, g.Box.Min)
		t.UpperFence = append(t.UpperFence, g.Box.Max)
		t.Mean = append(t.Mean, g.Box.Mean)
	}
	t.X = names
	return t
}

// JSON encodes the plotly figure
func (c Chart) JSON() ([]byte, error) {
	return json.Marshal(c.Figure())
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
