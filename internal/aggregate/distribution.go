package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin is one equal-width histogram bucket [Lo, Hi)
type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count float64 `json:"count"`
}

// Histogram counts values into bins equal-width buckets spanning [min, max].
// The maximum value falls into the last bucket.
func Histogram(values []float64, bins int) ([]Bin, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("histogram: bins must be positive, got %d", bins)
	}
	if len(values) == 0 {
		return nil, nil
	}

	x := append([]float64(nil), values...)
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]
	if hi <= lo {
		hi = lo + 1
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram needs every x strictly below the last divider.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)

	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lo: dividers[i], Hi: dividers[i+1], Count: counts[i]}
	}
	out[bins-1].Hi = hi
	return out, nil
}

// BoxStats is the five-number summary plus mean used by box plots
type BoxStats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	N      int     `json:"n"`
}

// Box summarises values for a box plot
func Box(values []float64) (BoxStats, error) {
	data := stats.Float64Data(values)
	if data.Len() == 0 {
		return BoxStats{}, stats.EmptyInputErr
	}

	min, err := stats.Min(data)
	if err != nil {
		return BoxStats{}, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return BoxStats{}, err
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return BoxStats{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return BoxStats{}, err
	}

	box := BoxStats{Min: min, Median: median, Max: max, Mean: mean, N: data.Len(), Q1: median, Q3: median}
	// Quartile reports zero halves for a single value.
	if data.Len() >= 2 {
		q, err := stats.Quartile(data)
		if err != nil {
			return BoxStats{}, err
		}
		box.Q1, box.Q3 = q.Q1, q.Q3
	}
	return box, nil
}

// GroupedBox is a box summary for one key
type GroupedBox struct {
	Key string   `json:"key"`
	Box BoxStats `json:"box"`
}

// GroupBox summarises values per key, ordered by key ascending
func GroupBox(keys []string, values []float64) ([]GroupedBox, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("group box: %d keys for %d values", len(keys), len(values))
	}

	groups := make(map[string][]float64)
	for i, k := range keys {
		groups[k] = append(groups[k], values[i])
	}

	names := make([]string, 0, len(groups))
	for k := range groups {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make([]GroupedBox, 0, len(names))
	for _, k := range names {
		box, err := Box(groups[k])
		if err != nil {
			return nil, fmt.Errorf("group box %s: %w", k, err)
		}
		out = append(out, GroupedBox{Key: k, Box: box})
	}
	return out, nil
}
