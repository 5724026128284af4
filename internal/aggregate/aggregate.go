// Package aggregate reduces cleaned columns into the small summary tables charts are drawn from.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Pair is one row of a keyed summary table
type Pair struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// NumericPair is one row of a summary keyed by a number
type NumericPair struct {
	Key   float64 `json:"key"`
	Value float64 `json:"value"`
}

const (
	keyCol   = "key"
	valueCol = "value"
)

// byKey orders a summary by key ascending
func byKey(string) []dataframe.Order {
	return []dataframe.Order{dataframe.Sort(keyCol)}
}

// byValueDesc orders a summary by its reduced column descending, then key ascending
func byValueDesc(reduced string) []dataframe.Order {
	return []dataframe.Order{dataframe.RevSort(reduced), dataframe.Sort(keyCol)}
}

// aggregateBy groups frame by key and reduces the value column with typ.
// order receives the name of the reduced column and returns the row ordering.
func aggregateBy(frame dataframe.DataFrame, typ dataframe.AggregationType, order func(reduced string) []dataframe.Order) (dataframe.DataFrame, string, error) {
	if frame.Err != nil {
		return frame, "", frame.Err
	}

	agg := frame.GroupBy(keyCol).Aggregation([]dataframe.AggregationType{typ}, []string{valueCol})
	if agg.Err != nil {
		return agg, "", agg.Err
	}

	// The aggregated column is named after the reduction, so pick whatever is not the key.
	reduced := ""
	for _, name := range agg.Names() {
		if name != keyCol {
			reduced = name
		}
	}
	if reduced == "" {
		return agg, "", fmt.Errorf("aggregation produced no value column")
	}

	agg = agg.Arrange(order(reduced)...)
	return agg, reduced, agg.Err
}

func stringFrame(keys []string, values []float64) dataframe.DataFrame {
	return dataframe.New(
		series.New(keys, series.String, keyCol),
		series.New(values, series.Float, valueCol),
	)
}

func toPairs(frame dataframe.DataFrame, reduced string) []Pair {
	keys := frame.Col(keyCol).Records()
	values := frame.Col(reduced).Float()
	pairs := make([]Pair, len(keys))
	for i := range keys {
		pairs[i] = Pair{Key: keys[i], Value: values[i]}
	}
	return pairs
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

// GroupMean returns the mean of values per key, ordered by key ascending
func GroupMean(keys []string, values []float64) ([]Pair, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("group mean: %d keys for %d values", len(keys), len(values))
	}
	if len(keys) == 0 {
		return nil, nil
	}

	agg, reduced, err := aggregateBy(stringFrame(keys, values), dataframe.Aggregation_MEAN, byKey)
	if err != nil {
		return nil, fmt.Errorf("group mean: %w", err)
	}
	return toPairs(agg, reduced), nil
}

// GroupMeanNumeric is GroupMean for numeric keys, ordered by key ascending
func GroupMeanNumeric(keys []float64, values []float64) ([]NumericPair, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("group mean: %d keys for %d values", len(keys), len(values))
	}
	if len(keys) == 0 {
		return nil, nil
	}

	agg, reduced, err := aggregateBy(numericFrame(keys, values), dataframe.Aggregation_MEAN, byKey)
	if err != nil {
		return nil, fmt.Errorf("group mean: %w", err)
	}
	return toNumericPairs(agg, reduced), nil
}

// GroupCountNumeric counts rows per numeric key, ordered by key ascending
func GroupCountNumeric(keys []float64) ([]NumericPair, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	agg, reduced, err := aggregateBy(numericFrame(keys, ones(len(keys))), dataframe.Aggregation_SUM, byKey)
	if err != nil {
		return nil, fmt.Errorf("group count: %w", err)
	}
	return toNumericPairs(agg, reduced), nil
}

func numericFrame(keys []float64, values []float64) dataframe.DataFrame {
	return dataframe.New(
		series.New(keys, series.Float, keyCol),
		series.New(values, series.Float, valueCol),
	)
}

func toNumericPairs(agg dataframe.DataFrame, reduced string) []NumericPair {
	ks := agg.Col(keyCol).Float()
	vs := agg.Col(reduced).Float()
	pairs := make([]NumericPair, len(ks))
	for i := range ks {
		pairs[i] = NumericPair{Key: ks[i], Value: vs[i]}
	}
	return pairs
}

// GroupCount returns the number of rows per key, ordered by key ascending
func GroupCount(keys []string) ([]Pair, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	agg, reduced, err := aggregateBy(stringFrame(keys, ones(len(keys))), dataframe.Aggregation_SUM, byKey)
	if err != nil {
		return nil, fmt.Errorf("group count: %w", err)
	}
	return toPairs(agg, reduced), nil
}

// TopN returns the n most frequent keys with their counts, counts descending.
// Equal counts are ordered by key ascending.
func TopN(keys []string, n int) ([]Pair, error) {
	if len(keys) == 0 || n <= 0 {
		return nil, nil
	}

	agg, reduced, err := aggregateBy(stringFrame(keys, ones(len(keys))), dataframe.Aggregation_SUM, byValueDesc)
	if err != nil {
		return nil, fmt.Errorf("top %d: %w", n, err)
	}
	return Head(toPairs(agg, reduced), n), nil
}

// SortByValue orders pairs by value, keeping the existing order for equal values
func SortByValue(pairs []Pair, desc bool) []Pair {
	out := append([]Pair(nil), pairs...)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Value > out[j].Value
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Head returns at most the first n pairs
func Head(pairs []Pair, n int) []Pair {
	if n < len(pairs) {
		return pairs[:n]
	}
	return pairs
}

// Keys and Values split pairs into chart axes
func Keys(pairs []Pair) []string {
	keys := make([]string, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	return keys
}

func Values(pairs []Pair) []float64 {
	values := make([]float64, len(pairs))
	for i, p := range pairs {
		values[i] = p.Value
	}
	return values
}
