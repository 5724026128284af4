package aggregate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupMean(t *testing.T) {
	pairs, err := GroupMean(
		[]string{"b", "a", "b", "a", "c"},
		[]float64{1, 2, 3, 4, 5},
	)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{"a", 3}, {"b", 2}, {"c", 5}}, pairs)

	pairs, err = GroupMean(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	_, err = GroupMean([]string{"a"}, nil)
	assert.Error(t, err)
}

func TestGroupMeanNumericOrdersKeys(t *testing.T) {
	pairs, err := GroupMeanNumeric([]float64{12, 0.1, 12, 1}, []float64{5, 4, 3, 2})
	require.NoError(t, err)
	require.Len(t, pairs, 3)
	assert.Equal(t, 0.1, pairs[0].Key)
	assert.Equal(t, 1.0, pairs[1].Key)
	assert.Equal(t, 12.0, pairs[2].Key)
	assert.Equal(t, 4.0, pairs[2].Value)
}

func TestGroupCount(t *testing.T) {
	pairs, err := GroupCount([]string{"Positive", "Negative", "Positive", "Positive"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Negative", "Positive"}, Keys(pairs))
	assert.Equal(t, []float64{1, 3}, Values(pairs))
}

func TestGroupCountNumeric(t *testing.T) {
	pairs, err := GroupCountNumeric([]float64{13, 9, 13, 13, 0})
	require.NoError(t, err)
	assert.Equal(t, []NumericPair{{0, 1}, {9, 1}, {13, 3}}, pairs)
}

func TestTopNBoundedAndNonIncreasing(t *testing.T) {
	var keys []string
	// 25 distinct stores, store i appears (i % 7) + 1 times
	for i := 0; i < 25; i++ {
		for j := 0; j <= i%7; j++ {
			keys = append(keys, fmt.Sprintf("store-%02d", i))
		}
	}

	top, err := TopN(keys, 10)
	require.NoError(t, err)
	require.Len(t, top, 10)
	for i := 1; i < len(top); i++ {
		assert.LessOrEqual(t, top[i].Value, top[i-1].Value, "counts must be non-increasing")
	}
	assert.Equal(t, 7.0, top[0].Value)
	assert.Equal(t, "store-06", top[0].Key, "ties are broken by key")
}

func TestTopNFewKeys(t *testing.T) {
	top, err := TopN([]string{"x", "y", "x"}, 10)
	require.NoError(t, err)
	assert.Equal(t, []Pair{{"x", 2}, {"y", 1}}, top)

	top, err = TopN(nil, 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestSortByValueAndHead(t *testing.T) {
	pairs := []Pair{{"a", 2}, {"b", 3}, {"c", 2}, {"d", 1}}
	assert.Equal(t, []string{"b", "a", "c", "d"}, Keys(SortByValue(pairs, true)))
	assert.Equal(t, []string{"d", "a", "c", "b"}, Keys(SortByValue(pairs, false)))
	assert.Len(t, Head(pairs, 2), 2)
	assert.Len(t, Head(pairs, 10), 4)
	assert.Equal(t, "a", pairs[0].Key, "input is not reordered")
}
