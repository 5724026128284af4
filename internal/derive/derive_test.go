package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sentidash/domain/sentiment"
)

func TestMonthsAgo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		foldCase bool
		want     float64
		ok       bool
	}{
		{"days", "2 days ago", true, 0.1, true},
		{"weeks", "3 weeks", true, 0.5, true},
		{"months", "5 months", true, 5, true},
		{"month without digit", "month", true, 1, true},
		{"a month ago", "a month ago", true, 1, true},
		{"years", "2 years", true, 24, true},
		{"year without digit", "year", true, 12, true},
		{"no keyword", "yesterday-ish", true, 0, false},
		{"empty", "", true, 0, false},
		{"folded capitals", "3 Weeks Ago", true, 0.5, true},
		{"case-sensitive capitals", "3 Weeks Ago", false, 0, false},
		{"case-sensitive lower", "4 years ago", false, 48, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MonthsAgo(tt.input, tt.foldCase)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestMonthsAgoKeywordOrder(t *testing.T) {
	// "day" wins over later keywords even when digits are present.
	got, ok := MonthsAgo("12 days and a year", true)
	assert.True(t, ok)
	assert.Equal(t, 0.1, got)
}

func TestNumericExtraction(t *testing.T) {
	v, ok := FirstDigit("4 stars")
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)

	v, ok = FirstDigits("142 min")
	assert.True(t, ok)
	assert.Equal(t, 142.0, v)

	v, ok = FirstYear("(2010–2015)")
	assert.True(t, ok)
	assert.Equal(t, 2010.0, v)

	_, ok = FirstYear("(I) 99")
	assert.False(t, ok)

	_, ok = FirstDigits("n/a")
	assert.False(t, ok)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1,000", 1000, true},
		{" 12.5 ", 12.5, true},
		{"-3", -3, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
	}

	for _, tt := range tests {
		got, ok := Number(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestFirstToken(t *testing.T) {
	got, ok := FirstToken("\nDrama, Horror", ",")
	assert.True(t, ok)
	assert.Equal(t, "Drama", got)

	_, ok = FirstToken(", Comedy", ",")
	assert.False(t, ok)

	_, ok = FirstToken("NaN, Comedy", ",")
	assert.False(t, ok)
}

func TestTextNullMarkers(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{" alice ", "alice", true},
		{"Nancy", "Nancy", true},
		{"", "", false},
		{"   ", "", false},
		{"NaN", "", false},
		{" nan ", "", false},
		{"NA", "", false},
		{"N/A", "", false},
		{"#N/A", "", false},
		{"<NA>", "", false},
		{"<nil>", "", false},
		{"null", "", false},
		{"NULL", "", false},
		{"None", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Text(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCode(t *testing.T) {
	code, label, ok := Code("1")
	assert.True(t, ok)
	assert.Equal(t, sentiment.Positive, code)
	assert.Equal(t, sentiment.LabelPositive, label)

	code, label, ok = Code("-1.0")
	assert.True(t, ok)
	assert.Equal(t, sentiment.Negative, code)
	assert.Equal(t, sentiment.LabelNegative, label)

	_, _, ok = Code("2")
	assert.False(t, ok, "codes outside -1..1 have no label")

	_, _, ok = Code("0.5")
	assert.False(t, ok)
}

func TestTimestamp(t *testing.T) {
	want := time.Date(2023, 1, 30, 11, 0, 51, 0, time.UTC)

	got, ok := Timestamp("2023-01-30 11:00:51")
	assert.True(t, ok)
	assert.True(t, want.Equal(got))

	got, ok = Timestamp("1/30/23 11:00")
	assert.True(t, ok)
	assert.Equal(t, 11, got.Hour())

	got, ok = Timestamp("44956.5")
	assert.True(t, ok)
	assert.Equal(t, 2023, got.Year())
	assert.Equal(t, 12, got.Hour())

	got, ok = Timestamp("01-30-23")
	assert.True(t, ok)
	assert.True(t, time.Date(2023, 1, 30, 0, 0, 0, 0, time.UTC).Equal(got))

	_, ok = Timestamp("not a date")
	assert.False(t, ok)
}
