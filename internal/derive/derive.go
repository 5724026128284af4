// Package derive holds the pure text -> value rules used while cleaning spreadsheets.
// Every rule returns ok=false for a missing or unparsable value; callers drop such rows.
package derive

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sentidash/domain/sentiment"
)

var (
	digitRe  = regexp.MustCompile(`\d`)
	digitsRe = regexp.MustCompile(`\d+`)
	yearRe   = regexp.MustCompile(`\d{4}`)
)

// MonthsAgo approximates a relative time phrase ("3 weeks ago", "a year ago") in months.
// Keywords are tried in the order day, week, month, year. For month and year every digit
// in the text is concatenated into the count; without digits the count is one.
// foldCase lower-cases the text first; without it "Day" does not match "day".
func MonthsAgo(text string, foldCase bool) (float64, bool) {
	if foldCase {
		text = strings.ToLower(text)
	}

	switch {
	case strings.Contains(text, "day"):
		return 0.1, true
	case strings.Contains(text, "week"):
		return 0.5, true
	case strings.Contains(text, "month"):
		if n, ok := allDigits(text); ok {
			return n, true
		}
		return 1, true
	case strings.Contains(text, "year"):
		if n, ok := allDigits(text); ok {
			return n * 12, true
		}
		return 12, true
	}
	return 0, false
}

func allDigits(text string) (float64, bool) {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func firstMatch(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindString(text)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FirstDigit returns the first single digit in text ("4 stars" -> 4)
func FirstDigit(text string) (float64, bool) {
	return firstMatch(digitRe, text)
}

// FirstDigits returns the first maximal run of digits ("142 min" -> 142)
func FirstDigits(text string) (float64, bool) {
	return firstMatch(digitsRe, text)
}

// FirstYear returns the first run of four digits ("(2010–2015)" -> 2010)
func FirstYear(text string) (float64, bool) {
	return firstMatch(yearRe, text)
}

// Number parses a numeric cell, ignoring surrounding space and thousands separators
func Number(text string) (float64, bool) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return 0, false
	}
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// naTokens are the cell texts spreadsheet exports use for an empty cell
var naTokens = map[string]bool{
	"": true, "#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true, "N/A": true,
	"NA": true, "NULL": true, "NaN": true, "None": true, "n/a": true, "nan": true, "null": true,
	"<nil>": true,
}

// Text returns the trimmed cell text; blank text and null markers are missing
func Text(text string) (string, bool) {
	t := strings.TrimSpace(text)
	if naTokens[t] {
		return "", false
	}
	return t, true
}

// FirstToken returns the first element of a sep-separated list, trimmed; empty is missing
func FirstToken(text, sep string) (string, bool) {
	first := strings.SplitN(text, sep, 2)[0]
	return Text(first)
}

// Code parses an integral sentiment code and maps it to its label.
// Non-integral values and codes outside -1..1 are missing.
func Code(text string) (sentiment.Code, sentiment.Label, bool) {
	v, ok := Number(text)
	if !ok || v != math.Trunc(v) {
		return 0, "", false
	}
	code := sentiment.Code(int(v))
	label, ok := sentiment.FromCode(code)
	if !ok {
		return 0, "", false
	}
	return code, label, true
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"1/2/06 15:04",
	"01-02-06 15:04",
	"01-02-06",
	"01/02/2006",
}

// Timestamp parses the common spreadsheet renderings of a date-time,
// including raw Excel serial numbers.
func Timestamp(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
