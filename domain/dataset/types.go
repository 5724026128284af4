package dataset

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind identifies one of the dashboards
type Kind string

const (
	KindMcd     Kind = "mcd"
	KindTwitter Kind = "twitter"
	KindMovies  Kind = "movies"
)

// Kinds lists the dashboards in selector order
var Kinds = []Kind{KindMcd, KindTwitter, KindMovies}

var kindTitles = map[Kind]string{
	KindMcd:     "McDonald's Reviews",
	KindTwitter: "Twitter Sentiment",
	KindMovies:  "Movies Sentiment",
}

var kindPlaceholders = map[Kind]string{
	KindMcd:     "No McDonald's review graphs available.",
	KindTwitter: "No Twitter graphs available.",
	KindMovies:  "No movie graphs available.",
}

// ParseKind validates a selector value
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.TrimSpace(s))
	_, ok := kindTitles[k]
	return k, ok
}

// Title is the selector label of the dashboard
func (k Kind) Title() string {
	return kindTitles[k]
}

// Placeholder is the text shown when the dashboard has no charts
func (k Kind) Placeholder() string {
	return kindPlaceholders[k]
}

func (k Kind) String() string {
	return string(k)
}

// Sentinel errors for dataset loading
var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoRows         = errors.New("no rows left after cleaning")
)

// Schema declares the raw columns a dataset needs before any row is parsed
type Schema struct {
	Kind     Kind
	Required []string
}

// SchemaError lists every required column absent from a table
type SchemaError struct {
	Kind    Kind
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Kind, ErrMissingColumns, strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, ErrMissingColumns) true for schema errors
func (e *SchemaError) Is(target error) bool {
	return target == ErrMissingColumns
}

// Check returns a *SchemaError naming all required columns not in headers, or nil
func (s Schema) Check(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range s.Required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Kind: s.Kind, Missing: missing}
	}
	return nil
}

// Report summarises how one dataset was loaded
type Report struct {
	Kind        Kind          `json:"kind"`
	Source      string        `json:"source"`
	Fingerprint string        `json:"fingerprint,omitempty"`
	RowsRead    int           `json:"rows_read"`
	RowsKept    int           `json:"rows_kept"`
	RowsDropped int           `json:"rows_dropped"`
	Charts      int           `json:"charts"`
	WordCloud   bool          `json:"word_cloud"`
	Duration    time.Duration `json:"duration_ns"`
	ErrorCode   string        `json:"error_code,omitempty"`
	Error       string        `json:"error,omitempty"`
}
