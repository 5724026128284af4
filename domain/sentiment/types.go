// Package sentiment defines the three-way sentiment bucket shared by every dataset.
package sentiment

// Code is the integer sentiment code used in the source spreadsheets
type Code int

const (
	Negative Code = -1
	Neutral  Code = 0
	Positive Code = 1
)

// Label is the display name of a sentiment bucket
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNeutral  Label = "Neutral"
	LabelNegative Label = "Negative"
)

// Labels lists the buckets in display order
var Labels = []Label{LabelPositive, LabelNeutral, LabelNegative}

var codeLabels = map[Code]Label{
	Positive: LabelPositive,
	Neutral:  LabelNeutral,
	Negative: LabelNegative,
}

// FromCode maps -1/0/1 to a label. Any other code has no label.
func FromCode(code Code) (Label, bool) {
	label, ok := codeLabels[code]
	return label, ok
}

// FromRating buckets a star rating: >=4 positive, <=2 negative, neutral otherwise.
func FromRating(rating float64) Code {
	switch {
	case rating >= 4:
		return Positive
	case rating <= 2:
		return Negative
	default:
		return Neutral
	}
}

func (l Label) String() string {
	return string(l)
}
