package datasets

import (
	"strings"

	"sentidash/adapters/excel"
	"sentidash/domain/dataset"
	"sentidash/domain/sentiment"
	"sentidash/internal/aggregate"
	"sentidash/internal/charts"
	"sentidash/internal/clean"
	"sentidash/internal/derive"
)

// ReviewSchema lists the raw columns of the restaurant review sheet
var ReviewSchema = dataset.Schema{
	Kind:     dataset.KindMcd,
	Required: []string{"rating", "rating_count", "review_time", "review", "store_address", "latitude", "longitude"},
}

// Review is one cleaned restaurant review
type Review struct {
	Rating       float64
	RatingCount  float64
	ReviewTime   string
	MonthsAgo    float64
	Review       string
	StoreAddress string
	Latitude     float64
	Longitude    float64
	Sentiment    sentiment.Code
	Label        sentiment.Label
}

// ParseReview derives a review from a raw row. Rows missing any critical field are rejected.
func ParseReview(row excel.RawRowData, foldCase bool) (Review, bool) {
	var r Review
	var ok bool

	if r.Rating, ok = derive.FirstDigit(row["rating"]); !ok {
		return Review{}, false
	}
	if r.RatingCount, ok = derive.Number(row["rating_count"]); !ok {
		return Review{}, false
	}
	r.ReviewTime = strings.TrimSpace(row["review_time"])
	if r.MonthsAgo, ok = derive.MonthsAgo(r.ReviewTime, foldCase); !ok {
		return Review{}, false
	}
	if r.Review, ok = derive.Text(row["review"]); !ok {
		return Review{}, false
	}
	if r.StoreAddress, ok = derive.Text(row["store_address"]); !ok {
		return Review{}, false
	}
	if r.Latitude, ok = derive.Number(row["latitude"]); !ok {
		return Review{}, false
	}
	if r.Longitude, ok = derive.Number(row["longitude"]); !ok {
		return Review{}, false
	}

	r.Sentiment = sentiment.FromRating(r.Rating)
	if r.Label, ok = sentiment.FromCode(r.Sentiment); !ok {
		return Review{}, false
	}
	return r, true
}

// Row renders the review back into raw cell text
func (r Review) Row() excel.RawRowData {
	return excel.RawRowData{
		"rating":        formatFloat(r.Rating),
		"rating_count":  formatFloat(r.RatingCount),
		"review_time":   r.ReviewTime,
		"review":        r.Review,
		"store_address": r.StoreAddress,
		"latitude":      formatFloat(r.Latitude),
		"longitude":     formatFloat(r.Longitude),
	}
}

// CleanReviews parses the review sheet
func CleanReviews(data *excel.ExcelData, foldCase bool) ([]Review, clean.Stats, error) {
	return clean.Table(data, ReviewSchema, func(row excel.RawRowData) (Review, bool) {
		return ParseReview(row, foldCase)
	})
}

// ReviewCharts builds the restaurant dashboard
func ReviewCharts(reviews []Review, variant Variant) ([]charts.Chart, error) {
	n := len(reviews)
	labels := make([]string, n)
	stores := make([]string, n)
	sentiments := make([]float64, n)
	ratings := make([]float64, n)
	ratingCounts := make([]float64, n)
	months := make([]float64, n)
	lats := make([]float64, n)
	lons := make([]float64, n)
	for i, r := range reviews {
		labels[i] = r.Label.String()
		stores[i] = r.StoreAddress
		sentiments[i] = float64(r.Sentiment)
		ratings[i] = r.Rating
		ratingCounts[i] = r.RatingCount
		months[i] = r.MonthsAgo
		lats[i] = r.Latitude
		lons[i] = r.Longitude
	}

	bySentiment, err := aggregate.GroupCount(labels)
	if err != nil {
		return nil, err
	}
	bySentiment = sentimentOrder(bySentiment)
	storeSentiment, err := aggregate.GroupMean(stores, sentiments)
	if err != nil {
		return nil, err
	}
	timeRating, err := aggregate.GroupMeanNumeric(months, ratings)
	if err != nil {
		return nil, err
	}
	topStores, err := aggregate.TopN(stores, 10)
	if err != nil {
		return nil, err
	}
	storeRatingCount, err := aggregate.GroupMean(stores, ratingCounts)
	if err != nil {
		return nil, err
	}
	topRatingCount := aggregate.Head(aggregate.SortByValue(storeRatingCount, true), 10)

	standalone := variant == Standalone
	tall := layout(standalone, charts.Layout{Height: 1000, TickAngle: -45})

	return []charts.Chart{
		charts.Pie("Sentiment Distribution", bySentiment).
			WithLayout(layout(standalone, charts.Layout{Height: 800})),
		charts.Bar(pick(standalone, "Store vs Avg Sentiment", "Store Address vs Avg Sentiment"),
			"store_address", "Average Sentiment", storeSentiment).WithLayout(tall),
		charts.NumericLine(pick(standalone, "Review Time vs Rating", "Review Time vs Average Rating"),
			"months_ago", "rating", timeRating).WithLayout(layout(standalone, charts.Layout{Height: 800})),
		charts.Bar(pick(standalone, "Top 10 Stores by Reviews", "Top 10 Stores by Review Count"),
			"store_address", "review_count", topStores).WithLayout(tall),
		charts.Scatter(pick(standalone, "Store Locations by Rating", "Store Locations (Colored by Rating)"),
			"longitude", "latitude", lons, lats, ratings, stores).WithColor("rating").
			WithLayout(layout(standalone, charts.Layout{Height: 600})),
		charts.Bar(pick(standalone, "Top 10 by Avg Rating Count", "Top 10 Stores by Avg Rating Count"),
			"store_address", "rating_count", topRatingCount).WithLayout(tall),
	}, nil
}

// ReviewText joins every review for the word cloud
func ReviewText(reviews []Review) string {
	texts := make([]string, len(reviews))
	for i, r := range reviews {
		texts[i] = r.Review
	}
	return strings.Join(texts, " ")
}
