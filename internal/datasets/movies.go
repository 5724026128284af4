package datasets

import (
	"strconv"
	"strings"

	"sentidash/adapters/excel"
	"sentidash/domain/dataset"
	"sentidash/domain/sentiment"
	"sentidash/internal/aggregate"
	"sentidash/internal/charts"
	"sentidash/internal/clean"
	"sentidash/internal/derive"
)

// MovieSchema lists the raw columns of the movie sheet. title is optional hover text.
var MovieSchema = dataset.Schema{
	Kind:     dataset.KindMovies,
	Required: []string{"year", "duration", "genre", "rating", "votes", "sentiment", "sentiment_score", "certificate"},
}

// Movie is one cleaned movie
type Movie struct {
	Title       string
	Year        string
	YearClean   float64
	Duration    string
	DurationMin float64
	Genre       string
	GenreMain   string
	Rating      float64
	Votes       float64
	Sentiment   sentiment.Code
	Label       sentiment.Label
	Score       float64
	Certificate string
}

// ParseMovie derives a movie from a raw row. Rows missing any critical field are rejected.
func ParseMovie(row excel.RawRowData) (Movie, bool) {
	m := Movie{
		Title:    strings.TrimSpace(row["title"]),
		Year:     row["year"],
		Duration: row["duration"],
		Genre:    row["genre"],
	}
	var ok bool

	if m.YearClean, ok = derive.FirstYear(m.Year); !ok {
		return Movie{}, false
	}
	if m.DurationMin, ok = derive.FirstDigits(m.Duration); !ok {
		return Movie{}, false
	}
	if m.GenreMain, ok = derive.FirstToken(m.Genre, ","); !ok {
		return Movie{}, false
	}
	if m.Rating, ok = derive.Number(row["rating"]); !ok {
		return Movie{}, false
	}
	if m.Votes, ok = derive.Number(row["votes"]); !ok {
		return Movie{}, false
	}
	if m.Sentiment, m.Label, ok = derive.Code(row["sentiment"]); !ok {
		return Movie{}, false
	}
	if m.Score, ok = derive.Number(row["sentiment_score"]); !ok {
		return Movie{}, false
	}
	if m.Certificate, ok = derive.Text(row["certificate"]); !ok {
		return Movie{}, false
	}
	return m, true
}

// Row renders the movie back into raw cell text
func (m Movie) Row() excel.RawRowData {
	return excel.RawRowData{
		"title":           m.Title,
		"year":            m.Year,
		"duration":        m.Duration,
		"genre":           m.Genre,
		"rating":          formatFloat(m.Rating),
		"votes":           formatFloat(m.Votes),
		"sentiment":       strconv.Itoa(int(m.Sentiment)),
		"sentiment_score": formatFloat(m.Score),
		"certificate":     m.Certificate,
	}
}

// CleanMovies parses the movie sheet
func CleanMovies(data *excel.ExcelData) ([]Movie, clean.Stats, error) {
	return clean.Table(data, MovieSchema, ParseMovie)
}

// MovieCharts builds the movie dashboard. The standalone variant adds duration,
// genre score and certificate charts and uses its own ordering.
func MovieCharts(movies []Movie, variant Variant) ([]charts.Chart, error) {
	n := len(movies)
	labels := make([]string, n)
	titles := make([]string, n)
	genres := make([]string, n)
	certificates := make([]string, n)
	ratings := make([]float64, n)
	votes := make([]float64, n)
	years := make([]float64, n)
	durations := make([]float64, n)
	scores := make([]float64, n)
	for i, m := range movies {
		labels[i] = m.Label.String()
		titles[i] = m.Title
		genres[i] = m.GenreMain
		certificates[i] = m.Certificate
		ratings[i] = m.Rating
		votes[i] = m.Votes
		years[i] = m.YearClean
		durations[i] = m.DurationMin
		scores[i] = m.Score
	}

	bySentiment, err := aggregate.GroupCount(labels)
	if err != nil {
		return nil, err
	}
	bySentiment = sentimentOrder(bySentiment)
	ratingBox, err := aggregate.Box(ratings)
	if err != nil {
		return nil, err
	}
	voteBins, err := aggregate.Histogram(votes, 30)
	if err != nil {
		return nil, err
	}
	genreRating, err := aggregate.GroupMean(genres, ratings)
	if err != nil {
		return nil, err
	}
	genreRating = aggregate.SortByValue(genreRating, true)

	standalone := variant == Standalone
	ratingsBox := charts.Box("Box Plot of IMDb Ratings", "", "rating",
		[]aggregate.GroupedBox{{Key: "IMDb Ratings", Box: ratingBox}})
	votesHist := charts.Histogram("Distribution of Votes", "Votes", voteBins)
	overYears := charts.Scatter(pick(standalone, "Ratings Over Years", "Ratings Over the Years (Colored by Sentiment Score)"),
		"Year", "Rating", years, ratings, scores, titles).WithColor("sentiment_score")
	byGenre := charts.Bar(pick(standalone, "Avg Rating by Genre", "Average Rating by Main Genre"),
		"Genre", "Average Rating", genreRating)
	pie := charts.Pie(pick(standalone, "Sentiment Distribution", "Sentiment Distribution of Movies"), bySentiment)

	if !standalone {
		return []charts.Chart{pie, ratingsBox, votesHist, overYears, byGenre}, nil
	}

	genreScores, err := aggregate.GroupBox(genres, scores)
	if err != nil {
		return nil, err
	}
	certRating, err := aggregate.GroupMean(certificates, ratings)
	if err != nil {
		return nil, err
	}
	certRating = aggregate.SortByValue(certRating, false)

	return []charts.Chart{
		ratingsBox,
		votesHist,
		overYears,
		byGenre,
		pie,
		charts.Scatter("Rating vs. Duration", "Duration (min)", "Rating", durations, ratings, nil, titles),
		charts.Box("Sentiment Score by Genre", "Genre", "Sentiment Score", genreScores),
		charts.Bar("Average Rating by Certificate", "Certificate", "Average Rating", certRating),
	}, nil
}
