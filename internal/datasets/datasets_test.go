package datasets

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentidash/adapters/excel"
	"sentidash/domain/dataset"
	"sentidash/domain/sentiment"
	"sentidash/internal/clean"
	apperrors "sentidash/internal/errors"
	"sentidash/internal/testkit"
)

func reviewRow() excel.RawRowData {
	return excel.RawRowData{
		"rating":        "5",
		"rating_count":  "1,000",
		"review_time":   "1 month ago",
		"review":        "Great fries",
		"store_address": "1 Main St",
		"latitude":      "1.0",
		"longitude":     "2.0",
	}
}

func TestParseReviewEndToEnd(t *testing.T) {
	r, ok := ParseReview(reviewRow(), true)
	require.True(t, ok)

	assert.Equal(t, 5.0, r.Rating)
	assert.Equal(t, 1000.0, r.RatingCount)
	assert.Equal(t, 1.0, r.MonthsAgo)
	assert.Equal(t, sentiment.Positive, r.Sentiment)
	assert.Equal(t, sentiment.LabelPositive, r.Label)
	assert.Equal(t, 1.0, r.Latitude)
	assert.Equal(t, 2.0, r.Longitude)
}

func TestParseReviewDropsIncompleteRows(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"no rating digit", "rating", "stars"},
		{"bad rating count", "rating_count", "many"},
		{"unknown review time", "review_time", "recently"},
		{"empty review", "review", "  "},
		{"empty store", "store_address", ""},
		{"bad latitude", "latitude", "north"},
		{"missing longitude", "longitude", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := reviewRow()
			row[tt.field] = tt.value
			_, ok := ParseReview(row, true)
			assert.False(t, ok)
		})
	}
}

func TestParseReviewCaseFolding(t *testing.T) {
	row := reviewRow()
	row["review_time"] = "3 Weeks Ago"

	_, ok := ParseReview(row, false)
	assert.False(t, ok, "case-sensitive matching misses capitalised keywords")

	r, ok := ParseReview(row, true)
	require.True(t, ok)
	assert.Equal(t, 0.5, r.MonthsAgo)
}

func TestParsePost(t *testing.T) {
	row := excel.RawRowData{
		"Timestamp":       "2023-01-30 11:00:51",
		"sentiment":       "-1",
		"Likes":           "12",
		"Retweets":        "3",
		"Username":        "someone",
		"sentiment_score": "-0.4",
		"Text":            "rain again",
	}
	p, ok := ParsePost(row)
	require.True(t, ok)
	assert.Equal(t, 11, p.Hour)
	assert.Equal(t, sentiment.LabelNegative, p.Label)

	row["sentiment"] = "2"
	_, ok = ParsePost(row)
	assert.False(t, ok, "codes without a label are dropped")
}

func TestParseMovie(t *testing.T) {
	row := excel.RawRowData{
		"title":           "Movie",
		"year":            "(2010–2015)",
		"duration":        "142 min",
		"genre":           "\nDrama, Horror",
		"rating":          "8.1",
		"votes":           "12,345",
		"sentiment":       "0",
		"sentiment_score": "0.12",
		"certificate":     "TV-MA",
	}
	m, ok := ParseMovie(row)
	require.True(t, ok)
	assert.Equal(t, 2010.0, m.YearClean)
	assert.Equal(t, 142.0, m.DurationMin)
	assert.Equal(t, "Drama", m.GenreMain)
	assert.Equal(t, 12345.0, m.Votes)
	assert.Equal(t, sentiment.LabelNeutral, m.Label)

	row["genre"] = " , Comedy"
	_, ok = ParseMovie(row)
	assert.False(t, ok, "an empty first genre is missing")
}

func TestCleanMissingColumnsNamesAll(t *testing.T) {
	data := &excel.ExcelData{
		Headers: []string{"rating", "rating_count", "review_time", "store_address"},
		Rows:    []excel.RawRowData{reviewRow()},
	}

	reviews, _, err := CleanReviews(data, true)
	assert.Empty(t, reviews)
	require.True(t, errors.Is(err, dataset.ErrMissingColumns))

	var schemaErr *dataset.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, []string{"review", "latitude", "longitude"}, schemaErr.Missing)
}

func readFixtures(t *testing.T) *testkit.Fixtures {
	t.Helper()
	fx, err := testkit.WriteFixtures(t.TempDir(), testkit.DefaultGeneratorConfig())
	require.NoError(t, err)
	return fx
}

func readTable(t *testing.T, path string) *excel.ExcelData {
	t.Helper()
	data, err := excel.NewDataReader(excel.DefaultExcelConfig(path)).ReadData()
	require.NoError(t, err)
	return data
}

func TestCleanIsIdempotent(t *testing.T) {
	fx := readFixtures(t)

	t.Run("reviews", func(t *testing.T) {
		first, stats, err := CleanReviews(readTable(t, fx.McdFile), true)
		require.NoError(t, err)
		require.NotEmpty(t, first)
		assert.Equal(t, stats.Read, stats.Kept+stats.Dropped)

		again, stats, err := CleanReviews(&excel.ExcelData{Headers: ReviewSchema.Required, Rows: clean.Rows(first)}, true)
		require.NoError(t, err)
		assert.Zero(t, stats.Dropped)
		assert.Equal(t, first, again)
	})

	t.Run("posts", func(t *testing.T) {
		first, _, err := CleanPosts(readTable(t, fx.TwitterFile))
		require.NoError(t, err)
		require.NotEmpty(t, first)

		again, stats, err := CleanPosts(&excel.ExcelData{Headers: PostSchema.Required, Rows: clean.Rows(first)})
		require.NoError(t, err)
		assert.Zero(t, stats.Dropped)
		assert.Equal(t, first, again)
	})

	t.Run("movies", func(t *testing.T) {
		first, _, err := CleanMovies(readTable(t, fx.MoviesFile))
		require.NoError(t, err)
		require.NotEmpty(t, first)

		headers := append([]string{"title"}, MovieSchema.Required...)
		again, stats, err := CleanMovies(&excel.ExcelData{Headers: headers, Rows: clean.Rows(first)})
		require.NoError(t, err)
		assert.Zero(t, stats.Dropped)
		assert.Equal(t, first, again)
	})
}

func chartTitles(t *testing.T, res *Result) []string {
	t.Helper()
	titles := make([]string, len(res.Charts))
	for i, c := range res.Charts {
		titles[i] = c.Title
	}
	return titles
}

func TestLoadCombinedFixtures(t *testing.T) {
	fx := readFixtures(t)
	opts := Options{Variant: Combined, FoldCaseReviewTime: true}

	mcd := Load(dataset.KindMcd, fx.McdFile, opts)
	require.NoError(t, mcd.Err)
	assert.Equal(t, []string{
		"Sentiment Distribution", "Store vs Avg Sentiment", "Review Time vs Rating",
		"Top 10 Stores by Reviews", "Store Locations by Rating", "Top 10 by Avg Rating Count",
	}, chartTitles(t, mcd))
	require.NotNil(t, mcd.WordCloud)
	assert.Equal(t, 1600, mcd.WordCloud.Width)
	assert.Equal(t, 700, mcd.WordCloud.Height)
	assert.Equal(t, 200, mcd.Report.RowsRead)
	assert.Equal(t, 6, mcd.Report.Charts)
	assert.True(t, mcd.Report.WordCloud)
	assert.Len(t, mcd.Report.Fingerprint, 64)

	top, ok := mcd.Chart(4)
	require.True(t, ok)
	assert.LessOrEqual(t, len(top.Values), 10)
	for i := 1; i < len(top.Values); i++ {
		assert.LessOrEqual(t, top.Values[i], top.Values[i-1])
	}

	tw := Load(dataset.KindTwitter, fx.TwitterFile, opts)
	require.NoError(t, tw.Err)
	assert.Len(t, tw.Charts, 7)
	require.NotNil(t, tw.WordCloud)
	assert.Equal(t, 1500, tw.WordCloud.Width)
	assert.Len(t, tw.Charts[5].Bins, 30)

	mv := Load(dataset.KindMovies, fx.MoviesFile, opts)
	require.NoError(t, mv.Err)
	assert.Equal(t, []string{
		"Sentiment Distribution", "Box Plot of IMDb Ratings", "Distribution of Votes",
		"Ratings Over Years", "Avg Rating by Genre",
	}, chartTitles(t, mv))
	assert.Nil(t, mv.WordCloud)

	genre := mv.Charts[4]
	for i := 1; i < len(genre.Values); i++ {
		assert.LessOrEqual(t, genre.Values[i], genre.Values[i-1], "genres are ordered by average rating descending")
	}
}

func TestLoadStandaloneMovies(t *testing.T) {
	fx := readFixtures(t)

	mv := Load(dataset.KindMovies, fx.MoviesFile, Options{Variant: Standalone})
	require.NoError(t, mv.Err)
	require.Len(t, mv.Charts, 8)
	assert.Equal(t, "Rating vs. Duration", mv.Charts[5].Title)

	cert := mv.Charts[7]
	assert.Equal(t, "Average Rating by Certificate", cert.Title)
	for i := 1; i < len(cert.Values); i++ {
		assert.GreaterOrEqual(t, cert.Values[i], cert.Values[i-1], "certificates are ordered ascending")
	}
}

func TestLoadStandaloneLayoutHints(t *testing.T) {
	fx := readFixtures(t)

	mcd := Load(dataset.KindMcd, fx.McdFile, Options{Variant: Standalone})
	require.NoError(t, mcd.Err)
	assert.Equal(t, 1000, mcd.Charts[1].Layout.Height)
	assert.Equal(t, -45, mcd.Charts[1].Layout.TickAngle)
	assert.Equal(t, "Top 10 Stores by Review Count", mcd.Charts[3].Title)
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()

	missing := Load(dataset.KindMcd, filepath.Join(dir, "nope.xlsx"), Options{})
	require.Error(t, missing.Err)
	assert.Equal(t, apperrors.CodeLoadFailed, apperrors.GetCode(missing.Err))
	assert.Empty(t, missing.Charts)
	assert.Nil(t, missing.WordCloud)
	assert.Equal(t, apperrors.CodeLoadFailed, missing.Report.ErrorCode)

	schema := Build(dataset.KindTwitter, &excel.ExcelData{Headers: []string{"Timestamp", "Text"}}, Options{})
	require.Error(t, schema.Err)
	assert.Equal(t, apperrors.CodeMissingColumns, apperrors.GetCode(schema.Err))
	assert.True(t, errors.Is(schema.Err, dataset.ErrMissingColumns))
	assert.Contains(t, schema.Err.Error(), "sentiment, Likes, Retweets, Username, sentiment_score")

	row := reviewRow()
	row["rating"] = "none"
	empty := Build(dataset.KindMcd, &excel.ExcelData{Headers: ReviewSchema.Required, Rows: []excel.RawRowData{row}}, Options{})
	require.Error(t, empty.Err)
	assert.Equal(t, apperrors.CodeEmptyDataset, apperrors.GetCode(empty.Err))
	assert.Equal(t, 1, empty.Report.RowsDropped)
}

func TestBuildRecoversPanics(t *testing.T) {
	const kind dataset.Kind = "exploding"
	builders[kind] = func(*excel.ExcelData, Options) (built, error) {
		panic("index out of range")
	}
	t.Cleanup(func() { delete(builders, kind) })

	res := Build(kind, &excel.ExcelData{}, Options{})
	require.Error(t, res.Err)
	assert.Equal(t, apperrors.CodeBuildFailed, apperrors.GetCode(res.Err))
	assert.Contains(t, res.Err.Error(), "index out of range")
	assert.Empty(t, res.Charts)
}

func TestBuildStopWordReviewsHaveNoWordCloud(t *testing.T) {
	row := reviewRow()
	row["review"] = "the and of"
	res := Build(dataset.KindMcd, &excel.ExcelData{Headers: ReviewSchema.Required, Rows: []excel.RawRowData{row}}, Options{})
	require.NoError(t, res.Err)
	assert.Len(t, res.Charts, 6)
	assert.Nil(t, res.WordCloud)
}

func postRow(user, label string) excel.RawRowData {
	return excel.RawRowData{
		"Timestamp":       "2023-01-30 11:00:51",
		"sentiment":       label,
		"Likes":           "4",
		"Retweets":        "1",
		"Username":        user,
		"sentiment_score": "0.2",
		"Text":            "coffee with " + user,
	}
}

func movieRow(certificate, label string) excel.RawRowData {
	return excel.RawRowData{
		"title":           "Movie " + certificate,
		"year":            "(2010)",
		"duration":        "100 min",
		"genre":           "Drama",
		"rating":          "7.5",
		"votes":           "1,000",
		"sentiment":       label,
		"sentiment_score": "0.1",
		"certificate":     certificate,
	}
}

func TestBuildPostsDropsNullUsernames(t *testing.T) {
	for _, null := range []string{"NaN", "NA", "<nil>"} {
		t.Run(null, func(t *testing.T) {
			var rows []excel.RawRowData
			for _, user := range []string{"alice", "bob", null, "carol"} {
				rows = append(rows, postRow(user, "1"))
			}

			res := Build(dataset.KindTwitter, &excel.ExcelData{Headers: PostSchema.Required, Rows: rows}, Options{})
			require.NoError(t, res.Err)
			assert.Equal(t, 3, res.Report.RowsKept)
			assert.Equal(t, 1, res.Report.RowsDropped)

			users, ok := res.Chart(5)
			require.True(t, ok)
			assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, users.Labels)
		})
	}
}

func TestBuildMoviesDropsNullCertificates(t *testing.T) {
	rows := []excel.RawRowData{movieRow("PG", "1"), movieRow("NaN", "0"), movieRow("R", "-1")}

	res := Build(dataset.KindMovies, &excel.ExcelData{Headers: MovieSchema.Required, Rows: rows}, Options{Variant: Standalone})
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.Report.RowsDropped)

	cert, ok := res.Chart(8)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"PG", "R"}, cert.Labels)
}

func TestSentimentPiesUseDisplayOrder(t *testing.T) {
	rows := []excel.RawRowData{postRow("alice", "-1"), postRow("bob", "0"), postRow("carol", "1"), postRow("dave", "-1")}

	res := Build(dataset.KindTwitter, &excel.ExcelData{Headers: PostSchema.Required, Rows: rows}, Options{})
	require.NoError(t, res.Err)

	pie, ok := res.Chart(1)
	require.True(t, ok)
	assert.Equal(t, []string{"Positive", "Neutral", "Negative"}, pie.Labels)
	assert.Equal(t, []float64{1, 1, 2}, pie.Values)
}

func TestLoadAllContainsFailures(t *testing.T) {
	fx := readFixtures(t)
	sources := []Source{
		{Kind: dataset.KindMcd, Path: fx.McdFile},
		{Kind: dataset.KindTwitter, Path: filepath.Join(fx.Dir, "missing.xlsx")},
		{Kind: dataset.KindMovies, Path: fx.MoviesFile},
	}

	results := LoadAll(context.Background(), sources, Options{FoldCaseReviewTime: true})
	require.Len(t, results, 3)
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
	assert.Equal(t, dataset.KindTwitter, results[1].Kind)
	assert.True(t, results[2].OK())
}
