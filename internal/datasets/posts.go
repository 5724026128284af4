package datasets

import (
	"strconv"
	"strings"
	"time"

	"sentidash/adapters/excel"
	"sentidash/domain/dataset"
	"sentidash/domain/sentiment"
	"sentidash/internal/aggregate"
	"sentidash/internal/charts"
	"sentidash/internal/clean"
	"sentidash/internal/derive"
)

const timestampLayout = "2006-01-02 15:04:05"

// PostSchema lists the raw columns of the social-media sheet
var PostSchema = dataset.Schema{
	Kind:     dataset.KindTwitter,
	Required: []string{"Timestamp", "sentiment", "Likes", "Retweets", "Username", "sentiment_score", "Text"},
}

// Post is one cleaned social-media post
type Post struct {
	Timestamp time.Time
	Sentiment sentiment.Code
	Label     sentiment.Label
	Likes     float64
	Retweets  float64
	Username  string
	Score     float64
	Text      string
	Hour      int
}

// ParsePost derives a post from a raw row. Rows missing any critical field are rejected.
func ParsePost(row excel.RawRowData) (Post, bool) {
	var p Post
	var ok bool

	if p.Timestamp, ok = derive.Timestamp(row["Timestamp"]); !ok {
		return Post{}, false
	}
	if p.Sentiment, p.Label, ok = derive.Code(row["sentiment"]); !ok {
		return Post{}, false
	}
	if p.Likes, ok = derive.Number(row["Likes"]); !ok {
		return Post{}, false
	}
	if p.Retweets, ok = derive.Number(row["Retweets"]); !ok {
		return Post{}, false
	}
	if p.Username, ok = derive.Text(row["Username"]); !ok {
		return Post{}, false
	}
	if p.Score, ok = derive.Number(row["sentiment_score"]); !ok {
		return Post{}, false
	}
	if p.Text, ok = derive.Text(row["Text"]); !ok {
		return Post{}, false
	}
	p.Hour = p.Timestamp.Hour()
	return p, true
}

// Row renders the post back into raw cell text
func (p Post) Row() excel.RawRowData {
	return excel.RawRowData{
		"Timestamp":       p.Timestamp.Format(timestampLayout),
		"sentiment":       strconv.Itoa(int(p.Sentiment)),
		"Likes":           formatFloat(p.Likes),
		"Retweets":        formatFloat(p.Retweets),
		"Username":        p.Username,
		"sentiment_score": formatFloat(p.Score),
		"Text":            p.Text,
	}
}

// CleanPosts parses the social-media sheet
func CleanPosts(data *excel.ExcelData) ([]Post, clean.Stats, error) {
	return clean.Table(data, PostSchema, ParsePost)
}

// PostCharts builds the social-media dashboard
func PostCharts(posts []Post, variant Variant) ([]charts.Chart, error) {
	n := len(posts)
	labels := make([]string, n)
	days := make([]string, n)
	likes := make([]float64, n)
	retweets := make([]float64, n)
	users := make([]string, n)
	scores := make([]float64, n)
	hours := make([]float64, n)
	for i, p := range posts {
		labels[i] = p.Label.String()
		days[i] = p.Timestamp.Format("2006-01-02")
		likes[i] = p.Likes
		retweets[i] = p.Retweets
		users[i] = p.Username
		scores[i] = p.Score
		hours[i] = float64(p.Hour)
	}

	bySentiment, err := aggregate.GroupCount(labels)
	if err != nil {
		return nil, err
	}
	bySentiment = sentimentOrder(bySentiment)
	perDay, err := aggregate.GroupCount(days)
	if err != nil {
		return nil, err
	}
	avgLikes, err := aggregate.GroupMean(labels, likes)
	if err != nil {
		return nil, err
	}
	avgRetweets, err := aggregate.GroupMean(labels, retweets)
	if err != nil {
		return nil, err
	}
	topUsers, err := aggregate.TopN(users, 10)
	if err != nil {
		return nil, err
	}
	scoreBins, err := aggregate.Histogram(scores, 30)
	if err != nil {
		return nil, err
	}
	perHour, err := aggregate.GroupCountNumeric(hours)
	if err != nil {
		return nil, err
	}

	standalone := variant == Standalone
	l := layout(standalone, charts.Layout{Height: 800})

	return []charts.Chart{
		charts.Pie("Tweet Sentiment Distribution", bySentiment).WithLayout(l),
		charts.Line("Tweets Over Time", "Timestamp", "Tweet Count", perDay).WithLayout(l),
		charts.Bar(pick(standalone, "Avg Likes by Sentiment", "Average Likes by Sentiment"),
			"Sentiment_Label", "Likes", avgLikes).WithLayout(l),
		charts.Bar(pick(standalone, "Avg Retweets by Sentiment", "Average Retweets by Sentiment"),
			"Sentiment_Label", "Retweets", avgRetweets).WithLayout(l),
		charts.Bar(pick(standalone, "Top 10 Active Users", "Top 10 Most Active Users"),
			"Username", "Number of Tweets", topUsers).WithLayout(l),
		charts.Histogram("Sentiment Score Distribution", "sentiment_score", scoreBins).WithLayout(l),
		charts.NumericBar("Hourly Tweet Activity", "Hour", "Tweet Count", perHour).WithLayout(l),
	}, nil
}

// PostText joins every post for the word cloud
func PostText(posts []Post) string {
	texts := make([]string, len(posts))
	for i, p := range posts {
		texts[i] = p.Text
	}
	return strings.Join(texts, " ")
}
