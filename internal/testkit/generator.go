package testkit

import (
	"fmt"
	"math/rand"
	"time"
)

// Column layouts of the three source spreadsheets.
var (
	ReviewHeaders = []string{"reviewer_id", "store_name", "category", "store_address", "latitude ", "longitude",
		"rating_count", "review_time", "review", "rating"}
	PostHeaders  = []string{"Tweet_ID", "Username", "Text", "Retweets", "Likes", "Timestamp", "sentiment", "sentiment_score"}
	MovieHeaders = []string{"title", "year", "certificate", "duration", "genre", "rating", "description", "stars",
		"votes", "sentiment", "sentiment_score"}
)

// GeneratorConfig configures the fixture generator
type GeneratorConfig struct {
	Rows      int       `json:"rows"`
	Stores    int       `json:"stores"`
	Users     int       `json:"users"`
	StartDate time.Time `json:"start_date"`
	Seed      int64     `json:"seed"`
}

// DefaultGeneratorConfig returns sensible defaults for fixture generation
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:      200,
		Stores:    15,
		Users:     25,
		StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:      42,
	}
}

// Generator produces deterministic spreadsheet rows for the three datasets
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a new fixture generator
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	reviewTimes = []string{"2 days ago", "a week ago", "3 weeks ago", "a month ago", "5 months ago",
		"a year ago", "2 years ago", "4 years ago"}
	reviewWords = []string{"great", "food", "slow", "service", "fries", "cold", "friendly", "staff",
		"dirty", "fast", "burger", "coffee", "rude", "clean", "order", "wrong"}
	tweetWords = []string{"love", "hate", "today", "news", "game", "music", "happy", "sad", "world",
		"weekend", "coffee", "vote", "party", "rain", "sun"}
	genres       = []string{"Drama", "Comedy", "Action", "Horror", "Animation", "Crime"}
	certificates = []string{"TV-MA", "TV-14", "PG-13", "R", "TV-PG"}
)

func (g *Generator) sentence(words []string, n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += " "
		}
		s += words[g.rng.Intn(len(words))]
	}
	return s
}

// Reviews generates restaurant review rows matching ReviewHeaders
func (g *Generator) Reviews() [][]interface{} {
	rows := make([][]interface{}, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		store := g.rng.Intn(g.config.Stores)
		stars := 1 + g.rng.Intn(5)
		starText := fmt.Sprintf("%d stars", stars)
		if stars == 1 {
			starText = "1 star"
		}
		rows = append(rows, []interface{}{
			i + 1,
			"McDonald's",
			"Fast food restaurant",
			fmt.Sprintf("%d Main St, Springfield", 100+store),
			30.0 + float64(store)*0.5,
			-97.0 - float64(store)*0.25,
			fmt.Sprintf("%d,%03d", 1+store, g.rng.Intn(1000)),
			reviewTimes[g.rng.Intn(len(reviewTimes))],
			g.sentence(reviewWords, 3+g.rng.Intn(6)),
			starText,
		})
	}
	return rows
}

// Posts generates social-media rows matching PostHeaders
func (g *Generator) Posts() [][]interface{} {
	rows := make([][]interface{}, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		code := g.rng.Intn(3) - 1
		ts := g.config.StartDate.Add(time.Duration(g.rng.Intn(30*24*60)) * time.Minute)
		rows = append(rows, []interface{}{
			i + 1,
			fmt.Sprintf("user%02d", g.rng.Intn(g.config.Users)),
			g.sentence(tweetWords, 4+g.rng.Intn(8)),
			g.rng.Intn(100),
			g.rng.Intn(100),
			ts.Format("2006-01-02 15:04:05"),
			code,
			float64(code)*0.5 + g.rng.Float64()*0.5 - 0.25,
		})
	}
	return rows
}

// Movies generates movie metadata rows matching MovieHeaders
func (g *Generator) Movies() [][]interface{} {
	rows := make([][]interface{}, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		code := g.rng.Intn(3) - 1
		year := 1990 + g.rng.Intn(33)
		first := genres[g.rng.Intn(len(genres))]
		second := genres[g.rng.Intn(len(genres))]
		rows = append(rows, []interface{}{
			fmt.Sprintf("Movie %d", i+1),
			fmt.Sprintf("(%d–%d)", year, year+g.rng.Intn(5)),
			certificates[g.rng.Intn(len(certificates))],
			fmt.Sprintf("%d min", 20+g.rng.Intn(160)),
			fmt.Sprintf("\n%s, %s", first, second),
			float64(10+g.rng.Intn(90)) / 10,
			"A story.",
			"['Someone']",
			fmt.Sprintf("%d,%03d", g.rng.Intn(300), g.rng.Intn(1000)),
			code,
			float64(code)*0.4 + g.rng.Float64()*0.2,
		})
	}
	return rows
}
