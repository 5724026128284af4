package wordcloud

import (
	"sort"
	"strings"
	"unicode"
)

// WordCount is one distinct word and how often it occurs
type WordCount struct {
	Word  string
	Count int
}

// stopWords are dropped before counting
var stopWords = toSet(`a about above after again against all also am an and any are aren't as at be
because been before being below between both but by can can't cannot com could couldn't did didn't do
does doesn't doing don't down during each else ever few for from further get had hadn't has hasn't have
haven't having he he'd he'll he's her here here's hers herself him himself his how how's however http
i i'd i'll i'm i've if in into is isn't it it's its itself just k let's like me more most mustn't my
myself no nor not of off on once only or other otherwise ought our ours ourselves out over own r same
shall shan't she she'd she'll she's should shouldn't since so some such than that that's the their
theirs them themselves then there there's these they they'd they'll they're they've this those through
to too under until up very was wasn't we we'd we'll we're we've were weren't what what's when when's
where where's which while who who's whom why why's with won't would wouldn't www you you'd you'll
you're you've your yours yourself yourselves`)

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// Tokenize splits text into lower-case words of at least two characters.
// Apostrophes inside a word are kept, pure numbers are dropped.
func Tokenize(text string) []string {
	isWordRune := func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
	}

	var words []string
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool { return !isWordRune(r) }) {
		w := strings.Trim(field, "'")
		if len([]rune(w)) < 2 || isNumber(w) {
			continue
		}
		words = append(words, w)
	}
	return words
}

func isNumber(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Count tallies words that are not stop words, most frequent first, ties alphabetical.
// At most max words are returned; max <= 0 returns all of them.
func Count(words []string, max int) []WordCount {
	counts := make(map[string]int)
	for _, w := range words {
		if stopWords[w] {
			continue
		}
		counts[w]++
	}

	out := make([]WordCount, 0, len(counts))
	for w, n := range counts {
		out = append(out, WordCount{Word: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})

	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
