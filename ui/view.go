package ui

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"sentidash/domain/core"
	"sentidash/domain/dataset"
	"sentidash/internal/datasets"
)

var wordCloudHeadings = map[dataset.Kind]string{
	dataset.KindMcd:     "Word Cloud of Reviews",
	dataset.KindTwitter: "Word Cloud of Tweets",
}

// Section is the rendered state of one dashboard
type Section struct {
	Kind             dataset.Kind
	Title            string
	Charts           []ChartView
	Grid             bool
	Placeholder      string
	Reason           string
	WordCloud        template.URL
	WordCloudHeading string
	Report           template.HTML
}

// ChartView is one chart ready for the page
type ChartView struct {
	ID     string
	Index  int
	Title  string
	Figure string
	PNG    string
}

// Option is one entry of the dashboard selector
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Page is the data of a full page
type Page struct {
	Title    string
	Heading  string
	Logo     string
	Footer   string
	Combined bool
	Options  []Option
	Section  Section
}

// newSection precomputes everything a dashboard needs to render
func newSection(res *datasets.Result) (Section, error) {
	sec := Section{
		Kind:        res.Kind,
		Title:       res.Kind.Title(),
		Placeholder: res.Kind.Placeholder(),
		Report:      reportHTML([]dataset.Report{res.Report}),
	}
	if !res.OK() {
		sec.Reason = res.Err.Error()
		return sec, nil
	}

	for i, c := range res.Charts {
		fig, err := c.JSON()
		if err != nil {
			return Section{}, fmt.Errorf("encode %s chart %d: %w", res.Kind, i+1, err)
		}
		sec.Charts = append(sec.Charts, ChartView{
			ID:     fmt.Sprintf("chart-%s-%d", res.Kind, i+1),
			Index:  i + 1,
			Title:  c.Title,
			Figure: string(fig),
			PNG:    fmt.Sprintf("/charts/%s/%d.png", res.Kind, i+1),
		})
	}

	if res.WordCloud != nil {
		sec.WordCloud = template.URL("data:image/png;base64," + res.WordCloud.Base64())
		sec.WordCloudHeading = wordCloudHeadings[res.Kind]
	}
	return sec, nil
}

// reportMarkdown writes the load reports as a markdown table
func reportMarkdown(reports []dataset.Report) string {
	var b strings.Builder
	b.WriteString("| Dataset | Source | Rows read | Kept | Dropped | Charts | Word cloud | Status |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|---|---|\n")
	for _, r := range reports {
		status := "ok"
		if r.ErrorCode != "" {
			status = fmt.Sprintf("**%s** %s", r.ErrorCode, escapeMarkdown(r.Error))
		}
		source := escapeMarkdown(r.Source)
		if fp := core.Hash(r.Fingerprint); !fp.IsEmpty() {
			source += " `" + fp.Short() + "`"
		}
		wc := "no"
		if r.WordCloud {
			wc = "yes"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %d | %d | %s | %s |\n",
			escapeMarkdown(r.Kind.Title()), source,
			r.RowsRead, r.RowsKept, r.RowsDropped, r.Charts, wc, status)
	}
	return b.String()
}

// reportHTML renders the load reports through markdown
func reportHTML(reports []dataset.Report) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipHTML})
	return template.HTML(markdown.ToHTML([]byte(reportMarkdown(reports)), p, r))
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "\n", " ",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
