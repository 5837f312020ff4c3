package report

import (
	"cmp"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/hubcrawl/internal/model"
)

// MarkdownWriter outputs a crawl summary in Markdown format.
// This format is designed for sharing results in issues and pull requests.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the records without request details.
func (w *MarkdownWriter) Write(records []model.ResultRecord) (int, error) {
	return w.WriteRun(&model.CrawlRun{Records: records})
}

// WriteRun outputs the run in Markdown format.
func (w *MarkdownWriter) WriteRun(run *model.CrawlRun) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, run)
	w.writeRecords(md, run)
	w.writeLanguages(md, run)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and, when known, the request details.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, run *model.CrawlRun) {
	md.H1("Crawl Results")
	md.PlainText("")

	if len(run.Keywords) == 0 {
		return
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Keywords", "`" + strings.Join(run.Keywords, " ") + "`"},
			{"Type", run.Type.String()},
			{"Proxy", "`" + run.Proxy.String() + "`"},
			{"Search URL", run.SearchURL},
			{"Date", run.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Results", strconv.Itoa(len(run.Records))},
		},
	})
	md.PlainText("")
}

// writeRecords writes one table row per record.
// Repository records get owner and language columns.
func (w *MarkdownWriter) writeRecords(md *markdown.Markdown, run *model.CrawlRun) {
	md.H2("Results")
	md.PlainText("")

	if len(run.Records) == 0 {
		md.Note("The search returned no results.")
		md.PlainText("")
		return
	}

	if run.RepositoryCount() == 0 {
		urls := make([]string, len(run.Records))
		for i, rec := range run.Records {
			urls[i] = rec.URL
		}
		md.BulletList(urls...)
		md.PlainText("")
		return
	}

	rows := make([][]string, len(run.Records))
	for i, rec := range run.Records {
		owner, langs := "-", "-"
		if rec.Extra != nil {
			owner = rec.Extra.Owner
			if len(rec.Extra.LanguageStats) > 0 {
				langs = formatLanguages(rec.Extra.LanguageStats)
			}
		}
		rows[i] = []string{rec.URL, owner, langs}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Repository", "Owner", "Languages"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeLanguages writes a pie chart of how many repositories use each language.
func (w *MarkdownWriter) writeLanguages(md *markdown.Markdown, run *model.CrawlRun) {
	counts := languageCounts(run.Records)
	if len(counts) == 0 {
		return
	}

	md.H2("Languages")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Repositories per Language"),
		piechart.WithShowData(true),
	)
	for _, lc := range counts {
		chart.LabelAndIntValue(lc.language, uint64(lc.count))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [hubcrawl](https://github.com/nao1215/hubcrawl)*")
}

// formatLanguages renders stats as "Go 90.1%, Shell 9.9%" sorted by name.
func formatLanguages(stats map[string]string) string {
	parts := make([]string, 0, len(stats))
	for _, lang := range slices.Sorted(maps.Keys(stats)) {
		parts = append(parts, lang+" "+stats[lang])
	}
	return strings.Join(parts, ", ")
}

type languageCount struct {
	language string
	count    int
}

// languageCounts counts the repositories using each language, most used first.
func languageCounts(records []model.ResultRecord) []languageCount {
	counts := make(map[string]int)
	for _, rec := range records {
		if rec.Extra == nil {
			continue
		}
		for lang := range rec.Extra.LanguageStats {
			counts[lang]++
		}
	}

	out := make([]languageCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, languageCount{language: lang, count: n})
	}
	slices.SortFunc(out, func(a, b languageCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.language, b.language)
	})
	return out
}
