package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/hubcrawl/internal/model"
)

// SimpleWriter outputs human-readable text for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose adds language statistics to repository records.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs one line per record.
func (w *SimpleWriter) Write(records []model.ResultRecord) (int, error) {
	var sb strings.Builder
	w.writeRecords(&sb, records)
	return w.output.Write([]byte(sb.String()))
}

// WriteRun outputs the run header followed by its records.
func (w *SimpleWriter) WriteRun(run *model.CrawlRun) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	if run.ID != "" {
		sb.WriteString(fmt.Sprintf("Run:      %s\n", run.ID))
	}
	sb.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(run.Keywords, " ")))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", run.Type))
	sb.WriteString(fmt.Sprintf("Proxy:    %s\n", run.Proxy))
	sb.WriteString(fmt.Sprintf("Date:     %s\n", run.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Results:  %d\n", len(run.Records)))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	w.writeRecords(&sb, run.Records)
	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeRecords(sb *strings.Builder, records []model.ResultRecord) {
	if len(records) == 0 {
		sb.WriteString("  No results\n")
		return
	}
	for _, rec := range records {
		if rec.Extra == nil {
			sb.WriteString(fmt.Sprintf("  [+] %s\n", rec.URL))
			continue
		}
		sb.WriteString(fmt.Sprintf("  [+] %s (owner: %s)\n", rec.URL, rec.Extra.Owner))
		if w.verbose && len(rec.Extra.LanguageStats) > 0 {
			sb.WriteString(fmt.Sprintf("      %s\n", formatLanguages(rec.Extra.LanguageStats)))
		}
	}
}

// WriteRuns outputs a one-line summary per stored run, newest first as given.
func (w *SimpleWriter) WriteRuns(runs []*model.CrawlRun) (int, error) {
	var sb strings.Builder
	if len(runs) == 0 {
		sb.WriteString("No crawl history\n")
		return w.output.Write([]byte(sb.String()))
	}
	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("%s  %s  %-12s  %3d  %s\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Type,
			len(run.Records),
			strings.Join(run.Keywords, " "),
		))
	}
	return w.output.Write([]byte(sb.String()))
}
