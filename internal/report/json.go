package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/nao1215/hubcrawl/internal/model"
)

// JSONWriter outputs records in JSON format.
//
// Design decision: We use encoding/json because the output is a plain list
// of small records and the field tags on model.ResultRecord define the
// format exactly. HTML escaping is disabled so result URLs keep their "&".
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation,
// the format of crawl output files.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the records as a JSON array. A nil slice is written as [].
func (w *JSONWriter) Write(records []model.ResultRecord) (int, error) {
	if records == nil {
		records = []model.ResultRecord{}
	}
	return w.writeJSON(records)
}

// WriteRun outputs the whole run as a JSON object.
func (w *JSONWriter) WriteRun(run *model.CrawlRun) (int, error) {
	return w.writeJSON(run)
}

// writeJSON encodes v and writes it to the output followed by a newline.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.indent {
		enc.SetIndent(w.indentPrefix, w.indentString)
	}
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

// ReadRecords decodes a JSON record list as written by JSONWriter.Write.
func ReadRecords(r io.Reader) ([]model.ResultRecord, error) {
	var records []model.ResultRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}
