package report

import (
	"io"

	"github.com/nao1215/hubcrawl/internal/model"
)

// Writer defines the interface for crawl output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the records of a crawl.
	// Returns the number of bytes written and any error encountered.
	Write(records []model.ResultRecord) (int, error)

	// WriteRun outputs a crawl run together with its request details.
	WriteRun(run *model.CrawlRun) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the records to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(records []model.ResultRecord) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(records)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteRun outputs the run to all configured Writers.
func (m *MultiWriter) WriteRun(run *model.CrawlRun) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteRun(run)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
