package report

import (
	"errors"
	"fmt"
	"os"

	"github.com/nao1215/hubcrawl/internal/model"
)

// Format selects the output file format.
type Format string

const (
	// FormatJSON writes the record list as indented JSON.
	FormatJSON Format = "json"
	// FormatMarkdown writes a Markdown summary of the run.
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned for a Format other than the declared ones.
var ErrUnknownFormat = errors.New("unknown output format")

// WriteFile writes run to path in the given format.
//
// A run without records is not written: written is false and err is nil.
// An existing file at path is truncated.
func WriteFile(path string, run *model.CrawlRun, format Format) (written bool, err error) {
	if format != FormatJSON && format != FormatMarkdown {
		return false, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if len(run.Records) == 0 {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644) //nolint:gosec // user-chosen output path
	if err != nil {
		return false, fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
			written = false
		}
	}()

	if format == FormatMarkdown {
		_, err = NewMarkdownWriter(f).WriteRun(run)
	} else {
		_, err = NewJSONWriter(f, WithPrettyPrint()).Write(run.Records)
	}
	if err != nil {
		return false, fmt.Errorf("failed to write output file: %w", err)
	}
	return true, nil
}
