package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/hubcrawl/internal/model"
)

// createTestRun creates a repository run with sample data for testing.
func createTestRun() *model.CrawlRun {
	endpoint := model.MustNewProxyEndpoint("140.227.211.47:8080")
	return &model.CrawlRun{
		ID:        "3f1c2a9e-0000-4000-8000-000000000001",
		Keywords:  []string{"python", "jwt"},
		Type:      model.ResultTypeRepositories,
		Proxy:     endpoint,
		SearchURL: "https://github.com/search?q=python+jwt&type=repositories",
		StartedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Duration:  2 * time.Second,
		Records: []model.ResultRecord{
			{
				URL: "https://github.com/jpadilla/pyjwt",
				Extra: &model.RepositoryExtra{
					Owner:         "jpadilla",
					LanguageStats: map[string]string{"Python": "100.0%"},
				},
			},
			{
				URL: "https://github.com/GehirnInc/python-jwt",
				Extra: &model.RepositoryExtra{
					Owner:         "GehirnInc",
					LanguageStats: map[string]string{"Python": "98.1%", "Shell": "1.9%"},
				},
			},
		},
	}
}

func issueRecords() []model.ResultRecord {
	return []model.ResultRecord{
		{URL: "https://github.com/x/y/issues/1"},
		{URL: "https://github.com/a/b/issues/2"},
	}
}

// TestJSONWriter tests the JSON writer.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("compact output by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(issueRecords()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := `[{"url":"https://github.com/x/y/issues/1"},{"url":"https://github.com/a/b/issues/2"}]` + "\n"
		if buf.String() != want {
			t.Errorf("got %q, want %q", buf.String(), want)
		}
	})

	t.Run("pretty print uses two spaces", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		records := []model.ResultRecord{{URL: "https://github.com/x/y"}}
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "[\n  {\n    \"url\": \"https://github.com/x/y\"\n  }\n]\n"
		if buf.String() != want {
			t.Errorf("got %q, want %q", buf.String(), want)
		}
	})

	t.Run("repository shape", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		records := []model.ResultRecord{{
			URL:   "https://github.com/o/r",
			Extra: &model.RepositoryExtra{Owner: "o", LanguageStats: map[string]string{"Go": "100.0%"}},
		}}
		if _, err := NewJSONWriter(&buf).Write(records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := `[{"url":"https://github.com/o/r","extra":{"owner":"o","language_stats":{"Go":"100.0%"}}}]` + "\n"
		if buf.String() != want {
			t.Errorf("got %q, want %q", buf.String(), want)
		}
	})

	t.Run("does not escape ampersands", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		records := []model.ResultRecord{{URL: "https://github.com/search?q=a&type=wikis"}}
		if _, err := NewJSONWriter(&buf).Write(records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(buf.String(), `\u0026`) {
			t.Errorf("ampersand should not be escaped: %s", buf.String())
		}
	})

	t.Run("nil records written as empty array", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.String() != "[]\n" {
			t.Errorf("got %q, want %q", buf.String(), "[]\n")
		}
	})

	t.Run("custom indent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithIndent(">", "\t")).Write(issueRecords()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "\n>\t{") {
			t.Errorf("expected prefixed tab indentation, got %q", buf.String())
		}
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		run := createTestRun()
		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(run.Records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := ReadRecords(&buf)
		if err != nil {
			t.Fatalf("ReadRecords: %v", err)
		}
		if diff := cmp.Diff(run.Records, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("WriteRun includes request details", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).WriteRun(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{`"id":"3f1c2a9e`, `"proxy":"140.227.211.47:8080"`, `"type":"repositories"`} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected output to contain %s, got %s", want, buf.String())
			}
		}
	})
}

// TestMarkdownWriter tests the Markdown writer.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteRun(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{
			"# Crawl Results",
			"python jwt",
			"140.227.211.47:8080",
			"https://github.com/jpadilla/pyjwt",
			"GehirnInc",
			"Python 98.1%, Shell 1.9%",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}
	})

	t.Run("includes language pie chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).WriteRun(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "```mermaid") {
			t.Error("expected mermaid code block")
		}
		if !strings.Contains(output, "Repositories per Language") {
			t.Error("expected chart title")
		}
	})

	t.Run("bare records as list without chart", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(issueRecords()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		if !strings.Contains(output, "https://github.com/x/y/issues/1") {
			t.Error("expected record URL in output")
		}
		if strings.Contains(output, "```mermaid") {
			t.Error("no chart expected without repository records")
		}
	})

	t.Run("empty results note", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "no results") {
			t.Errorf("expected empty note, got %s", buf.String())
		}
	})
}

// TestSimpleWriter tests the text writer.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes run header", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteRun(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := buf.String()
		for _, want := range []string{"Keywords: python jwt", "Type:     repositories", "Results:  2", "(owner: jpadilla)"} {
			if !strings.Contains(output, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, output)
			}
		}
		if strings.Contains(output, "Shell 1.9%") {
			t.Error("language stats should only appear in verbose mode")
		}
	})

	t.Run("verbose mode includes languages", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithVerbose(true)).WriteRun(createTestRun()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "Python 98.1%, Shell 1.9%") {
			t.Errorf("expected language stats, got:\n%s", buf.String())
		}
	})

	t.Run("no results", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No results") {
			t.Errorf("got %q", buf.String())
		}
	})

	t.Run("WriteRuns lists runs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteRuns([]*model.CrawlRun{createTestRun()}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "3f1c2a9e") || !strings.Contains(output, "python jwt") {
			t.Errorf("unexpected listing: %q", output)
		}
	})

	t.Run("WriteRuns empty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).WriteRuns(nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(buf.String(), "No crawl history") {
			t.Errorf("got %q", buf.String())
		}
	})
}

// TestMultiWriter tests writing to several writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var jsonBuf, textBuf bytes.Buffer
	mw := NewMultiWriter(NewJSONWriter(&jsonBuf), NewSimpleWriter(&textBuf))

	n, err := mw.Write(issueRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != jsonBuf.Len()+textBuf.Len() {
		t.Errorf("expected total bytes %d, got %d", jsonBuf.Len()+textBuf.Len(), n)
	}
	if jsonBuf.Len() == 0 || textBuf.Len() == 0 {
		t.Error("expected output in both writers")
	}
}

// TestWriteFile tests output file persistence.
func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("writes indented JSON that round trips", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.json")
		run := createTestRun()

		written, err := WriteFile(path, run, FormatJSON)
		if err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if !written {
			t.Fatal("expected file to be written")
		}

		data, err := os.ReadFile(path) //nolint:gosec // test file
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "[\n  {\n    \"url\"") {
			t.Errorf("expected two-space indented JSON, got:\n%s", data)
		}

		got, err := ReadRecords(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("ReadRecords: %v", err)
		}
		if diff := cmp.Diff(run.Records, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty result writes nothing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.json")
		run := &model.CrawlRun{Records: []model.ResultRecord{}}

		written, err := WriteFile(path, run, FormatJSON)
		if err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if written {
			t.Error("expected no file for empty result")
		}
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("file should not exist, stat err = %v", err)
		}
	})

	t.Run("empty result keeps existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.json")
		if err := os.WriteFile(path, []byte("previous"), 0o600); err != nil {
			t.Fatal(err)
		}

		if _, err := WriteFile(path, &model.CrawlRun{}, FormatJSON); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		data, err := os.ReadFile(path) //nolint:gosec // test file
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "previous" {
			t.Errorf("existing file modified: %q", data)
		}
	})

	t.Run("markdown format", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.md")
		written, err := WriteFile(path, createTestRun(), FormatMarkdown)
		if err != nil || !written {
			t.Fatalf("WriteFile: written=%v err=%v", written, err)
		}
		data, err := os.ReadFile(path) //nolint:gosec // test file
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "# Crawl Results") {
			t.Errorf("expected markdown output, got:\n%s", data)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.xml")
		_, err := WriteFile(path, createTestRun(), Format("xml"))
		if !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("expected ErrUnknownFormat, got %v", err)
		}
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Error("no file should be created for an unknown format")
		}
	})

	t.Run("unwritable path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "output.json")
		if _, err := WriteFile(path, createTestRun(), FormatJSON); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}
