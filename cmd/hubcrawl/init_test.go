package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/hubcrawl/internal/model"
	"github.com/nao1215/hubcrawl/internal/proxy"
	"github.com/nao1215/hubcrawl/internal/request"
)

func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != requestFileName {
			t.Errorf("expected default %q, got %q", requestFileName, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" {
			t.Errorf("expected shorthand 'f', got %q", flag.Shorthand)
		}
	})
}

func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates request file", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), "nested", "request.yaml")

		var out bytes.Buffer
		cmd := NewInitCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"-o", outputPath})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(out.String(), outputPath) {
			t.Errorf("expected output to mention %s, got %q", outputPath, out.String())
		}
		if _, err := os.Stat(outputPath); err != nil {
			t.Fatalf("expected request file: %v", err)
		}
	})

	t.Run("fails if file exists without force", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), "request.yaml")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cmd := NewInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"-o", outputPath})
		err := cmd.Execute()
		if !errors.Is(err, errFileExists) {
			t.Fatalf("expected errFileExists, got %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) != "existing" {
			t.Error("existing file was modified")
		}
	})

	t.Run("overwrites file with force flag", func(t *testing.T) {
		t.Parallel()
		outputPath := filepath.Join(t.TempDir(), "request.yaml")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		cmd := NewInitCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs([]string{"-o", outputPath, "-f"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(content) == "existing" {
			t.Error("expected file to be overwritten")
		}
	})
}

// The generated template must be a request the crawler accepts as is.
func TestRequestTemplateIsValid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "request.yaml")
	cmd := NewInitCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-o", path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}

	raw, err := request.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	req, err := request.New(raw, proxy.FirstSelector{})
	if err != nil {
		t.Fatalf("template rejected: %v", err)
	}

	if diff := cmp.Diff([]string{"openstack", "nova", "css"}, req.Keywords()); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
	if req.Type() != model.ResultTypeRepositories {
		t.Errorf("expected Repositories, got %s", req.Type())
	}
	if got := req.Proxy().String(); got != "194.126.37.94:8080" {
		t.Errorf("expected first proxy, got %s", got)
	}
}
