package main

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/request.yaml
var requestTemplate embed.FS

const (
	// requestTemplatePath is the template location inside requestTemplate.
	requestTemplatePath = "templates/request.yaml"

	// requestFileName is the default path written by init.
	requestFileName = "request.yaml"
)

// errFileExists is returned by init when the target exists and -f is not set.
var errFileExists = errors.New("file already exists")

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a crawl request template",
		Long: `Init writes a commented crawl request file that can be passed to
'hubcrawl crawl -i'.

Examples:
  # Create request.yaml in the current directory
  hubcrawl init

  # Create the request at a specific path
  hubcrawl init -o requests/nova.yaml

  # Overwrite an existing file
  hubcrawl init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", requestFileName, "Output file path for the request")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("%w: %s (use -f to overwrite)", errFileExists, outputPath)
		}
	}

	content, err := requestTemplate.ReadFile(requestTemplatePath)
	if err != nil {
		return fmt.Errorf("failed to read request template: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write request file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created request file: %s\n", outputPath)
	fmt.Fprintf(out, "Edit the keywords, proxies and type, then run:\n  hubcrawl crawl -i %s\n", outputPath)
	return nil
}
