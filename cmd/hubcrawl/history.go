package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/hubcrawl/internal/config"
	"github.com/nao1215/hubcrawl/internal/database"
	"github.com/nao1215/hubcrawl/internal/model"
	"github.com/nao1215/hubcrawl/internal/report"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of runs listed when --limit is not set.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List or show stored crawl runs",
		Long: `History reads the crawl runs stored by 'hubcrawl crawl'.

Without arguments the most recent runs are listed, newest first. With a run
ID, or any unambiguous prefix of one, that run's records are printed as JSON.

Examples:
  # List the 20 most recent runs
  hubcrawl history

  # List every stored run
  hubcrawl history --limit 0

  # Print the records of one run
  hubcrawl history 3f2a9c1e

  # Print a run as a Markdown summary
  hubcrawl history 3f2a9c1e --markdown

  # Remove a run
  hubcrawl history 3f2a9c1e --delete`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Number of runs to list (0 lists all)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print the run as a Markdown summary instead of JSON")
	cmd.Flags().BoolP("delete", "d", false,
		"Delete the given run")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: db_dir of the settings file, else XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	markdownOutput, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	deleteRun, err := flags.GetBool("delete")
	if err != nil {
		return err
	}
	dbDir, err := historyDBDir(cmd)
	if err != nil {
		return err
	}

	// Validate arguments before opening the database.
	if deleteRun && len(args) == 0 {
		return errors.New("a run ID is required with --delete")
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if errors.Is(err, database.ErrDatabaseNotFound) && len(args) == 0 {
		_, err = report.NewSimpleWriter(out).WriteRuns(nil)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if len(args) == 0 {
		runs, err := db.ListRuns(ctx, limit)
		if err != nil {
			return err
		}
		_, err = report.NewSimpleWriter(out).WriteRuns(runs)
		return err
	}

	run, err := db.GetRun(ctx, args[0])
	if err != nil {
		return err
	}

	if deleteRun {
		if err := db.DeleteRun(ctx, run.ID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted crawl run %s\n", run.ID)
		return nil
	}

	return writeRun(out, run, markdownOutput)
}

// historyDBDir resolves the database directory: the flag, then the settings
// file found in the usual places, then the XDG data directory.
func historyDBDir(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("db-dir") {
		return cmd.Flags().GetString("db-dir")
	}
	cfg := config.NewConfig()
	if err := applyConfigFile(cfg); err != nil {
		return "", err
	}
	return cfg.DBDir, nil
}

// writeRun prints one stored run: its records as the crawl wrote them, or
// the full Markdown summary.
func writeRun(out io.Writer, run *model.CrawlRun, markdownOutput bool) error {
	if markdownOutput {
		_, err := report.NewMarkdownWriter(out).WriteRun(run)
		return err
	}
	_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).Write(run.Records)
	return err
}
