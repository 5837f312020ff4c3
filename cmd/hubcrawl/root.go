package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for hubcrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hubcrawl",
		Short: "Crawl GitHub search results through a proxy",
		Long: `hubcrawl runs one GitHub search through a proxy chosen at random from
the given list and writes the result links as JSON.

For repository searches every result page is visited as well, and the
owner and language statistics of each repository are recorded.
Successful crawls are kept in a local history database.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
