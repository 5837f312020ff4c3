package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nao1215/hubcrawl/internal/config"
	"github.com/nao1215/hubcrawl/internal/crawler"
	"github.com/nao1215/hubcrawl/internal/database"
	"github.com/nao1215/hubcrawl/internal/fetch"
	"github.com/nao1215/hubcrawl/internal/log"
	"github.com/nao1215/hubcrawl/internal/model"
	"github.com/nao1215/hubcrawl/internal/proxy"
	"github.com/nao1215/hubcrawl/internal/report"
	"github.com/nao1215/hubcrawl/internal/request"
	"github.com/spf13/cobra"
)

// emptyOutputNotice is printed instead of writing a file when nothing was found.
const emptyOutputNotice = "--The output is empty--"

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run one GitHub search through a proxy",
		Long: `Crawl searches GitHub for the given keywords through one proxy chosen at
random from the candidates, and writes the result links as indented JSON.

For the Repositories type each result page is visited too, and the owner
and language statistics are added to the record. Issues and Wikis results
contain the URL only. Nothing is written when the search finds nothing.

The request is read from a JSON or YAML file (-i) or from flags (-k, -p, -t),
never from both.

Examples:
  # Search repositories through one of two proxies
  hubcrawl crawl -k openstack -k nova -k css -p 194.126.37.94:8080 -p 13.78.125.167:8080 -t Repositories

  # Read the request from a file created by 'hubcrawl init'
  hubcrawl crawl -i request.yaml -o nova.json

  # Write a Markdown summary instead of JSON
  hubcrawl crawl -i request.yaml --markdown -o nova.md

  # Talk to the proxy over SOCKS5
  hubcrawl crawl -i request.yaml --proxy-scheme socks5

Settings file (.hubcrawl) example:
  site:
    user_agent: "Mozilla/5.0 ..."
    headers:
      Accept-Language: en-US
  proxy_scheme: http
  timeout: 30s`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	// Request flags
	cmd.Flags().StringP("input", "i", "",
		"Read the crawl request from a JSON or YAML file")
	cmd.Flags().StringArrayP("keyword", "k", nil,
		"Search keyword (repeatable)")
	cmd.Flags().StringSliceP("proxy", "p", nil,
		"Proxy candidate as ip:port (repeatable or comma separated)")
	cmd.Flags().StringP("type", "t", "",
		"Result type: Repositories, Issues or Wikis")

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputFile,
		"Result file path")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write a Markdown summary instead of JSON")
	cmd.Flags().Bool("no-history", false,
		"Do not store the run in the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().Bool("print", false,
		"Also print the run as JSON on stdout (the summary moves to stderr)")
	cmd.Flags().String("log-format", config.LogFormatText,
		"Log format: text or json")

	// Connection flags
	cmd.Flags().DurationP("timeout", "T", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().String("proxy-scheme", config.DefaultProxyScheme,
		"How to talk to the proxy: http, https or socks5")
	cmd.Flags().String("site-root", config.DefaultSiteRoot,
		"Root URL of the searched site")
	cmd.Flags().String("user-agent", proxy.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")

	cmd.Flags().StringP("config", "c", "",
		"Settings file path (default: .hubcrawl in current or home directory)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// newLogger creates the redacting logger in the configured format.
func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == config.LogFormatJSON {
		return log.NewSecureJSONLogger(w, cfg.Verbose)
	}
	return log.NewSecureLogger(w, cfg.Verbose)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the settings file and the command flags.
// Flags given on the command line override the settings file, which in turn
// overrides the defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}
	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	if cfg.RequestFile, err = flags.GetString("input"); err != nil {
		return nil, err
	}
	if cfg.Keywords, err = flags.GetStringArray("keyword"); err != nil {
		return nil, err
	}
	if cfg.Proxies, err = flags.GetStringSlice("proxy"); err != nil {
		return nil, err
	}
	if cfg.Type, err = flags.GetString("type"); err != nil {
		return nil, err
	}
	if cfg.OutputFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Markdown, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.PrintRun, err = flags.GetBool("print"); err != nil {
		return nil, err
	}

	noHistory, err := flags.GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noHistory

	// The remaining flags have defaults that must not mask the settings file.
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy-scheme") {
		if cfg.ProxyScheme, err = flags.GetString("proxy-scheme"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("site-root") {
		if cfg.SiteRoot, err = flags.GetString("site-root"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("user-agent") {
		if cfg.UserAgent, err = flags.GetString("user-agent"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-format") {
		if cfg.LogFormat, err = flags.GetString("log-format"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-body-size") {
		if cfg.MaxBodySize, err = flags.GetInt64("max-body-size"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// applyConfigFile loads the settings file into cfg.
// If the user explicitly specified a path, a missing file is an error.
// Otherwise the defaults are kept when no file is found.
func applyConfigFile(cfg *config.Config) error {
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	cf, err := config.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	if err := cf.Apply(cfg); err != nil {
		return fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return nil
}

// loadRequest returns the raw request from the request file or the flags.
func loadRequest(cfg *config.Config) (map[string]any, error) {
	if cfg.RequestFile != "" {
		return request.LoadFile(cfg.RequestFile)
	}
	return request.FromValues(cfg.Keywords, cfg.Proxies, cfg.Type), nil
}

// clientFactory builds proxied HTTP clients from cfg.
func clientFactory(cfg *config.Config) (crawler.ClientFactory, error) {
	scheme, err := proxy.ParseScheme(cfg.ProxyScheme)
	if err != nil {
		return nil, err
	}
	opts := []proxy.ClientOption{
		proxy.WithScheme(scheme),
		proxy.WithTimeout(cfg.Timeout),
		proxy.WithUserAgent(cfg.UserAgent),
		proxy.WithHeaders(cfg.Headers),
	}
	return func(endpoint model.ProxyEndpoint) (*http.Client, error) {
		return proxy.NewHTTPClient(endpoint, opts...)
	}, nil
}

// runCrawl crawls the request and writes the result file.
// Terminal output goes to out, or to errOut when the run itself is printed.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger, out, errOut io.Writer) error {
	raw, err := loadRequest(cfg)
	if err != nil {
		return err
	}

	root, err := cfg.ParsedSiteRoot()
	if err != nil {
		return err
	}
	newClient, err := clientFactory(cfg)
	if err != nil {
		return err
	}

	c := crawler.New(
		crawler.WithLogger(logger),
		crawler.WithSiteRoot(root),
		crawler.WithSelector(proxy.NewRandomSelector()),
		crawler.WithClientFactory(newClient),
		crawler.WithFetchOptions(fetch.WithMaxBodySize(cfg.MaxBodySize)),
		crawler.WithObserver(func(s crawler.State) {
			logger.Debug("crawl state changed", "state", s.String())
		}),
	)

	logger.Info("starting crawl", "siteRoot", root.String(), "saveToDB", cfg.SaveToDB)

	run, err := c.Run(ctx, raw)
	if err != nil {
		return err
	}
	logger.Info("crawl finished",
		"proxy", run.Proxy.String(),
		"type", run.Type.String(),
		"results", len(run.Records),
	)

	format := report.FormatJSON
	if cfg.Markdown {
		format = report.FormatMarkdown
	}
	written, err := report.WriteFile(cfg.OutputFile, run, format)
	if err != nil {
		return err
	}

	if err := saveRun(ctx, cfg, run, logger); err != nil {
		logger.Error("failed to save crawl run", "error", err)
	}

	summaryOut := out
	var writers []report.Writer
	if cfg.PrintRun {
		summaryOut = errOut
		writers = append(writers, report.NewJSONWriter(out, report.WithPrettyPrint()))
	}
	if written {
		writers = append(writers, report.NewSimpleWriter(summaryOut, report.WithVerbose(cfg.Verbose)))
	} else {
		fmt.Fprintln(summaryOut, emptyOutputNotice)
	}

	if _, err := report.NewMultiWriter(writers...).WriteRun(run); err != nil {
		return err
	}
	if written {
		fmt.Fprintf(summaryOut, "Crawl completed in %s, results written to %s\n",
			run.Duration.Round(time.Millisecond), cfg.OutputFile)
	}
	return nil
}

// saveRun stores run in the history database when enabled.
// The ID assigned by the database is set on run.
func saveRun(ctx context.Context, cfg *config.Config, run *model.CrawlRun, logger *slog.Logger) error {
	if !cfg.SaveToDB {
		return nil
	}
	if cfg.DBDir == "" {
		return errors.New("history database directory is not set")
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, run)
	if err != nil {
		return err
	}
	run.ID = id

	logger.Info("crawl run saved to database", "id", id, "path", db.Path())
	return nil
}
