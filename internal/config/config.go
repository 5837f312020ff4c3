package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/hubcrawl/internal/proxy"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "hubcrawl"

	// DefaultSiteRoot is the code-hosting site that is searched.
	DefaultSiteRoot = "https://github.com"

	// DefaultProxyScheme is how the selected proxy is spoken to.
	// Public proxy lists mostly contain plain HTTP forward proxies.
	DefaultProxyScheme = string(proxy.SchemeHTTP)

	// DefaultTimeout bounds each request. Free proxies are slow, so this is generous.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxBodySize limits the maximum response body size to read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultOutputFile is where results are written when no path is given.
	DefaultOutputFile = "output.json"
)

// Log formats accepted by LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration options for hubcrawl.
// This struct is populated from the settings file and CLI flags and passed
// through the application rather than kept in global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable.
type Config struct {
	// SiteRoot is the root URL of the searched site.
	SiteRoot string

	// ProxyScheme is "http", "https" or "socks5".
	ProxyScheme string

	// Timeout is the timeout of each HTTP request, including reading the body.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string

	// MaxBodySize is the maximum response body size in bytes to parse.
	// Set to 0 to use the default (5MB).
	MaxBodySize int64

	// RequestFile is a JSON or YAML file holding the crawl request.
	// Mutually exclusive with Keywords, Proxies and Type.
	RequestFile string

	// Keywords are the search keywords given on the command line.
	Keywords []string

	// Proxies are the "ip:port" proxy candidates given on the command line.
	Proxies []string

	// Type is the result type given on the command line.
	Type string

	// OutputFile is the path of the result file.
	OutputFile string

	// Markdown writes a Markdown summary instead of JSON.
	Markdown bool

	// SaveToDB stores successful runs in the history database.
	SaveToDB bool

	// DBDir is the directory of the history database.
	// Defaults to the XDG data directory (~/.local/share/hubcrawl on Linux).
	DBDir string

	// PrintRun writes the finished run as JSON to stdout. The human-readable
	// summary then goes to stderr.
	PrintRun bool

	// LogFormat is LogFormatText or LogFormatJSON.
	LogFormat string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the settings file.
	// If empty, the tool searches for .hubcrawl in the current directory,
	// the user's home directory and the XDG config directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, site root).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		SiteRoot:    DefaultSiteRoot,
		ProxyScheme: DefaultProxyScheme,
		Timeout:     DefaultTimeout,
		UserAgent:   proxy.DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		OutputFile:  DefaultOutputFile,
		LogFormat:   LogFormatText,
		SaveToDB:    true,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for hubcrawl.
// On Linux: ~/.local/share/hubcrawl
// On macOS: ~/Library/Application Support/hubcrawl
// On Windows: %LOCALAPPDATA%\hubcrawl
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for hubcrawl.
// On Linux: ~/.config/hubcrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// HasRequestFlags reports whether any part of the request was given as flags.
func (c *Config) HasRequestFlags() bool {
	return len(c.Keywords) > 0 || len(c.Proxies) > 0 || c.Type != ""
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// The crawl request itself (keywords, proxies, type) is not checked here;
// the request package validates it and reports every problem at once.
func (c *Config) Validate() error {
	switch {
	case c.RequestFile != "" && c.HasRequestFlags():
		return ErrConflictingRequestSources
	case c.RequestFile == "" && !c.HasRequestFlags():
		return ErrNoRequest
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if _, err := proxy.ParseScheme(c.ProxyScheme); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidProxyScheme, c.ProxyScheme)
	}

	if _, err := c.ParsedSiteRoot(); err != nil {
		return err
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.LogFormat)
	}

	return nil
}

// ParsedSiteRoot parses SiteRoot, which must be an absolute http(s) URL.
func (c *Config) ParsedSiteRoot() (*url.URL, error) {
	u, err := url.Parse(c.SiteRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSiteRoot, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSiteRoot, c.SiteRoot)
	}
	return u, nil
}
