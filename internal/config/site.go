package config

import (
	"fmt"
	"time"
)

// SiteConfig holds settings for talking to the searched site.
type SiteConfig struct {
	// Root overrides the site root URL.
	Root string `yaml:"root,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent,omitempty"`

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// File represents the structure of the .hubcrawl settings file.
//
//	site:
//	  root: https://github.com
//	  user_agent: "Mozilla/5.0 ..."
//	  headers:
//	    Accept-Language: en-US
//	proxy_scheme: socks5
//	timeout: 30s
//	max_body_size: 10485760
//	log_format: json
type File struct {
	// Site contains settings for the searched site.
	Site SiteConfig `yaml:"site,omitempty"`

	// ProxyScheme is "http", "https" or "socks5".
	ProxyScheme string `yaml:"proxy_scheme,omitempty"`

	// Timeout is a duration string such as "30s".
	Timeout string `yaml:"timeout,omitempty"`

	// MaxBodySize is the response body limit in bytes.
	MaxBodySize int64 `yaml:"max_body_size,omitempty"`

	// DBDir is the history database directory.
	DBDir string `yaml:"db_dir,omitempty"`

	// LogFormat is "text" or "json".
	LogFormat string `yaml:"log_format,omitempty"`
}

// Apply copies every setting present in the file onto cfg.
// Settings missing from the file leave cfg unchanged.
func (cf *File) Apply(cfg *Config) error {
	if cf.Site.Root != "" {
		cfg.SiteRoot = cf.Site.Root
	}
	if cf.Site.UserAgent != "" {
		cfg.UserAgent = cf.Site.UserAgent
	}
	if len(cf.Site.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(cf.Site.Headers))
		}
		for k, v := range cf.Site.Headers {
			cfg.Headers[k] = v
		}
	}
	if cf.ProxyScheme != "" {
		cfg.ProxyScheme = cf.ProxyScheme
	}
	if cf.Timeout != "" {
		d, err := time.ParseDuration(cf.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
		}
		cfg.Timeout = d
	}
	if cf.MaxBodySize != 0 {
		cfg.MaxBodySize = cf.MaxBodySize
	}
	if cf.DBDir != "" {
		cfg.DBDir = cf.DBDir
	}
	if cf.LogFormat != "" {
		cfg.LogFormat = cf.LogFormat
	}
	return nil
}
