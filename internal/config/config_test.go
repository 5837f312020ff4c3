package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected default values.
// Tests fail if defaults change unexpectedly.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default SiteRoot is github.com", func(t *testing.T) {
		t.Parallel()
		if cfg.SiteRoot != "https://github.com" {
			t.Errorf("expected SiteRoot to be 'https://github.com', got '%s'", cfg.SiteRoot)
		}
	})

	t.Run("default ProxyScheme is http", func(t *testing.T) {
		t.Parallel()
		if cfg.ProxyScheme != "http" {
			t.Errorf("expected ProxyScheme to be 'http', got '%s'", cfg.ProxyScheme)
		}
	})

	t.Run("default Timeout is 60 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 60*time.Second {
			t.Errorf("expected Timeout to be 60s, got %v", cfg.Timeout)
		}
	})

	t.Run("default OutputFile is output.json", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputFile != "output.json" {
			t.Errorf("expected OutputFile to be 'output.json', got '%s'", cfg.OutputFile)
		}
	})

	t.Run("history is saved by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to be true")
		}
		if cfg.DBDir != XDGDataDir() {
			t.Errorf("expected DBDir %q, got %q", XDGDataDir(), cfg.DBDir)
		}
	})

	t.Run("default MaxBodySize is 5MB", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxBodySize != 5*1024*1024 {
			t.Errorf("expected MaxBodySize to be 5MB, got %d", cfg.MaxBodySize)
		}
	})
}

// validConfig returns a configuration that passes validation.
func validConfig() *Config {
	cfg := NewConfig()
	cfg.Keywords = []string{"go"}
	cfg.Proxies = []string{"1.2.3.4:80"}
	cfg.Type = "repositories"
	return cfg
}

// TestConfigValidate tests the Validate method with various configurations.
// Each test case is designed to test one specific validation rule.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:   "valid flags request",
			modify: func(*Config) {},
		},
		{
			name: "valid file request",
			modify: func(c *Config) {
				c.Keywords, c.Proxies, c.Type = nil, nil, ""
				c.RequestFile = "request.yaml"
			},
		},
		{
			name: "partial flags are left to request validation",
			modify: func(c *Config) {
				c.Proxies, c.Type = nil, ""
			},
		},
		{
			name: "no request",
			modify: func(c *Config) {
				c.Keywords, c.Proxies, c.Type = nil, nil, ""
			},
			wantErr: ErrNoRequest,
		},
		{
			name: "file and flags",
			modify: func(c *Config) {
				c.RequestFile = "request.yaml"
			},
			wantErr: ErrConflictingRequestSources,
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative timeout",
			modify:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "socks5 scheme",
			modify:  func(c *Config) { c.ProxyScheme = "socks5" },
			wantErr: nil,
		},
		{
			name:    "unknown scheme",
			modify:  func(c *Config) { c.ProxyScheme = "ftp" },
			wantErr: ErrInvalidProxyScheme,
		},
		{
			name:    "relative site root",
			modify:  func(c *Config) { c.SiteRoot = "github.com" },
			wantErr: ErrInvalidSiteRoot,
		},
		{
			name:    "non-http site root",
			modify:  func(c *Config) { c.SiteRoot = "ftp://github.com" },
			wantErr: ErrInvalidSiteRoot,
		},
		{
			name:    "unparsable site root",
			modify:  func(c *Config) { c.SiteRoot = "http://[::1" },
			wantErr: ErrInvalidSiteRoot,
		},
		{
			name:    "negative max body size",
			modify:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
		{
			name:    "json log format",
			modify:  func(c *Config) { c.LogFormat = LogFormatJSON },
			wantErr: nil,
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.LogFormat = "xml" },
			wantErr: ErrInvalidLogFormat,
		},
		{
			name:    "zero max body size uses default",
			modify:  func(c *Config) { c.MaxBodySize = 0 },
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestParsedSiteRoot tests site root parsing.
func TestParsedSiteRoot(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.SiteRoot = "http://github.test:8080"

	u, err := cfg.ParsedSiteRoot()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Host != "github.test:8080" || u.Scheme != "http" {
		t.Errorf("unexpected URL %v", u)
	}
}

// TestFileApply tests merging settings file values into a Config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("overrides set values", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Headers = map[string]string{"X-Existing": "1"}
		f := &File{
			Site: SiteConfig{
				Root:      "http://github.test",
				UserAgent: "custom-agent",
				Headers:   map[string]string{"Accept-Language": "ja"},
			},
			ProxyScheme: "socks5",
			Timeout:     "15s",
			MaxBodySize: 1024,
			DBDir:       "/tmp/hubcrawl",
			LogFormat:   LogFormatJSON,
		}

		if err := f.Apply(cfg); err != nil {
			t.Fatalf("Apply: %v", err)
		}

		if cfg.SiteRoot != "http://github.test" {
			t.Errorf("SiteRoot = %q", cfg.SiteRoot)
		}
		if cfg.UserAgent != "custom-agent" {
			t.Errorf("UserAgent = %q", cfg.UserAgent)
		}
		if cfg.ProxyScheme != "socks5" {
			t.Errorf("ProxyScheme = %q", cfg.ProxyScheme)
		}
		if cfg.Timeout != 15*time.Second {
			t.Errorf("Timeout = %v", cfg.Timeout)
		}
		if cfg.MaxBodySize != 1024 {
			t.Errorf("MaxBodySize = %d", cfg.MaxBodySize)
		}
		if cfg.DBDir != "/tmp/hubcrawl" {
			t.Errorf("DBDir = %q", cfg.DBDir)
		}
		if cfg.LogFormat != LogFormatJSON {
			t.Errorf("LogFormat = %q", cfg.LogFormat)
		}
		want := map[string]string{"X-Existing": "1", "Accept-Language": "ja"}
		if diff := cmp.Diff(want, cfg.Headers); diff != "" {
			t.Errorf("Headers mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := (&File{}).Apply(cfg); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
			t.Errorf("config changed (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Parallel()

		err := (&File{Timeout: "soon"}).Apply(NewConfig())
		if !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.hubcrawl")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".hubcrawl")
		content := `site:
  root: https://github.com
  user_agent: "test-agent"
  headers:
    Accept-Language: en-US
proxy_scheme: socks5
timeout: 30s
max_body_size: 2048
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := &File{
			Site: SiteConfig{
				Root:      "https://github.com",
				UserAgent: "test-agent",
				Headers:   map[string]string{"Accept-Language": "en-US"},
			},
			ProxyScheme: "socks5",
			Timeout:     "30s",
			MaxBodySize: 2048,
		}
		if diff := cmp.Diff(want, cf); diff != "" {
			t.Errorf("file mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".hubcrawl")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("timeout: 10s"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	for name, dir := range map[string]string{
		"data":   XDGDataDir(),
		"config": XDGConfigDir(),
	} {
		if filepath.Base(dir) != AppName {
			t.Errorf("XDG %s dir %q should end with %q", name, dir, AppName)
		}
	}
}
