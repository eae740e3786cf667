// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the bearer token goes to the OS keychain.
//
// Values are layered: defaults, then config.json, then CHECKAUTH_* environment
// variables (a .env file in the working directory is loaded first), then
// command-line flags applied by the caller.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"checkauth/cli/internal/backend"
	"checkauth/cli/internal/xdg"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	AuthURL     string            `json:"auth_url" env:"CHECKAUTH_URL"`
	Method      string            `json:"method" env:"CHECKAUTH_METHOD"`
	Credentials string            `json:"credentials" env:"CHECKAUTH_CREDENTIALS"`
	Headers     map[string]string `json:"headers,omitempty"`
	LogLevel    string            `json:"log_level" env:"CHECKAUTH_LOG_LEVEL"`
	LogFormat   string            `json:"log_format" env:"CHECKAUTH_LOG_FORMAT"`
}

var dotenvLoaded sync.Once

// Default returns the settings used when nothing is configured.
func Default() Config {
	def := backend.DefaultRequestConfig()
	return Config{
		Method:      def.Method,
		Credentials: string(def.Credentials),
		Headers:     def.Headers,
		LogLevel:    "warn",
		LogFormat:   "console",
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(p)
}

// LoadFrom reads configuration from p and applies environment overrides.
func LoadFrom(p string) (Config, error) {
	c, err := ReadFile(p)
	if err != nil {
		return c, err
	}

	dotenvLoaded.Do(func() {
		// the .env file is optional
		_ = godotenv.Load()
	})
	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse environment: %w", err)
	}
	return c, nil
}

// ReadFile reads defaults plus the settings stored at p, without environment
// overrides. A missing file yields the defaults.
func ReadFile(p string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, err
	default:
		// headers from the file replace the defaults instead of merging into them
		defHeaders := c.Headers
		c.Headers = nil
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", p, err)
		}
		if c.Headers == nil {
			c.Headers = defHeaders
		}
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(p, c)
}

// SaveTo writes configuration to p with 0600 permissions.
func SaveTo(p string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Validate checks the shape of the settings. An empty AuthURL is allowed here;
// the session controller rejects it when started.
func (c Config) Validate() error {
	if c.AuthURL != "" {
		u, err := url.Parse(c.AuthURL)
		if err != nil {
			return fmt.Errorf("invalid auth URL: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid auth URL %q: expected an absolute http(s) URL", c.AuthURL)
		}
	}
	if c.Credentials != "" && !backend.Credentials(c.Credentials).Valid() {
		return fmt.Errorf("invalid credentials mode %q: expected include, same-origin or omit", c.Credentials)
	}
	if strings.ContainsAny(c.Method, " \t\r\n") {
		return fmt.Errorf("invalid method %q", c.Method)
	}
	return nil
}

// RequestConfig converts the settings into the transport's request config.
func (c Config) RequestConfig() backend.RequestConfig {
	rc := backend.RequestConfig{
		Method:      strings.ToUpper(strings.TrimSpace(c.Method)),
		Credentials: backend.Credentials(c.Credentials),
		Headers:     make(map[string]string, len(c.Headers)),
	}
	if rc.Method == "" {
		rc.Method = http.MethodGet
	}
	if rc.Credentials == "" {
		rc.Credentials = backend.CredentialsInclude
	}
	for k, v := range c.Headers {
		rc.Headers[http.CanonicalHeaderKey(k)] = v
	}
	return rc
}

// ParseHeader splits a "Key: Value" flag value.
func ParseHeader(raw string) (string, string, error) {
	k, v, ok := strings.Cut(raw, ":")
	k = strings.TrimSpace(k)
	if !ok || k == "" {
		return "", "", fmt.Errorf("invalid header %q: expected \"Key: Value\"", raw)
	}
	return http.CanonicalHeaderKey(k), strings.TrimSpace(v), nil
}
