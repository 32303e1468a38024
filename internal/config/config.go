package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPath is consulted when no config file is named explicitly. A missing
// file at the default path is not an error; defaults stand.
const DefaultPath = "elektron.yaml"

// Config is the full service configuration. Values come from three layers,
// each overriding the previous: built-in defaults, an optional YAML file,
// then environment variables. Nothing is exposed as a CLI flag.
type Config struct {
	BindAddress     string `yaml:"bind_address" env:"ELEKTRON_BIND_ADDRESS"`
	BindPort        int    `yaml:"bind_port" env:"ELEKTRON_BIND_PORT"`
	Zone            string `yaml:"zone" env:"ELEKTRON_ZONE"`
	UpstreamBaseURL string `yaml:"upstream_base_url" env:"ELEKTRON_UPSTREAM_BASE_URL"`
	FontDir         string `yaml:"font_dir" env:"ELEKTRON_FONT_DIR"`
	Env             string `yaml:"env" env:"ELEKTRON_ENV"`
	LogLevel        string `yaml:"log_level" env:"ELEKTRON_LOG_LEVEL"`
}

// Default returns the built-in configuration: the NO2 dashboard on
// 0.0.0.0:3000 against the public API.
func Default() *Config {
	return &Config{
		BindAddress:     "0.0.0.0",
		BindPort:        3000,
		Zone:            "NO2",
		UpstreamBaseURL: "https://www.hvakosterstrommen.no",
		FontDir:         "web/fonts",
		Env:             "development",
		LogLevel:        "info",
	}
}

// Load builds and validates the effective configuration. path names the YAML
// file to read; when empty, DefaultPath is tried and may be absent.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked layers defaults, file and environment, but does not validate.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	c := Default()

	optional := path == ""
	if optional {
		path = DefaultPath
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case optional && os.IsNotExist(err):
		// No file at the default path; defaults stand.
	default:
		return nil, err
	}

	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.BindAddress == "" {
		return errors.New("bind_address is required")
	}
	if c.BindPort < 1 || c.BindPort > 65535 {
		return fmt.Errorf("bind_port %d is out of range", c.BindPort)
	}
	if c.Zone == "" {
		return errors.New("zone is required")
	}
	u, err := url.Parse(c.UpstreamBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("upstream_base_url %q is not an absolute URL", c.UpstreamBaseURL)
	}
	if c.FontDir == "" {
		return errors.New("font_dir is required")
	}
	return nil
}

// Addr is the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.BindPort)
}
