// Package config handles reading and writing the abaterm config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// urlPlaceholder is what the config template ships with; an endpoint still
// carrying it counts as unset.
const urlPlaceholder = "TU_URL"

const fileName = "config.yaml"

// Config is the top-level structure for ~/.abaterm/config.yaml.
type Config struct {
	// EndpointURL is the deployed Apps Script web-app URL backing the sheet.
	EndpointURL string       `yaml:"endpoint_url"`
	Gemini      GeminiConfig `yaml:"gemini"`
	// SummarizerPlugin is an optional path to a summarizer plugin binary.
	// When set it takes precedence over the built-in Gemini client.
	SummarizerPlugin string `yaml:"summarizer_plugin"`
	// DataDir holds the session draft and the local archive database.
	DataDir string `yaml:"data_dir"`
}

// GeminiConfig configures the built-in generative summary client.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Default returns a Config pointing at the standard data directory, with no
// endpoint configured.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		EndpointURL: urlPlaceholder,
		Gemini:      GeminiConfig{Model: "gemini-2.5-flash"},
		DataDir:     filepath.Join(home, ".abaterm"),
	}
}

// Load reads the config file from dir, falling back to defaults when the file
// does not exist. The ABATERM_API_KEY environment variable overrides the
// configured Gemini key.
func Load(dir string) (Config, error) {
	cfg := Default()
	if dir != "" {
		cfg.DataDir = dir
	}

	path := filepath.Join(cfg.DataDir, fileName)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: defaults only.
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
		if cfg.DataDir == "" {
			cfg.DataDir = filepath.Dir(path)
		}
	}

	if key := os.Getenv("ABATERM_API_KEY"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	return cfg, nil
}

// Write persists cfg to <DataDir>/config.yaml, creating the directory if
// needed.
func Write(cfg Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	path := filepath.Join(cfg.DataDir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// EndpointConfigured reports whether the endpoint URL is usable: present and
// no longer the template placeholder.
func (c Config) EndpointConfigured() bool {
	url := strings.TrimSpace(c.EndpointURL)
	return url != "" && !strings.Contains(url, urlPlaceholder)
}

// DraftPath is where the in-progress session draft lives.
func (c Config) DraftPath() string {
	return filepath.Join(c.DataDir, "draft.json")
}

// DBPath is the local session archive database.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "abaterm.db")
}
