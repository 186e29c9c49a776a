package config

import (
	"cardvault/internal/kv"
	"cardvault/internal/scryfall"
	"cardvault/internal/view"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Zero fields fall back to
// Defaults; command-line flags override both.
type Config struct {
	Store       kv.Backend       `yaml:"store,omitempty"`
	DataDir     string           `yaml:"data_dir,omitempty"`
	DisplayMode view.DisplayMode `yaml:"display_mode,omitempty"`
	APIURL      string           `yaml:"api_url,omitempty"`
	UserAgent   string           `yaml:"user_agent,omitempty"`
}

func Defaults() Config {
	return Config{
		Store:       kv.BackendFile,
		DataDir:     DefaultDataDir(),
		DisplayMode: view.ModeImages,
		APIURL:      scryfall.DefaultBaseURL,
		UserAgent:   scryfall.DefaultUserAgent,
	}
}

// Load reads path over Defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	return cfg.Merge(file)
}

// Merge overlays the non-zero fields of o and validates the result.
func (c Config) Merge(o Config) (Config, error) {
	if o.Store != "" {
		c.Store = o.Store
	}
	if o.DataDir != "" {
		dir, err := ExpandPath(o.DataDir)
		if err != nil {
			return Config{}, fmt.Errorf("invalid data_dir: %w", err)
		}
		c.DataDir = dir
	}
	if o.DisplayMode != "" {
		c.DisplayMode = o.DisplayMode
	}
	if o.APIURL != "" {
		c.APIURL = o.APIURL
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.Store {
	case kv.BackendFile, kv.BackendSQLite, kv.BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store)
	}
	if _, err := view.ParseDisplayMode(string(c.DisplayMode)); err != nil {
		return err
	}
	return nil
}
