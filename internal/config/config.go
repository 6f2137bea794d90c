package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".config/niri-mirror"
	DefaultConfigFile = "config.yaml"
)

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Socket: SocketConfig{
			ConnectTimeout: "1s",
			ReplyTimeout:   "1s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Icons: IconsConfig{
			Enabled: true,
			Watch:   true,
		},
		Output: OutputConfig{
			MaxTitle: 50,
		},
	}
}

// LoadConfig loads configuration from the specified path or default location.
// If path is empty, uses ~/.config/niri-mirror/config.{yaml,toml,json}
// and falls back to Default when neither exists.
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = findDefaultConfig(filepath.Join(home, DefaultConfigDir))
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, format)
}

// LoadConfigFromBytes loads configuration from raw bytes.
// format is the file extension: "yaml", "toml" or "json".
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	cfg := Default()

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case "json", "jsonc":
		// Comments and trailing commas are allowed
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Marshal encodes the configuration as "yaml", "toml" or "json"
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Marshal(c)
	case "toml":
		return toml.Marshal(c)
	case "json", "jsonc":
		return json.MarshalIndent(c, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}
}

// WriteDefault writes the default configuration to path. An existing file is
// only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat config file: %w", err)
	}

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	data, err := Default().Marshal(format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// findDefaultConfig returns the first config file in dir, trying YAML, then
// TOML, then JSON. Returns "" if there is none.
func findDefaultConfig(dir string) string {
	for _, name := range []string{"config.yaml", "config.yml", "config.toml", "config.json", "config.jsonc"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// ConnectTimeout returns the parsed connect timeout. Call after Validate.
func (c *Config) ConnectTimeout() time.Duration {
	d, _ := ParseDuration(c.Socket.ConnectTimeout)
	return d
}

// ReplyTimeout returns the parsed reply timeout. Call after Validate.
func (c *Config) ReplyTimeout() time.Duration {
	d, _ := ParseDuration(c.Socket.ReplyTimeout)
	return d
}

// UseUnicode reports whether box drawing should use Unicode characters.
// detected is used when the config leaves it unset.
func (c *Config) UseUnicode(detected bool) bool {
	if c.Output.Unicode != nil {
		return *c.Output.Unicode
	}
	return detected
}
