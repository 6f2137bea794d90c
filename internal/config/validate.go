package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if err := validateSocket(&c.Socket); err != nil {
		return fmt.Errorf("socket: %w", err)
	}

	if _, err := parseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	if err := validateIcons(&c.Icons); err != nil {
		return fmt.Errorf("icons: %w", err)
	}

	if c.Output.MaxTitle < 0 {
		return fmt.Errorf("output: maxTitle must not be negative, got %d", c.Output.MaxTitle)
	}

	return nil
}

func validateSocket(s *SocketConfig) error {
	connect, err := ParseDuration(s.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("connectTimeout: %w", err)
	}
	if connect == 0 {
		return fmt.Errorf("connectTimeout must be positive")
	}

	reply, err := ParseDuration(s.ReplyTimeout)
	if err != nil {
		return fmt.Errorf("replyTimeout: %w", err)
	}
	if reply == 0 {
		return fmt.Errorf("replyTimeout must be positive")
	}

	if s.Path != "" && !strings.HasPrefix(s.Path, "/") {
		return fmt.Errorf("path must be absolute: %s", s.Path)
	}
	return nil
}

func validateIcons(i *IconsConfig) error {
	for idx, theme := range i.Themes {
		if strings.TrimSpace(theme) == "" {
			return fmt.Errorf("theme %d: empty name", idx)
		}
	}
	for idx, dir := range i.DataDirs {
		if !strings.HasPrefix(dir, "/") {
			return fmt.Errorf("dataDir %d: path must be absolute: %s", idx, dir)
		}
	}
	for appID, icon := range i.Overrides {
		if appID == "" {
			return fmt.Errorf("override with empty app id")
		}
		if icon == "" {
			return fmt.Errorf("override %s: empty icon", appID)
		}
	}
	return nil
}
