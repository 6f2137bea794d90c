package config

// Config is the root configuration structure
type Config struct {
	Socket  SocketConfig  `yaml:"socket" toml:"socket" json:"socket"`
	Logging LoggingConfig `yaml:"logging" toml:"logging" json:"logging"`
	Icons   IconsConfig   `yaml:"icons" toml:"icons" json:"icons"`
	Output  OutputConfig  `yaml:"output" toml:"output" json:"output"`
}

// SocketConfig controls how the compositor is reached
type SocketConfig struct {
	Path           string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty"` // Overrides $NIRI_SOCKET
	ConnectTimeout string `yaml:"connectTimeout" toml:"connectTimeout" json:"connectTimeout"` // e.g. "1s", "500ms"
	ReplyTimeout   string `yaml:"replyTimeout" toml:"replyTimeout" json:"replyTimeout"`
}

// LoggingConfig controls the log file
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level" json:"level"`
	File  string `yaml:"file,omitempty" toml:"file,omitempty" json:"file,omitempty"` // Empty means the default state dir
}

// IconsConfig controls icon lookup for windows
type IconsConfig struct {
	Enabled   bool              `yaml:"enabled" toml:"enabled" json:"enabled"`
	Watch     bool              `yaml:"watch" toml:"watch" json:"watch"`                                           // Invalidate on desktop file changes; ignored when disabled
	Themes    []string          `yaml:"themes,omitempty" toml:"themes,omitempty" json:"themes,omitempty"`          // Searched before the fallback themes
	DataDirs  []string          `yaml:"dataDirs,omitempty" toml:"dataDirs,omitempty" json:"dataDirs,omitempty"`    // Replaces the XDG data dirs
	Overrides map[string]string `yaml:"overrides,omitempty" toml:"overrides,omitempty" json:"overrides,omitempty"` // App id -> icon name or path
}

// OutputConfig controls terminal rendering
type OutputConfig struct {
	Unicode  *bool `yaml:"unicode,omitempty" toml:"unicode,omitempty" json:"unicode,omitempty"` // Nil means detect from the locale
	MaxTitle int   `yaml:"maxTitle" toml:"maxTitle" json:"maxTitle"`
}
