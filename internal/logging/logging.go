package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultLogDir  = ".local/state/niri-mirror"
	DefaultLogFile = "niri-mirror.log"
)

var (
	// Logger discards everything until Init or SetOutput is called
	Logger  = zerolog.Nop()
	logFile *os.File
)

// timestampHook adds timestamp at the end of each log event
type timestampHook struct{}

func (h timestampHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	e.Time("ts", time.Now())
}

// DefaultLogPath returns ~/.local/state/niri-mirror/niri-mirror.log
func DefaultLogPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultLogDir, DefaultLogFile)
}

// Init opens the log file (DefaultLogPath when path is empty) and sets the level
func Init(path, level string) error {
	if path == "" {
		path = DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	Close()
	logFile = f

	SetOutput(logFile, level)
	return nil
}

// SetOutput points the logger at w, e.g. stderr in --debug mode or a buffer in tests
func SetOutput(w io.Writer, level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	// Configure field names
	zerolog.MessageFieldName = "msg"

	// Create logger with hook that adds timestamp last
	Logger = zerolog.New(w).Hook(timestampHook{})
}

// ParseLevel maps a config level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	if level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Close closes the log file
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Debug returns a debug level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info returns an info level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn returns a warn level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error returns an error level event
func Error() *zerolog.Event {
	return Logger.Error()
}
