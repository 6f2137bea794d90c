package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yourusername/niri-mirror/internal/client"
	"github.com/yourusername/niri-mirror/internal/config"
	"github.com/yourusername/niri-mirror/internal/icon"
	"github.com/yourusername/niri-mirror/internal/logging"
	"github.com/yourusername/niri-mirror/internal/models"
	"github.com/yourusername/niri-mirror/internal/state"
)

// syncTimeout bounds the wait for the initial WindowsChanged/WorkspacesChanged pair
const syncTimeout = 5 * time.Second

var (
	socketPath string
	timeout    time.Duration
	jsonOutput bool
	noColor    bool
	debugMode  bool
	configPath string

	cfg = config.Default()

	// Color functions
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "niri-mirror",
	Short: "Mirror niri's windows and workspaces over its IPC socket",
	Long: `niri-mirror subscribes to the niri event stream, keeps a live copy of the
compositor's windows and workspaces, and issues focus and close commands.

The socket is taken from --socket, the config file, or $NIRI_SOCKET.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupOutput()
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogging()
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "Compositor socket path (default $"+client.SocketEnv+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Connect and reply timeout (default from config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Log to stderr at debug level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/"+config.DefaultConfigDir+"/"+config.DefaultConfigFile+")")

	// Query commands
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(workspacesCmd)
	rootCmd.AddCommand(focusedCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotShowCmd)

	// Action commands
	rootCmd.AddCommand(focusWorkspaceCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(focusWindowCmd)
	rootCmd.AddCommand(closeWindowCmd)
	rootCmd.AddCommand(cycleCmd)
	rootCmd.AddCommand(focusUrgentCmd)

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	showCmd.Flags().BoolVar(&showIDs, "ids", false, "Show workspace IDs in the strip")
	watchCmd.Flags().BoolVar(&watchIcons, "watch-icons", true, "Refresh icons when desktop files change")
	eventsCmd.Flags().IntVar(&eventCount, "count", 0, "Exit after this many events (0 = run until interrupted)")
	focusWorkspaceCmd.Flags().StringVar(&workspaceBy, "by", "auto", "Interpret the reference as index, id or name")
	cycleCmd.Flags().BoolVar(&cyclePrev, "prev", false, "Cycle backwards")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}

func main() {
	defer logging.Close()

	if err := rootCmd.Execute(); err != nil {
		printError(err.Error())
		os.Exit(1)
	}
}

// setupOutput applies --no-color
func setupOutput() {
	if noColor {
		color.NoColor = true
	}
}

// setupLogging sends logs to stderr in debug mode and to the log file otherwise.
// Debug logs are human-readable on a terminal and JSON lines when piped.
func setupLogging() {
	if debugMode {
		var w io.Writer = os.Stderr
		if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
			w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000", NoColor: color.NoColor}
		}
		logging.SetOutput(w, "debug")
		return
	}
	if err := logging.Init(cfg.Logging.File, cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
}

// newClient builds a client from flags and config. Flags win.
func newClient() *client.Client {
	path := socketPath
	if path == "" {
		path = cfg.Socket.Path
	}

	connectTimeout, replyTimeout := cfg.ConnectTimeout(), cfg.ReplyTimeout()
	if timeout > 0 {
		connectTimeout, replyTimeout = timeout, timeout
	}

	return client.NewClient(client.Options{
		SocketPath:     path,
		ConnectTimeout: connectTimeout,
		ReplyTimeout:   replyTimeout,
		Hooks: client.Hooks{
			OnConnected: func() {
				logging.Debug().Msg("connected")
			},
			OnDisconnected: func() {
				logging.Warn().Msg("compositor closed the event stream")
			},
			OnError: func(err error) {
				logging.Error().Err(err).Msg("compositor error")
			},
		},
	})
}

// newIconCache returns nil when icons are disabled
func newIconCache() *icon.Cache {
	if !cfg.Icons.Enabled {
		return nil
	}
	finder := icon.NewFinder(cfg.Icons.Themes)
	if len(cfg.Icons.DataDirs) > 0 {
		finder.DataDirs = cfg.Icons.DataDirs
	}
	return icon.NewCache(icon.Overrides{Icons: cfg.Icons.Overrides, Finder: finder})
}

// newMirror wires the icon cache into a fresh mirror
func newMirror(cache *icon.Cache) *state.Mirror {
	if cache == nil {
		return state.NewMirror(nil)
	}
	return state.NewMirror(cache)
}

// iconDataDirs is the set of data dirs the icon watcher should follow
func iconDataDirs() []string {
	if len(cfg.Icons.DataDirs) > 0 {
		return cfg.Icons.DataDirs
	}
	return icon.DataDirs()
}

// mirrorFunc runs on the event loop goroutine once the mirror holds the full
// state. It may send commands through c.
type mirrorFunc func(ctx context.Context, c *client.Client, m *state.Mirror) error

// withMirror connects, waits for the initial state and runs fn against it
func withMirror(fn mirrorFunc) error {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	c := newClient()
	if err := c.Connect(ctx); err != nil {
		return err
	}
	defer c.Close()

	m := newMirror(newIconCache())

	var (
		done      bool
		actionErr error
	)
	sink := client.EventSinkFunc(func(ev models.Event) {
		m.HandleEvent(ev)
		if done || !m.Synced() {
			return
		}
		done = true
		actionErr = fn(ctx, c, m)
		cancel()
	})

	err := c.Run(ctx, sink)
	if done {
		return actionErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("timed out waiting for compositor state after %v", syncTimeout)
	}
	return err
}

// sendAction connects and issues a single command
func sendAction(action models.Action) error {
	ctx := context.Background()

	c := newClient()
	if err := c.Connect(ctx); err != nil {
		return err
	}
	defer c.Close()

	ok, err := c.Send(ctx, action)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", action.ActionName(), models.ErrReply)
	}
	return nil
}

// Helper functions

func printJSON(data interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printError(msg string) {
	if color.NoColor {
		fmt.Fprintln(os.Stderr, "Error:", msg)
	} else {
		errorColor.Fprint(os.Stderr, "✗ Error: ")
		fmt.Fprintln(os.Stderr, msg)
	}
}

func printSuccess(format string, args ...interface{}) {
	if jsonOutput {
		return
	}
	successColor.Print("✓ ")
	fmt.Printf(format+"\n", args...)
}
