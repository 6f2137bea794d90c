package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yourusername/niri-mirror/internal/client"
	"github.com/yourusername/niri-mirror/internal/icon"
	"github.com/yourusername/niri-mirror/internal/logging"
	"github.com/yourusername/niri-mirror/internal/models"
	"github.com/yourusername/niri-mirror/internal/output"
	"github.com/yourusername/niri-mirror/internal/state"
)

var (
	showIDs    bool
	watchIcons bool
	eventCount int
)

// windowsCmd lists all windows
var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMirror(func(ctx context.Context, c *client.Client, m *state.Mirror) error {
			windows := m.Windows.All()
			if jsonOutput {
				return printJSON(windows)
			}
			if len(windows) == 0 {
				infoColor.Println("No windows")
				return nil
			}
			output.PrintWindowsTable(os.Stdout, windows, m.Workspaces.All(), cfg.Output.MaxTitle)
			return nil
		})
	},
}

// workspacesCmd lists all workspaces
var workspacesCmd = &cobra.Command{
	Use:     "workspaces",
	Aliases: []string{"ws"},
	Short:   "List workspaces grouped by output",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMirror(func(ctx context.Context, c *client.Client, m *state.Mirror) error {
			workspaces := m.Workspaces.All()
			if jsonOutput {
				return printJSON(workspaces)
			}
			output.PrintWorkspacesTable(os.Stdout, workspaces)
			return nil
		})
	},
}

// focusedCmd shows the focused window
var focusedCmd = &cobra.Command{
	Use:   "focused",
	Short: "Show the focused window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMirror(func(ctx context.Context, c *client.Client, m *state.Mirror) error {
			win, ok := m.Windows.Focused()
			if !ok {
				if jsonOutput {
					return printJSON(nil)
				}
				infoColor.Println("No window has focus")
				return nil
			}
			if jsonOutput {
				return printJSON(win)
			}

			var ws *models.Workspace
			if found, ok := m.Workspaces.ByID(win.WorkspaceID); ok {
				ws = &found
			}
			output.PrintWindowDetail(os.Stdout, win, ws)
			return nil
		})
	},
}

// showCmd draws the workspace strip
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Draw the workspaces of every output",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMirror(func(ctx context.Context, c *client.Client, m *state.Mirror) error {
			opts := output.DefaultStripOptions()
			opts.UseUnicode = cfg.UseUnicode(opts.UseUnicode)
			opts.ShowIDs = showIDs
			output.PrintStrip(os.Stdout, m.Workspaces.All(), m.Windows.All(), opts)
			return nil
		})
	},
}

// watchCmd prints every change to the mirrored collections until interrupted
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow changes to windows and workspaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := newClient()
		if err := c.Connect(ctx); err != nil {
			return err
		}
		defer c.Close()

		cache := newIconCache()
		if cache != nil && cfg.Icons.Watch && watchIcons {
			go func() {
				if err := icon.Watch(ctx, cache, iconDataDirs()); err != nil {
					logging.Warn().Err(err).Msg("icon watcher unavailable")
				}
			}()
		}

		m := newMirror(cache)
		detach := output.NewChangeLog(os.Stdout, m).Attach()
		defer detach()

		infoColor.Fprintf(os.Stderr, "Watching %s (Ctrl-C to stop)\n", c.SocketPath())
		return ignoreCancel(c.Run(ctx, m))
	},
}

// eventsCmd prints raw events as JSON lines
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print compositor events as JSON lines",
	Long: `Prints every event of the stream as a single-key JSON object, the way the
compositor sends it. Events this client does not know are passed through.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		c := newClient()
		if err := c.Connect(ctx); err != nil {
			return err
		}
		defer c.Close()

		enc := json.NewEncoder(os.Stdout)
		seen := 0
		var encodeErr error
		sink := client.EventSinkFunc(func(ev models.Event) {
			if encodeErr != nil {
				return
			}
			if encodeErr = enc.Encode(eventEnvelope(ev)); encodeErr != nil {
				cancel()
				return
			}
			seen++
			if eventCount > 0 && seen >= eventCount {
				cancel()
			}
		})

		err := ignoreCancel(c.Run(ctx, sink))
		if encodeErr != nil {
			return fmt.Errorf("failed to write event: %w", encodeErr)
		}
		return err
	},
}

// eventEnvelope rebuilds the single-key object an event arrived in
func eventEnvelope(ev models.Event) map[string]interface{} {
	if unknown, ok := ev.(*models.UnknownEvent); ok {
		return map[string]interface{}{unknown.Kind: unknown.Payload}
	}
	return map[string]interface{}{ev.Name(): ev}
}

// ignoreCancel treats a user interrupt as a clean exit
func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// snapshotCmd groups saving and viewing mirror snapshots
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save the mirrored state to a file, or view a saved one",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save [path]",
	Short: "Write the current windows and workspaces to a snapshot file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := state.GetSnapshotPath()
		if len(args) == 1 {
			path = args[0]
		}
		return withMirror(func(ctx context.Context, c *client.Client, m *state.Mirror) error {
			snap := m.Snapshot()
			if err := snap.SaveTo(path); err != nil {
				return err
			}
			printSuccess("Saved %d windows and %d workspaces to %s", len(snap.Windows), len(snap.Workspaces), path)
			return nil
		})
	},
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Print a saved snapshot without contacting the compositor",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := state.GetSnapshotPath()
		if len(args) == 1 {
			path = args[0]
		}
		snap, err := state.LoadSnapshot(path)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(snap)
		}

		m := state.NewMirror(nil)
		m.Restore(snap)

		keyColor.Print("Taken: ")
		fmt.Println(snap.TakenAt.Format("2006-01-02 15:04:05"))
		opts := output.DefaultStripOptions()
		opts.UseUnicode = cfg.UseUnicode(opts.UseUnicode)
		output.PrintStrip(os.Stdout, m.Workspaces.All(), m.Windows.All(), opts)
		output.PrintWindowsTable(os.Stdout, m.Windows.All(), m.Workspaces.All(), cfg.Output.MaxTitle)
		return nil
	},
}
