package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/yourusername/niri-mirror/internal/client"
	"github.com/yourusername/niri-mirror/internal/focus"
	"github.com/yourusername/niri-mirror/internal/models"
	"github.com/yourusername/niri-mirror/internal/state"
)

var (
	workspaceBy string
	cyclePrev   bool
)

// focusWorkspaceCmd focuses a workspace by index, id or name
var focusWorkspaceCmd = &cobra.Command{
	Use:   "focus-workspace <ref>",
	Short: "Focus a workspace",
	Long: `Focuses a workspace. With --by auto (the default) a number is taken as the
index on the focused output and anything else as a workspace name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := workspaceAction(args[0], workspaceBy)
		if err != nil {
			return err
		}
		if err := sendAction(action); err != nil {
			return fmt.Errorf("failed to focus workspace %s: %w", args[0], err)
		}
		printSuccess("Focused workspace %s", args[0])
		return nil
	},
}

// workspaceCmd moves focus relative to the current workspace
var workspaceCmd = &cobra.Command{
	Use:       "workspace <up|down|previous>",
	Short:     "Focus the workspace above, below, or the previously focused one",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down", "previous"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var action models.Action
		switch args[0] {
		case "up":
			action = models.FocusWorkspaceUp{}
		case "down":
			action = models.FocusWorkspaceDown{}
		case "previous", "prev":
			action = models.FocusWorkspacePrevious{}
		default:
			return fmt.Errorf("unknown direction %q (want up, down or previous)", args[0])
		}
		if err := sendAction(action); err != nil {
			return fmt.Errorf("failed to focus workspace %s: %w", args[0], err)
		}
		printSuccess("Focused workspace %s", args[0])
		return nil
	},
}

// focusWindowCmd focuses a window by id
var focusWindowCmd = &cobra.Command{
	Use:   "focus-window <id>",
	Short: "Focus a window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWindowID(args[0])
		if err != nil {
			return err
		}
		if err := sendAction(models.FocusWindow{ID: id}); err != nil {
			return fmt.Errorf("failed to focus window %d: %w", id, err)
		}
		printSuccess("Focused window %d", id)
		return nil
	},
}

// closeWindowCmd closes a window, or the focused one without an id
var closeWindowCmd = &cobra.Command{
	Use:   "close-window [id]",
	Short: "Close a window (default: the focused window)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := models.CloseFocusedWindow()
		target := "focused window"
		if len(args) == 1 {
			id, err := parseWindowID(args[0])
			if err != nil {
				return err
			}
			action = models.CloseWindowByID(id)
			target = fmt.Sprintf("window %d", id)
		}
		if err := sendAction(action); err != nil {
			return fmt.Errorf("failed to close %s: %w", target, err)
		}
		printSuccess("Closed %s", target)
		return nil
	},
}

// cycleCmd moves focus through windows or workspaces using the mirrored state
var cycleCmd = &cobra.Command{
	Use:       "cycle <window|workspace>",
	Short:     "Focus the next window on this workspace, or the next workspace on this output",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"window", "workspace"},
	RunE: func(cmd *cobra.Command, args []string) error {
		forward := !cyclePrev

		switch args[0] {
		case "window", "windows":
			return withMirror(func(ctx context.Context, c *client.Client, m *state.Mirror) error {
				id, err := focus.CycleWindow(ctx, c, m, forward)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(map[string]uint64{"window": id})
				}
				printSuccess("Focused window %d", id)
				return nil
			})
		case "workspace", "workspaces":
			return withMirror(func(ctx context.Context, c *client.Client, m *state.Mirror) error {
				ws, err := focus.CycleWorkspace(ctx, c, m, forward)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(ws)
				}
				printSuccess("Focused workspace %s on %s", ws.Label(), ws.Output)
				return nil
			})
		default:
			return fmt.Errorf("unknown target %q (want window or workspace)", args[0])
		}
	},
}

// focusUrgentCmd jumps to the first window asking for attention
var focusUrgentCmd = &cobra.Command{
	Use:   "focus-urgent",
	Short: "Focus the first urgent window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMirror(func(ctx context.Context, c *client.Client, m *state.Mirror) error {
			id, err := focus.FocusUrgent(ctx, c, m)
			if err != nil {
				return err
			}
			if jsonOutput {
				return printJSON(map[string]uint64{"window": id})
			}
			printSuccess("Focused window %d", id)
			return nil
		})
	},
}

// workspaceAction turns a CLI reference into a FocusWorkspace action
func workspaceAction(ref, by string) (models.Action, error) {
	switch by {
	case "index", "idx":
		idx, err := strconv.ParseUint(ref, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid workspace index %q: %w", ref, err)
		}
		return models.FocusWorkspaceByIndex(uint8(idx)), nil
	case "id":
		id, err := strconv.ParseUint(ref, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid workspace ID %q: %w", ref, err)
		}
		return models.FocusWorkspaceByID(id), nil
	case "name":
		return models.FocusWorkspaceByName(ref), nil
	case "auto", "":
		if idx, err := strconv.ParseUint(ref, 10, 8); err == nil {
			return models.FocusWorkspaceByIndex(uint8(idx)), nil
		}
		return models.FocusWorkspaceByName(ref), nil
	default:
		return nil, fmt.Errorf("unknown reference kind %q (want index, id or name)", by)
	}
}

func parseWindowID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window ID %q: %w", s, err)
	}
	return id, nil
}
