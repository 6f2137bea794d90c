package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/yourusername/niri-mirror/internal/models"
)

// PrintWindowsTable prints windows in mirror order. workspaces resolves the
// workspace column; windows without a known workspace show "-".
func PrintWindowsTable(w io.Writer, windows []models.Window, workspaces []models.Workspace, maxTitle int) {
	byID := make(map[uint64]models.Workspace, len(workspaces))
	for _, ws := range workspaces {
		byID[ws.ID] = ws
	}

	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "App", "PID", "Workspace", "Flags", "Icon")

	for _, win := range windows {
		workspace := "-"
		if ws, ok := byID[win.WorkspaceID]; ok {
			workspace = ws.Label()
		} else if win.WorkspaceID != 0 {
			workspace = fmt.Sprintf("%d", win.WorkspaceID)
		}

		icon := ""
		if win.IconPath != "" {
			icon = "yes"
		}

		table.Append(
			fmt.Sprintf("%d", win.ID),
			truncate(win.Title, maxTitle),
			truncate(win.AppID, 30),
			win.FormatPID(),
			workspace,
			windowFlags(win),
			icon,
		)
	}

	table.Render()
}

// PrintWorkspacesTable prints workspaces grouped by output in index order
func PrintWorkspacesTable(w io.Writer, workspaces []models.Workspace) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Idx", "Name", "Output", "Active", "Focused", "Urgent", "Active Window")

	for _, ws := range workspaces {
		activeWindow := "-"
		if ws.ActiveWindowID != 0 {
			activeWindow = fmt.Sprintf("%d", ws.ActiveWindowID)
		}

		table.Append(
			fmt.Sprintf("%d", ws.ID),
			fmt.Sprintf("%d", ws.Index),
			orDash(ws.Name),
			orDash(ws.Output),
			check(ws.IsActive),
			check(ws.IsFocused),
			check(ws.IsUrgent),
			activeWindow,
		)
	}

	table.Render()
}

// PrintWindowDetail prints detailed information about a single window
func PrintWindowDetail(w io.Writer, win models.Window, ws *models.Workspace) {
	fmt.Fprintf(w, "Window ID: %d\n", win.ID)
	fmt.Fprintf(w, "Title: %s\n", win.Title)
	fmt.Fprintf(w, "Application: %s (PID: %s)\n", orDash(win.AppID), win.FormatPID())
	if ws != nil {
		fmt.Fprintf(w, "Workspace: %s on %s\n", ws.Label(), orDash(ws.Output))
	} else {
		fmt.Fprintf(w, "Workspace: %d\n", win.WorkspaceID)
	}
	fmt.Fprintf(w, "Focused: %v\n", win.IsFocused)
	fmt.Fprintf(w, "Floating: %v\n", win.IsFloating)
	fmt.Fprintf(w, "Urgent: %v\n", win.IsUrgent)
	if win.IconPath != "" {
		fmt.Fprintf(w, "Icon: %s\n", win.IconPath)
	}
}

// Helper functions

func windowFlags(win models.Window) string {
	var flags []string
	if win.IsFocused {
		flags = append(flags, "focused")
	}
	if win.IsFloating {
		flags = append(flags, "floating")
	}
	if win.IsUrgent {
		flags = append(flags, "urgent")
	}
	return strings.Join(flags, ",")
}

func check(b bool) string {
	if b {
		return "*"
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to maxLen runes. maxLen <= 0 means no limit.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
