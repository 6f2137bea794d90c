package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/yourusername/niri-mirror/internal/models"
	"golang.org/x/sys/unix"
)

const (
	boxHeight   = 4
	minBoxWidth = 8
	maxBoxWidth = 24
)

// StripOptions controls the appearance of the workspace strip
type StripOptions struct {
	UseUnicode bool
	ShowIDs    bool
	MaxWidth   int
}

// DefaultStripOptions returns options sized to the terminal
func DefaultStripOptions() StripOptions {
	width, _ := getTerminalSize()
	return StripOptions{
		UseUnicode: SupportsUnicode(),
		ShowIDs:    false,
		MaxWidth:   width,
	}
}

// RenderStrip draws one row of workspace boxes per output. Each box shows the
// workspace label and its window count; the focused workspace is marked with
// '*', active ones with '+', urgent ones with '!'.
func RenderStrip(workspaces []models.Workspace, windows []models.Window, opts StripOptions) string {
	if len(workspaces) == 0 {
		return "(no workspaces)\n"
	}

	counts := make(map[uint64]int)
	for _, w := range windows {
		counts[w.WorkspaceID]++
	}

	var sb strings.Builder
	for _, group := range groupByOutput(workspaces) {
		name := group.output
		if name == "" {
			name = "(no output)"
		}
		sb.WriteString(name)
		sb.WriteString("\n")
		sb.WriteString(renderRow(group.workspaces, counts, opts))
		sb.WriteString("\n")
	}
	return sb.String()
}

type outputGroup struct {
	output     string
	workspaces []models.Workspace
}

// groupByOutput keeps the input order, which the mirror sorts by output
func groupByOutput(workspaces []models.Workspace) []outputGroup {
	var groups []outputGroup
	for _, ws := range workspaces {
		if len(groups) == 0 || groups[len(groups)-1].output != ws.Output {
			groups = append(groups, outputGroup{output: ws.Output})
		}
		last := &groups[len(groups)-1]
		last.workspaces = append(last.workspaces, ws)
	}
	return groups
}

func renderRow(workspaces []models.Workspace, counts map[uint64]int, opts StripOptions) string {
	widths := boxWidths(opts.MaxWidth, len(workspaces))
	total := 0
	for _, w := range widths {
		total += w
	}

	canvas := NewCanvas(total, boxHeight, opts.UseUnicode)
	x := 0
	for i, ws := range workspaces {
		box := Rect{X: x, Width: widths[i], Height: boxHeight}
		canvas.Box(box)
		canvas.Label(box.Inner(), 0, workspaceLabel(ws, opts.ShowIDs))
		canvas.Label(box.Inner(), 1, windowCount(counts[ws.ID]))
		x += box.Width
	}
	return canvas.String()
}

// boxWidths splits maxWidth across n boxes, clamped to
// [minBoxWidth, maxBoxWidth]. Leftover columns go to the leftmost boxes.
func boxWidths(maxWidth, n int) []int {
	widths := make([]int, n)
	if n == 0 {
		return widths
	}

	base := maxWidth / n
	extra := 0
	if base < minBoxWidth {
		base = minBoxWidth
	} else {
		extra = maxWidth % n
	}
	if base > maxBoxWidth {
		base, extra = maxBoxWidth, 0
	}

	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}

func workspaceLabel(ws models.Workspace, showID bool) string {
	var marks string
	if ws.IsFocused {
		marks += "*"
	} else if ws.IsActive {
		marks += "+"
	}
	if ws.IsUrgent {
		marks += "!"
	}

	label := fmt.Sprintf("%d", ws.Index)
	if ws.Name != "" {
		label += ":" + ws.Name
	}
	if showID {
		label = fmt.Sprintf("[%d] %s", ws.ID, label)
	}
	return marks + label
}

func windowCount(n int) string {
	if n == 1 {
		return "1 window"
	}
	return fmt.Sprintf("%d windows", n)
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// SupportsUnicode reports whether the locale advertises UTF-8
func SupportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

// PrintStrip writes the workspace strip, in cyan when color is enabled
func PrintStrip(w io.Writer, workspaces []models.Workspace, windows []models.Window, opts StripOptions) {
	result := RenderStrip(workspaces, windows, opts)

	if color.NoColor {
		fmt.Fprint(w, result)
		return
	}
	cyan := color.New(color.FgCyan)
	cyan.Fprint(w, result)
}
