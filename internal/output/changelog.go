package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/yourusername/niri-mirror/internal/models"
	"github.com/yourusername/niri-mirror/internal/state"
)

var (
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
	changedColor = color.New(color.FgYellow)
	focusColor   = color.New(color.FgCyan, color.Bold)
	resetColor   = color.New(color.FgMagenta)
	timeColor    = color.New(color.Faint)
)

// ChangeLog prints one line per change notification of a mirror.
// It must be attached before events are applied and only used from the
// goroutine that applies them.
type ChangeLog struct {
	w      io.Writer
	mirror *state.Mirror
	now    func() time.Time
}

// NewChangeLog creates a change log writing to w
func NewChangeLog(w io.Writer, m *state.Mirror) *ChangeLog {
	return &ChangeLog{w: w, mirror: m, now: time.Now}
}

// Attach subscribes to both collections. The returned func detaches.
func (l *ChangeLog) Attach() func() {
	cancelWindows := l.mirror.Windows.Notifier().Subscribe(l.windowChanged)
	cancelWorkspaces := l.mirror.Workspaces.Notifier().Subscribe(l.workspaceChanged)
	return func() {
		cancelWindows()
		cancelWorkspaces()
	}
}

func (l *ChangeLog) windowChanged(c state.Change) {
	windows := l.mirror.Windows

	switch c.Kind {
	case state.Reset:
		l.line(resetColor, "windows reset: %d windows", windows.Len())
	case state.RowsInserted:
		if w, ok := windows.At(c.Row); ok {
			l.line(addedColor, "+ window %d %s %q", w.ID, w.DisplayName(), w.Title)
		}
	case state.RowsRemoved:
		l.line(removedColor, "- window %d", c.ID)
	case state.DataChanged:
		if w, ok := windows.At(c.Row); ok {
			l.line(changedColor, "~ window %d %s%s", w.ID, w.DisplayName(), fieldSuffix(c))
		}
	case state.FocusedWindowChanged:
		if w, ok := windows.Focused(); ok {
			l.line(focusColor, "> focus window %d %s %q", w.ID, w.DisplayName(), w.Title)
		} else {
			l.line(focusColor, "> focus none")
		}
	}
}

func (l *ChangeLog) workspaceChanged(c state.Change) {
	workspaces := l.mirror.Workspaces

	switch c.Kind {
	case state.Reset:
		l.line(resetColor, "workspaces reset: %d workspaces on %d outputs",
			workspaces.Len(), len(workspaces.Outputs()))
	case state.DataChanged:
		if ws, ok := workspaces.At(c.Row); ok {
			l.line(changedColor, "~ workspace %s on %s%s%s", ws.Label(), orDash(ws.Output), fieldSuffix(c), workspaceState(ws))
		}
	}
}

func (l *ChangeLog) line(c *color.Color, format string, args ...interface{}) {
	stamp := timeColor.Sprint(l.now().Format("15:04:05.000"))
	fmt.Fprintf(l.w, "%s %s\n", stamp, c.Sprintf(format, args...))
}

func fieldSuffix(c state.Change) string {
	if c.Fields == nil {
		return ""
	}
	names := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		names[i] = string(f)
	}
	return " [" + strings.Join(names, ",") + "]"
}

func workspaceState(ws models.Workspace) string {
	var flags []string
	if ws.IsActive {
		flags = append(flags, "active")
	}
	if ws.IsFocused {
		flags = append(flags, "focused")
	}
	if ws.IsUrgent {
		flags = append(flags, "urgent")
	}
	if len(flags) == 0 {
		return ""
	}
	return " (" + strings.Join(flags, ",") + ")"
}
