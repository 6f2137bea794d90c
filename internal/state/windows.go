package state

import (
	"fmt"

	"github.com/yourusername/niri-mirror/internal/models"
)

// WindowList is the ordered collection of windows plus the focused window.
// It is not safe for concurrent use; it is mutated only from the event loop.
type WindowList struct {
	windows []models.Window

	// focused window identity; tracked by id so it never dangles
	focusedID  uint64
	hasFocused bool

	notifier Notifier
}

// NewWindowList creates an empty window list
func NewWindowList() *WindowList {
	return &WindowList{
		windows: make([]models.Window, 0),
	}
}

// Notifier returns the list's change notifier
func (l *WindowList) Notifier() *Notifier {
	return &l.notifier
}

// Len returns the number of windows
func (l *WindowList) Len() int {
	return len(l.windows)
}

// At returns the window at row i
func (l *WindowList) At(i int) (models.Window, bool) {
	if i < 0 || i >= len(l.windows) {
		return models.Window{}, false
	}
	return l.windows[i], true
}

// IndexOf returns the row of the window with the given id, or -1
func (l *WindowList) IndexOf(id uint64) int {
	for i := range l.windows {
		if l.windows[i].ID == id {
			return i
		}
	}
	return -1
}

// ByID returns the window with the given id
func (l *WindowList) ByID(id uint64) (models.Window, bool) {
	return l.At(l.IndexOf(id))
}

// All returns a copy of the windows in collection order
func (l *WindowList) All() []models.Window {
	result := make([]models.Window, len(l.windows))
	copy(result, l.windows)
	return result
}

// OnWorkspace returns the windows on a workspace, in collection order
func (l *WindowList) OnWorkspace(workspaceID uint64) []models.Window {
	var result []models.Window
	for _, w := range l.windows {
		if w.WorkspaceID == workspaceID {
			result = append(result, w)
		}
	}
	return result
}

// Focused returns the focused window, if any
func (l *WindowList) Focused() (models.Window, bool) {
	if !l.hasFocused {
		return models.Window{}, false
	}
	return l.ByID(l.focusedID)
}

// ReplaceAll discards the collection and repopulates it in the given order.
// It always notifies, even if nothing actually changed.
func (l *WindowList) ReplaceAll(windows []models.Window) {
	l.windows = make([]models.Window, len(windows))
	copy(l.windows, windows)

	l.notifier.emitAll(Reset)
	l.notifier.emitAll(CountChanged)
	l.updateFocused()
}

// Upsert appends a new window or replaces an existing one in place.
// A focused window takes focus away from every other window.
func (l *WindowList) Upsert(w models.Window) {
	idx := l.IndexOf(w.ID)
	if idx == -1 {
		l.windows = append(l.windows, w)
		l.notifier.emitRow(RowsInserted, len(l.windows)-1, w.ID)
		l.notifier.emitAll(CountChanged)
	} else {
		l.windows[idx] = w
		l.notifier.emitRow(DataChanged, idx, w.ID)
	}

	if w.IsFocused {
		for i := range l.windows {
			if l.windows[i].ID != w.ID && l.windows[i].IsFocused {
				l.windows[i].IsFocused = false
				l.notifier.emitRow(DataChanged, i, l.windows[i].ID, FieldIsFocused)
			}
		}
	}

	l.updateFocused()
}

// Remove deletes the window with the given id.
// Returns ErrNotFound if it is not in the collection.
func (l *WindowList) Remove(id uint64) error {
	idx := l.IndexOf(id)
	if idx == -1 {
		return fmt.Errorf("window %d: %w", id, models.ErrNotFound)
	}

	wasFocused := l.windows[idx].IsFocused

	l.windows = append(l.windows[:idx], l.windows[idx+1:]...)
	l.notifier.emitRow(RowsRemoved, idx, id)
	l.notifier.emitAll(CountChanged)

	if wasFocused {
		l.updateFocused()
	}
	return nil
}

// SetFocused makes the window with the given id the only focused one.
// A nil id clears focus from every window.
func (l *WindowList) SetFocused(id *uint64) {
	var newFocusedID uint64
	if id != nil {
		newFocusedID = *id
	}

	for i := range l.windows {
		shouldBeFocused := l.windows[i].ID == newFocusedID
		if l.windows[i].IsFocused != shouldBeFocused {
			l.windows[i].IsFocused = shouldBeFocused
			l.notifier.emitRow(DataChanged, i, l.windows[i].ID, FieldIsFocused)
		}
	}

	l.updateFocused()
}

// SetUrgent updates a window's urgency flag.
// Returns ErrNotFound if the window is not in the collection.
func (l *WindowList) SetUrgent(id uint64, urgent bool) error {
	idx := l.IndexOf(id)
	if idx == -1 {
		return fmt.Errorf("window %d: %w", id, models.ErrNotFound)
	}

	if l.windows[idx].IsUrgent != urgent {
		l.windows[idx].IsUrgent = urgent
		l.notifier.emitRow(DataChanged, idx, id, FieldIsUrgent)
	}
	return nil
}

// SetIconPaths re-resolves the icon of every window through lookup and
// notifies the rows whose path changed.
func (l *WindowList) SetIconPaths(lookup func(appID string) string) {
	for i := range l.windows {
		path := lookup(l.windows[i].AppID)
		if l.windows[i].IconPath != path {
			l.windows[i].IconPath = path
			l.notifier.emitRow(DataChanged, i, l.windows[i].ID, FieldIconPath)
		}
	}
}

// updateFocused points the focused window at the first focused row and
// notifies when the focused identity changed.
func (l *WindowList) updateFocused() {
	var newID uint64
	found := false
	for i := range l.windows {
		if l.windows[i].IsFocused {
			newID = l.windows[i].ID
			found = true
			break
		}
	}

	if found == l.hasFocused && newID == l.focusedID {
		return
	}

	l.focusedID = newID
	l.hasFocused = found
	l.notifier.emitAll(FocusedWindowChanged)
}
