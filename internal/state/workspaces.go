package state

import (
	"fmt"
	"sort"

	"github.com/yourusername/niri-mirror/internal/models"
)

// WorkspaceList is the collection of workspaces, ordered by output then index.
// It is not safe for concurrent use; it is mutated only from the event loop.
type WorkspaceList struct {
	workspaces []models.Workspace
	notifier   Notifier
}

// NewWorkspaceList creates an empty workspace list
func NewWorkspaceList() *WorkspaceList {
	return &WorkspaceList{
		workspaces: make([]models.Workspace, 0),
	}
}

// Notifier returns the list's change notifier
func (l *WorkspaceList) Notifier() *Notifier {
	return &l.notifier
}

// Len returns the number of workspaces
func (l *WorkspaceList) Len() int {
	return len(l.workspaces)
}

// At returns the workspace at row i
func (l *WorkspaceList) At(i int) (models.Workspace, bool) {
	if i < 0 || i >= len(l.workspaces) {
		return models.Workspace{}, false
	}
	return l.workspaces[i], true
}

// IndexOf returns the row of the workspace with the given id, or -1
func (l *WorkspaceList) IndexOf(id uint64) int {
	for i := range l.workspaces {
		if l.workspaces[i].ID == id {
			return i
		}
	}
	return -1
}

// ByID returns the workspace with the given id
func (l *WorkspaceList) ByID(id uint64) (models.Workspace, bool) {
	return l.At(l.IndexOf(id))
}

// All returns a copy of the workspaces in display order
func (l *WorkspaceList) All() []models.Workspace {
	result := make([]models.Workspace, len(l.workspaces))
	copy(result, l.workspaces)
	return result
}

// Focused returns the first focused workspace, if any
func (l *WorkspaceList) Focused() (models.Workspace, bool) {
	for _, ws := range l.workspaces {
		if ws.IsFocused {
			return ws, true
		}
	}
	return models.Workspace{}, false
}

// ActiveOn returns the active workspace on an output, if any
func (l *WorkspaceList) ActiveOn(output string) (models.Workspace, bool) {
	for _, ws := range l.workspaces {
		if ws.Output == output && ws.IsActive {
			return ws, true
		}
	}
	return models.Workspace{}, false
}

// OnOutput returns the workspaces on an output, in display order
func (l *WorkspaceList) OnOutput(output string) []models.Workspace {
	var result []models.Workspace
	for _, ws := range l.workspaces {
		if ws.Output == output {
			result = append(result, ws)
		}
	}
	return result
}

// Outputs returns the distinct output names in display order
func (l *WorkspaceList) Outputs() []string {
	var outputs []string
	seen := make(map[string]bool)
	for _, ws := range l.workspaces {
		if !seen[ws.Output] {
			seen[ws.Output] = true
			outputs = append(outputs, ws.Output)
		}
	}
	return outputs
}

// ReplaceAll discards the collection, repopulates it and sorts it by
// (output, index). Ties keep their arrival order.
func (l *WorkspaceList) ReplaceAll(workspaces []models.Workspace) {
	l.workspaces = make([]models.Workspace, len(workspaces))
	copy(l.workspaces, workspaces)

	sort.SliceStable(l.workspaces, func(i, j int) bool {
		a, b := l.workspaces[i], l.workspaces[j]
		if a.Output != b.Output {
			return a.Output < b.Output
		}
		return a.Index < b.Index
	})

	l.notifier.emitAll(Reset)
	l.notifier.emitAll(CountChanged)
}

// Activate makes a workspace the only active one on its output. When focused
// is set it also becomes the only focused workspace among that output's
// workspaces; workspaces on other outputs are left untouched.
func (l *WorkspaceList) Activate(id uint64, focused bool) error {
	idx := l.IndexOf(id)
	if idx == -1 {
		return fmt.Errorf("workspace %d: %w", id, models.ErrNotFound)
	}

	output := l.workspaces[idx].Output

	for i := range l.workspaces {
		if l.workspaces[i].Output != output {
			continue
		}

		becameActive := i == idx
		if l.workspaces[i].IsActive != becameActive {
			l.workspaces[i].IsActive = becameActive
			l.notifier.emitRow(DataChanged, i, l.workspaces[i].ID, FieldIsActive)
		}

		if focused {
			becameFocused := i == idx
			if l.workspaces[i].IsFocused != becameFocused {
				l.workspaces[i].IsFocused = becameFocused
				l.notifier.emitRow(DataChanged, i, l.workspaces[i].ID, FieldIsFocused)
			}
		}
	}
	return nil
}

// SetUrgent updates a workspace's urgency flag.
// Returns ErrNotFound if the workspace is not in the collection.
func (l *WorkspaceList) SetUrgent(id uint64, urgent bool) error {
	idx := l.IndexOf(id)
	if idx == -1 {
		return fmt.Errorf("workspace %d: %w", id, models.ErrNotFound)
	}

	if l.workspaces[idx].IsUrgent != urgent {
		l.workspaces[idx].IsUrgent = urgent
		l.notifier.emitRow(DataChanged, idx, id, FieldIsUrgent)
	}
	return nil
}

// SetActiveWindow updates the active window of a workspace. A nil window id
// means the workspace has no active window.
func (l *WorkspaceList) SetActiveWindow(workspaceID uint64, windowID *uint64) error {
	idx := l.IndexOf(workspaceID)
	if idx == -1 {
		return fmt.Errorf("workspace %d: %w", workspaceID, models.ErrNotFound)
	}

	var newActiveWindowID uint64
	if windowID != nil {
		newActiveWindowID = *windowID
	}

	if l.workspaces[idx].ActiveWindowID != newActiveWindowID {
		l.workspaces[idx].ActiveWindowID = newActiveWindowID
		l.notifier.emitRow(DataChanged, idx, workspaceID, FieldActiveWindowID)
	}
	return nil
}
