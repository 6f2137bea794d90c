package focus

import (
	"errors"
	"sort"

	"github.com/yourusername/niri-mirror/internal/models"
	"github.com/yourusername/niri-mirror/internal/state"
)

var (
	ErrNoWindows    = errors.New("no windows to cycle")
	ErrNoWorkspaces = errors.New("no workspaces to cycle")
	ErrNoUrgent     = errors.New("no urgent window")
)

// NextWindow picks the window after (or before) the focused one among the
// windows sharing its workspace, ordered by id. With no focused window the
// focused workspace's windows are used and the first (or last) is picked.
func NextWindow(m *state.Mirror, forward bool) (uint64, error) {
	var candidates []models.Window
	focused, hasFocused := m.Windows.Focused()

	switch {
	case hasFocused:
		candidates = m.Windows.OnWorkspace(focused.WorkspaceID)
	default:
		if ws, ok := m.Workspaces.Focused(); ok {
			candidates = m.Windows.OnWorkspace(ws.ID)
		}
		if len(candidates) == 0 {
			candidates = m.Windows.All()
		}
	}

	if len(candidates) == 0 {
		return 0, ErrNoWindows
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})

	idx := -1
	if hasFocused {
		for i, w := range candidates {
			if w.ID == focused.ID {
				idx = i
				break
			}
		}
	}
	return candidates[step(idx, len(candidates), forward)].ID, nil
}

// NextWorkspace picks the workspace after (or before) the focused one on the
// same output, in index order.
func NextWorkspace(m *state.Mirror, forward bool) (models.Workspace, error) {
	focused, ok := m.Workspaces.Focused()
	if !ok {
		all := m.Workspaces.All()
		if len(all) == 0 {
			return models.Workspace{}, ErrNoWorkspaces
		}
		return all[step(-1, len(all), forward)], nil
	}

	siblings := m.Workspaces.OnOutput(focused.Output)
	idx := -1
	for i, ws := range siblings {
		if ws.ID == focused.ID {
			idx = i
			break
		}
	}
	return siblings[step(idx, len(siblings), forward)], nil
}

// UrgentWindow returns the first urgent window in list order
func UrgentWindow(m *state.Mirror) (uint64, error) {
	for _, w := range m.Windows.All() {
		if w.IsUrgent {
			return w.ID, nil
		}
	}
	return 0, ErrNoUrgent
}

// step moves idx one position with wrap-around. idx -1 means no current
// position: forward starts at the first element, backward at the last.
func step(idx, n int, forward bool) int {
	if idx < 0 || idx >= n {
		if forward {
			return 0
		}
		return n - 1
	}
	if forward {
		return (idx + 1) % n
	}
	return (idx - 1 + n) % n
}
