package focus

import (
	"context"
	"fmt"

	"github.com/yourusername/niri-mirror/internal/models"
	"github.com/yourusername/niri-mirror/internal/state"
)

// Sender issues commands to the compositor. *client.Client implements it.
type Sender interface {
	Send(ctx context.Context, action models.Action) (bool, error)
}

// CycleWindow focuses the next/prev window on the focused workspace.
// The mirror must only be read from the goroutine that feeds it events.
// Returns the window ID that was focused.
func CycleWindow(ctx context.Context, s Sender, m *state.Mirror, forward bool) (uint64, error) {
	id, err := NextWindow(m, forward)
	if err != nil {
		return 0, err
	}
	if err := FocusWindow(ctx, s, id); err != nil {
		return 0, err
	}
	return id, nil
}

// CycleWorkspace focuses the next/prev workspace on the focused output
func CycleWorkspace(ctx context.Context, s Sender, m *state.Mirror, forward bool) (models.Workspace, error) {
	ws, err := NextWorkspace(m, forward)
	if err != nil {
		return models.Workspace{}, err
	}
	if err := send(ctx, s, models.FocusWorkspaceByID(ws.ID)); err != nil {
		return models.Workspace{}, fmt.Errorf("focus workspace %s: %w", ws.Label(), err)
	}
	return ws, nil
}

// FocusUrgent focuses the first urgent window
func FocusUrgent(ctx context.Context, s Sender, m *state.Mirror) (uint64, error) {
	id, err := UrgentWindow(m)
	if err != nil {
		return 0, err
	}
	if err := FocusWindow(ctx, s, id); err != nil {
		return 0, err
	}
	return id, nil
}

// FocusWindow requests the compositor to focus a window
func FocusWindow(ctx context.Context, s Sender, windowID uint64) error {
	if err := send(ctx, s, models.FocusWindow{ID: windowID}); err != nil {
		return fmt.Errorf("focus window %d: %w", windowID, err)
	}
	return nil
}

// send treats a command that was not acknowledged as ErrReply
func send(ctx context.Context, s Sender, action models.Action) error {
	ok, err := s.Send(ctx, action)
	if err != nil {
		return err
	}
	if !ok {
		return models.ErrReply
	}
	return nil
}
