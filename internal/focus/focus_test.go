package focus

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/yourusername/niri-mirror/internal/models"
	"github.com/yourusername/niri-mirror/internal/state"
)

type fakeSender struct {
	sent []models.Action
	ok   bool
	err  error
}

func (s *fakeSender) Send(ctx context.Context, action models.Action) (bool, error) {
	s.sent = append(s.sent, action)
	return s.ok, s.err
}

// Test layout:
//
//	DP-1:     ws 1 (idx 1, focused) ws 2 (idx 2) ws 3 (idx 3)
//	HDMI-A-1: ws 4 (idx 1, active)
//
// Windows 30, 10, 20 on ws 1 (10 focused), window 40 on ws 4.
func makeMirror() *state.Mirror {
	m := state.NewMirror(nil)
	m.Workspaces.ReplaceAll([]models.Workspace{
		{ID: 1, Index: 1, Output: "DP-1", IsActive: true, IsFocused: true},
		{ID: 2, Index: 2, Output: "DP-1"},
		{ID: 3, Index: 3, Output: "DP-1"},
		{ID: 4, Index: 1, Output: "HDMI-A-1", IsActive: true},
	})
	m.Windows.ReplaceAll([]models.Window{
		{ID: 30, WorkspaceID: 1},
		{ID: 10, WorkspaceID: 1, IsFocused: true},
		{ID: 20, WorkspaceID: 1},
		{ID: 40, WorkspaceID: 4},
	})
	return m
}

func TestNextWindow(t *testing.T) {
	tests := []struct {
		name    string
		focused *uint64
		forward bool
		want    uint64
	}{
		{name: "forward", focused: uptr(10), forward: true, want: 20},
		{name: "backward wraps", focused: uptr(10), forward: false, want: 30},
		{name: "forward wraps", focused: uptr(30), forward: true, want: 10},
		{name: "nothing focused uses focused workspace", focused: nil, forward: true, want: 10},
		{name: "nothing focused backward", focused: nil, forward: false, want: 30},
		{name: "single window on workspace", focused: uptr(40), forward: true, want: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := makeMirror()
			m.Windows.SetFocused(tt.focused)

			got, err := NextWindow(m, tt.forward)
			if err != nil {
				t.Fatalf("NextWindow() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("NextWindow() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNextWindow_Empty(t *testing.T) {
	m := state.NewMirror(nil)
	if _, err := NextWindow(m, true); !errors.Is(err, ErrNoWindows) {
		t.Errorf("NextWindow() error = %v, want ErrNoWindows", err)
	}
}

func TestNextWorkspace(t *testing.T) {
	m := makeMirror()

	next, err := NextWorkspace(m, true)
	if err != nil {
		t.Fatalf("NextWorkspace() error = %v", err)
	}
	if next.ID != 2 {
		t.Errorf("NextWorkspace(forward) = %d, want 2", next.ID)
	}

	// Wraps within DP-1 and never crosses to HDMI-A-1
	prev, err := NextWorkspace(m, false)
	if err != nil {
		t.Fatalf("NextWorkspace() error = %v", err)
	}
	if prev.ID != 3 {
		t.Errorf("NextWorkspace(backward) = %d, want 3", prev.ID)
	}
}

func TestNextWorkspace_NoneFocused(t *testing.T) {
	m := state.NewMirror(nil)
	if _, err := NextWorkspace(m, true); !errors.Is(err, ErrNoWorkspaces) {
		t.Errorf("NextWorkspace() error = %v, want ErrNoWorkspaces", err)
	}

	m.Workspaces.ReplaceAll([]models.Workspace{
		{ID: 5, Index: 1, Output: "DP-1"},
		{ID: 6, Index: 2, Output: "DP-1"},
	})
	ws, err := NextWorkspace(m, true)
	if err != nil || ws.ID != 5 {
		t.Errorf("NextWorkspace() = (%d, %v), want first workspace", ws.ID, err)
	}
}

func TestCycleWindow_SendsFocus(t *testing.T) {
	m := makeMirror()
	s := &fakeSender{ok: true}

	id, err := CycleWindow(context.Background(), s, m, true)
	if err != nil {
		t.Fatalf("CycleWindow() error = %v", err)
	}
	if id != 20 {
		t.Errorf("CycleWindow() = %d, want 20", id)
	}
	want := []models.Action{models.FocusWindow{ID: 20}}
	if !reflect.DeepEqual(s.sent, want) {
		t.Errorf("sent %+v, want %+v", s.sent, want)
	}
}

func TestCycleWorkspace_SendsFocus(t *testing.T) {
	m := makeMirror()
	s := &fakeSender{ok: true}

	ws, err := CycleWorkspace(context.Background(), s, m, true)
	if err != nil {
		t.Fatalf("CycleWorkspace() error = %v", err)
	}
	if ws.ID != 2 {
		t.Errorf("CycleWorkspace() = %d, want 2", ws.ID)
	}
	want := []models.Action{models.FocusWorkspaceByID(2)}
	if !reflect.DeepEqual(s.sent, want) {
		t.Errorf("sent %+v, want %+v", s.sent, want)
	}
}

func TestCycle_Rejected(t *testing.T) {
	m := makeMirror()
	s := &fakeSender{ok: false}

	if _, err := CycleWindow(context.Background(), s, m, true); !errors.Is(err, models.ErrReply) {
		t.Errorf("CycleWindow() error = %v, want ErrReply", err)
	}
	if _, err := CycleWorkspace(context.Background(), s, m, true); !errors.Is(err, models.ErrReply) {
		t.Errorf("CycleWorkspace() error = %v, want ErrReply", err)
	}
}

func TestCycle_SendError(t *testing.T) {
	m := makeMirror()
	s := &fakeSender{err: models.ErrWriteFailed}

	if _, err := CycleWindow(context.Background(), s, m, true); !errors.Is(err, models.ErrWriteFailed) {
		t.Errorf("CycleWindow() error = %v, want ErrWriteFailed", err)
	}
}

func TestFocusUrgent(t *testing.T) {
	m := makeMirror()
	s := &fakeSender{ok: true}

	if _, err := FocusUrgent(context.Background(), s, m); !errors.Is(err, ErrNoUrgent) {
		t.Errorf("FocusUrgent() error = %v, want ErrNoUrgent", err)
	}
	if len(s.sent) != 0 {
		t.Error("nothing should be sent without an urgent window")
	}

	if err := m.Windows.SetUrgent(40, true); err != nil {
		t.Fatal(err)
	}
	id, err := FocusUrgent(context.Background(), s, m)
	if err != nil || id != 40 {
		t.Errorf("FocusUrgent() = (%d, %v), want 40", id, err)
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		idx, n  int
		forward bool
		want    int
	}{
		{0, 3, true, 1},
		{2, 3, true, 0},
		{0, 3, false, 2},
		{-1, 3, true, 0},
		{-1, 3, false, 2},
		{5, 3, true, 0},
		{0, 1, true, 0},
	}

	for _, tt := range tests {
		if got := step(tt.idx, tt.n, tt.forward); got != tt.want {
			t.Errorf("step(%d, %d, %v) = %d, want %d", tt.idx, tt.n, tt.forward, got, tt.want)
		}
	}
}

func uptr(v uint64) *uint64 {
	return &v
}
