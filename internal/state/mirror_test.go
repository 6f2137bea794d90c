package state

import (
	"testing"

	"github.com/yourusername/niri-mirror/internal/models"
)

type fakeIcons map[string]string

func (f fakeIcons) Lookup(appID string) string {
	return f[appID]
}

// staleIcons is a resolver whose answers can be invalidated
type staleIcons struct {
	paths      map[string]string
	generation uint64
}

func (s *staleIcons) Lookup(appID string) string {
	return s.paths[appID]
}

func (s *staleIcons) Generation() uint64 {
	return s.generation
}

func apply(t *testing.T, m *Mirror, frame string) {
	t.Helper()
	msg, err := models.Decode([]byte(frame))
	if err != nil {
		t.Fatalf("Decode(%s) error = %v", frame, err)
	}
	ev, ok := msg.(models.Event)
	if !ok {
		t.Fatalf("Decode(%s) = %T, want event", frame, msg)
	}
	m.HandleEvent(ev)
}

func TestMirror_OpenThenClose(t *testing.T) {
	m := NewMirror(nil)

	apply(t, m, `{"WindowOpenedOrChanged":{"window":{"id":5,"title":"A","app_id":"a","pid":100,"workspace_id":1,"is_focused":true,"is_floating":false,"is_urgent":false}}}`)

	if m.Windows.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Windows.Len())
	}
	focused, ok := m.Windows.Focused()
	if !ok || focused.ID != 5 || !focused.IsFocused {
		t.Fatalf("Focused() = (%+v, %v), want window 5", focused, ok)
	}

	r := record(m.Windows.Notifier())
	apply(t, m, `{"WindowClosed":{"id":5}}`)

	if m.Windows.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Windows.Len())
	}
	if _, ok := m.Windows.Focused(); ok {
		t.Error("focused reference should be cleared")
	}
	if r.count(CountChanged) != 1 || r.count(FocusedWindowChanged) != 1 {
		t.Errorf("want one count and one focused notification, got %+v", r.changes)
	}
}

func TestMirror_CloseUnknownIsNoop(t *testing.T) {
	m := NewMirror(nil)
	apply(t, m, `{"WindowsChanged":{"windows":[{"id":1,"is_focused":true,"is_floating":false,"is_urgent":false}]}}`)
	r := record(m.Windows.Notifier())

	apply(t, m, `{"WindowClosed":{"id":77}}`)
	apply(t, m, `{"WindowUrgencyChanged":{"id":77,"urgent":true}}`)
	apply(t, m, `{"WorkspaceActivated":{"id":77,"focused":true}}`)

	if len(r.changes) != 0 {
		t.Errorf("expected no notifications, got %+v", r.changes)
	}
	if m.Windows.Len() != 1 {
		t.Error("collection should be unchanged")
	}
}

func TestMirror_UnknownEventIgnored(t *testing.T) {
	m := NewMirror(nil)
	rw := record(m.Windows.Notifier())
	rs := record(m.Workspaces.Notifier())

	apply(t, m, `{"KeyboardLayoutSwitched":{"idx":1}}`)
	apply(t, m, `{"WindowLayoutsChanged":{"changes":[]}}`)

	if len(rw.changes) != 0 || len(rs.changes) != 0 {
		t.Error("ignored events must not notify")
	}
}

func TestMirror_WorkspaceEvents(t *testing.T) {
	m := NewMirror(nil)

	apply(t, m, `{"WorkspacesChanged":{"workspaces":[
		{"id":3,"idx":2,"name":null,"output":"DP-1","is_active":false,"is_focused":false,"is_urgent":false,"active_window_id":null},
		{"id":1,"idx":1,"name":"web","output":"DP-1","is_active":true,"is_focused":true,"is_urgent":false,"active_window_id":10}
	]}}`)

	first, _ := m.Workspaces.At(0)
	if first.ID != 1 || first.Name != "web" || first.ActiveWindowID != 10 {
		t.Errorf("At(0) = %+v", first)
	}

	apply(t, m, `{"WorkspaceActivated":{"id":3,"focused":true}}`)
	apply(t, m, `{"WorkspaceUrgencyChanged":{"id":1,"urgent":true}}`)
	apply(t, m, `{"WorkspaceActiveWindowChanged":{"workspace_id":3,"active_window_id":11}}`)

	ws1, _ := m.Workspaces.ByID(1)
	ws3, _ := m.Workspaces.ByID(3)
	if ws1.IsActive || ws1.IsFocused || !ws1.IsUrgent {
		t.Errorf("workspace 1 = %+v", ws1)
	}
	if !ws3.IsActive || !ws3.IsFocused || ws3.ActiveWindowID != 11 {
		t.Errorf("workspace 3 = %+v", ws3)
	}
}

func TestMirror_WindowEvents(t *testing.T) {
	m := NewMirror(nil)

	apply(t, m, `{"WindowsChanged":{"windows":[
		{"id":1,"title":"one","app_id":"a","pid":1,"workspace_id":1,"is_focused":true,"is_floating":false,"is_urgent":false},
		{"id":2,"title":"two","app_id":"b","pid":null,"workspace_id":null,"is_focused":false,"is_floating":true,"is_urgent":false}
	]}}`)

	w2, _ := m.Windows.ByID(2)
	if w2.PID != -1 || w2.WorkspaceID != 0 {
		t.Errorf("sentinels not applied: %+v", w2)
	}

	apply(t, m, `{"WindowFocusChanged":{"id":2}}`)
	if f, _ := m.Windows.Focused(); f.ID != 2 {
		t.Errorf("Focused() = %d, want 2", f.ID)
	}

	apply(t, m, `{"WindowFocusChanged":{"id":null}}`)
	if _, ok := m.Windows.Focused(); ok {
		t.Error("null focus should clear the focused window")
	}

	apply(t, m, `{"WindowUrgencyChanged":{"id":1,"urgent":true}}`)
	if w1, _ := m.Windows.ByID(1); !w1.IsUrgent {
		t.Error("window 1 should be urgent")
	}
}

func TestMirror_AttachesIcons(t *testing.T) {
	m := NewMirror(fakeIcons{"firefox": "/usr/share/icons/firefox.svg"})

	apply(t, m, `{"WindowOpenedOrChanged":{"window":{"id":1,"app_id":"firefox","is_focused":false,"is_floating":false,"is_urgent":false}}}`)
	apply(t, m, `{"WindowOpenedOrChanged":{"window":{"id":2,"app_id":"unknown","is_focused":false,"is_floating":false,"is_urgent":false}}}`)

	w1, _ := m.Windows.ByID(1)
	if w1.IconPath != "/usr/share/icons/firefox.svg" {
		t.Errorf("IconPath = %q", w1.IconPath)
	}
	w2, _ := m.Windows.ByID(2)
	if w2.IconPath != "" {
		t.Errorf("IconPath = %q, want empty", w2.IconPath)
	}
}

func TestMirror_Ready(t *testing.T) {
	m := NewMirror(nil)

	select {
	case <-m.Ready():
		t.Fatal("should not be ready before full state")
	default:
	}

	apply(t, m, `{"WorkspacesChanged":{"workspaces":[]}}`)
	if m.Synced() {
		t.Fatal("should not be synced with only workspaces")
	}
	apply(t, m, `{"WindowsChanged":{"windows":[]}}`)

	select {
	case <-m.Ready():
	default:
		t.Fatal("should be ready after both full-state events")
	}

	// A second full replace must not panic on the closed channel
	apply(t, m, `{"WindowsChanged":{"windows":[]}}`)
}

func TestMirror_IconMissReplacesOldPath(t *testing.T) {
	icons := fakeIcons{"a": "/icons/a.png"}
	m := NewMirror(icons)

	frame := `{"WindowOpenedOrChanged":{"window":{"id":1,"app_id":"a","is_focused":false,"is_floating":false,"is_urgent":false}}}`
	apply(t, m, frame)
	delete(icons, "a")
	apply(t, m, frame)

	if w, _ := m.Windows.ByID(1); w.IconPath != "" {
		t.Errorf("IconPath = %q, want empty after the icon went away", w.IconPath)
	}
}

func TestMirror_KeepsIconPathWithoutResolver(t *testing.T) {
	m := NewMirror(nil)
	m.Restore(Snapshot{Windows: []models.Window{{ID: 1, AppID: "a", IconPath: "/icons/a.png"}}})

	apply(t, m, `{"WindowOpenedOrChanged":{"window":{"id":1,"title":"new","app_id":"a","is_focused":false,"is_floating":false,"is_urgent":false}}}`)
	if w, _ := m.Windows.ByID(1); w.IconPath != "/icons/a.png" || w.Title != "new" {
		t.Errorf("window = %+v, want path kept and title updated", w)
	}

	apply(t, m, `{"WindowOpenedOrChanged":{"window":{"id":1,"app_id":"b","is_focused":false,"is_floating":false,"is_urgent":false}}}`)
	if w, _ := m.Windows.ByID(1); w.IconPath != "" {
		t.Errorf("IconPath = %q, want cleared for a different app", w.IconPath)
	}
}

func TestMirror_RestampsIconsAfterInvalidation(t *testing.T) {
	icons := &staleIcons{paths: map[string]string{"a": "/icons/a.png"}}
	m := NewMirror(icons)
	apply(t, m, `{"WindowsChanged":{"windows":[{"id":1,"app_id":"a","is_focused":false,"is_floating":false,"is_urgent":false}]}}`)

	var iconChanges int
	m.Windows.Notifier().Subscribe(func(c Change) {
		if c.Kind == DataChanged && c.HasField(FieldIconPath) {
			iconChanges++
		}
	})

	// No invalidation yet: unrelated events leave the path alone
	icons.paths["a"] = "/icons/a-new.png"
	apply(t, m, `{"WorkspacesChanged":{"workspaces":[]}}`)
	if w, _ := m.Windows.ByID(1); w.IconPath != "/icons/a.png" {
		t.Errorf("IconPath = %q before invalidation", w.IconPath)
	}

	icons.generation++
	apply(t, m, `{"WorkspacesChanged":{"workspaces":[]}}`)
	if w, _ := m.Windows.ByID(1); w.IconPath != "/icons/a-new.png" {
		t.Errorf("IconPath = %q, want re-resolved path", w.IconPath)
	}
	if iconChanges != 1 {
		t.Errorf("iconPath notifications = %d, want 1", iconChanges)
	}

	apply(t, m, `{"WorkspacesChanged":{"workspaces":[]}}`)
	if iconChanges != 1 {
		t.Errorf("refreshed again without invalidation: %d notifications", iconChanges)
	}
}
