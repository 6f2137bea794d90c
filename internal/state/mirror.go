package state

import (
	"github.com/yourusername/niri-mirror/internal/logging"
	"github.com/yourusername/niri-mirror/internal/models"
)

// IconResolver maps an application id to an icon file path ("" if none)
type IconResolver interface {
	Lookup(appID string) string
}

// iconGeneration is implemented by resolvers whose answers can go stale.
// The generation changes every time previous answers are invalidated.
type iconGeneration interface {
	Generation() uint64
}

// Mirror holds the window and workspace collections and applies compositor
// events to them. It satisfies client.EventSink.
type Mirror struct {
	Windows    *WindowList
	Workspaces *WorkspaceList

	icons     IconResolver
	iconsSeen uint64

	sawWindows    bool
	sawWorkspaces bool
	ready         chan struct{}
}

// NewMirror creates an empty mirror. icons may be nil.
func NewMirror(icons IconResolver) *Mirror {
	return &Mirror{
		Windows:    NewWindowList(),
		Workspaces: NewWorkspaceList(),
		icons:      icons,
		ready:      make(chan struct{}),
	}
}

// Ready is closed once both full-state events have been applied
func (m *Mirror) Ready() <-chan struct{} {
	return m.ready
}

// Synced reports whether both full-state events have been applied
func (m *Mirror) Synced() bool {
	return m.sawWindows && m.sawWorkspaces
}

// HandleEvent routes an event to the collection it concerns.
// Unknown events are ignored; lookups of unknown ids are logged and dropped.
func (m *Mirror) HandleEvent(ev models.Event) {
	m.refreshStaleIcons()

	var err error

	switch e := ev.(type) {
	case *models.WindowsChanged:
		windows := make([]models.Window, 0, len(e.Windows))
		for i := range e.Windows {
			windows = append(windows, m.toWindow(&e.Windows[i]))
		}
		m.Windows.ReplaceAll(windows)
		m.sawWindows = true
		m.checkReady()

	case *models.WindowOpenedOrChanged:
		m.Windows.Upsert(m.toWindow(&e.Window))

	case *models.WindowClosed:
		err = m.Windows.Remove(e.ID)

	case *models.WindowFocusChanged:
		m.Windows.SetFocused(e.ID)

	case *models.WindowUrgencyChanged:
		err = m.Windows.SetUrgent(e.ID, e.Urgent)

	case *models.WindowLayoutsChanged:
		// Position and size are not mirrored

	case *models.WorkspacesChanged:
		workspaces := make([]models.Workspace, 0, len(e.Workspaces))
		for i := range e.Workspaces {
			workspaces = append(workspaces, e.Workspaces[i].ToWorkspace())
		}
		m.Workspaces.ReplaceAll(workspaces)
		m.sawWorkspaces = true
		m.checkReady()

	case *models.WorkspaceActivated:
		err = m.Workspaces.Activate(e.ID, e.Focused)

	case *models.WorkspaceUrgencyChanged:
		err = m.Workspaces.SetUrgent(e.ID, e.Urgent)

	case *models.WorkspaceActiveWindowChanged:
		err = m.Workspaces.SetActiveWindow(e.WorkspaceID, e.ActiveWindowID)

	default:
		logging.Debug().Str("event", ev.Name()).Msg("ignoring unhandled event")
		return
	}

	if err != nil {
		logging.Warn().Err(err).Str("event", ev.Name()).Msg("event references unknown id")
	}
}

// RefreshIcons re-resolves the icon of every mirrored window. Without a
// resolver it does nothing.
func (m *Mirror) RefreshIcons() {
	if m.icons == nil {
		return
	}
	if g, ok := m.icons.(iconGeneration); ok {
		m.iconsSeen = g.Generation()
	}
	m.Windows.SetIconPaths(m.lookupIcon)
}

// refreshStaleIcons re-stamps windows once the resolver was invalidated
func (m *Mirror) refreshStaleIcons() {
	g, ok := m.icons.(iconGeneration)
	if !ok || g.Generation() == m.iconsSeen {
		return
	}
	m.RefreshIcons()
}

func (m *Mirror) lookupIcon(appID string) string {
	if appID == "" {
		return ""
	}
	return m.icons.Lookup(appID)
}

// toWindow converts a payload and stamps its icon. Without a resolver a
// window keeps the path it already had for the same app id.
func (m *Mirror) toWindow(p *models.WindowPayload) models.Window {
	w := p.ToWindow()
	if m.icons != nil {
		w.IconPath = m.lookupIcon(w.AppID)
	} else if old, ok := m.Windows.ByID(w.ID); ok && old.AppID == w.AppID {
		w.IconPath = old.IconPath
	}
	return w
}

func (m *Mirror) checkReady() {
	if !m.Synced() {
		return
	}
	select {
	case <-m.ready:
	default:
		close(m.ready)
	}
}
