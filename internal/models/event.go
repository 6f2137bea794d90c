package models

import "encoding/json"

// Message is anything decoded from a frame: a *Reply or an Event.
type Message interface {
	isMessage()
}

// Event is a compositor event decoded from its single-key envelope.
// The set of implementations is closed; UnknownEvent catches the rest.
type Event interface {
	Message
	Name() string
}

// The window configuration has changed. Replaces the previous configuration.
type WindowsChanged struct {
	Windows []WindowPayload `json:"windows"`
}

// A new toplevel window was opened, or an existing one changed.
type WindowOpenedOrChanged struct {
	Window WindowPayload `json:"window"`
}

// A toplevel window was closed.
type WindowClosed struct {
	ID uint64 `json:"id"`
}

// Window focus changed. A nil ID means no window is focused.
type WindowFocusChanged struct {
	ID *uint64 `json:"id"`
}

// Window urgency changed.
type WindowUrgencyChanged struct {
	ID     uint64 `json:"id"`
	Urgent bool   `json:"urgent"`
}

// Tile positions and sizes changed. Carried but not interpreted.
type WindowLayoutsChanged struct {
	Changes []json.RawMessage `json:"changes"`
}

// The workspace configuration has changed. Replaces the previous configuration.
type WorkspacesChanged struct {
	Workspaces []WorkspacePayload `json:"workspaces"`
}

// A workspace was activated on its output, and possibly focused.
type WorkspaceActivated struct {
	ID      uint64 `json:"id"`
	Focused bool   `json:"focused"`
}

// Workspace urgency changed.
type WorkspaceUrgencyChanged struct {
	ID     uint64 `json:"id"`
	Urgent bool   `json:"urgent"`
}

// The active window on a workspace changed. A nil ActiveWindowID means none.
type WorkspaceActiveWindowChanged struct {
	WorkspaceID    uint64  `json:"workspace_id"`
	ActiveWindowID *uint64 `json:"active_window_id"`
}

// UnknownEvent is an envelope whose discriminant this client does not know.
type UnknownEvent struct {
	Kind    string
	Payload json.RawMessage
}

func (*WindowsChanged) Name() string               { return "WindowsChanged" }
func (*WindowOpenedOrChanged) Name() string        { return "WindowOpenedOrChanged" }
func (*WindowClosed) Name() string                 { return "WindowClosed" }
func (*WindowFocusChanged) Name() string           { return "WindowFocusChanged" }
func (*WindowUrgencyChanged) Name() string         { return "WindowUrgencyChanged" }
func (*WindowLayoutsChanged) Name() string         { return "WindowLayoutsChanged" }
func (*WorkspacesChanged) Name() string            { return "WorkspacesChanged" }
func (*WorkspaceActivated) Name() string           { return "WorkspaceActivated" }
func (*WorkspaceUrgencyChanged) Name() string      { return "WorkspaceUrgencyChanged" }
func (*WorkspaceActiveWindowChanged) Name() string { return "WorkspaceActiveWindowChanged" }
func (e *UnknownEvent) Name() string               { return e.Kind }

func (*WindowsChanged) isMessage()               {}
func (*WindowOpenedOrChanged) isMessage()        {}
func (*WindowClosed) isMessage()                 {}
func (*WindowFocusChanged) isMessage()           {}
func (*WindowUrgencyChanged) isMessage()         {}
func (*WindowLayoutsChanged) isMessage()         {}
func (*WorkspacesChanged) isMessage()            {}
func (*WorkspaceActivated) isMessage()           {}
func (*WorkspaceUrgencyChanged) isMessage()      {}
func (*WorkspaceActiveWindowChanged) isMessage() {}
func (*UnknownEvent) isMessage()                 {}

// newEvent returns an empty event for a known discriminant, or nil
func newEvent(kind string) Event {
	switch kind {
	case "WindowsChanged":
		return &WindowsChanged{}
	case "WindowOpenedOrChanged":
		return &WindowOpenedOrChanged{}
	case "WindowClosed":
		return &WindowClosed{}
	case "WindowFocusChanged":
		return &WindowFocusChanged{}
	case "WindowUrgencyChanged":
		return &WindowUrgencyChanged{}
	case "WindowLayoutsChanged":
		return &WindowLayoutsChanged{}
	case "WorkspacesChanged":
		return &WorkspacesChanged{}
	case "WorkspaceActivated":
		return &WorkspaceActivated{}
	case "WorkspaceUrgencyChanged":
		return &WorkspaceUrgencyChanged{}
	case "WorkspaceActiveWindowChanged":
		return &WorkspaceActiveWindowChanged{}
	default:
		return nil
	}
}
