package models

import "fmt"

// Window is a toplevel window as mirrored by the client
type Window struct {
	ID          uint64 `json:"id"`
	Title       string `json:"title"`
	AppID       string `json:"appId"`
	PID         int32  `json:"pid"`         // -1 when the compositor does not know it
	WorkspaceID uint64 `json:"workspaceId"` // 0 when the window is on no workspace
	IsFocused   bool   `json:"isFocused"`
	IsFloating  bool   `json:"isFloating"`
	IsUrgent    bool   `json:"isUrgent"`
	IconPath    string `json:"iconPath,omitempty"`
}

// WindowPayload is the wire representation of a window
type WindowPayload struct {
	ID          uint64  `json:"id"`
	Title       *string `json:"title"`
	AppID       *string `json:"app_id"`
	PID         *int32  `json:"pid"`
	WorkspaceID *uint64 `json:"workspace_id"`
	IsFocused   bool    `json:"is_focused"`
	IsFloating  bool    `json:"is_floating"`
	IsUrgent    bool    `json:"is_urgent"`
}

// ToWindow converts the wire payload, applying the sentinels for absent values
func (p *WindowPayload) ToWindow() Window {
	w := Window{
		ID:         p.ID,
		PID:        -1,
		IsFocused:  p.IsFocused,
		IsFloating: p.IsFloating,
		IsUrgent:   p.IsUrgent,
	}
	if p.Title != nil {
		w.Title = *p.Title
	}
	if p.AppID != nil {
		w.AppID = *p.AppID
	}
	if p.PID != nil {
		w.PID = *p.PID
	}
	if p.WorkspaceID != nil {
		w.WorkspaceID = *p.WorkspaceID
	}
	return w
}

// DisplayName returns the app id, falling back to the title
func (w *Window) DisplayName() string {
	if w.AppID != "" {
		return w.AppID
	}
	if w.Title != "" {
		return w.Title
	}
	return fmt.Sprintf("window-%d", w.ID)
}

// FormatPID returns the pid or "-" when unknown
func (w *Window) FormatPID() string {
	if w.PID < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", w.PID)
}
