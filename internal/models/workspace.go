package models

import "fmt"

// Workspace is a workspace as mirrored by the client
type Workspace struct {
	ID             uint64 `json:"id"`
	Index          uint8  `json:"index"` // position on its output
	Name           string `json:"name,omitempty"`
	Output         string `json:"output"`
	IsActive       bool   `json:"isActive"`
	IsFocused      bool   `json:"isFocused"`
	IsUrgent       bool   `json:"isUrgent"`
	ActiveWindowID uint64 `json:"activeWindowId"` // 0 means none
}

// WorkspacePayload is the wire representation of a workspace
type WorkspacePayload struct {
	ID             uint64  `json:"id"`
	Index          uint8   `json:"idx"`
	Name           *string `json:"name"`
	Output         *string `json:"output"`
	IsActive       bool    `json:"is_active"`
	IsFocused      bool    `json:"is_focused"`
	IsUrgent       bool    `json:"is_urgent"`
	ActiveWindowID *uint64 `json:"active_window_id"`
}

// ToWorkspace converts the wire payload, applying the sentinels for absent values
func (p *WorkspacePayload) ToWorkspace() Workspace {
	ws := Workspace{
		ID:        p.ID,
		Index:     p.Index,
		IsActive:  p.IsActive,
		IsFocused: p.IsFocused,
		IsUrgent:  p.IsUrgent,
	}
	if p.Name != nil {
		ws.Name = *p.Name
	}
	if p.Output != nil {
		ws.Output = *p.Output
	}
	if p.ActiveWindowID != nil {
		ws.ActiveWindowID = *p.ActiveWindowID
	}
	return ws
}

// Label returns the workspace name, or its index when unnamed
func (ws *Workspace) Label() string {
	if ws.Name != "" {
		return ws.Name
	}
	return fmt.Sprintf("%d", ws.Index)
}
