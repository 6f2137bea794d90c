package models

import (
	"encoding/json"
	"fmt"
)

// Action is an imperative command sent on the request connection
type Action interface {
	ActionName() string
}

// WorkspaceReference selects a workspace by exactly one of index, id or name.
// It marshals to {"Index":n}, {"Id":n} or {"Name":"..."}.
type WorkspaceReference struct {
	Index *uint8  `json:"Index,omitempty"`
	ID    *uint64 `json:"Id,omitempty"`
	Name  *string `json:"Name,omitempty"`
}

// FocusWorkspace focuses the referenced workspace
type FocusWorkspace struct {
	Reference WorkspaceReference `json:"reference"`
}

// FocusWindow focuses a window by id
type FocusWindow struct {
	ID uint64 `json:"id"`
}

// CloseWindow closes a window. A nil ID closes the focused window.
type CloseWindow struct {
	ID *uint64 `json:"id"`
}

// FocusWorkspaceUp focuses the workspace above on the focused output
type FocusWorkspaceUp struct{}

// FocusWorkspaceDown focuses the workspace below on the focused output
type FocusWorkspaceDown struct{}

// FocusWorkspacePrevious focuses the previously focused workspace
type FocusWorkspacePrevious struct{}

func (FocusWorkspace) ActionName() string         { return "FocusWorkspace" }
func (FocusWindow) ActionName() string            { return "FocusWindow" }
func (CloseWindow) ActionName() string            { return "CloseWindow" }
func (FocusWorkspaceUp) ActionName() string       { return "FocusWorkspaceUp" }
func (FocusWorkspaceDown) ActionName() string     { return "FocusWorkspaceDown" }
func (FocusWorkspacePrevious) ActionName() string { return "FocusWorkspacePrevious" }

// FocusWorkspaceByIndex builds a focus action for the workspace at idx on the focused output
func FocusWorkspaceByIndex(idx uint8) FocusWorkspace {
	return FocusWorkspace{Reference: WorkspaceReference{Index: &idx}}
}

// FocusWorkspaceByID builds a focus action for a workspace id
func FocusWorkspaceByID(id uint64) FocusWorkspace {
	return FocusWorkspace{Reference: WorkspaceReference{ID: &id}}
}

// FocusWorkspaceByName builds a focus action for a named workspace
func FocusWorkspaceByName(name string) FocusWorkspace {
	return FocusWorkspace{Reference: WorkspaceReference{Name: &name}}
}

// CloseFocusedWindow builds a close action for whatever window has focus
func CloseFocusedWindow() CloseWindow {
	return CloseWindow{}
}

// CloseWindowByID builds a close action for a specific window
func CloseWindowByID(id uint64) CloseWindow {
	return CloseWindow{ID: &id}
}

// EncodeRequest wraps an action in its {"Action": {"<Name>": {...}}} envelope.
// The result has no trailing newline.
func EncodeRequest(a Action) ([]byte, error) {
	if a == nil {
		return nil, fmt.Errorf("nil action")
	}
	data, err := json.Marshal(map[string]map[string]Action{
		"Action": {a.ActionName(): a},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s action: %w", a.ActionName(), err)
	}
	return data, nil
}
