package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/niri-mirror/internal/models"
)

const (
	// DefaultStateDir is the directory under $HOME for snapshot files
	DefaultStateDir = ".local/state/niri-mirror"
	// DefaultSnapshotFile is the snapshot file name
	DefaultSnapshotFile = "snapshot.json"

	// SnapshotVersion is bumped when the file layout changes
	SnapshotVersion = 1
)

// Snapshot is a point-in-time copy of the mirror
type Snapshot struct {
	Version    int                `json:"version"`
	TakenAt    time.Time          `json:"takenAt"`
	Windows    []models.Window    `json:"windows"`
	Workspaces []models.Workspace `json:"workspaces"`
}

// GetSnapshotPath returns the full path to the snapshot file
func GetSnapshotPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultStateDir, DefaultSnapshotFile)
}

// Snapshot copies both collections. Call from the goroutine that applies events.
func (m *Mirror) Snapshot() Snapshot {
	return Snapshot{
		Version:    SnapshotVersion,
		TakenAt:    time.Now(),
		Windows:    m.Windows.All(),
		Workspaces: m.Workspaces.All(),
	}
}

// Restore replaces both collections with the snapshot's contents, emitting
// Reset on each. The mirror counts as synced afterwards.
func (m *Mirror) Restore(s Snapshot) {
	m.Windows.ReplaceAll(s.Windows)
	m.Workspaces.ReplaceAll(s.Workspaces)
	m.sawWindows, m.sawWorkspaces = true, true
	m.checkReady()
}

// LoadSnapshot reads a snapshot written by SaveTo
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if s.Version > SnapshotVersion {
		return Snapshot{}, fmt.Errorf("snapshot version %d is newer than supported version %d", s.Version, SnapshotVersion)
	}
	return s, nil
}

// SaveTo persists the snapshot to path
func (s Snapshot) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Write atomically using temp file + rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename snapshot: %w", err)
	}

	return nil
}
