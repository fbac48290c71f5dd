package library

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"mp3ify/internal/domain"
)

// Snapshot is the on-disk form of an index, so a scan of a large library can
// be reused across runs.
type Snapshot struct {
	Root      string             `json:"root"`
	CreatedAt time.Time          `json:"created_at"`
	Tracks    []domain.TrackFile `json:"tracks"`
}

// SaveSnapshot writes the index to path as JSON.
func SaveSnapshot(path string, idx *Index) error {
	snapshot := Snapshot{
		Root:      idx.Root(),
		CreatedAt: time.Now().UTC(),
		Tracks:    idx.Tracks(),
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write index snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot from path and rebuilds the index. A snapshot
// taken for a different library root is rejected rather than silently used.
func LoadSnapshot(path, root string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode index snapshot: %w", err)
	}

	if snapshot.Root != root {
		return nil, fmt.Errorf("index snapshot was taken for root %s, not %s", snapshot.Root, root)
	}

	return BuildIndex(snapshot.Root, snapshot.Tracks), nil
}
