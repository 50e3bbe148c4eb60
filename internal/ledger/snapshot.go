package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"smartparking/internal/domain/models"
)

const snapshotVersion = 1

type snapshotFile struct {
	Version  int              `json:"version"`
	SavedAt  time.Time        `json:"saved_at"`
	Bookings []models.Booking `json:"bookings"`
}

// SaveFile writes the ledger history to path through a temp file and rename,
// so a crash never leaves a truncated snapshot behind.
func SaveFile(path string, m *Memory) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("snapshot temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	snap := snapshotFile{Version: snapshotVersion, SavedAt: time.Now().UTC(), Bookings: m.Snapshot()}
	if err := enc.Encode(snap); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("snapshot sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("snapshot rename: %w", err)
	}
	return nil
}

// LoadFile restores m from path. A missing file is not an error and loads
// nothing.
func LoadFile(path string, m *Memory) (int, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("snapshot read: %w", err)
	}
	var snap snapshotFile
	if err := json.Unmarshal(raw, &snap); err != nil {
		return 0, fmt.Errorf("snapshot decode: %w", err)
	}
	if snap.Version != snapshotVersion {
		return 0, fmt.Errorf("snapshot version %d not supported", snap.Version)
	}
	if err := m.Restore(snap.Bookings); err != nil {
		return 0, err
	}
	return len(snap.Bookings), nil
}
