package syncer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DefaultMetadataFile is where sync state is persisted between runs.
const DefaultMetadataFile = "mcp-sync-metadata.json"

// historyLimit bounds the persisted sync history.
const historyLimit = 10

// HistoryEntry is one completed sync cycle.
type HistoryEntry struct {
	ID         string    `json:"id"`
	Version    int       `json:"version"`
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source"`
	Colors     int       `json:"colors"`
	Typography int       `json:"typography"`
	Spacing    int       `json:"spacing"`
	Changed    bool      `json:"changed"`
}

// Metadata is the process-wide sync state: a monotonic version counter, the
// time of the last sync, and a bounded history of recent cycles.
type Metadata struct {
	Version     int            `json:"version"`
	LastSync    time.Time      `json:"lastSync"`
	SyncHistory []HistoryEntry `json:"syncHistory"`
}

// Record appends an entry and trims the history to its bound.
func (m *Metadata) Record(entry HistoryEntry) {
	m.SyncHistory = append(m.SyncHistory, entry)
	if len(m.SyncHistory) > historyLimit {
		m.SyncHistory = m.SyncHistory[len(m.SyncHistory)-historyLimit:]
	}
}

// LoadMetadata reads persisted sync state. A missing file is a first run and
// yields fresh state, not an error.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Metadata{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sync metadata %s: %w", path, err)
	}

	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse sync metadata %s: %w", path, err)
	}
	return &m, nil
}

// SaveMetadata persists sync state atomically: the new content lands in a
// temp file first and is renamed over the old one, so a crash mid-write can
// never leave a torn metadata file.
func SaveMetadata(path string, m *Metadata) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sync metadata: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".sync-metadata-*")
	if err != nil {
		return fmt.Errorf("create temp metadata file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp metadata file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp metadata file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace sync metadata %s: %w", path, err)
	}
	return nil
}
