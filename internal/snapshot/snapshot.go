// Package snapshot persists a fetched history verbatim as indented JSON.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"FearGreed/internal/model"
)

// Load reads a history snapshot. Returns an empty history if the file doesn't exist.
func Load(filePath string) ([]model.HistoryPoint, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.HistoryPoint{}, nil
		}
		return nil, err
	}
	var history []model.HistoryPoint
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", filePath, err)
	}
	return history, nil
}

// Save writes the history to filePath, creating parent directories.
// The file is written to a temp sibling and renamed so readers never see a partial file.
func Save(filePath string, history []model.HistoryPoint) error {
	if history == nil {
		history = []model.HistoryPoint{}
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp := filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filePath)
}
