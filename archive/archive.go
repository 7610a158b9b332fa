package archive

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"go-emberai/types"
)

// SnapshotDocument is the on-disk shape of a fire data export.
type SnapshotDocument struct {
	Timestamp string                `json:"timestamp"`
	Count     int                   `json:"count"`
	Fires     []types.FirePerimeter `json:"fires"`
}

// SaveFireData writes a batch of normalized fires to a timestamped JSON file
// under dir and returns the path. Pass an empty filename to auto-generate
// one. The file is an export artifact; the service never reads it back.
func SaveFireData(fires []types.FirePerimeter, dir, filename string) (string, error) {
	now := time.Now().UTC()
	if filename == "" {
		filename = "fire_perimeters_" + now.Format("20060102_150405") + ".json"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	doc := SnapshotDocument{
		Timestamp: now.Format(time.RFC3339),
		Count:     len(fires),
		Fires:     fires,
	}

	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, jsonData, 0o644); err != nil {
		return "", err
	}

	log.Printf("Saved %d fire perimeters to %s", len(fires), path)
	return path, nil
}
