package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Settings are the user-editable options of the editor
type Settings struct {
	Seed    int64  `json:"seed"`    // 0 picks a time-based seed
	DataDir string `json:"dataDir"` // Directory holding the XML content
	MapDef  string `json:"mapDef"`  // Map definition to generate
	Tileset string `json:"tileset"` // Sprite sheet image, optional
}

// DefaultSettings returns the settings used when no file is present
func DefaultSettings() Settings {
	return Settings{
		DataDir: "data/xml",
		MapDef:  "Island",
		Tileset: "Nice_curses_12x12.png",
	}
}

// LoadSettings reads a JSON settings file. A missing file yields the
// defaults; fields left out of the file keep their default values.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings JSON: %w", err)
	}
	return settings, nil
}
