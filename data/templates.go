package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
)

// MarkerTemplate describes how a spawned actor or item marker is drawn.
// Generation only records definition names; templates give them a look.
type MarkerTemplate struct {
	ID    string `json:"id"`    // Definition name used by spawnActor/spawnItem
	Name  string `json:"name"`  // Display name
	Glyph string `json:"glyph"` // Single character for text renderers

	// Sprite position in the tileset
	TileX int    `json:"tileX"`
	TileY int    `json:"tileY"`
	Color string `json:"color"` // Hex, e.g. "#00FF00"
}

// Rune returns the template glyph, '?' if none is set
func (t *MarkerTemplate) Rune() rune {
	for _, r := range t.Glyph {
		return r
	}
	return '?'
}

// RGBA returns the template color
func (t *MarkerTemplate) RGBA() color.RGBA {
	return ParseHexColor(t.Color)
}

// MarkerTemplateManager holds marker templates by definition name
type MarkerTemplateManager struct {
	Templates map[string]*MarkerTemplate
}

// NewMarkerTemplateManager creates an empty manager
func NewMarkerTemplateManager() *MarkerTemplateManager {
	return &MarkerTemplateManager{
		Templates: make(map[string]*MarkerTemplate),
	}
}

// LoadFile reads a JSON array of templates. A missing file leaves the
// manager empty.
func (m *MarkerTemplateManager) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read marker templates: %w", err)
	}

	var templates []MarkerTemplate
	if err := json.Unmarshal(raw, &templates); err != nil {
		return fmt.Errorf("failed to parse marker templates in %s: %w", path, err)
	}
	for i := range templates {
		if templates[i].ID == "" {
			return fmt.Errorf("marker template %d in %s has no id", i, path)
		}
		m.Templates[templates[i].ID] = &templates[i]
	}
	return nil
}

// GetTemplate returns the template for a definition name
func (m *MarkerTemplateManager) GetTemplate(id string) (*MarkerTemplate, bool) {
	template, ok := m.Templates[id]
	return template, ok
}

// Lookup returns the template for id, or a placeholder built from the
// definition name's first letter
func (m *MarkerTemplateManager) Lookup(id string) *MarkerTemplate {
	if template, ok := m.GetTemplate(id); ok {
		return template
	}
	glyph := "?"
	if id != "" {
		glyph = id[:1]
	}
	return &MarkerTemplate{ID: id, Name: id, Glyph: glyph, Color: "#FF00FF"}
}

// ParseHexColor converts a hex string to a color.RGBA
func ParseHexColor(hex string) (c color.RGBA) {
	c.A = 0xff

	if len(hex) < 7 {
		return
	}

	format := "#%02x%02x%02x"
	_, err := fmt.Sscanf(hex, format, &c.R, &c.G, &c.B)
	if err != nil {
		return color.RGBA{255, 255, 255, 255} // Default white on error
	}

	return
}
