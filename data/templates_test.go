package data

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMarkerTemplates(t *testing.T) {
	m := NewMarkerTemplateManager()
	if err := m.LoadFile(filepath.Join("xml", MarkersFile)); err != nil {
		t.Fatal(err)
	}

	goblin, ok := m.GetTemplate("Goblin")
	if !ok {
		t.Fatal("Expected a Goblin template")
	}
	if goblin.Rune() != 'g' {
		t.Errorf("Expected glyph g, got %q", goblin.Rune())
	}
	if goblin.RGBA() != (color.RGBA{0x40, 0xE0, 0x40, 0xff}) {
		t.Errorf("Unexpected color %v", goblin.RGBA())
	}
}

func TestMarkerTemplateFallback(t *testing.T) {
	m := NewMarkerTemplateManager()
	if err := m.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err != nil {
		t.Fatalf("Expected a missing file to be ignored: %v", err)
	}

	tmpl := m.Lookup("Dragon")
	if tmpl.Rune() != 'D' || tmpl.Name != "Dragon" {
		t.Errorf("Expected a placeholder built from the name, got %+v", tmpl)
	}
	if (&MarkerTemplate{}).Rune() != '?' {
		t.Error("Expected ? for an empty glyph")
	}
}

func TestMarkerTemplatesRequireID(t *testing.T) {
	path := filepath.Join(t.TempDir(), MarkersFile)
	if err := os.WriteFile(path, []byte(`[{"name": "Nameless"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := NewMarkerTemplateManager().LoadFile(path); err == nil {
		t.Error("Expected a template without id to be rejected")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#FF8000", color.RGBA{255, 128, 0, 255}},
		{"#ff8000", color.RGBA{255, 128, 0, 255}},
		{"#FFF", color.RGBA{0, 0, 0, 255}},
		{"#GGGGGG", color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := ParseHexColor(tt.in); got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
