package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	got, err := LoadSettings(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("Expected defaults, got %+v", got)
	}
}

func TestLoadSettingsKeepsDefaultsForOmittedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"seed": 42, "mapDef": "Cave"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Seed != 42 || got.MapDef != "Cave" {
		t.Errorf("Expected file values, got %+v", got)
	}
	if got.DataDir != DefaultSettings().DataDir {
		t.Errorf("Expected default data dir, got %q", got.DataDir)
	}
}

func TestLoadSettingsRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{seed`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("Expected parse error")
	}
}
