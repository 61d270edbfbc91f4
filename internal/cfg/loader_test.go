package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load([]string{})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.DBPath != "./data/mediathek.db" {
		t.Errorf("Expected default db path, got '%s'", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.SettingsFile != "./settings.yml" {
		t.Errorf("Expected default settings file, got '%s'", cfg.SettingsFile)
	}
	if cfg.Debug || cfg.DebugAll {
		t.Error("Expected debug flags to be off")
	}
}

func TestLoadFlags(t *testing.T) {
	cfg, err := load([]string{"--db-path", "/tmp/catalog.db", "--port", "9090", "--debug", "--debug-all", "--timezone", "Europe/Berlin"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.DBPath != "/tmp/catalog.db" {
		t.Errorf("Expected db path '/tmp/catalog.db', got '%s'", cfg.DBPath)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port '9090', got '%s'", cfg.Port)
	}
	if !cfg.Debug || !cfg.DebugAll {
		t.Error("Expected debug flags to be on")
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Expected timezone 'Europe/Berlin', got '%s'", cfg.Timezone)
	}
}

func TestLoadUnknownFlag(t *testing.T) {
	if _, err := load([]string{"--no-such-flag"}); err == nil {
		t.Error("Expected error for unknown flag")
	}
}
