package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mcad/internal/platform/config"
)

func TestDefaultsWithoutConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Store != config.StoreFile {
		t.Fatalf("expected file store default, got %q", cfg.Store)
	}
	if cfg.RosterTable != "roster" || cfg.HistoryTable != "history" {
		t.Fatalf("unexpected table defaults: %q %q", cfg.RosterTable, cfg.HistoryTable)
	}
	if cfg.RefreshTTL != 5*time.Minute {
		t.Fatalf("unexpected ttl default: %s", cfg.RefreshTTL)
	}
	if cfg.DBPath != filepath.Join(dir, "mcad.db") {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
}

func TestConfigFileOverrides(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	body := "store: http\nbase_url: https://records.example.test\ntoken: secret\nrefresh_ttl: 90s\nroster_table: mentees\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Store != config.StoreHTTP || cfg.BaseURL != "https://records.example.test" {
		t.Fatalf("http store not applied: %+v", cfg)
	}
	if cfg.RefreshTTL != 90*time.Second {
		t.Fatalf("ttl override not applied: %s", cfg.RefreshTTL)
	}
	if cfg.RosterTable != "mentees" || cfg.HistoryTable != "history" {
		t.Fatalf("table overrides wrong: %q %q", cfg.RosterTable, cfg.HistoryTable)
	}
}

func TestHTTPStoreRequiresBaseURL(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("store: http\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.New(dir); err == nil {
		t.Fatalf("expected error for http store without base_url")
	}
}
