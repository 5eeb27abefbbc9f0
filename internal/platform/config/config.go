package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StoreFile = "file"
	StoreHTTP = "http"

	defaultRefreshTTL = 5 * time.Minute
)

// Config describes where the tracker keeps its data and which record store
// backs it. Everything lives under a single data directory; the optional
// config.yml inside it overrides the defaults.
type Config struct {
	DataDir      string
	Store        string
	BaseURL      string
	Token        string
	RosterTable  string
	HistoryTable string
	RefreshTTL   time.Duration
	DBPath       string
	NotifierPath string
}

type fileConfig struct {
	Store        string `yaml:"store"`
	BaseURL      string `yaml:"base_url"`
	Token        string `yaml:"token"`
	RosterTable  string `yaml:"roster_table"`
	HistoryTable string `yaml:"history_table"`
	RefreshTTL   string `yaml:"refresh_ttl"`
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:      dataDir,
		Store:        StoreFile,
		RosterTable:  "roster",
		HistoryTable: "history",
		RefreshTTL:   defaultRefreshTTL,
		DBPath:       filepath.Join(dataDir, "mcad.db"),
		NotifierPath: filepath.Join(dataDir, "notifier.yml"),
	}

	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if fc.Store != "" {
		if fc.Store != StoreFile && fc.Store != StoreHTTP {
			return Config{}, fmt.Errorf("unsupported store %q", fc.Store)
		}
		cfg.Store = fc.Store
	}
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Token != "" {
		cfg.Token = fc.Token
	}
	if fc.RosterTable != "" {
		cfg.RosterTable = fc.RosterTable
	}
	if fc.HistoryTable != "" {
		cfg.HistoryTable = fc.HistoryTable
	}
	if fc.RefreshTTL != "" {
		ttl, err := time.ParseDuration(fc.RefreshTTL)
		if err != nil {
			return Config{}, fmt.Errorf("parse refresh_ttl: %w", err)
		}
		cfg.RefreshTTL = ttl
	}
	if cfg.Store == StoreHTTP && cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("base_url is required for the http store")
	}
	return cfg, nil
}
