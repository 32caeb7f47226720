package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("base_url = %q", cfg.BaseURL)
	}
	if cfg.SocketURL != cfg.BaseURL {
		t.Errorf("socket_url should default to base_url, got %q", cfg.SocketURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log_level = %q", cfg.LogLevel)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	want := &Config{
		BaseURL:   "http://localhost:7777",
		SocketURL: "ws://localhost:7778",
		DataDir:   "/tmp/cctui-test",
		LogLevel:  "debug",
	}
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *got != *want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data"}
	cfg.applyDefaults()
	if cfg.LogPath() != filepath.Join("/data", "cctui.log") {
		t.Errorf("log path = %q", cfg.LogPath())
	}
	if cfg.CachePath() != filepath.Join("/data", "cache.db") {
		t.Errorf("cache path = %q", cfg.CachePath())
	}
}
