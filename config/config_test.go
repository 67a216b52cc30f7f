package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Triggers) == 0 {
		t.Error("defaults have no trigger devices")
	}
	if cfg.UI.LastPanel != 1 {
		t.Errorf("default panel = %d, want 1", cfg.UI.LastPanel)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.DataDir = "/tmp/clips"
	cfg.AddTrigger(TriggerConfig{PortName: "Test Pad 1", AutoConnect: true, BaseNote: 48})
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DataDir != "/tmp/clips" {
		t.Errorf("dataDir = %q", loaded.DataDir)
	}
	tc := loaded.FindTrigger("Test Pad 1")
	if tc == nil || tc.BaseNote != 48 {
		t.Errorf("trigger not round-tripped: %+v", tc)
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "soundpad")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected parse error")
	}
}

func TestAddTriggerUpdatesInPlace(t *testing.T) {
	cfg := &Config{}
	cfg.AddTrigger(TriggerConfig{PortName: "pad", BaseNote: 36})
	cfg.AddTrigger(TriggerConfig{PortName: "pad", BaseNote: 60})

	if len(cfg.Triggers) != 1 {
		t.Fatalf("got %d triggers, want 1", len(cfg.Triggers))
	}
	if cfg.Triggers[0].BaseNote != 60 {
		t.Error("second add did not update the existing entry")
	}
}

func TestAutoConnectTriggers(t *testing.T) {
	cfg := &Config{Triggers: []TriggerConfig{
		{PortName: "a", AutoConnect: true},
		{PortName: "b"},
		{PortName: "c", AutoConnect: true},
	}}
	got := cfg.AutoConnectTriggers()
	if len(got) != 2 || got[0].PortName != "a" || got[1].PortName != "c" {
		t.Errorf("autoconnect = %+v", got)
	}
}

func TestDataDirPathDefaultsToConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := &Config{}
	dir, err := cfg.DataDirPath()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := ConfigDir()
	if dir != want {
		t.Errorf("dataDir = %q, want %q", dir, want)
	}

	cfg.DataDir = "/somewhere"
	dir, _ = cfg.DataDirPath()
	if dir != "/somewhere" {
		t.Errorf("explicit dataDir = %q", dir)
	}
}
