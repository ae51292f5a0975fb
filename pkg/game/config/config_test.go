package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Renderer != RendererTUI || cfg.Leveling.BucketSize != 500 || cfg.Storage.SyncInterval != time.Second {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Missions.Rewards["boss"] != 500 {
		t.Errorf("boss reward = %d, want 500", cfg.Missions.Rewards["boss"])
	}
}

func TestParseOverridesAndMerges(t *testing.T) {
	doc := []byte(`
renderer: ebiten
world:
  seed: 42
storage:
  sync_interval: 250ms
leveling:
  policy: growing
missions:
  rewards:
    swap: 120
  share_tick: 10ms
`)
	cfg := Default()
	if err := Parse(doc, &cfg); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Renderer != RendererEbiten {
		t.Errorf("Renderer = %q, want ebiten", cfg.Renderer)
	}
	if cfg.World.Seed != 42 || cfg.World.CellSize != 32 {
		t.Errorf("World = %+v, want seed 42 and default cell size", cfg.World)
	}
	if cfg.Storage.SyncInterval != 250*time.Millisecond {
		t.Errorf("SyncInterval = %v, want 250ms", cfg.Storage.SyncInterval)
	}
	if cfg.Storage.KeyPrefix != "hashhunt" {
		t.Errorf("KeyPrefix = %q, want default", cfg.Storage.KeyPrefix)
	}
	if cfg.Missions.Rewards["swap"] != 120 || cfg.Missions.Rewards["chest"] != 75 {
		t.Errorf("Rewards = %v, want swap overridden and chest kept", cfg.Missions.Rewards)
	}
	if cfg.Missions.ShareTick != 10*time.Millisecond {
		t.Errorf("ShareTick = %v, want 10ms", cfg.Missions.ShareTick)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "renderer: [unterminated"},
		{"unknown renderer", "renderer: sdl"},
		{"unknown policy", "leveling:\n  policy: exponential"},
		{"zero cell size", "world:\n  cell_size: 0"},
		{"negative reward", "missions:\n  rewards:\n    swap: -1"},
		{"unknown key action", "keys:\n  fly: f"},
		{"reserved key", "keys:\n  quit: escape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := Parse([]byte(tt.doc), &cfg); err == nil {
				t.Errorf("Parse(%q) error = nil, want error", tt.doc)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashhunt.yaml")
	want := Default()
	want.World.Seed = 9
	want.Renderer = RendererEbiten

	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.World.Seed != 9 || got.Renderer != RendererEbiten || got.Storage.SyncInterval != time.Second {
		t.Errorf("Load() = %+v, want saved values", got)
	}
}

func TestLoadUnreadable(t *testing.T) {
	// a directory cannot be read as a file
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load(dir) error = nil, want read error")
	}
}

func TestParseKeys(t *testing.T) {
	cfg := Default()
	if err := Parse([]byte("keys:\n  start_mission: f\n  share: t\n"), &cfg); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Keys["start_mission"] != "f" || cfg.Keys["share"] != "t" {
		t.Errorf("Keys = %v, want start_mission: f, share: t", cfg.Keys)
	}
}
