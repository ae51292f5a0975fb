// Package config loads the YAML settings file. Every field has a default, so a missing file or
// a partial file is fine.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"hashhunt/pkg/engine/input"
)

// Renderer names
const (
	RendererTUI    = "tui"
	RendererEbiten = "ebiten"
)

// Config is the whole settings file
type Config struct {
	Renderer string         `yaml:"renderer"`
	Language string         `yaml:"language"`
	World    WorldConfig    `yaml:"world"`
	Storage  StorageConfig  `yaml:"storage"`
	Leveling LevelingConfig `yaml:"leveling"`
	Missions MissionsConfig `yaml:"missions"`
	Wallet   WalletConfig   `yaml:"wallet"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Keys rebinds actions, e.g. "start_mission: f". Arrows, Enter and Escape stay bound.
	Keys map[string]string `yaml:"keys,omitempty"`
}

type WorldConfig struct {
	Seed        int64 `yaml:"seed"` // 0 picks a time-based seed
	CellSize    int   `yaml:"cell_size"`
	ViewportMax int   `yaml:"viewport_max"`
}

type StorageConfig struct {
	Path         string        `yaml:"path"` // empty keeps progress in memory only
	KeyPrefix    string        `yaml:"key_prefix"`
	SyncInterval time.Duration `yaml:"sync_interval"`
}

type LevelingConfig struct {
	Policy     string  `yaml:"policy"`
	BucketSize int     `yaml:"bucket_size"`
	Growth     float64 `yaml:"growth"`
}

type MissionsConfig struct {
	Rewards    map[string]int `yaml:"rewards"`
	ShareTicks int            `yaml:"share_ticks"`
	ShareTick  time.Duration  `yaml:"share_tick"`
	Timeout    time.Duration  `yaml:"timeout"`
}

type WalletConfig struct {
	Address string `yaml:"address"`
	ChainID int    `yaml:"chain_id"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Renderer: RendererTUI,
		Language: "en",
		World: WorldConfig{
			CellSize:    32,
			ViewportMax: 25,
		},
		Storage: StorageConfig{
			Path:         "hashhunt.json",
			KeyPrefix:    "hashhunt",
			SyncInterval: time.Second,
		},
		Leveling: LevelingConfig{
			Policy:     "fixed",
			BucketSize: 500,
			Growth:     1.2,
		},
		Missions: MissionsConfig{
			Rewards: map[string]int{
				"swap":         100,
				"advancedSwap": 250,
				"limitOrder":   150,
				"share":        50,
				"boss":         500,
				"chest":        75,
			},
			ShareTicks: 10,
			ShareTick:  time.Second,
			Timeout:    30 * time.Second,
		},
		Wallet: WalletConfig{
			Address: "0x1111111254EEB25477B68fb85Ed929f73A960582",
			ChainID: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "hashhunt.log",
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes YAML into cfg, keeping fields the document does not set, and validates it
func Parse(data []byte, cfg *Config) error {
	defaults := cfg.Missions.Rewards
	cfg.Missions.Rewards = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	// reward tables merge key by key
	merged := make(map[string]int, len(defaults))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range cfg.Missions.Rewards {
		merged[k] = v
	}
	cfg.Missions.Rewards = merged
	return cfg.Validate()
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	switch c.Renderer {
	case RendererTUI, RendererEbiten:
	default:
		return fmt.Errorf("unknown renderer %q", c.Renderer)
	}
	switch c.Leveling.Policy {
	case "fixed", "growing":
	default:
		return fmt.Errorf("unknown leveling policy %q", c.Leveling.Policy)
	}
	if c.World.CellSize <= 0 {
		return fmt.Errorf("world.cell_size must be positive, got %d", c.World.CellSize)
	}
	if c.World.ViewportMax <= 0 {
		return fmt.Errorf("world.viewport_max must be positive, got %d", c.World.ViewportMax)
	}
	for k, v := range c.Missions.Rewards {
		if v < 0 {
			return fmt.Errorf("missions.rewards.%s must not be negative", k)
		}
	}
	if err := input.CheckBindings(c.Keys); err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	return nil
}

// Save writes cfg as YAML, for generating a starting settings file
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
