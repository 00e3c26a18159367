// Package config loads runtime settings from the environment, with an
// optional .env file layered underneath.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full runtime configuration. Every field has a usable
// default so the game runs with no environment at all.
type Config struct {
	// ContentDir holds the campaign .lua files.
	ContentDir string `env:"EMBERFELL_CONTENT" envDefault:"content"`
	// SaveDir is where the front ends write save snapshots.
	SaveDir string `env:"EMBERFELL_SAVE_DIR"`
	// Seed fixes the session RNG; 0 means derive from the clock.
	Seed int64 `env:"EMBERFELL_SEED"`
	// LootChance is the victory drop rate in percent.
	LootChance int `env:"EMBERFELL_LOOT_CHANCE" envDefault:"40"`
}

// Load reads .env if present, then parses the environment. A missing .env
// is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.SaveDir == "" {
		home, _ := os.UserHomeDir()
		cfg.SaveDir = filepath.Join(home, ".emberfell", "saves")
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.LootChance < 0 || cfg.LootChance > 100 {
		return Config{}, fmt.Errorf("loot chance %d out of range [0,100]", cfg.LootChance)
	}
	return cfg, nil
}
