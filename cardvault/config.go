package cardvault

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/duelhall/cardvault/cardvault/database"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log      LogConfig         `toml:"log"`
	DB       database.DBConfig `toml:"db"`
	Provider ProviderConfig    `toml:"provider"`
	Sync     SyncConfig        `toml:"sync"`
	Spaces   struct {
		Key       string `toml:"key"`
		Secret    string `toml:"secret"`
		Region    string `toml:"region"`
		Bucket    string `toml:"bucket"`
		ImageRoot string `toml:"image_root"`
	} `toml:"spaces"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type ProviderConfig struct {
	BaseURL string `toml:"base_url"`
}

type SyncConfig struct {
	// IntervalHours of 0 disables the scheduled loop.
	IntervalHours int  `toml:"interval_hours"`
	MirrorImages  bool `toml:"mirror_images"`
}
