// Package config loads optional engine-tuning overrides from a TOML
// file, falling back to the compiled-in defaults when the file is
// absent or unreadable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LevelSetting is one entry of the level-to-depth schedule: the base
// search depth, the maximum extended depth under the adaptive depth
// boost, the quiescence depth cap, and whether check extensions are
// enabled at that level.
type LevelSetting struct {
	BaseDepth      int  `toml:"base_depth"`
	ExtendedDepth  int  `toml:"extended_depth"`
	QMaxDepth      int  `toml:"q_max_depth"`
	CheckExtension bool `toml:"check_extension"`
}

// Config holds every tunable the engine reads at startup.
type Config struct {
	// Levels is indexed 1..5; index 0 is unused.
	Levels [6]LevelSetting `toml:"-"`

	// QueenValue overrides eval.PieceValue[Queen] (tenths of a pawn).
	QueenValue int `toml:"queen_value"`

	// TTSizeMB sizes the transposition table.
	TTSizeMB int `toml:"tt_size_mb"`

	// AspirationDelta is the initial half-window width, in the
	// evaluator's score units (tenths of a pawn), for iterative
	// deepening iterations at depth >= 4.
	AspirationDelta int `toml:"aspiration_delta"`

	// AspirationMax is the half-window width past which a failed
	// aspiration search falls back to an infinite bound.
	AspirationMax int `toml:"aspiration_max"`
}

// configFile mirrors Config's on-disk TOML shape; Levels is flattened
// into five named tables since TOML has no sparse-array syntax.
type configFile struct {
	Level1          LevelSetting `toml:"level1"`
	Level2          LevelSetting `toml:"level2"`
	Level3          LevelSetting `toml:"level3"`
	Level4          LevelSetting `toml:"level4"`
	Level5          LevelSetting `toml:"level5"`
	QueenValue      int          `toml:"queen_value"`
	TTSizeMB        int          `toml:"tt_size_mb"`
	AspirationDelta int          `toml:"aspiration_delta"`
	AspirationMax   int          `toml:"aspiration_max"`
}

// Default returns the engine's compiled-in tuning, matching the
// level-to-depth schedule and aspiration-window constants.
func Default() Config {
	var c Config
	c.Levels = [6]LevelSetting{
		{}, // unused, level 0
		{BaseDepth: 1, ExtendedDepth: 1, QMaxDepth: 1, CheckExtension: true},
		{BaseDepth: 2, ExtendedDepth: 1, QMaxDepth: 1, CheckExtension: true},
		{BaseDepth: 3, ExtendedDepth: 2, QMaxDepth: 2, CheckExtension: true},
		{BaseDepth: 3, ExtendedDepth: 3, QMaxDepth: 3, CheckExtension: true},
		{BaseDepth: 4, ExtendedDepth: 3, QMaxDepth: 4, CheckExtension: true},
	}
	c.QueenValue = 120
	c.TTSizeMB = 16
	c.AspirationDelta = 25
	c.AspirationMax = 400
	return c
}

func defaultConfigFile() configFile {
	d := Default()
	return configFile{
		Level1:          d.Levels[1],
		Level2:          d.Levels[2],
		Level3:          d.Levels[3],
		Level4:          d.Levels[4],
		Level5:          d.Levels[5],
		QueenValue:      d.QueenValue,
		TTSizeMB:        d.TTSizeMB,
		AspirationDelta: d.AspirationDelta,
		AspirationMax:   d.AspirationMax,
	}
}

func fromConfigFile(cf configFile) Config {
	return Config{
		Levels: [6]LevelSetting{
			{}, cf.Level1, cf.Level2, cf.Level3, cf.Level4, cf.Level5,
		},
		QueenValue:      cf.QueenValue,
		TTSizeMB:        cf.TTSizeMB,
		AspirationDelta: cf.AspirationDelta,
		AspirationMax:   cf.AspirationMax,
	}
}

// ConfigDir returns ~/.chesscore, creating nothing.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".chesscore"), nil
}

func configFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "engine.toml"), nil
}

// Load reads ~/.chesscore/engine.toml. If the file is absent or
// cannot be parsed, Load returns the compiled-in defaults; it never
// returns an error.
func Load() Config {
	path, err := configFilePath()
	if err != nil {
		return Default()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default()
	}

	cf := defaultConfigFile()
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return Default()
	}
	return fromConfigFile(cf)
}

// LoadFile reads an explicit TOML path instead of the default
// location, returning the compiled-in defaults on any error.
func LoadFile(path string) Config {
	cf := defaultConfigFile()
	if _, err := toml.DecodeFile(path, &cf); err != nil {
		return Default()
	}
	return fromConfigFile(cf)
}

// Save writes cfg to ~/.chesscore/engine.toml, creating the directory
// if needed.
func Save(cfg Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := configFilePath()
	if err != nil {
		return fmt.Errorf("failed to get config file path: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	cf := configFile{
		Level1:          cfg.Levels[1],
		Level2:          cfg.Levels[2],
		Level3:          cfg.Levels[3],
		Level4:          cfg.Levels[4],
		Level5:          cfg.Levels[5],
		QueenValue:      cfg.QueenValue,
		TTSizeMB:        cfg.TTSizeMB,
		AspirationDelta: cfg.AspirationDelta,
		AspirationMax:   cfg.AspirationMax,
	}
	if err := toml.NewEncoder(file).Encode(cf); err != nil {
		return fmt.Errorf("failed to encode config to TOML: %w", err)
	}
	return nil
}
