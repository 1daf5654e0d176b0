package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultPoolSize is the pool size used when neither flag nor config sets one
const DefaultPoolSize = 40

// Config represents the application configuration
type Config struct {
	Database    string   `toml:"database"`     // Path of the SQLite card database
	SetsDir     string   `toml:"sets_dir"`     // Directory of custom set definitions
	DecksFile   string   `toml:"decks_file"`   // Deck file generated pools are saved to
	PoolSize    int      `toml:"pool_size"`    // Default number of cards in a pool
	DefaultSets []string `toml:"default_sets"` // Sets to draw from when none are given
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDataPath returns the directory holding the card database and sets
func GetDataPath() string {
	return filepath.Join(GetXDGDataHome(), "cardpool")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "cardpool", "config.toml")
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	dataPath := GetDataPath()
	return &Config{
		Database:  filepath.Join(dataPath, "cards.db"),
		SetsDir:   filepath.Join(dataPath, "sets"),
		DecksFile: filepath.Join(dataPath, "decks.yaml"),
		PoolSize:  DefaultPoolSize,
	}
}

// LoadConfig loads the config file, creating it with defaults if missing.
// Keys absent from the file fall back to their defaults.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %v", err)
	}
	if config.PoolSize < 0 {
		return nil, fmt.Errorf("pool_size must not be negative, got %d", config.PoolSize)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := SaveConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes config to the config file
func SaveConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %v", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}

	return nil
}

// SetDefaultSets stores the sets pools are drawn from by default
func SetDefaultSets(codes []string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}

	config.DefaultSets = codes
	return SaveConfig(config)
}
