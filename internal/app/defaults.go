package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - SW_CONFIG_PATH: config file location (default: ~/.config/suggestwatch.toml)
//   - SW_HOME: base directory for suggestwatch data (default: ~/.local/share/suggestwatch)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"database":    filepath.Join(baseDir, "suggestwatch.db"),
	}, nil
}

// getConfigPath returns the config file path, checking SW_CONFIG_PATH env var first,
// then falling back to the default ~/.config/suggestwatch.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("SW_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "suggestwatch.toml"), nil
}

// getBaseDir returns the base directory for suggestwatch data, checking SW_HOME
// env var first, then falling back to the XDG default ~/.local/share/suggestwatch.
func getBaseDir() (string, error) {
	if path := os.Getenv("SW_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "suggestwatch"), nil
}
