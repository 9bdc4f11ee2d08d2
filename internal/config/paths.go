package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "minishare"

// EnvConfigDir overrides the directory searched for minishare.yaml.
const EnvConfigDir = "MINISHARE_CONFIG_DIR"

// DefaultConfigDir returns the platform-specific configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/minishare (fallback ~/.config/minishare)
// macOS:   ~/Library/Application Support/minishare
// Windows: %APPDATA%/minishare
func DefaultConfigDir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	default:
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
}
