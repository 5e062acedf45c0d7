package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName   = "zedbee"
	stateFile = "state.json"
	tokenFile = "token"
)

// DefaultDir returns the OS-appropriate directory for persisted wizard
// state. This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/zedbee or $HOME/.config/zedbee
//   - macOS: $HOME/.config/zedbee (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\zedbee
func DefaultDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}
