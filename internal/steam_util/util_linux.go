package steam_util

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetSteamPath probes the known Steam install locations (native, snap,
// flatpak) and returns the first that exists.
func GetSteamPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	steamPaths := []string{
		filepath.Join(homeDir, ".steam", "steam"),
		filepath.Join(homeDir, ".local", "share", "Steam"),
		filepath.Join(homeDir, "snap", "steam", "common", ".local", "share", "Steam"),
		filepath.Join(homeDir, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
		filepath.Join(os.Getenv("XDG_DATA_HOME"), "Steam"),
	}
	for _, steamPath := range steamPaths {
		if stat, err := os.Stat(steamPath); err == nil && stat.IsDir() {
			return steamPath, nil
		}
	}
	return "", fmt.Errorf("steam directory not found in any known locations")
}
