package env

import (
	"os"
	"path/filepath"
)

// (default: %USERPROFILE%/.zing on Windows, $HOME/.zing on Linux)
var ZingDir string = GetZingDir()

/**
 * Get zing keeper directory path
 * @returns {string} Returns keeper data directory path
 */
func GetZingDir() string {
	if dir := os.Getenv("ZING_DIR"); dir != "" {
		return dir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".zing")
}

/**
 * Get default hub configuration directory path
 * @returns {string} Returns hub config tree path
 * @description
 * - The hub directory holds custom_components/, www/community/ and blueprints/
 * - Overridable via config (hub.dir); this is only the fallback
 */
func GetHubDir() string {
	if dir := os.Getenv("ZING_HUB_DIR"); dir != "" {
		return dir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".zing-hub")
}
