// Package config resolves the sorter configuration from viper and expands paths.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands environment variables and a leading ~ in path.
// Variables are expanded first so a value such as $DATA_HOME may itself start with ~.
func ExpandPath(path string) string {
	path = strings.TrimSpace(os.ExpandEnv(path))
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
