package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// UserConfigName is the config file the runner looks for in its data dir.
const UserConfigName = "hrsignals.yml"

// EnsureUserConfig makes sure a config file exists in dataDir, seeding it
// from defaultPath on first run, and returns its path.
func EnsureUserConfig(dataDir string, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, UserConfigName)

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}
