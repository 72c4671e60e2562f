package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed defaults/config.yml
var defaultConfig []byte

// initConfig writes the embedded default config to path unless a file is
// already there. It reports whether the file was created.
func initConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, defaultConfig, 0644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
