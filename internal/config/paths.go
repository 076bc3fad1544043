package config

import (
	"os"
	"path/filepath"
)

// SoraPath returns the root directory for sora data.
// It uses $SORA_PATH if set, otherwise defaults to ~/.sora.
func SoraPath() string {
	if v := os.Getenv("SORA_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".sora")
	}
	return filepath.Join(home, ".sora")
}

// ConfigPath returns the path to the sora config file.
func ConfigPath() string {
	return filepath.Join(SoraPath(), "config.jsonc")
}

// DotenvPath returns the path to the sora .env file.
func DotenvPath() string {
	return filepath.Join(SoraPath(), ".env")
}

// DataPath returns the default task file for a storage backend.
func DataPath(backend string) string {
	if backend == BackendSQLite {
		return filepath.Join(SoraPath(), "data", "sora.db")
	}
	return filepath.Join(SoraPath(), "data", "sora.txt")
}

// HistoryDir returns the default event journal directory.
func HistoryDir() string {
	return filepath.Join(SoraPath(), "history")
}
