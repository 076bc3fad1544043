package config

import (
	"log/slog"
	"strings"
)

// Config is the root configuration for sora.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Search  SearchConfig  `json:"search"`
	Tasks   TasksConfig   `json:"tasks"`
	History HistoryConfig `json:"history"`
	Log     LogConfig     `json:"log"`
}

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// NormalizeBackend lower-cases and trims a backend name.
func NormalizeBackend(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// StorageConfig selects where the task list is persisted.
type StorageConfig struct {
	Backend string `json:"backend"` // "file" (default) or "sqlite"
	Path    string `json:"path"`    // default: $SORA_PATH/data/sora.txt (sora.db for sqlite)
}

// SearchConfig tunes the find command.
type SearchConfig struct {
	Threshold float64 `json:"threshold"` // minimum word similarity, default 0.85
}

// TasksConfig holds task validation settings.
type TasksConfig struct {
	StrictEventOrder bool `json:"strict_event_order"` // reject events ending before they start
}

// HistoryConfig configures the per-session event journal.
type HistoryConfig struct {
	Enabled *bool  `json:"enabled,omitempty"` // default true
	Dir     string `json:"dir"`               // default: $SORA_PATH/history
}

// IsEnabled reports whether the journal is on. Unset means on.
func (h HistoryConfig) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level"` // debug, info, warn, error
}

// SlogLevel maps Level to a slog level. Unknown values mean info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
