// Package settings loads the process-wide application settings.
//
// Values are sourced from, in increasing order of precedence: field defaults,
// a .env file at the project root, and process environment variables.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Settings is the immutable application configuration, constructed once at
// startup and passed explicitly to the components that need it.
type Settings struct {
	AppName   string `json:"app_name"`
	Debug     bool   `json:"debug"`
	LogLevel  string `json:"log_level"`
	HistoryDB string `json:"history_db"`
}

// Environment variable names recognized by Load. No prefix is applied.
const (
	EnvAppName   = "APP_NAME"
	EnvDebug     = "DEBUG"
	EnvLogLevel  = "LOG_LEVEL"
	EnvHistoryDB = "HISTORY_DB"
)

var validLogLevels = map[string]bool{
	"CRITICAL": true,
	"ERROR":    true,
	"WARNING":  true,
	"INFO":     true,
	"DEBUG":    true,
}

// Defaults returns a Settings with every field at its default value.
func Defaults() Settings {
	return Settings{
		AppName:   "vibe",
		Debug:     false,
		LogLevel:  "INFO",
		HistoryDB: filepath.Join(".vibe", "history.db"),
	}
}

// Load resolves settings for the given project root. A missing .env file is
// not an error; a malformed value (bad boolean, unknown log level) is.
func Load(projectRoot string) (*Settings, error) {
	s := Defaults()

	envFile, err := parseEnvFile(filepath.Join(projectRoot, ".env"))
	if err != nil {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := envFile[key]
		return v, ok
	}

	if v, ok := lookup(EnvAppName); ok {
		s.AppName = v
	}
	if v, ok := lookup(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q: %w", EnvDebug, v, err)
		}
		s.Debug = b
	}
	if v, ok := lookup(EnvLogLevel); ok {
		if !validLogLevels[v] {
			return nil, fmt.Errorf("invalid %s value %q (want CRITICAL, ERROR, WARNING, INFO or DEBUG)", EnvLogLevel, v)
		}
		s.LogLevel = v
	}
	if v, ok := lookup(EnvHistoryDB); ok {
		s.HistoryDB = v
	}

	return &s, nil
}

// FindProjectRoot walks up from start looking for a directory containing
// .git. When no repository is found it falls back to start itself.
func FindProjectRoot(start string) string {
	current, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for dir := current; ; {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return current
		}
		dir = parent
	}
}
