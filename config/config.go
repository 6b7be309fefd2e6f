// Copyright (C) 2025 Mono Technologies Inc.
//
// This program is free software; you can redistribute it and/or
// modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

// Package config resolves launchdock settings and platform paths.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds the daemon settings. Zero values are filled in from
// platform defaults by Load.
type Config struct {
	SocketPath    string `json:"socket_path"`
	PIDFile       string `json:"pid_file"`
	LogFile       string `json:"log_file"`
	LogLevel      string `json:"log_level"`
	MaxLogSize    int64  `json:"max_log_size"`
	CacheDB       string `json:"cache_db"`
	RescanSeconds int    `json:"rescan_seconds"`
}

// DefaultMaxLogSize is the log size threshold that triggers a WARN entry
// on append.
const DefaultMaxLogSize = 5 * 1024 * 1024

// GetConfigDir returns the configuration directory path.
// Checks LAUNCHDOCK_CONFIG_DIR environment variable first.
func GetConfigDir() string {
	if dir := os.Getenv("LAUNCHDOCK_CONFIG_DIR"); dir != "" {
		return dir
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "launchdock")
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Application Support", "launchdock")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "launchdock")
		}
		return filepath.Join(homeDir(), ".config", "launchdock")
	}
}

// DataDir returns the platform data directory used for the log file and
// the catalog cache.
func DataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "launchdock")
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Logs", "launchdock")
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "launchdock")
		}
		return filepath.Join(homeDir(), ".local", "share", "launchdock")
	}
}

// RuntimeDir returns the directory for the control socket and PID file.
func RuntimeDir() string {
	if runtime.GOOS != "windows" {
		if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
			return dir
		}
	}
	return os.TempDir()
}

// SocketPath returns the control socket path, preferring the
// LAUNCHDOCK_SOCKET_PATH env var.
func SocketPath() string {
	if path := os.Getenv("LAUNCHDOCK_SOCKET_PATH"); path != "" {
		return path
	}
	return filepath.Join(RuntimeDir(), "launchdock.sock")
}

// PIDFilePath returns the PID file path, preferring the
// LAUNCHDOCK_PID_FILE env var.
func PIDFilePath() string {
	if path := os.Getenv("LAUNCHDOCK_PID_FILE"); path != "" {
		return path
	}
	return filepath.Join(RuntimeDir(), "launchdock.pid")
}

// LogFilePath returns the log file path, preferring the
// LAUNCHDOCK_LOG_FILE env var.
func LogFilePath() string {
	if path := os.Getenv("LAUNCHDOCK_LOG_FILE"); path != "" {
		return path
	}
	return filepath.Join(DataDir(), "launchdock.log")
}

// CacheDBPath returns the catalog cache database path, preferring the
// LAUNCHDOCK_CACHE_DB env var.
func CacheDBPath() string {
	if path := os.Getenv("LAUNCHDOCK_CACHE_DB"); path != "" {
		return path
	}
	return filepath.Join(DataDir(), "catalog.db")
}

// Default returns a Config populated with platform defaults and env
// overrides.
func Default() *Config {
	return &Config{
		SocketPath:    SocketPath(),
		PIDFile:       PIDFilePath(),
		LogFile:       LogFilePath(),
		LogLevel:      "info",
		MaxLogSize:    DefaultMaxLogSize,
		CacheDB:       CacheDBPath(),
		RescanSeconds: 300,
	}
}

// Load reads config.json from the config directory if present and merges
// it over the defaults. A missing file is not an error; the env vars
// handled by Default always win over the file.
func Load() (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(GetConfigDir(), "config.json")
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	def := Default()
	if cfg.SocketPath == "" || os.Getenv("LAUNCHDOCK_SOCKET_PATH") != "" {
		cfg.SocketPath = def.SocketPath
	}
	if cfg.PIDFile == "" || os.Getenv("LAUNCHDOCK_PID_FILE") != "" {
		cfg.PIDFile = def.PIDFile
	}
	if cfg.LogFile == "" || os.Getenv("LAUNCHDOCK_LOG_FILE") != "" {
		cfg.LogFile = def.LogFile
	}
	if cfg.CacheDB == "" || os.Getenv("LAUNCHDOCK_CACHE_DB") != "" {
		cfg.CacheDB = def.CacheDB
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.MaxLogSize <= 0 {
		cfg.MaxLogSize = def.MaxLogSize
	}
	if cfg.RescanSeconds <= 0 {
		cfg.RescanSeconds = def.RescanSeconds
	}

	return cfg, nil
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
