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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.NotEmpty(t, cfg.SocketPath)
	assert.NotEmpty(t, cfg.PIDFile)
	assert.NotEmpty(t, cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(DefaultMaxLogSize), cfg.MaxLogSize)
	assert.Equal(t, 300, cfg.RescanSeconds)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LAUNCHDOCK_SOCKET_PATH", "/tmp/custom.sock")
	t.Setenv("LAUNCHDOCK_PID_FILE", "/tmp/custom.pid")
	t.Setenv("LAUNCHDOCK_LOG_FILE", "/tmp/custom.log")
	t.Setenv("LAUNCHDOCK_CACHE_DB", "/tmp/custom.db")

	assert.Equal(t, "/tmp/custom.sock", SocketPath())
	assert.Equal(t, "/tmp/custom.pid", PIDFilePath())
	assert.Equal(t, "/tmp/custom.log", LogFilePath())
	assert.Equal(t, "/tmp/custom.db", CacheDBPath())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LAUNCHDOCK_CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().SocketPath, cfg.SocketPath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LAUNCHDOCK_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.json"),
		[]byte(`{"log_level": "debug", "rescan_seconds": 60}`),
		0644,
	))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 60, cfg.RescanSeconds)
	assert.Equal(t, Default().SocketPath, cfg.SocketPath, "unset fields fall back to defaults")
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LAUNCHDOCK_CONFIG_DIR", dir)
	t.Setenv("LAUNCHDOCK_SOCKET_PATH", "/tmp/env-wins.sock")
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.json"),
		[]byte(`{"socket_path": "/tmp/from-file.sock"}`),
		0644,
	))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env-wins.sock", cfg.SocketPath)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LAUNCHDOCK_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.json"),
		[]byte(`{not json`),
		0644,
	))

	_, err := Load()
	assert.Error(t, err)
}
