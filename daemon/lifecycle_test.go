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

package daemon_test

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/we-are-mono/launchdock/catalog"
	"github.com/we-are-mono/launchdock/client"
	"github.com/we-are-mono/launchdock/config"
	"github.com/we-are-mono/launchdock/daemon"
	"github.com/we-are-mono/launchdock/daemon/logger"
	"github.com/we-are-mono/launchdock/platform"
)

// TestServerLifecycle drives a running server end to end over the real
// socket: startup under hotkey pressure, hotkey as implicit show, hide,
// stop, and endpoint cleanup.
func TestServerLifecycle(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		SocketPath:    filepath.Join(dir, "launchdock.sock"),
		PIDFile:       filepath.Join(dir, "launchdock.pid"),
		LogFile:       filepath.Join(dir, "launchdock.log"),
		LogLevel:      "debug",
		MaxLogSize:    config.DefaultMaxLogSize,
		CacheDB:       filepath.Join(dir, "catalog.db"),
		RescanSeconds: 0,
	}
	t.Setenv("LAUNCHDOCK_SOCKET_PATH", cfg.SocketPath)

	var buf bytes.Buffer
	logger.Init(logger.Config{Level: "debug"}, []logger.Backend{logger.NewBufferBackend(&buf)})

	hotkey := &platform.MockHotkey{}
	srv, err := daemon.NewServer(cfg, daemon.Deps{
		Discovery: &platform.MockDiscovery{Descriptors: []catalog.Descriptor{
			{Name: "Firefox", Exec: "/usr/bin/firefox", Source: "/apps/firefox.desktop"},
		}},
		Launcher: &platform.MockLauncher{},
		Hotkey:   hotkey,
		Renderer: &platform.MockRenderer{},
	})
	require.NoError(t, err)

	startErr := make(chan error, 1)
	go func() { startErr <- srv.Start() }()

	// Hammer the hotkey while the daemon is still coming up. Triggers
	// landing mid-startup must serialize through dispatch like any
	// other event instead of touching lifecycle state directly.
	var fires sync.WaitGroup
	fires.Add(1)
	go func() {
		defer fires.Done()
		for i := 0; i < 50; i++ {
			hotkey.Fire()
		}
	}()

	require.NoError(t, client.WaitReady(2*time.Second))
	fires.Wait()

	// Whatever the startup triggers left behind, hide settles the
	// picker; hide while hidden is a no-op.
	resp, err := client.Send(daemon.Request{Command: "hide"})
	require.NoError(t, err)
	require.True(t, resp.Success)

	// A single press is an implicit show.
	hotkey.Fire()
	require.Eventually(t, func() bool {
		resp, err := client.Send(daemon.Request{Command: "status"})
		if err != nil || !resp.Success {
			return false
		}
		data, ok := resp.Data.(map[string]interface{})
		if !ok {
			return false
		}
		visible, _ := data["visible"].(bool)
		return visible
	}, 2*time.Second, 10*time.Millisecond, "hotkey trigger shows the picker")

	resp, err = client.Send(daemon.Request{Command: "hide"})
	require.NoError(t, err)
	require.True(t, resp.Success)

	resp, err = client.Send(daemon.Request{Command: "stop"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, "Daemon stopping", resp.Message)

	select {
	case <-srv.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("daemon did not shut down")
	}
	require.NoError(t, <-startErr)

	_, statErr := os.Stat(cfg.SocketPath)
	assert.True(t, os.IsNotExist(statErr), "control socket is removed on shutdown")
	assert.Equal(t, 1, hotkey.StopCalls)
}
