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

package daemon

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/we-are-mono/launchdock/catalog"
	"github.com/we-are-mono/launchdock/config"
	"github.com/we-are-mono/launchdock/daemon/logger"
	"github.com/we-are-mono/launchdock/platform"
)

type testServer struct {
	srv      *Server
	cfg      *config.Config
	launcher *platform.MockLauncher
	renderer *platform.MockRenderer
	logs     *bytes.Buffer
}

// newTestServer builds a server with mock collaborators, a temp socket
// and a buffer-backed logger. Handlers are exercised directly; the
// dispatch loop and accept loop stay out of the way.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

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

	var buf bytes.Buffer
	logger.Init(logger.Config{Level: "debug"}, []logger.Backend{logger.NewBufferBackend(&buf)})

	launcher := &platform.MockLauncher{}
	renderer := &platform.MockRenderer{}
	srv, err := NewServer(cfg, Deps{
		Discovery: &platform.MockDiscovery{},
		Launcher:  launcher,
		Hotkey:    &platform.MockHotkey{},
		Renderer:  renderer,
	})
	require.NoError(t, err)
	t.Cleanup(func() { srv.listener.Close() })

	srv.state.Begin()
	srv.state.Ready()

	return &testServer{srv: srv, cfg: cfg, launcher: launcher, renderer: renderer, logs: &buf}
}

func testSnapshot(names ...string) *catalog.Snapshot {
	descriptors := make([]catalog.Descriptor, len(names))
	for i, n := range names {
		descriptors[i] = catalog.Descriptor{Name: n, Exec: "/bin/" + n, Source: "/apps/" + n}
	}
	return catalog.Build(descriptors)
}

func TestHandleStatus(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.catalog.Publish(testSnapshot("Firefox", "Terminal"))

	resp := ts.srv.handleStatus()
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["running"])
	assert.Equal(t, false, data["visible"])
	assert.Equal(t, "running-hidden", data["state"])
	assert.Equal(t, 2, data["applications"])
}

func TestHandleShowIdempotent(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.srv.handleShow()
	require.True(t, resp.Success)
	assert.True(t, ts.srv.state.Visible())
	assert.Equal(t, 1, ts.renderer.ShowCalls)

	// A second show changes nothing and logs nothing new.
	resp = ts.srv.handleShow()
	require.True(t, resp.Success)
	assert.Equal(t, 1, ts.renderer.ShowCalls)
	assert.Equal(t, 1, strings.Count(ts.logs.String(), "Picker shown"))
}

func TestHandleShowRenderFailureRollsBack(t *testing.T) {
	ts := newTestServer(t)
	ts.renderer.ShowErr = fmt.Errorf("no display")

	resp := ts.srv.handleShow()
	assert.False(t, resp.Success)
	assert.False(t, ts.srv.state.Visible(), "failed show leaves the daemon hidden")
	assert.Contains(t, ts.logs.String(), "Failed to show picker")
}

func TestHandleHideIdempotent(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.srv.handleHide()
	require.True(t, resp.Success)
	assert.Equal(t, 0, ts.renderer.HideCalls, "hide while hidden touches nothing")

	ts.srv.handleShow()
	resp = ts.srv.handleHide()
	require.True(t, resp.Success)
	assert.Equal(t, 1, ts.renderer.HideCalls)
	assert.False(t, ts.srv.state.Visible())
}

func TestHandleStop(t *testing.T) {
	ts := newTestServer(t)

	resp, shutdown := ts.srv.handleStop()
	require.True(t, resp.Success)
	assert.True(t, shutdown)
	assert.Equal(t, "Daemon stopping", resp.Message)
	assert.Equal(t, PhaseStopping, ts.srv.state.Phase())
}

func TestHandleUnknownCommand(t *testing.T) {
	ts := newTestServer(t)

	resp, shutdown := ts.srv.handleRequest(Request{Command: "frobnicate"})
	assert.False(t, shutdown)
	assert.False(t, resp.Success)
	assert.Equal(t, CodeInvalidRequest, resp.Code)
	assert.Contains(t, resp.Error, "unknown command")
}

func TestQueryEventUpdatesPicker(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.catalog.Publish(testSnapshot("Firefox", "Files", "Terminal"))
	ts.srv.handleShow()

	ts.srv.handleUIEvent(platform.Event{Kind: platform.EventQuery, Query: "fx"})

	assert.Equal(t, 1, ts.renderer.UpdateCalls)
	view := ts.renderer.View()
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Firefox", view.Rows[0].Name)
}

func TestEventsDiscardedWhileHidden(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.catalog.Publish(testSnapshot("Firefox"))

	ts.srv.handleUIEvent(platform.Event{Kind: platform.EventQuery, Query: "f"})
	assert.Equal(t, 0, ts.renderer.UpdateCalls)

	ts.srv.handleUIEvent(platform.Event{Kind: platform.EventSelect, AppID: "anything"})
	assert.Equal(t, 0, ts.launcher.LaunchedCount())
}

func TestSelectLaunchesAndHides(t *testing.T) {
	ts := newTestServer(t)
	snap := testSnapshot("Firefox")
	ts.srv.catalog.Publish(snap)
	ts.srv.handleShow()

	ts.srv.handleUIEvent(platform.Event{Kind: platform.EventSelect, AppID: snap.Apps[0].ID})

	require.Equal(t, 1, ts.launcher.LaunchedCount())
	assert.Equal(t, "Firefox", ts.launcher.Launched[0].Name)
	assert.False(t, ts.srv.state.Visible(), "successful launch hides the picker")
	assert.Equal(t, 1, ts.renderer.HideCalls)
	assert.Contains(t, ts.logs.String(), "Launched application")
}

func TestSelectLaunchFailureStaysVisible(t *testing.T) {
	ts := newTestServer(t)
	snap := testSnapshot("Firefox")
	ts.srv.catalog.Publish(snap)
	ts.srv.handleShow()
	ts.launcher.LaunchErr = fmt.Errorf("exec format error")

	ts.srv.handleUIEvent(platform.Event{Kind: platform.EventSelect, AppID: snap.Apps[0].ID})

	assert.True(t, ts.srv.state.Visible(), "failed launch keeps the picker up")
	assert.Equal(t, 0, ts.renderer.HideCalls)
	assert.Contains(t, ts.logs.String(), "Failed to launch application")
	assert.Contains(t, ts.renderer.View().Notice, "Failed to launch Firefox")
}

func TestSelectUnknownApplication(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.handleShow()

	ts.srv.handleUIEvent(platform.Event{Kind: platform.EventSelect, AppID: "no-such-id"})

	assert.Equal(t, 0, ts.launcher.LaunchedCount())
	assert.True(t, ts.srv.state.Visible())
	assert.Contains(t, ts.logs.String(), "Selected application not in catalog")
}

func TestDismissEventHides(t *testing.T) {
	ts := newTestServer(t)
	ts.srv.handleShow()

	ts.srv.handleUIEvent(platform.Event{Kind: platform.EventDismiss})

	assert.False(t, ts.srv.state.Visible())
	assert.Equal(t, 1, ts.renderer.HideCalls)
}

func TestBuildViewCapsRows(t *testing.T) {
	ts := newTestServer(t)
	names := make([]string, 12)
	for i := range names {
		names[i] = fmt.Sprintf("App %02d", i)
	}
	ts.srv.catalog.Publish(testSnapshot(names...))

	view := ts.srv.buildView("")
	assert.Len(t, view.Rows, displayCount)
	assert.Equal(t, "App 00", view.Rows[0].Name)
}

func TestHandleLogsTail(t *testing.T) {
	ts := newTestServer(t)
	content := "[2026-08-29 10:00:00] INFO: first\n[2026-08-29 10:00:01] INFO: second\n"
	require.NoError(t, os.WriteFile(ts.cfg.LogFile, []byte(content), 0644))

	resp := ts.srv.handleLogsTail(1)
	require.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	lines, ok := data["lines"].([]string)
	require.True(t, ok)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "second")
}

func TestHandleLogsClear(t *testing.T) {
	ts := newTestServer(t)
	require.NoError(t, os.WriteFile(ts.cfg.LogFile, []byte("old line\n"), 0644))

	resp := ts.srv.handleLogsClear()
	require.True(t, resp.Success)

	data, err := os.ReadFile(ts.cfg.LogFile)
	require.NoError(t, err)
	assert.Empty(t, data)
}
