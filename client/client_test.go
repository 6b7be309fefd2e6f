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

package client

import (
	"bufio"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/we-are-mono/launchdock/daemon"
)

// startFakeDaemon serves one connection at a time on a temp socket,
// answering every request with respond's return value.
func startFakeDaemon(t *testing.T, respond func(daemon.Request) daemon.Response) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "launchdock.sock")
	t.Setenv("LAUNCHDOCK_SOCKET_PATH", socketPath)

	listener, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				line, err := bufio.NewReader(conn).ReadBytes('\n')
				if err != nil {
					return
				}
				var req daemon.Request
				if err := json.Unmarshal(line, &req); err != nil {
					return
				}
				data, _ := json.Marshal(respond(req))
				conn.Write(append(data, '\n'))
			}(conn)
		}
	}()
}

func TestSendSuccess(t *testing.T) {
	startFakeDaemon(t, func(req daemon.Request) daemon.Response {
		assert.Equal(t, "status", req.Command)
		return daemon.Response{Success: true, Message: "ok"}
	})

	resp, err := Send(daemon.Request{Command: "status"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Message)
}

func TestSendCarriesLines(t *testing.T) {
	startFakeDaemon(t, func(req daemon.Request) daemon.Response {
		assert.Equal(t, "logs-tail", req.Command)
		assert.Equal(t, 25, req.Lines)
		return daemon.Response{Success: true}
	})

	_, err := Send(daemon.Request{Command: "logs-tail", Lines: 25})
	require.NoError(t, err)
}

func TestSendDaemonNotRunning(t *testing.T) {
	t.Setenv("LAUNCHDOCK_SOCKET_PATH", filepath.Join(t.TempDir(), "absent.sock"))

	_, err := Send(daemon.Request{Command: "status"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}

func TestPing(t *testing.T) {
	t.Setenv("LAUNCHDOCK_SOCKET_PATH", filepath.Join(t.TempDir(), "absent.sock"))
	assert.False(t, Ping())

	startFakeDaemon(t, func(req daemon.Request) daemon.Response {
		return daemon.Response{Success: true}
	})
	assert.True(t, Ping())
}

func TestWaitReadyTimesOut(t *testing.T) {
	t.Setenv("LAUNCHDOCK_SOCKET_PATH", filepath.Join(t.TempDir(), "absent.sock"))

	err := WaitReady(100 * time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not become ready")
}
