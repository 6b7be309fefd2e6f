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

// Package client provides the IPC client used by the CLI to talk to the
// launchdock daemon.
package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/we-are-mono/launchdock/config"
	"github.com/we-are-mono/launchdock/daemon"
)

// requestTimeout bounds a full request-response round trip.
const requestTimeout = 2 * time.Second

// Send sends a request to the daemon and returns its response. A
// connection failure means the daemon is not running.
func Send(req daemon.Request) (*daemon.Response, error) {
	conn, err := net.DialTimeout("unix", config.SocketPath(), requestTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(requestTimeout))

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	data = append(data, '\n')

	if _, err := conn.Write(data); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	line, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp daemon.Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &resp, nil
}

// Ping reports whether a daemon is reachable on the control socket.
func Ping() bool {
	resp, err := Send(daemon.Request{Command: "status"})
	return err == nil && resp.Success
}

// WaitReady polls the daemon until it answers a status request or the
// timeout elapses. Used after spawning the daemon process.
func WaitReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if Ping() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("daemon did not become ready within %s", timeout)
		}
		time.Sleep(50 * time.Millisecond)
	}
}
