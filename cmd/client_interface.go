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

// Package cmd implements the CLI commands for launchdock using cobra.
package cmd

import (
	"time"

	"github.com/we-are-mono/launchdock/client"
	"github.com/we-are-mono/launchdock/daemon"
)

// ClientInterface defines the interface for communicating with the
// launchdock daemon. This interface allows for easy testing by enabling
// mock implementations.
type ClientInterface interface {
	Send(req daemon.Request) (*daemon.Response, error)
	Ping() bool
	WaitReady(timeout time.Duration) error
}

// realClient wraps the actual client package functions to implement
// ClientInterface.
type realClient struct{}

func (r *realClient) Send(req daemon.Request) (*daemon.Response, error) {
	return client.Send(req)
}

func (r *realClient) Ping() bool {
	return client.Ping()
}

func (r *realClient) WaitReady(timeout time.Duration) error {
	return client.WaitReady(timeout)
}

// defaultClient is the default client used by CLI commands.
// Tests can replace this with a mock implementation.
var defaultClient ClientInterface = &realClient{}
