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

// Request is a command sent from a client to the daemon. Requests are
// encoded as a single newline-terminated JSON object per connection.
type Request struct {
	Command string `json:"command"`
	Lines   int    `json:"lines,omitempty"`
}

// Response is the daemon's reply to a request.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Machine-readable error codes carried in Response.Code.
const (
	CodeDaemonNotRunning = "daemon_not_running"
	CodeInvalidRequest   = "invalid_request"
)
