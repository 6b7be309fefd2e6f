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

package logger

import (
	"io"

	"github.com/hashicorp/go-hclog"
)

// ConsoleBackend mirrors log entries to a stream using hclog, for running
// the daemon in the foreground.
type ConsoleBackend struct {
	logger hclog.Logger
}

// NewConsoleBackend creates a console backend writing to w.
func NewConsoleBackend(w io.Writer, level string) *ConsoleBackend {
	return &ConsoleBackend{
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   "launchdock",
			Level:  hclog.LevelFromString(level),
			Output: w,
		}),
	}
}

// Write forwards a log entry to the console logger.
func (b *ConsoleBackend) Write(entry *Entry) error {
	args := make([]interface{}, 0, len(entry.Fields)*2)
	for _, f := range entry.Fields {
		args = append(args, f.Key, f.Value)
	}

	switch entry.Level {
	case "DEBUG":
		b.logger.Debug(entry.Message, args...)
	case "WARN":
		b.logger.Warn(entry.Message, args...)
	case "ERROR":
		b.logger.Error(entry.Message, args...)
	default:
		b.logger.Info(entry.Message, args...)
	}
	return nil
}

// Close is a no-op for console backend
func (b *ConsoleBackend) Close() error {
	return nil
}
