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
	"bytes"
	"sync"
)

// BufferBackend writes log entries to a buffer (for testing)
type BufferBackend struct {
	buffer *bytes.Buffer
	mu     sync.Mutex
}

// NewBufferBackend creates a new buffer backend
func NewBufferBackend(buffer *bytes.Buffer) *BufferBackend {
	return &BufferBackend{buffer: buffer}
}

// Write writes a log entry to the buffer
func (b *BufferBackend) Write(entry *Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.buffer.WriteString(entry.ToLine() + "\n")
	return err
}

// Close is a no-op for buffer backend
func (b *BufferBackend) Close() error {
	return nil
}
