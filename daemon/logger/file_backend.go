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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// FileBackend appends log entries to a plain text file, one line per
// entry. Every append checks the file size against maxSize; crossing the
// threshold writes an extra WARN entry ahead of the caller's entry. A
// failed write drops the file handle so the next call reopens the target.
type FileBackend struct {
	path    string
	maxSize int64
	file    *os.File
	mu      sync.Mutex
}

// NewFileBackend creates a new file backend. maxSize <= 0 disables the
// size warning.
func NewFileBackend(path string, maxSize int64) (*FileBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &FileBackend{
		path:    path,
		maxSize: maxSize,
		file:    file,
	}, nil
}

// Write appends a log entry, preceded by a WARN size entry when the
// backing file has grown past maxSize.
func (b *FileBackend) Write(entry *Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.file == nil {
		file, err := os.OpenFile(b.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to reopen log file: %w", err)
		}
		b.file = file
	}

	if b.maxSize > 0 {
		if info, err := b.file.Stat(); err == nil && info.Size() > b.maxSize {
			warn := &Entry{
				Timestamp: time.Now().Format(TimestampLayout),
				Level:     LevelWarn.String(),
				Message: fmt.Sprintf("log file is %.1f MiB, consider running 'launchdock logs clear'",
					float64(info.Size())/(1024*1024)),
			}
			if _, err := b.file.WriteString(warn.ToLine() + "\n"); err != nil {
				b.drop()
				return fmt.Errorf("failed to write to log file: %w", err)
			}
		}
	}

	if _, err := b.file.WriteString(entry.ToLine() + "\n"); err != nil {
		b.drop()
		return fmt.Errorf("failed to write to log file: %w", err)
	}

	return nil
}

// Close closes the log file
func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.file != nil {
		err := b.file.Close()
		b.file = nil
		return err
	}
	return nil
}

// drop discards the file handle so the next Write reopens the target.
func (b *FileBackend) drop() {
	if b.file != nil {
		b.file.Close()
		b.file = nil
	}
}

// Tail returns the last n lines of the backing file in original order.
func (b *FileBackend) Tail(n int) ([]string, error) {
	return TailFile(b.path, n)
}

// Clear truncates the backing file. The append handle stays valid: it
// writes at the end regardless of offset.
func (b *FileBackend) Clear() error {
	return ClearFile(b.path)
}

// TailFile returns the last n lines of a log file in original order.
// A missing file yields no lines and no error.
func TailFile(path string, n int) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// ClearFile truncates a log file to empty. Clearing a missing file is a
// no-op.
func ClearFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := os.Truncate(path, 0); err != nil {
		return fmt.Errorf("failed to clear log file: %w", err)
	}
	return nil
}

// FileSize returns the current size of a log file in bytes, or 0 if it
// does not exist.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
