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
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the on-disk timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

// Entry represents a single log entry
type Entry struct {
	Timestamp string  `json:"timestamp"`
	Level     string  `json:"level"` // INFO, WARN, ERROR (DEBUG never hits the file)
	Message   string  `json:"message"`
	Fields    []Field `json:"fields,omitempty"`
}

// NewEntry creates a new log entry with the current timestamp
func NewEntry(level LogLevel, message string, fields ...Field) *Entry {
	return &Entry{
		Timestamp: time.Now().Format(TimestampLayout),
		Level:     level.String(),
		Message:   message,
		Fields:    fields,
	}
}

// ToLine renders the entry as a single log file line:
// [timestamp] LEVEL: message key=value
func (e *Entry) ToLine() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(e.Timestamp)
	b.WriteString("] ")
	b.WriteString(e.Level)
	b.WriteString(": ")
	b.WriteString(e.Message)
	for _, f := range e.Fields {
		b.WriteString(" ")
		b.WriteString(f.Key)
		b.WriteString("=")
		b.WriteString(fieldString(f.Value))
	}
	return b.String()
}

// fieldString converts a field value to its log representation
func fieldString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}
