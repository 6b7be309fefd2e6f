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

// Package platform abstracts the OS-facing surfaces of the daemon:
// application discovery, process launching, the global hotkey and the
// picker UI. The daemon core talks only to the interfaces defined here;
// per-OS implementations and test mocks live alongside them.
package platform

import "github.com/we-are-mono/launchdock/catalog"

// DiscoveryProvider scans OS-specific locations for installed
// applications. Discover may take seconds; the daemon calls it from a
// background goroutine, never from the request path.
type DiscoveryProvider interface {
	Discover() ([]catalog.Descriptor, error)
}

// Launcher starts an application as a detached process.
type Launcher interface {
	Launch(app catalog.Application) error
}

// HotkeyService delivers the global activation trigger. Start registers
// the trigger callback and returns; the callback may be invoked from any
// goroutine until Stop.
type HotkeyService interface {
	Start(trigger func()) error
	Stop() error
}

// Row is a single result line shown by the picker.
type Row struct {
	ID   string
	Name string
}

// View is the full picker state handed to a renderer.
type View struct {
	Query  string
	Rows   []Row
	Notice string
}

// EventKind discriminates picker events.
type EventKind int

const (
	// EventQuery reports an edited query string.
	EventQuery EventKind = iota
	// EventSelect reports a confirmed selection.
	EventSelect
	// EventDismiss reports the user closing the picker.
	EventDismiss
)

// Event is a single user interaction emitted by the picker.
type Event struct {
	Kind  EventKind
	Query string
	AppID string
}

// Renderer owns the picker window. Show makes it visible with the given
// view and begins emitting events on the channel; Update refreshes the
// rows while visible; Hide tears the window down. Implementations must
// tolerate Hide without a prior Show.
type Renderer interface {
	Show(view View, events chan<- Event) error
	Update(view View) error
	Hide() error
}
