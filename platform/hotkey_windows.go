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

//go:build windows

package platform

// NoopHotkey is a placeholder hotkey service for Windows. Activation is
// still available through the `launchdock show` command.
//
// TODO: register a real global hotkey via RegisterHotKey once the
// Windows message loop is in place.
type NoopHotkey struct{}

// NewHotkeyService returns the hotkey service for this platform.
func NewHotkeyService() HotkeyService {
	return &NoopHotkey{}
}

func (h *NoopHotkey) Start(trigger func()) error { return nil }

func (h *NoopHotkey) Stop() error { return nil }
