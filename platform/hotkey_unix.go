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

//go:build !windows

package platform

import (
	"os"
	"os/signal"
	"syscall"
)

// SignalHotkey treats SIGUSR1 as the global activation trigger. Desktop
// environments bind their native hotkey facility to `kill -USR1` on the
// daemon PID, which keeps the daemon free of display-server specifics.
type SignalHotkey struct {
	ch   chan os.Signal
	done chan struct{}
}

// NewHotkeyService returns the hotkey service for this platform.
func NewHotkeyService() HotkeyService {
	return &SignalHotkey{}
}

// Start begins listening for SIGUSR1 and invokes trigger on each
// delivery until Stop.
func (h *SignalHotkey) Start(trigger func()) error {
	h.ch = make(chan os.Signal, 1)
	h.done = make(chan struct{})
	signal.Notify(h.ch, syscall.SIGUSR1)

	go func() {
		for {
			select {
			case <-h.ch:
				trigger()
			case <-h.done:
				return
			}
		}
	}()
	return nil
}

// Stop unregisters the signal handler.
func (h *SignalHotkey) Stop() error {
	if h.ch == nil {
		return nil
	}
	signal.Stop(h.ch)
	close(h.done)
	h.ch = nil
	return nil
}
