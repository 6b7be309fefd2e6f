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

package platform

import (
	"sync"

	"github.com/we-are-mono/launchdock/catalog"
)

// MockDiscovery is a DiscoveryProvider for tests with call counting and
// error injection.
type MockDiscovery struct {
	mu sync.Mutex

	Descriptors []catalog.Descriptor
	DiscoverErr error

	DiscoverCalls int
}

func (m *MockDiscovery) Discover() ([]catalog.Descriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DiscoverCalls++
	if m.DiscoverErr != nil {
		return nil, m.DiscoverErr
	}
	return m.Descriptors, nil
}

// MockLauncher is a Launcher for tests. It records every launched
// application and can be made to fail.
type MockLauncher struct {
	mu sync.Mutex

	LaunchErr error

	Launched []catalog.Application
}

func (m *MockLauncher) Launch(app catalog.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LaunchErr != nil {
		return m.LaunchErr
	}
	m.Launched = append(m.Launched, app)
	return nil
}

// LaunchedCount returns the number of successful launches.
func (m *MockLauncher) LaunchedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Launched)
}

// MockHotkey is a HotkeyService for tests. Fire simulates a hotkey
// press by invoking the registered trigger.
type MockHotkey struct {
	mu sync.Mutex

	StartErr error

	trigger    func()
	StartCalls int
	StopCalls  int
}

func (m *MockHotkey) Start(trigger func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartCalls++
	if m.StartErr != nil {
		return m.StartErr
	}
	m.trigger = trigger
	return nil
}

func (m *MockHotkey) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StopCalls++
	m.trigger = nil
	return nil
}

// Fire invokes the registered trigger, if any.
func (m *MockHotkey) Fire() {
	m.mu.Lock()
	trigger := m.trigger
	m.mu.Unlock()
	if trigger != nil {
		trigger()
	}
}

// MockRenderer is a Renderer for tests. It records the views it was
// shown and exposes the event channel handed to Show.
type MockRenderer struct {
	mu sync.Mutex

	ShowErr   error
	UpdateErr error
	HideErr   error

	ShowCalls   int
	UpdateCalls int
	HideCalls   int

	LastView View
	Events   chan<- Event
}

func (m *MockRenderer) Show(view View, events chan<- Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShowCalls++
	if m.ShowErr != nil {
		return m.ShowErr
	}
	m.LastView = view
	m.Events = events
	return nil
}

func (m *MockRenderer) Update(view View) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.LastView = view
	return nil
}

func (m *MockRenderer) Hide() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HideCalls++
	return m.HideErr
}

// View returns the last view passed to Show or Update.
func (m *MockRenderer) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastView
}
