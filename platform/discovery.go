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
	"fmt"
	"runtime"
)

// NewDiscoveryProvider returns the discovery provider for the current
// operating system.
func NewDiscoveryProvider() (DiscoveryProvider, error) {
	switch runtime.GOOS {
	case "linux":
		return NewDesktopEntryDiscovery(), nil
	case "darwin":
		return NewBundleDiscovery(), nil
	case "windows":
		return NewStartMenuDiscovery(), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// NewLauncher returns the launcher for the current operating system.
func NewLauncher() Launcher {
	return &execLauncher{goos: runtime.GOOS}
}
