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
	"os"
	"path/filepath"
	"strings"

	"github.com/we-are-mono/launchdock/catalog"
	"github.com/we-are-mono/launchdock/daemon/logger"
)

// BundleDiscovery scans the macOS application folders for .app bundles.
type BundleDiscovery struct {
	dirs []string
}

// NewBundleDiscovery creates a provider scanning the standard macOS
// application folders.
func NewBundleDiscovery() *BundleDiscovery {
	dirs := []string{
		"/Applications",
		"/System/Applications",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Applications"))
	}
	return &BundleDiscovery{dirs: dedupeDirs(dirs)}
}

// Discover lists .app bundles in the configured folders. The bundle
// folder name, minus the extension, is the display name.
func (d *BundleDiscovery) Discover() ([]catalog.Descriptor, error) {
	var descriptors []catalog.Descriptor
	readAny := false
	var lastErr error

	for _, dir := range d.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("skipping unreadable application directory",
					logger.Field{Key: "dir", Value: dir},
					logger.Field{Key: "error", Value: err})
			}
			lastErr = err
			continue
		}
		readAny = true

		for _, entry := range entries {
			if !strings.HasSuffix(entry.Name(), ".app") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			descriptors = append(descriptors, catalog.Descriptor{
				Name:   strings.TrimSuffix(entry.Name(), ".app"),
				Exec:   path,
				Source: path,
			})
		}
	}

	if !readAny && lastErr != nil {
		return nil, lastErr
	}
	return descriptors, nil
}
