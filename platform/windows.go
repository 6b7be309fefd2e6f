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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/we-are-mono/launchdock/catalog"
	"github.com/we-are-mono/launchdock/daemon/logger"
)

// StartMenuDiscovery scans the Windows Start Menu folders for shortcuts
// and executables.
type StartMenuDiscovery struct {
	dirs []string
}

// NewStartMenuDiscovery creates a provider scanning the system and user
// Start Menu program folders.
func NewStartMenuDiscovery() *StartMenuDiscovery {
	var dirs []string
	if pd := os.Getenv("ProgramData"); pd != "" {
		dirs = append(dirs, filepath.Join(pd, "Microsoft", "Windows", "Start Menu", "Programs"))
	}
	if appData := os.Getenv("APPDATA"); appData != "" {
		dirs = append(dirs, filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs"))
	}
	return &StartMenuDiscovery{dirs: dedupeDirs(dirs)}
}

// Discover walks the Start Menu folders recursively collecting .lnk and
// .exe entries. The file name, minus the extension, is the display name.
func (d *StartMenuDiscovery) Discover() ([]catalog.Descriptor, error) {
	var descriptors []catalog.Descriptor
	readAny := false
	var lastErr error

	for _, dir := range d.dirs {
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				if !os.IsNotExist(err) {
					logger.Warn("skipping unreadable start menu path",
						logger.Field{Key: "path", Value: path},
						logger.Field{Key: "error", Value: err})
				}
				return nil
			}
			if entry.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if ext != ".lnk" && ext != ".exe" {
				return nil
			}
			descriptors = append(descriptors, catalog.Descriptor{
				Name:   strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
				Exec:   path,
				Source: path,
			})
			return nil
		})
		if err != nil {
			lastErr = err
			continue
		}
		readAny = true
	}

	if !readAny && lastErr != nil {
		return nil, lastErr
	}
	return descriptors, nil
}
