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
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/we-are-mono/launchdock/catalog"
	"github.com/we-are-mono/launchdock/daemon/logger"
)

// DesktopEntryDiscovery scans freedesktop.org .desktop files in the
// standard application directories.
type DesktopEntryDiscovery struct {
	dirs []string
}

// NewDesktopEntryDiscovery creates a provider scanning the standard
// XDG application directories.
func NewDesktopEntryDiscovery() *DesktopEntryDiscovery {
	dirs := []string{
		"/usr/share/applications",
		"/usr/local/share/applications",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "applications"))
	}
	if dataDirs := os.Getenv("XDG_DATA_DIRS"); dataDirs != "" {
		for _, d := range strings.Split(dataDirs, ":") {
			if d != "" {
				dirs = append(dirs, filepath.Join(d, "applications"))
			}
		}
	}
	return &DesktopEntryDiscovery{dirs: dedupeDirs(dirs)}
}

// Discover walks the configured directories and parses every .desktop
// file found. Unreadable directories are logged and skipped; a scan
// only fails when no directory could be read at all.
func (d *DesktopEntryDiscovery) Discover() ([]catalog.Descriptor, error) {
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
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			desc, ok, err := parseDesktopEntry(path)
			if err != nil {
				logger.Warn("skipping malformed desktop entry",
					logger.Field{Key: "path", Value: path},
					logger.Field{Key: "error", Value: err})
				continue
			}
			if ok {
				descriptors = append(descriptors, desc)
			}
		}
	}

	if !readAny && lastErr != nil {
		return nil, lastErr
	}
	return descriptors, nil
}

// parseDesktopEntry extracts Name and Exec from the [Desktop Entry]
// section. Entries marked NoDisplay or Hidden are skipped.
func parseDesktopEntry(path string) (catalog.Descriptor, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Descriptor{}, false, err
	}
	defer f.Close()

	var name, exec string
	hidden := false
	inEntry := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "["):
			inEntry = line == "[Desktop Entry]"
			continue
		case !inEntry:
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Name":
			if name == "" {
				name = strings.TrimSpace(value)
			}
		case "Exec":
			if exec == "" {
				exec = cleanExecLine(strings.TrimSpace(value))
			}
		case "NoDisplay", "Hidden":
			if strings.TrimSpace(value) == "true" {
				hidden = true
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return catalog.Descriptor{}, false, err
	}

	if hidden || name == "" || exec == "" {
		return catalog.Descriptor{}, false, nil
	}
	return catalog.Descriptor{Name: name, Exec: exec, Source: path}, true, nil
}

// cleanExecLine strips freedesktop %-field codes and surrounding quotes
// from an Exec= value.
func cleanExecLine(exec string) string {
	fields := strings.Fields(exec)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.HasPrefix(f, "%") && len(f) == 2 {
			continue
		}
		kept = append(kept, strings.Trim(f, `"`))
	}
	return strings.Join(kept, " ")
}

func dedupeDirs(dirs []string) []string {
	seen := make(map[string]struct{}, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		clean := filepath.Clean(d)
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	return out
}
