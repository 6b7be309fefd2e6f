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

// Package catalog maintains immutable snapshots of discovered
// applications. Snapshots are built atomically from a discovery scan and
// replaced wholesale; readers holding an older snapshot keep using it and
// never observe a partial build.
package catalog

import (
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Descriptor is a raw application descriptor as produced by a discovery
// provider, before deduplication and ID assignment.
type Descriptor struct {
	Name   string
	Exec   string
	Source string
}

// Application is a single launchable entry. Immutable once constructed;
// owned by the snapshot that created it.
type Application struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Exec   string `json:"exec"`
	Source string `json:"source"`
}

// Snapshot is an ordered, immutable sequence of applications.
type Snapshot struct {
	Apps    []Application
	BuiltAt time.Time

	byID map[string]int
}

// Len returns the number of applications in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Apps)
}

// Find returns the application with the given ID.
func (s *Snapshot) Find(id string) (Application, bool) {
	if s == nil {
		return Application{}, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return Application{}, false
	}
	return s.Apps[idx], true
}

// idNamespace scopes the v5 UUIDs derived from application source paths.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("launchdock://applications"))

// AppID derives a stable application identifier from a normalized source
// path. The same path always yields the same ID.
func AppID(source string) string {
	return uuid.NewSHA1(idNamespace, []byte(normalizePath(source))).String()
}

// Build constructs a snapshot from raw descriptors. Descriptors with an
// empty name or exec target are skipped; descriptors whose normalized
// display name and source path collide with an earlier one are dropped,
// keeping the first. The result is sorted by case-insensitive name.
func Build(descriptors []Descriptor) *Snapshot {
	snap := &Snapshot{
		BuiltAt: time.Now(),
		byID:    make(map[string]int),
	}

	seen := make(map[string]struct{}, len(descriptors))
	seenID := make(map[string]struct{}, len(descriptors))

	for _, d := range descriptors {
		name := strings.TrimSpace(d.Name)
		if name == "" || strings.TrimSpace(d.Exec) == "" {
			continue
		}

		key := strings.ToLower(name) + "\x00" + normalizePath(d.Source)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		id := AppID(d.Source)
		if _, dup := seenID[id]; dup {
			// Same source path under two display names; the ID
			// must stay unique within a snapshot.
			continue
		}
		seenID[id] = struct{}{}

		snap.Apps = append(snap.Apps, Application{
			ID:     id,
			Name:   name,
			Exec:   d.Exec,
			Source: d.Source,
		})
	}

	sort.Slice(snap.Apps, func(i, j int) bool {
		a, b := strings.ToLower(snap.Apps[i].Name), strings.ToLower(snap.Apps[j].Name)
		if a != b {
			return a < b
		}
		return snap.Apps[i].ID < snap.Apps[j].ID
	})

	for i, app := range snap.Apps {
		snap.byID[app.ID] = i
	}

	return snap
}

// Catalog holds the current snapshot behind an atomic pointer. Reads
// never block a rebuild and rebuilds never block a read; only the
// publish step is synchronized, by the pointer swap itself.
type Catalog struct {
	current atomic.Pointer[Snapshot]
}

// New creates a catalog holding an empty snapshot.
func New() *Catalog {
	c := &Catalog{}
	c.current.Store(&Snapshot{byID: make(map[string]int)})
	return c
}

// Current returns the last completed snapshot. Never nil, never blocks.
func (c *Catalog) Current() *Snapshot {
	return c.current.Load()
}

// Publish atomically replaces the current snapshot.
func (c *Catalog) Publish(s *Snapshot) {
	if s == nil {
		return
	}
	if s.byID == nil {
		s.byID = make(map[string]int, len(s.Apps))
		for i, app := range s.Apps {
			s.byID[app.ID] = i
		}
	}
	c.current.Store(s)
}

func normalizePath(p string) string {
	return strings.ToLower(filepath.Clean(strings.TrimSpace(p)))
}
