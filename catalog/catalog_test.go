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

package catalog

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSkipsInvalidDescriptors(t *testing.T) {
	snap := Build([]Descriptor{
		{Name: "Firefox", Exec: "/usr/bin/firefox", Source: "/apps/firefox.desktop"},
		{Name: "", Exec: "/usr/bin/ghost", Source: "/apps/ghost.desktop"},
		{Name: "No Exec", Exec: "   ", Source: "/apps/noexec.desktop"},
	})

	require.Equal(t, 1, snap.Len())
	assert.Equal(t, "Firefox", snap.Apps[0].Name)
}

func TestBuildDeduplicatesKeepingFirst(t *testing.T) {
	snap := Build([]Descriptor{
		{Name: "Firefox", Exec: "/usr/bin/firefox", Source: "/apps/firefox.desktop"},
		{Name: "firefox", Exec: "/opt/firefox/firefox", Source: "/APPS/Firefox.desktop"},
		{Name: "Firefox Snap", Exec: "/snap/bin/firefox", Source: "/snap/firefox.desktop"},
	})

	// Entry two collides on normalized name+path with entry one;
	// entry three has a distinct name and source and survives.
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, "/usr/bin/firefox", snap.Apps[0].Exec)
	assert.Equal(t, "Firefox Snap", snap.Apps[1].Name)
}

func TestBuildSortsByNameCaseInsensitive(t *testing.T) {
	snap := Build([]Descriptor{
		{Name: "zathura", Exec: "/bin/z", Source: "/apps/z"},
		{Name: "Atom", Exec: "/bin/a", Source: "/apps/a"},
		{Name: "blender", Exec: "/bin/b", Source: "/apps/b"},
	})

	require.Equal(t, 3, snap.Len())
	assert.Equal(t, "Atom", snap.Apps[0].Name)
	assert.Equal(t, "blender", snap.Apps[1].Name)
	assert.Equal(t, "zathura", snap.Apps[2].Name)
}

func TestAppIDStable(t *testing.T) {
	a := AppID("/Apps/Firefox.desktop")
	b := AppID("/apps/firefox.desktop")
	c := AppID("/apps/chromium.desktop")

	assert.Equal(t, a, b, "IDs are derived from the normalized path")
	assert.NotEqual(t, a, c)
}

func TestSnapshotFind(t *testing.T) {
	snap := Build([]Descriptor{
		{Name: "Firefox", Exec: "/usr/bin/firefox", Source: "/apps/firefox.desktop"},
	})

	app, ok := snap.Find(snap.Apps[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Firefox", app.Name)

	_, ok = snap.Find("no-such-id")
	assert.False(t, ok)
}

func TestCatalogCurrentNeverNil(t *testing.T) {
	c := New()
	snap := c.Current()
	require.NotNil(t, snap)
	assert.Equal(t, 0, snap.Len())

	c.Publish(nil)
	assert.NotNil(t, c.Current())
}

func TestCatalogPublishSwapsAtomically(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	// Readers must always observe a complete snapshot: every app
	// present in Apps is also reachable through Find.
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := c.Current()
				for _, app := range snap.Apps {
					found, ok := snap.Find(app.ID)
					require.True(t, ok)
					require.Equal(t, app.ID, found.ID)
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		descriptors := make([]Descriptor, i%10)
		for j := range descriptors {
			descriptors[j] = Descriptor{
				Name:   fmt.Sprintf("App %d-%d", i, j),
				Exec:   fmt.Sprintf("/bin/app-%d-%d", i, j),
				Source: fmt.Sprintf("/apps/app-%d-%d", i, j),
			}
		}
		c.Publish(Build(descriptors))
	}

	close(stop)
	wg.Wait()
}
