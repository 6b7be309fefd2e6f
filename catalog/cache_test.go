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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	snap := Build([]Descriptor{
		{Name: "Firefox", Exec: "/usr/bin/firefox", Source: "/apps/firefox.desktop"},
		{Name: "Terminal", Exec: "/usr/bin/term", Source: "/apps/term.desktop"},
	})
	require.NoError(t, SaveCache(path, snap))

	loaded, err := LoadCache(path)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, snap.Len(), loaded.Len())

	for i, app := range snap.Apps {
		assert.Equal(t, app, loaded.Apps[i])
	}
	assert.WithinDuration(t, snap.BuiltAt, loaded.BuiltAt, time.Second)

	app, ok := loaded.Find(snap.Apps[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Firefox", app.Name)
}

func TestCacheReplacesPreviousContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	first := Build([]Descriptor{
		{Name: "Old App", Exec: "/bin/old", Source: "/apps/old"},
	})
	require.NoError(t, SaveCache(path, first))

	second := Build([]Descriptor{
		{Name: "New App", Exec: "/bin/new", Source: "/apps/new"},
	})
	require.NoError(t, SaveCache(path, second))

	loaded, err := LoadCache(path)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, "New App", loaded.Apps[0].Name)
}

func TestLoadCacheMissingFile(t *testing.T) {
	snap, err := LoadCache(filepath.Join(t.TempDir(), "nope.db"))
	require.NoError(t, err)
	assert.Nil(t, snap)
}
