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
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS applications (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	exec_target TEXT NOT NULL,
	source_path TEXT NOT NULL,
	position    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SaveCache persists a snapshot to the SQLite cache at path, replacing
// any previous contents. The cache lets a restarted daemon serve results
// before its first discovery scan completes.
func SaveCache(path string, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(cacheSchema); err != nil {
		return fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM applications"); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO applications (id, name, exec_target, source_path, position) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare cache insert: %w", err)
	}
	defer stmt.Close()

	for i, app := range snap.Apps {
		if _, err := stmt.Exec(app.ID, app.Name, app.Exec, app.Source, i); err != nil {
			return fmt.Errorf("failed to write cache entry: %w", err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO meta (key, value) VALUES ('built_at', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		snap.BuiltAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to write cache metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache: %w", err)
	}
	return nil
}

// LoadCache reads a previously saved snapshot from the SQLite cache.
// A missing cache file is not an error; it returns a nil snapshot.
func LoadCache(path string) (*Snapshot, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(cacheSchema); err != nil {
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	snap := &Snapshot{byID: make(map[string]int)}

	var builtAt string
	err = db.QueryRow("SELECT value FROM meta WHERE key = 'built_at'").Scan(&builtAt)
	switch {
	case err == sql.ErrNoRows:
		// Empty cache, treat as absent.
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read cache metadata: %w", err)
	}
	if t, perr := time.Parse(time.RFC3339, builtAt); perr == nil {
		snap.BuiltAt = t
	}

	rows, err := db.Query("SELECT id, name, exec_target, source_path FROM applications ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.Name, &app.Exec, &app.Source); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}
		snap.byID[app.ID] = len(snap.Apps)
		snap.Apps = append(snap.Apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache entries: %w", err)
	}

	return snap, nil
}
