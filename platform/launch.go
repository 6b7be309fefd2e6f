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
	"os/exec"
	"strings"

	"github.com/we-are-mono/launchdock/catalog"
)

// execLauncher starts applications as detached processes using the
// platform's native launch mechanism.
type execLauncher struct {
	goos string
}

// Launch spawns the application and returns once the process has
// started. The child is not waited on; it outlives the daemon.
func (l *execLauncher) Launch(app catalog.Application) error {
	if strings.TrimSpace(app.Exec) == "" {
		return fmt.Errorf("application %q has no exec target", app.Name)
	}

	cmd, err := l.command(app)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch %q: %w", app.Name, err)
	}

	// Reap the child in the background so it never lingers as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

func (l *execLauncher) command(app catalog.Application) (*exec.Cmd, error) {
	switch l.goos {
	case "darwin":
		return exec.Command("open", app.Exec), nil
	case "windows":
		return exec.Command("cmd", "/C", "start", "", app.Exec), nil
	default:
		fields := strings.Fields(app.Exec)
		if len(fields) == 0 {
			return nil, fmt.Errorf("application %q has no exec target", app.Name)
		}
		return exec.Command(fields[0], fields[1:]...), nil
	}
}
