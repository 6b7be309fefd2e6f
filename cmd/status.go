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

// Package cmd implements the CLI commands for launchdock using cobra.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/we-are-mono/launchdock/daemon"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	Long:  `Displays whether the daemon is running, picker visibility and the number of discovered applications.`,
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
	if err := executeStatus(cmd.OutOrStdout(), defaultClient); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeStatus executes the status command with the given client. An
// unreachable daemon is reported as not running, not as an error.
func executeStatus(w io.Writer, client ClientInterface) error {
	resp, err := client.Send(daemon.Request{Command: "status"})
	if err != nil {
		fmt.Fprintln(w, "Daemon:       not running")
		fmt.Fprintln(w, "UI:           not visible")
		return nil
	}

	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected status payload")
	}

	visible, _ := data["visible"].(bool)
	state, _ := data["state"].(string)
	apps, _ := data["applications"].(float64)

	fmt.Fprintf(w, "Daemon:       running (%s)\n", state)
	if visible {
		fmt.Fprintln(w, "UI:           visible")
	} else {
		fmt.Fprintln(w, "UI:           not visible")
	}
	fmt.Fprintf(w, "Applications: %d\n", int(apps))
	return nil
}
