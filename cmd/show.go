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

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the application picker",
	Long:  `Makes the picker visible, as if the global hotkey had been pressed.`,
	Run:   runShow,
}

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide the application picker",
	Run:   runHide,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(hideCmd)
}

func runShow(cmd *cobra.Command, args []string) {
	if err := executeVisibility(cmd.OutOrStdout(), defaultClient, "show"); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func runHide(cmd *cobra.Command, args []string) {
	if err := executeVisibility(cmd.OutOrStdout(), defaultClient, "hide"); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeVisibility sends a show or hide command to the daemon.
func executeVisibility(w io.Writer, client ClientInterface, command string) error {
	resp, err := client.Send(daemon.Request{Command: command})
	if err != nil {
		return fmt.Errorf("daemon is not running - start it with 'launchdock start'")
	}

	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}

	fmt.Fprintf(w, "[OK] %s\n", resp.Message)
	return nil
}
