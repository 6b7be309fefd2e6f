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
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the launchdock daemon",
	Long:  `Starts the daemon in the background if it is not already running.`,
	Run:   runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) {
	if err := executeStart(cmd.OutOrStdout(), defaultClient, spawnDaemon); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeStart starts the daemon unless one is already running. Asking
// to start a running daemon is not an error.
func executeStart(w io.Writer, client ClientInterface, spawn func() error) error {
	if client.Ping() {
		fmt.Fprintln(w, "Daemon is already running")
		return nil
	}

	if err := spawn(); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	if err := client.WaitReady(2 * time.Second); err != nil {
		return err
	}

	fmt.Fprintln(w, "[OK] Daemon started")
	return nil
}

// spawnDaemon re-executes this binary with the hidden daemon command,
// detached from the current terminal session.
func spawnDaemon() error {
	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	daemonCmd := exec.Command(self, "daemon")
	daemonCmd.Stdin = nil
	daemonCmd.Stdout = nil
	daemonCmd.Stderr = nil
	daemonCmd.SysProcAttr = detachedProcAttr()

	if err := daemonCmd.Start(); err != nil {
		return err
	}
	// Detach fully; the daemon reparents to init.
	return daemonCmd.Process.Release()
}
