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
	"github.com/we-are-mono/launchdock/config"
	"github.com/we-are-mono/launchdock/daemon"
	"github.com/we-are-mono/launchdock/daemon/logger"
)

var logLines int

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect the daemon log",
	Run:   runLogsShow,
}

var logsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the most recent log entries",
	Run:   runLogsShow,
}

var logsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the daemon log",
	Run:   runLogsClear,
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(logsShowCmd)
	logsCmd.AddCommand(logsClearCmd)
	logsCmd.PersistentFlags().IntVarP(&logLines, "lines", "l", 50, "Number of log lines to show")
}

func runLogsShow(cmd *cobra.Command, args []string) {
	if err := executeLogsShow(cmd.OutOrStdout(), cmd.ErrOrStderr(), defaultClient, logLines); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func runLogsClear(cmd *cobra.Command, args []string) {
	if err := executeLogsClear(cmd.OutOrStdout(), defaultClient); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

// executeLogsShow prints the last n log lines. It asks the daemon when
// one is running so the view includes entries still being written;
// otherwise it reads the log file directly. Logs remain accessible
// either way.
func executeLogsShow(w, errW io.Writer, client ClientInterface, n int) error {
	lines, size, err := fetchLogs(client, n)
	if err != nil {
		return err
	}

	if size > config.DefaultMaxLogSize {
		fmt.Fprintf(errW, "[WARN] log file is %.1f MiB, consider running 'launchdock logs clear'\n",
			float64(size)/(1024*1024))
	}

	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return nil
}

func fetchLogs(client ClientInterface, n int) ([]string, int64, error) {
	resp, err := client.Send(daemon.Request{Command: "logs-tail", Lines: n})
	if err == nil && resp.Success {
		data, ok := resp.Data.(map[string]interface{})
		if !ok {
			return nil, 0, fmt.Errorf("unexpected logs payload")
		}
		var lines []string
		if raw, ok := data["lines"].([]interface{}); ok {
			for _, l := range raw {
				if s, ok := l.(string); ok {
					lines = append(lines, s)
				}
			}
		}
		size, _ := data["size"].(float64)
		return lines, int64(size), nil
	}

	// Daemon not running; read the log file directly.
	path := config.LogFilePath()
	lines, err := logger.TailFile(path, n)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read log file: %w", err)
	}
	return lines, logger.FileSize(path), nil
}

// executeLogsClear truncates the daemon log, via the daemon when it is
// running.
func executeLogsClear(w io.Writer, client ClientInterface) error {
	resp, err := client.Send(daemon.Request{Command: "logs-clear"})
	if err == nil {
		if !resp.Success {
			return fmt.Errorf("%s", resp.Error)
		}
		fmt.Fprintf(w, "[OK] %s\n", resp.Message)
		return nil
	}

	if err := logger.ClearFile(config.LogFilePath()); err != nil {
		return fmt.Errorf("failed to clear log file: %w", err)
	}
	fmt.Fprintln(w, "[OK] Logs cleared")
	return nil
}
