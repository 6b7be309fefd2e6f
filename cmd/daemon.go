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
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"
	"github.com/we-are-mono/launchdock/config"
	"github.com/we-are-mono/launchdock/daemon"
	"github.com/we-are-mono/launchdock/daemon/logger"
	"github.com/we-are-mono/launchdock/platform"
)

var daemonCmd = &cobra.Command{
	Use:    "daemon",
	Short:  "Run the launchdock daemon in the foreground",
	Hidden: true,
	Run:    runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) {
	if err := executeDaemon(); err != nil {
		cmd.PrintErrln(fmt.Sprintf("[ERROR] %v", err))
		exitWithError()
	}
}

func executeDaemon() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := checkExistingDaemon(cfg.PIDFile); err != nil {
		return err
	}
	if err := writePIDFile(cfg.PIDFile); err != nil {
		return err
	}
	defer os.Remove(cfg.PIDFile)

	fileBackend, err := logger.NewFileBackend(cfg.LogFile, cfg.MaxLogSize)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer fileBackend.Close()

	logger.Init(
		logger.Config{Level: cfg.LogLevel},
		[]logger.Backend{
			fileBackend,
			logger.NewConsoleBackend(os.Stderr, cfg.LogLevel),
		},
	)

	discovery, err := platform.NewDiscoveryProvider()
	if err != nil {
		return err
	}

	server, err := daemon.NewServer(cfg, daemon.Deps{
		Discovery: discovery,
		Launcher:  platform.NewLauncher(),
		Hotkey:    platform.NewHotkeyService(),
		Renderer:  platform.NewRenderer(),
	})
	if err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal",
			logger.Field{Key: "signal", Value: sig.String()})
		server.Stop()
	}()

	logger.Info("Daemon starting",
		logger.Field{Key: "pid", Value: os.Getpid()})
	return server.Start()
}

// checkExistingDaemon enforces the single-instance rule via the PID
// file. A PID file pointing at a dead process is stale and removed.
func checkExistingDaemon(pidFile string) error {
	data, err := os.ReadFile(pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read PID file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		os.Remove(pidFile)
		return nil
	}

	alive, err := process.PidExists(int32(pid))
	if err == nil && alive {
		return fmt.Errorf("daemon is already running (pid %d)", pid)
	}

	os.Remove(pidFile)
	return nil
}

func writePIDFile(pidFile string) error {
	if err := os.MkdirAll(filepath.Dir(pidFile), 0755); err != nil {
		return fmt.Errorf("failed to create PID file directory: %w", err)
	}
	if err := os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}
