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

// Package daemon implements the launchdock daemon server and IPC
// protocol. All state mutations funnel through a single dispatch
// goroutine: IPC requests, hotkey triggers and picker events are
// queued onto it, so no two mutations ever race.
package daemon

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/we-are-mono/launchdock/catalog"
	"github.com/we-are-mono/launchdock/config"
	"github.com/we-are-mono/launchdock/daemon/logger"
	"github.com/we-are-mono/launchdock/platform"
	"github.com/we-are-mono/launchdock/search"
)

// displayCount caps the number of result rows handed to the picker.
const displayCount = 7

// defaultLogLines is how many log lines a tail request returns when the
// client does not say.
const defaultLogLines = 50

// handlerFunc handles one daemon command. The second return value
// requests daemon shutdown after the response is sent.
type handlerFunc func(Request) (Response, bool)

// Deps are the OS-facing collaborators the server drives. Tests inject
// mocks; production wiring uses the platform package constructors.
type Deps struct {
	Discovery platform.DiscoveryProvider
	Launcher  platform.Launcher
	Hotkey    platform.HotkeyService
	Renderer  platform.Renderer
}

type command struct {
	req  Request
	resp chan Response
}

type Server struct {
	cfg      *config.Config
	deps     Deps
	state    *State
	catalog  *catalog.Catalog
	listener net.Listener
	handlers map[string]handlerFunc

	commands chan command
	uiEvents chan platform.Event
	done     chan struct{}

	connWG     sync.WaitGroup
	dispatchWG sync.WaitGroup
	stopOnce   sync.Once
	rescanning atomic.Bool
}

// NewServer binds the control socket and prepares the server. The
// daemon is not serving until Start.
func NewServer(cfg *config.Config, deps Deps) (*Server, error) {
	// Removing a leftover socket makes restart-after-crash work. The
	// single-instance guarantee lives in the PID file check performed
	// before NewServer is reached, not in the bind itself.
	socketPath := cfg.SocketPath
	os.Remove(socketPath)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket: %w", err)
	}

	if err := os.Chmod(socketPath, 0666); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		deps:     deps,
		state:    NewState(),
		catalog:  catalog.New(),
		listener: listener,
		commands: make(chan command),
		uiEvents: make(chan platform.Event, 16),
		done:     make(chan struct{}),
	}

	s.handlers = map[string]handlerFunc{
		"status":     func(req Request) (Response, bool) { return s.handleStatus(), false },
		"show":       func(req Request) (Response, bool) { return s.handleShow(), false },
		"hide":       func(req Request) (Response, bool) { return s.handleHide(), false },
		"stop":       func(req Request) (Response, bool) { return s.handleStop() },
		"logs-tail":  func(req Request) (Response, bool) { return s.handleLogsTail(req.Lines), false },
		"logs-clear": func(req Request) (Response, bool) { return s.handleLogsClear(), false },
	}

	return s, nil
}

// Start brings the daemon up and serves connections until Stop. It
// loads the cached catalog so results are available immediately, kicks
// off a fresh scan in the background, registers the hotkey and then
// blocks in the accept loop.
func (s *Server) Start() error {
	s.state.Begin()

	if snap, err := catalog.LoadCache(s.cfg.CacheDB); err != nil {
		logger.Warn("Failed to load application cache",
			logger.Field{Key: "error", Value: err.Error()})
	} else if snap != nil && snap.Len() > 0 {
		s.catalog.Publish(snap)
		logger.Info("Loaded applications from cache",
			logger.Field{Key: "count", Value: snap.Len()})
	}

	s.rebuildCatalog()

	// The last lifecycle write on this goroutine. Once dispatch exists,
	// every state mutation goes through it.
	s.state.Ready()

	s.dispatchWG.Add(1)
	go s.dispatch()

	if err := s.deps.Hotkey.Start(s.onHotkey); err != nil {
		logger.Warn("Hotkey registration failed - activation via 'show' command only",
			logger.Field{Key: "error", Value: err.Error()})
	}

	logger.Info("Daemon listening",
		logger.Field{Key: "socket", Value: s.cfg.SocketPath})

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				s.dispatchWG.Wait()
				return nil
			default:
				logger.Error("Failed to accept connection",
					logger.Field{Key: "error", Value: err.Error()})
				continue
			}
		}

		s.connWG.Add(1)
		go s.handleConnection(conn)
	}
}

// Stop requests an orderly shutdown. Safe to call from any goroutine
// and more than once; used by the signal handler.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		select {
		case s.commands <- command{req: Request{Command: "stop"}, resp: make(chan Response, 1)}:
		case <-s.done:
		}
	})
}

// Done is closed when the daemon has fully shut down.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) onHotkey() {
	// The hotkey is an implicit show request. Response discarded.
	select {
	case s.commands <- command{req: Request{Command: "show"}, resp: make(chan Response, 1)}:
	case <-s.done:
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.connWG.Done()
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil {
		return
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendResponse(conn, Response{
			Success: false,
			Error:   fmt.Sprintf("invalid request: %v", err),
			Code:    CodeInvalidRequest,
		})
		return
	}

	cmd := command{req: req, resp: make(chan Response, 1)}
	select {
	case s.commands <- cmd:
	case <-s.done:
		s.sendResponse(conn, Response{
			Success: false,
			Error:   "daemon is shutting down",
			Code:    CodeDaemonNotRunning,
		})
		return
	}

	select {
	case resp := <-cmd.resp:
		s.sendResponse(conn, resp)
	case <-s.done:
		// The dispatch loop exited before answering; the response
		// channel is buffered, so check it once more.
		select {
		case resp := <-cmd.resp:
			s.sendResponse(conn, resp)
		default:
			s.sendResponse(conn, Response{
				Success: false,
				Error:   "daemon is shutting down",
				Code:    CodeDaemonNotRunning,
			})
		}
	}
}

func (s *Server) sendResponse(conn net.Conn, resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Error("Failed to marshal response",
			logger.Field{Key: "error", Value: err.Error()})
		return
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		logger.Warn("Failed to write response",
			logger.Field{Key: "error", Value: err.Error()})
	}
}

// dispatch is the single goroutine through which every state mutation
// flows. It exits after a stop command has been handled.
func (s *Server) dispatch() {
	defer s.dispatchWG.Done()

	for {
		select {
		case cmd := <-s.commands:
			resp, shutdown := s.handleRequest(cmd.req)
			cmd.resp <- resp
			if shutdown {
				s.shutdown()
				return
			}
		case ev := <-s.uiEvents:
			s.handleUIEvent(ev)
		}
	}
}

func (s *Server) handleRequest(req Request) (Response, bool) {
	handler, exists := s.handlers[req.Command]
	if !exists {
		return Response{
			Success: false,
			Error:   fmt.Sprintf("unknown command: %s", req.Command),
			Code:    CodeInvalidRequest,
		}, false
	}
	return handler(req)
}

func (s *Server) handleStatus() Response {
	return Response{
		Success: true,
		Data: map[string]interface{}{
			"running":      s.state.Running(),
			"visible":      s.state.Visible(),
			"state":        string(s.state.Phase()),
			"applications": s.catalog.Current().Len(),
		},
	}
}

func (s *Server) handleShow() Response {
	if !s.state.ShowUI() {
		// Already visible (or still starting); nothing to do and
		// nothing to log.
		return Response{Success: true, Message: "UI already visible"}
	}

	view := s.buildView("")
	if err := s.deps.Renderer.Show(view, s.uiEvents); err != nil {
		s.state.HideUI()
		logger.Error("Failed to show picker",
			logger.Field{Key: "error", Value: err.Error()})
		return Response{
			Success: false,
			Error:   fmt.Sprintf("failed to show picker: %v", err),
		}
	}

	logger.Info("Picker shown")
	s.maybeRescan()
	return Response{Success: true, Message: "UI shown"}
}

func (s *Server) handleHide() Response {
	if !s.state.HideUI() {
		return Response{Success: true, Message: "UI already hidden"}
	}

	if err := s.deps.Renderer.Hide(); err != nil {
		logger.Warn("Failed to hide picker",
			logger.Field{Key: "error", Value: err.Error()})
	}
	logger.Info("Picker hidden")
	return Response{Success: true, Message: "UI hidden"}
}

func (s *Server) handleStop() (Response, bool) {
	s.state.BeginStop()
	logger.Info("Daemon stopping")
	return Response{Success: true, Message: "Daemon stopping"}, true
}

func (s *Server) handleLogsTail(lines int) Response {
	if lines <= 0 {
		lines = defaultLogLines
	}
	tail, err := logger.TailFile(s.cfg.LogFile, lines)
	if err != nil {
		return Response{
			Success: false,
			Error:   fmt.Sprintf("failed to read log file: %v", err),
		}
	}
	return Response{
		Success: true,
		Data: map[string]interface{}{
			"lines": tail,
			"size":  logger.FileSize(s.cfg.LogFile),
		},
	}
}

func (s *Server) handleLogsClear() Response {
	if err := logger.ClearFile(s.cfg.LogFile); err != nil {
		return Response{
			Success: false,
			Error:   fmt.Sprintf("failed to clear log file: %v", err),
		}
	}
	logger.Info("Log file cleared")
	return Response{Success: true, Message: "Logs cleared"}
}

func (s *Server) handleUIEvent(ev platform.Event) {
	if !s.state.Visible() {
		// Stale event from a picker that has since been hidden.
		return
	}

	switch ev.Kind {
	case platform.EventQuery:
		view := s.buildView(ev.Query)
		if err := s.deps.Renderer.Update(view); err != nil {
			logger.Warn("Failed to update picker",
				logger.Field{Key: "error", Value: err.Error()})
		}
	case platform.EventSelect:
		s.launchSelection(ev)
	case platform.EventDismiss:
		s.handleHide()
	}
}

func (s *Server) launchSelection(ev platform.Event) {
	app, ok := s.catalog.Current().Find(ev.AppID)
	if !ok {
		logger.Error("Selected application not in catalog",
			logger.Field{Key: "id", Value: ev.AppID})
		return
	}

	if err := s.deps.Launcher.Launch(app); err != nil {
		logger.Error("Failed to launch application",
			logger.Field{Key: "app", Value: app.Name},
			logger.Field{Key: "error", Value: err.Error()})
		view := s.buildView(ev.Query)
		view.Notice = fmt.Sprintf("Failed to launch %s", app.Name)
		if uerr := s.deps.Renderer.Update(view); uerr != nil {
			logger.Warn("Failed to update picker",
				logger.Field{Key: "error", Value: uerr.Error()})
		}
		return
	}

	logger.Info("Launched application",
		logger.Field{Key: "app", Value: app.Name})
	s.handleHide()
}

// buildView ranks the current catalog against query and truncates to
// the display cap.
func (s *Server) buildView(query string) platform.View {
	matches := search.Rank(query, s.catalog.Current())
	if len(matches) > displayCount {
		matches = matches[:displayCount]
	}
	rows := make([]platform.Row, len(matches))
	for i, m := range matches {
		rows[i] = platform.Row{ID: m.ID, Name: m.Name}
	}
	return platform.View{Query: query, Rows: rows}
}

// maybeRescan refreshes the catalog when the current snapshot has gone
// stale.
func (s *Server) maybeRescan() {
	if s.cfg.RescanSeconds <= 0 {
		return
	}
	age := time.Since(s.catalog.Current().BuiltAt)
	if age > time.Duration(s.cfg.RescanSeconds)*time.Second {
		s.rebuildCatalog()
	}
}

// rebuildCatalog runs a discovery scan in the background and publishes
// the result. At most one scan runs at a time; a failed scan keeps the
// previous snapshot.
func (s *Server) rebuildCatalog() {
	if !s.rescanning.CompareAndSwap(false, true) {
		return
	}

	go func() {
		defer s.rescanning.Store(false)

		descriptors, err := s.deps.Discovery.Discover()
		if err != nil {
			// Scan failures keep the previous snapshot; the daemon
			// stays available.
			logger.Warn("Application scan failed",
				logger.Field{Key: "error", Value: err.Error()})
			return
		}

		snap := catalog.Build(descriptors)
		s.catalog.Publish(snap)
		logger.Info("Found applications",
			logger.Field{Key: "count", Value: snap.Len()})

		if err := catalog.SaveCache(s.cfg.CacheDB, snap); err != nil {
			logger.Warn("Failed to save application cache",
				logger.Field{Key: "error", Value: err.Error()})
		}
	}()
}

// shutdown tears the daemon down. Runs on the dispatch goroutine after
// the stop response has been handed back.
func (s *Server) shutdown() {
	if s.state.Visible() {
		if err := s.deps.Renderer.Hide(); err != nil {
			logger.Warn("Failed to hide picker",
				logger.Field{Key: "error", Value: err.Error()})
		}
	}
	if err := s.deps.Hotkey.Stop(); err != nil {
		logger.Warn("Failed to stop hotkey service",
			logger.Field{Key: "error", Value: err.Error()})
	}

	close(s.done)
	s.listener.Close()
	s.connWG.Wait()
	os.Remove(s.cfg.SocketPath)

	s.state.Halt()
	logger.Info("Daemon stopped")
}
