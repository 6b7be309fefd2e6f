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

package daemon

// Phase is the daemon lifecycle phase.
type Phase string

const (
	PhaseStopped        Phase = "stopped"
	PhaseStarting       Phase = "starting"
	PhaseRunningHidden  Phase = "running-hidden"
	PhaseRunningVisible Phase = "running-visible"
	PhaseStopping       Phase = "stopping"
)

// State tracks the daemon lifecycle. It is owned by the dispatch
// goroutine and deliberately carries no lock: every mutation happens on
// that single goroutine, which is what makes show/hide races impossible
// rather than merely synchronized.
type State struct {
	phase Phase
}

// NewState returns a state in the stopped phase.
func NewState() *State {
	return &State{phase: PhaseStopped}
}

// Phase returns the current lifecycle phase.
func (s *State) Phase() Phase {
	return s.phase
}

// Running reports whether the daemon is serving requests.
func (s *State) Running() bool {
	return s.phase == PhaseRunningHidden || s.phase == PhaseRunningVisible
}

// Visible reports whether the picker is currently shown.
func (s *State) Visible() bool {
	return s.phase == PhaseRunningVisible
}

// Begin moves from stopped to starting.
func (s *State) Begin() {
	s.phase = PhaseStarting
}

// Ready completes startup; the picker starts hidden.
func (s *State) Ready() {
	s.phase = PhaseRunningHidden
}

// ShowUI marks the picker visible. Returns false when already visible
// or not running, in which case the phase is unchanged.
func (s *State) ShowUI() bool {
	if s.phase != PhaseRunningHidden {
		return false
	}
	s.phase = PhaseRunningVisible
	return true
}

// HideUI marks the picker hidden. Returns false when already hidden or
// not running, in which case the phase is unchanged.
func (s *State) HideUI() bool {
	if s.phase != PhaseRunningVisible {
		return false
	}
	s.phase = PhaseRunningHidden
	return true
}

// BeginStop starts shutdown.
func (s *State) BeginStop() {
	s.phase = PhaseStopping
}

// Halt completes shutdown.
func (s *State) Halt() {
	s.phase = PhaseStopped
}
