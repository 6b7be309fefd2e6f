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

// NullRenderer accepts every call and draws nothing. Used on headless
// systems and wherever no picker frontend has been wired in; the daemon
// still tracks visibility state so clients see consistent status.
type NullRenderer struct{}

// NewRenderer returns the picker renderer for the current environment.
func NewRenderer() Renderer {
	return &NullRenderer{}
}

func (r *NullRenderer) Show(view View, events chan<- Event) error { return nil }

func (r *NullRenderer) Update(view View) error { return nil }

func (r *NullRenderer) Hide() error { return nil }
