// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package monitor

import (
	"log"

	"github.com/yarramoo/renode-peripheral-testing/pkg/device"
)

type WatchpointType uint

const (
	ReadWatch WatchpointType = iota
	WriteWatch
	ReadWriteWatch
)

type Watchpoint struct {
	Addr byte
	Type WatchpointType
}

// Monitor is a device.DeviceMonitor that logs device diagnostics and fires
// callbacks on watched register addresses. Normal traffic goes to Debug,
// protocol violations to Errors; either logger may be nil.
type Monitor struct {
	Trace bool

	Watchpoints []Watchpoint

	Debug  *log.Logger
	Errors *log.Logger

	HandleRead  func(addr byte, value byte, mon *Monitor, dev *device.Device)
	HandleWrite func(addr byte, value byte, mon *Monitor, dev *device.Device)
}
