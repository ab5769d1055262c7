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
	"github.com/yarramoo/renode-peripheral-testing/pkg/device"
)

func (mon *Monitor) Transfer(in byte, out byte, dev *device.Device) {
	if mon.Trace && mon.Debug != nil {
		mon.Debug.Printf(
			"xfer in:%#04x out:%#04x state:%s", in, out, dev.StateName(),
		)
	}
}

func (mon *Monitor) RegisterRead(addr byte, value byte, dev *device.Device) {
	if mon.Trace && mon.Debug != nil {
		mon.Debug.Printf("read register[%#04x] -> %#04x", addr, value)
	}

	for _, watchpoint := range mon.Watchpoints {
		if watchpoint.Type == WriteWatch {
			continue
		}

		if addr == watchpoint.Addr {
			if mon.HandleRead != nil {
				mon.HandleRead(addr, value, mon, dev)
			}
			break
		}
	}
}

func (mon *Monitor) RegisterWrite(addr byte, value byte, dev *device.Device) {
	if mon.Trace && mon.Debug != nil {
		mon.Debug.Printf("write register[%#04x] <- %#04x", addr, value)
	}

	for _, watchpoint := range mon.Watchpoints {
		if watchpoint.Type == ReadWatch {
			continue
		}

		if addr == watchpoint.Addr {
			if mon.HandleWrite != nil {
				mon.HandleWrite(addr, value, mon, dev)
			}
			break
		}
	}
}

func (mon *Monitor) UnknownCommand(opcode byte, dev *device.Device) {
	if mon.Errors != nil {
		mon.Errors.Printf("unknown command opcode %#04x", opcode)
	}
}

func (mon *Monitor) AddressFault(addr byte, dev *device.Device) {
	if mon.Errors != nil {
		mon.Errors.Printf("register address %#04x out of range", addr)
	}
}
