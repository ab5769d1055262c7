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

package device

// DeviceMonitor receives diagnostic callbacks from a Device. Callbacks are
// advisory: they must not be relied upon to alter protocol behavior.
type DeviceMonitor interface {
	Transfer(in byte, out byte, dev *Device)
	RegisterRead(addr byte, value byte, dev *Device)
	RegisterWrite(addr byte, value byte, dev *Device)
	UnknownCommand(opcode byte, dev *Device)
	AddressFault(addr byte, dev *Device)
}

// Each protocol state is a distinct variant carrying only the scratch fields
// meaningful in that state, so a pending address or value cannot survive into
// an unrelated command.
type state interface {
	transfer(dev *Device, in byte) byte
	name() string
}

// Device emulates a register-file peripheral behind a synchronous
// byte-at-a-time bus. The zero value is an idle device with cleared
// registers. A Device models hardware owned by a single controller: calls
// into it must not overlap.
type Device struct {
	Monitor DeviceMonitor

	registers [NUM_REGISTERS]byte
	state     state
}
