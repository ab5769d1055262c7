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

package driver

import (
	"github.com/pkg/errors"

	"github.com/yarramoo/renode-peripheral-testing/pkg/device"
)

// Transport is one chip-select window on the bus: every byte of buf is
// exchanged in place, one bus clock per byte, and the transaction ends when
// the call returns.
type Transport interface {
	Transfer(buf []byte) error
}

// Driver speaks the device's command protocol over a Transport.
type Driver struct {
	Bus Transport
}

// Echo sends buf to the device and overwrites it with the echoed payload.
// The device answers one transfer late, so the wire carries the opcode, the
// payload, and one pad byte that drains the final queued response; callers
// never see the two leading filler responses.
func (drv *Driver) Echo(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	wire := make([]byte, len(buf)+2)
	wire[0] = device.CMD_ECHO
	copy(wire[1:], buf)

	if err := drv.Bus.Transfer(wire); err != nil {
		return errors.Wrap(err, "echo transaction")
	}

	copy(buf, wire[2:])

	return nil
}

// WriteReg stores value into the device register at addr. Out-of-range
// addresses are silently dropped by the device.
func (drv *Driver) WriteReg(addr byte, value byte) error {
	wire := []byte{device.CMD_WRITE_REG, addr, value}
	return errors.Wrap(drv.Bus.Transfer(wire), "write transaction")
}

// ReadReg returns the device register at addr, or the device's sentinel
// value for out-of-range addresses.
func (drv *Driver) ReadReg(addr byte) (byte, error) {
	wire := []byte{device.CMD_READ_REG, addr, 0x00}

	if err := drv.Bus.Transfer(wire); err != nil {
		return 0, errors.Wrap(err, "read transaction")
	}

	return wire[2], nil
}
