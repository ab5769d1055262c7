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
	"github.com/yarramoo/renode-peripheral-testing/pkg/device"
)

// DeviceBus drives an in-process Device directly, standing in for a real
// SPI bus. Each Transfer call models one chip-select window: the select line
// is deasserted when the call returns.
type DeviceBus struct {
	Device *device.Device
}

func (bus *DeviceBus) Transfer(buf []byte) error {
	for i, b := range buf {
		buf[i] = bus.Device.Transfer(b)
	}

	bus.Device.EndTransaction()

	return nil
}
