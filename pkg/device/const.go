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

const (
	CMD_ECHO      byte = 0x01
	CMD_WRITE_REG byte = 0x02
	CMD_READ_REG  byte = 0x03
)

const (
	NUM_REGISTERS = 16
)

const (
	RESP_IDLE    byte = 0x00
	RESP_INVALID byte = 0xFF
)
