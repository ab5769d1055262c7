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

// Transfer exchanges one byte with the controller: one call consumes exactly
// one input byte and produces exactly one output byte, per bus clock.
func (dev *Device) Transfer(in byte) byte {
	if dev.state == nil {
		dev.state = idle{}
	}

	out := dev.state.transfer(dev, in)

	if dev.Monitor != nil {
		dev.Monitor.Transfer(in, out, dev)
	}

	return out
}

// EndTransaction models chip-select deassertion: the device returns to idle
// from any state and drops any queued echo bytes. Register contents survive.
// Safe to call at any time, from any state, any number of times.
func (dev *Device) EndTransaction() {
	dev.state = idle{}
}

// Reset models a power-on reset: EndTransaction plus a zeroed register file.
func (dev *Device) Reset() {
	dev.state = idle{}

	for i := range dev.registers {
		dev.registers[i] = 0x00
	}
}

// Registers returns a snapshot of the register file.
func (dev *Device) Registers() [NUM_REGISTERS]byte {
	return dev.registers
}

// Register returns the value at addr, reporting whether addr is in range.
func (dev *Device) Register(addr byte) (byte, bool) {
	if int(addr) >= NUM_REGISTERS {
		return RESP_INVALID, false
	}

	return dev.registers[addr], true
}

func (dev *Device) StateName() string {
	if dev.state == nil {
		return idle{}.name()
	}

	return dev.state.name()
}

type idle struct{}

func (idle) name() string { return "Idle" }

func (idle) transfer(dev *Device, in byte) byte {
	switch in {
	case CMD_ECHO:
		dev.state = &echoPayload{}

	case CMD_WRITE_REG:
		dev.state = writeRegAddr{}

	case CMD_READ_REG:
		dev.state = readRegAddr{}

	default:
		if dev.Monitor != nil {
			dev.Monitor.UnknownCommand(in, dev)
		}

		dev.state = errored{}
	}

	return RESP_IDLE
}

// echoPayload answers each transfer with the byte received one transfer
// earlier. The first response of a transaction is always RESP_IDLE, and the
// final payload byte stays queued until the controller clocks a pad transfer
// to drain it.
type echoPayload struct {
	queue []byte
}

func (*echoPayload) name() string { return "EchoPayload" }

func (st *echoPayload) transfer(dev *Device, in byte) byte {
	out := RESP_IDLE

	if len(st.queue) > 0 {
		out = st.queue[0]
		st.queue = st.queue[1:]
	}

	st.queue = append(st.queue, in)

	return out
}

type writeRegAddr struct{}

func (writeRegAddr) name() string { return "WriteRegAddr" }

func (writeRegAddr) transfer(dev *Device, in byte) byte {
	dev.state = writeRegValue{addr: in}
	return RESP_IDLE
}

type writeRegValue struct {
	addr byte
}

func (writeRegValue) name() string { return "WriteRegValue" }

func (st writeRegValue) transfer(dev *Device, in byte) byte {
	if int(st.addr) < NUM_REGISTERS {
		dev.registers[st.addr] = in

		if dev.Monitor != nil {
			dev.Monitor.RegisterWrite(st.addr, in, dev)
		}
	} else if dev.Monitor != nil {
		dev.Monitor.AddressFault(st.addr, dev)
	}

	dev.state = idle{}

	return RESP_IDLE
}

type readRegAddr struct{}

func (readRegAddr) name() string { return "ReadRegAddr" }

func (readRegAddr) transfer(dev *Device, in byte) byte {
	dev.state = readRegValue{addr: in}
	return RESP_IDLE
}

// readRegValue stays active until the transaction ends, so every further
// transfer re-reads the same address and answers the same value.
type readRegValue struct {
	addr byte
}

func (readRegValue) name() string { return "ReadRegValue" }

func (st readRegValue) transfer(dev *Device, in byte) byte {
	if int(st.addr) >= NUM_REGISTERS {
		if dev.Monitor != nil {
			dev.Monitor.AddressFault(st.addr, dev)
		}

		return RESP_INVALID
	}

	value := dev.registers[st.addr]

	if dev.Monitor != nil {
		dev.Monitor.RegisterRead(st.addr, value, dev)
	}

	return value
}

// errored traps the device until EndTransaction or Reset.
type errored struct{}

func (errored) name() string { return "Error" }

func (errored) transfer(dev *Device, in byte) byte {
	return RESP_INVALID
}
