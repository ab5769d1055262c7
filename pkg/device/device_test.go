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

package device_test

import (
	"testing"

	"github.com/yarramoo/renode-peripheral-testing/pkg/device"
)

const (
	opXfer = iota
	opEnd
	opReset
)

type testOp struct {
	Op   uint
	Send byte
	Want byte
}

type testCase struct {
	Name      string
	Ops       []testOp
	Registers map[byte]byte
	State     string
}

func xfer(send byte, want byte) testOp {
	return testOp{Op: opXfer, Send: send, Want: want}
}

func testDeviceSuccess(t *testing.T, test *testCase) {
	var dev device.Device
	dev.Reset()

	for i, op := range test.Ops {
		switch op.Op {
		case opEnd:
			dev.EndTransaction()

		case opReset:
			dev.Reset()

		case opXfer:
			have := dev.Transfer(op.Send)

			if have != op.Want {
				t.Errorf(
					"Transfer response mismatch"+
						"\nwant:%#02x (test.Ops[%d], send %#02x)\nhave:%#02x",
					op.Want,
					i,
					op.Send,
					have,
				)
			}
		}
	}

	if test.State != "" && dev.StateName() != test.State {
		t.Errorf(
			"State mismatch\nwant:%s (test.State)\nhave:%s",
			test.State,
			dev.StateName(),
		)
	}

	registers := dev.Registers()

	for addr, value := range registers {
		want, expected := test.Registers[byte(addr)]

		if expected {
			// Register was supposed to change
			if value != want {
				t.Errorf(
					"Register mismatch"+
						"\nwant:%#02x (test.Registers[%#02x])\nhave:%#02x",
					want,
					addr,
					value,
				)
			}
		} else if value != 0 {
			// Register was expected to remain cleared
			t.Errorf(
				"Register unexpectedly changed"+
					"\nwant:0x00 (register %#02x)\nhave:%#02x",
				addr,
				value,
			)
		}
	}
}

func TestEcho(t *testing.T) {
	tests := []testCase{
		{
			Name: "FirstResponseIsIdle",
			Ops: []testOp{
				xfer(0x01, 0x00),
				xfer(0xAA, 0x00),
			},
			State: "EchoPayload",
		},
		{
			Name: "OneTransferDelay",
			Ops: []testOp{
				xfer(0x01, 0x00),
				xfer(0xAA, 0x00),
				xfer(0xBB, 0xAA),
				{Op: opEnd},
			},
			State: "Idle",
		},
		{
			Name: "DelayLawLongPayload",
			Ops: []testOp{
				xfer(0x01, 0x00),
				xfer(0x11, 0x00),
				xfer(0x22, 0x11),
				xfer(0x33, 0x22),
				xfer(0x00, 0x33),
				{Op: opEnd},
			},
		},
		{
			Name: "QueueDroppedOnEndTransaction",
			Ops: []testOp{
				xfer(0x01, 0x00),
				xfer(0xAA, 0x00),
				xfer(0xBB, 0xAA),
				{Op: opEnd},
				xfer(0x01, 0x00),
				xfer(0xCC, 0x00),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			testDeviceSuccess(t, &test)
		})
	}
}

func TestWriteRead(t *testing.T) {
	tests := []testCase{
		{
			Name: "WriteThenReadBack",
			Ops: []testOp{
				xfer(0x02, 0x00),
				xfer(0x05, 0x00),
				xfer(0x7E, 0x00),
				xfer(0x03, 0x00),
				xfer(0x05, 0x00),
				xfer(0x00, 0x7E),
			},
			Registers: map[byte]byte{0x05: 0x7E},
			State:     "ReadRegValue",
		},
		{
			Name: "ReadUnwrittenRegister",
			Ops: []testOp{
				xfer(0x03, 0x00),
				xfer(0x0F, 0x00),
				xfer(0x00, 0x00),
			},
		},
		{
			Name: "RepeatedReadIsSticky",
			Ops: []testOp{
				xfer(0x02, 0x00),
				xfer(0x05, 0x00),
				xfer(0x7E, 0x00),
				xfer(0x03, 0x00),
				xfer(0x05, 0x00),
				xfer(0x00, 0x7E),
				xfer(0xFF, 0x7E),
				xfer(0x42, 0x7E),
			},
			Registers: map[byte]byte{0x05: 0x7E},
			State:     "ReadRegValue",
		},
		{
			Name: "WriteOutOfRangeIsDropped",
			Ops: []testOp{
				xfer(0x02, 0x00),
				xfer(0x10, 0x00),
				xfer(0x55, 0x00),
			},
			State: "Idle",
		},
		{
			Name: "ReadOutOfRangeReturnsSentinel",
			Ops: []testOp{
				xfer(0x03, 0x00),
				xfer(0x2A, 0x00),
				xfer(0x00, 0xFF),
				xfer(0x00, 0xFF),
			},
			State: "ReadRegValue",
		},
		{
			Name: "WriteCompletesBackToIdle",
			Ops: []testOp{
				xfer(0x02, 0x00),
				xfer(0x00, 0x00),
				xfer(0x99, 0x00),
			},
			Registers: map[byte]byte{0x00: 0x99},
			State:     "Idle",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			testDeviceSuccess(t, &test)
		})
	}
}

func TestWriteReadAllRegisters(t *testing.T) {
	var dev device.Device
	dev.Reset()

	for addr := byte(0); addr < device.NUM_REGISTERS; addr++ {
		value := 0xA0 | addr

		dev.Transfer(device.CMD_WRITE_REG)
		dev.Transfer(addr)
		dev.Transfer(value)

		dev.Transfer(device.CMD_READ_REG)
		dev.Transfer(addr)

		if have := dev.Transfer(0x00); have != value {
			t.Errorf(
				"Read back mismatch"+
					"\nwant:%#02x (register %#02x)\nhave:%#02x",
				value,
				addr,
				have,
			)
		}

		dev.EndTransaction()
	}
}

func TestUnknownOpcode(t *testing.T) {
	tests := []testCase{
		{
			Name: "TrapAnswersSentinel",
			Ops: []testOp{
				xfer(0x7F, 0x00),
				xfer(0x01, 0xFF),
				xfer(0x00, 0xFF),
				xfer(0xFF, 0xFF),
			},
			State: "Error",
		},
		{
			Name: "RecoveredByEndTransaction",
			Ops: []testOp{
				xfer(0x7F, 0x00),
				xfer(0x00, 0xFF),
				{Op: opEnd},
				xfer(0x01, 0x00),
				xfer(0xAA, 0x00),
				xfer(0x00, 0xAA),
			},
			State: "EchoPayload",
		},
		{
			Name: "RecoveredByReset",
			Ops: []testOp{
				xfer(0x00, 0x00),
				xfer(0x00, 0xFF),
				{Op: opReset},
				xfer(0x03, 0x00),
				xfer(0x00, 0x00),
				xfer(0x00, 0x00),
			},
			State: "ReadRegValue",
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			testDeviceSuccess(t, &test)
		})
	}
}

func TestEndTransactionIdempotent(t *testing.T) {
	var dev device.Device
	dev.Reset()

	dev.Transfer(device.CMD_WRITE_REG)
	dev.Transfer(0x04)

	dev.EndTransaction()
	dev.EndTransaction()

	if dev.StateName() != "Idle" {
		t.Errorf(
			"State mismatch\nwant:Idle\nhave:%s",
			dev.StateName(),
		)
	}

	// The aborted write must not have committed
	if value, _ := dev.Register(0x04); value != 0x00 {
		t.Errorf(
			"Register unexpectedly changed\nwant:0x00\nhave:%#02x",
			value,
		)
	}
}

func TestResetClearsRegisters(t *testing.T) {
	var dev device.Device
	dev.Reset()

	dev.Transfer(device.CMD_WRITE_REG)
	dev.Transfer(0x0A)
	dev.Transfer(0xD4)

	dev.Reset()

	if dev.StateName() != "Idle" {
		t.Errorf(
			"State mismatch\nwant:Idle\nhave:%s",
			dev.StateName(),
		)
	}

	for addr, value := range dev.Registers() {
		if value != 0x00 {
			t.Errorf(
				"Register not cleared"+
					"\nwant:0x00 (register %#02x)\nhave:%#02x",
				addr,
				value,
			)
		}
	}
}

func TestEndTransactionKeepsRegisters(t *testing.T) {
	var dev device.Device
	dev.Reset()

	dev.Transfer(device.CMD_WRITE_REG)
	dev.Transfer(0x0A)
	dev.Transfer(0xD4)

	dev.EndTransaction()

	if value, _ := dev.Register(0x0A); value != 0xD4 {
		t.Errorf(
			"Register lost across end of transaction"+
				"\nwant:0xd4\nhave:%#02x",
			value,
		)
	}
}

func TestZeroValueDevice(t *testing.T) {
	var dev device.Device

	if have := dev.Transfer(device.CMD_ECHO); have != 0x00 {
		t.Errorf(
			"Transfer response mismatch\nwant:0x00\nhave:%#02x",
			have,
		)
	}

	if dev.StateName() != "EchoPayload" {
		t.Errorf(
			"State mismatch\nwant:EchoPayload\nhave:%s",
			dev.StateName(),
		)
	}
}

func TestRegisterAccessor(t *testing.T) {
	var dev device.Device
	dev.Reset()

	if _, ok := dev.Register(device.NUM_REGISTERS); ok {
		t.Error("Out of range register read reported as valid")
	}

	if value, ok := dev.Register(0x00); !ok || value != 0x00 {
		t.Errorf(
			"Register accessor mismatch\nwant:0x00, true\nhave:%#02x, %v",
			value,
			ok,
		)
	}
}

type testMonitor struct {
	Transfers       int
	UnknownCommands []byte
	AddressFaults   []byte
	Reads           map[byte]byte
	Writes          map[byte]byte
}

func (mon *testMonitor) Transfer(in byte, out byte, dev *device.Device) {
	mon.Transfers++
}

func (mon *testMonitor) RegisterRead(addr byte, value byte, dev *device.Device) {
	if mon.Reads == nil {
		mon.Reads = make(map[byte]byte)
	}
	mon.Reads[addr] = value
}

func (mon *testMonitor) RegisterWrite(addr byte, value byte, dev *device.Device) {
	if mon.Writes == nil {
		mon.Writes = make(map[byte]byte)
	}
	mon.Writes[addr] = value
}

func (mon *testMonitor) UnknownCommand(opcode byte, dev *device.Device) {
	mon.UnknownCommands = append(mon.UnknownCommands, opcode)
}

func (mon *testMonitor) AddressFault(addr byte, dev *device.Device) {
	mon.AddressFaults = append(mon.AddressFaults, addr)
}

func TestMonitorCallbacks(t *testing.T) {
	var mon testMonitor
	var dev device.Device

	dev.Monitor = &mon
	dev.Reset()

	dev.Transfer(device.CMD_WRITE_REG)
	dev.Transfer(0x05)
	dev.Transfer(0x7E)

	dev.Transfer(device.CMD_READ_REG)
	dev.Transfer(0x05)
	dev.Transfer(0x00)

	dev.Transfer(device.CMD_WRITE_REG)
	dev.Transfer(0x20)
	dev.Transfer(0x01)

	dev.Transfer(0x7F)

	if mon.Transfers != 10 {
		t.Errorf(
			"Transfer callback count mismatch\nwant:10\nhave:%d",
			mon.Transfers,
		)
	}

	if value, exists := mon.Writes[0x05]; !exists || value != 0x7E {
		t.Errorf(
			"Write callback mismatch\nwant:0x7e (mon.Writes[0x05])\nhave:%#02x",
			value,
		)
	}

	if value, exists := mon.Reads[0x05]; !exists || value != 0x7E {
		t.Errorf(
			"Read callback mismatch\nwant:0x7e (mon.Reads[0x05])\nhave:%#02x",
			value,
		)
	}

	if len(mon.AddressFaults) != 1 || mon.AddressFaults[0] != 0x20 {
		t.Errorf(
			"Address fault callback mismatch\nwant:[0x20]\nhave:%#02x",
			mon.AddressFaults,
		)
	}

	if len(mon.UnknownCommands) != 1 || mon.UnknownCommands[0] != 0x7F {
		t.Errorf(
			"Unknown command callback mismatch\nwant:[0x7f]\nhave:%#02x",
			mon.UnknownCommands,
		)
	}
}
