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

package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/yarramoo/renode-peripheral-testing/pkg/device"
	"github.com/yarramoo/renode-peripheral-testing/pkg/driver"
	"github.com/yarramoo/renode-peripheral-testing/pkg/encoding"
	"github.com/yarramoo/renode-peripheral-testing/pkg/monitor"
)

var lastcmd []string

func replXfer(dev *device.Device, args []string) {
	const usage = "xfer [0x##] ..."

	if len(args) == 0 {
		log.Println(usage)
		return
	}

	for _, arg := range args {
		send, err := encoding.DecodeHex(arg)

		if err != nil {
			log.Println(err)
			return
		}

		out := dev.Transfer(send)

		fmt.Printf(
			">> %s  << %s\n", encoding.EncodeHex(send), encoding.EncodeHex(out),
		)
	}
}

func replRegs(dev *device.Device, args []string) {
	const usage = "registers [0x##]"

	if len(args) > 1 {
		log.Println(usage)
		return
	}

	if len(args) == 1 {
		addr, err := encoding.DecodeHex(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		value, ok := dev.Register(addr)

		if !ok {
			log.Println("Invalid register address")
			return
		}

		fmt.Printf("\033[1mR%#04x:\033[0m %s\n", addr, encoding.EncodeHex(value))
		return
	}

	registers := dev.Registers()

	for addr, value := range registers {
		fmt.Printf("\033[1mR%x:\033[0m %s\t", addr, encoding.EncodeHex(value))
		if addr == (len(registers)-1)/2 {
			fmt.Println()
		}
	}

	fmt.Println()
}

func replWatch(mon *monitor.Monitor, args []string) {
	const usage = "watch [add|list|rm|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "watch add [0x##] [read|write|readwrite]"

		if len(args) != 2 {
			log.Println(usage)
			return
		}

		addr, err := encoding.DecodeHex(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		var wtype monitor.WatchpointType

		switch args[1] {
		case "r", "read":
			wtype = monitor.ReadWatch
		case "w", "write":
			wtype = monitor.WriteWatch
		case "rw", "rwrite", "readwrite":
			wtype = monitor.ReadWriteWatch
		default:
			log.Println(usage)
			return
		}

		exists := false

		for _, watchpoint := range mon.Watchpoints {
			if watchpoint.Addr == addr && watchpoint.Type == wtype {
				exists = true
				break
			}
		}

		if !exists {
			mon.Watchpoints = append(
				mon.Watchpoints,
				monitor.Watchpoint{Addr: addr, Type: wtype},
			)

			fmt.Printf("Watchpoint added [%#04x]\n", addr)
		}

	case "l", "ls", "list":
		for i, watchpoint := range mon.Watchpoints {
			switch watchpoint.Type {
			case monitor.ReadWatch:
				log.Printf("#%d: %#04x %s\n", i, watchpoint.Addr, "read")
			case monitor.WriteWatch:
				log.Printf("#%d: %#04x %s\n", i, watchpoint.Addr, "write")
			case monitor.ReadWriteWatch:
				log.Printf("#%d: %#04x %s\n", i, watchpoint.Addr, "rwrite")
			}
		}

	case "r", "rm", "remove":
		const usage = "watch rm [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := strconv.ParseInt(args[0], 10, 64)

		if err != nil {
			log.Println(err)
			return
		}

		if i < 0 || i >= int64(len(mon.Watchpoints)) {
			log.Println("Invalid watchpoint number")
			return
		}

		mon.Watchpoints[i] = mon.Watchpoints[len(mon.Watchpoints)-1]
		mon.Watchpoints = mon.Watchpoints[:len(mon.Watchpoints)-1]
		fmt.Printf("Watchpoint removed [%d]\n", i)

	case "clear":
		mon.Watchpoints = make([]monitor.Watchpoint, 0)
		fmt.Println("Watchpoints reset")

	default:
		log.Printf("watch: '%s' is not a valid command\n", cmd)
	}
}

func replEcho(drv *driver.Driver, args []string) {
	const usage = "echo [0x##] ..."

	if len(args) == 0 {
		log.Println(usage)
		return
	}

	buf := make([]byte, 0, len(args))

	for _, arg := range args {
		b, err := encoding.DecodeHex(arg)

		if err != nil {
			log.Println(err)
			return
		}

		buf = append(buf, b)
	}

	sent := make([]string, len(buf))
	for i, b := range buf {
		sent[i] = encoding.EncodeHex(b)
	}

	if err := drv.Echo(buf); err != nil {
		log.Println(err)
		return
	}

	got := make([]string, len(buf))
	for i, b := range buf {
		got[i] = encoding.EncodeHex(b)
	}

	fmt.Printf(
		"sent [%s], got back [%s]\n",
		strings.Join(sent, " "),
		strings.Join(got, " "),
	)
}

func replWrite(drv *driver.Driver, args []string) {
	const usage = "write [0x##] [0x##]"

	if len(args) != 2 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[0])

	if err != nil {
		log.Println(err)
		return
	}

	value, err := encoding.DecodeHex(args[1])

	if err != nil {
		log.Println(err)
		return
	}

	if err := drv.WriteReg(addr, value); err != nil {
		log.Println(err)
		return
	}

	fmt.Printf("\033[1mR%#04x:\033[0m %s\n", addr, encoding.EncodeHex(value))
}

func replRead(drv *driver.Driver, args []string) {
	const usage = "read [0x##]"

	if len(args) != 1 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[0])

	if err != nil {
		log.Println(err)
		return
	}

	value, err := drv.ReadReg(addr)

	if err != nil {
		log.Println(err)
		return
	}

	fmt.Printf("\033[1mR%#04x:\033[0m %s\n", addr, encoding.EncodeHex(value))
}

// replLive feeds raw keystrokes to the device one byte per transfer, the
// closest the terminal gets to sitting on the bus.
func replLive(dev *device.Device) {
	fmt.Println("Live mode: every key is one transfer (ESC quits, ^T ends transaction)")

	enterRawTerm()
	defer exitRawTerm()

	buf := make([]byte, 1)

	for {
		n, err := os.Stdin.Read(buf)

		if err != nil || n == 0 {
			return
		}

		switch buf[0] {
		case 0x1B:
			fmt.Print("\r\n")
			return

		case 0x14:
			dev.EndTransaction()
			fmt.Print("end of transaction\r\n")

		default:
			out := dev.Transfer(buf[0])
			fmt.Printf(
				">> %s  << %s\r\n",
				encoding.EncodeHex(buf[0]),
				encoding.EncodeHex(out),
			)
		}
	}
}

func monitorREPL(dev *device.Device, mon *monitor.Monitor, drv *driver.Driver) {
	scanner := bufio.NewScanner(os.Stdin)

	for !shouldexit {
		fmt.Print("\033[1;30m(spi)\033[0m ")

		if !scanner.Scan() {
			fmt.Println()
			return
		}

		args := strings.Split(strings.TrimSpace(scanner.Text()), " ")

		if len(args[0]) == 0 {
			if len(lastcmd) == 0 {
				continue
			}
			args = lastcmd
		} else {
			lastcmd = make([]string, len(args))
			copy(lastcmd, args)
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "x", "xfer":
			replXfer(dev, args)

		case "e", "end":
			dev.EndTransaction()
			fmt.Println("Transaction ended")

		case "reset":
			dev.Reset()
			fmt.Println("Device reset")

		case "r", "reg", "regs", "registers":
			replRegs(dev, args)

		case "s", "st", "state":
			fmt.Println(dev.StateName())

		case "w", "wp", "watch", "watchpoint":
			replWatch(mon, args)

		case "echo":
			replEcho(drv, args)

		case "wr", "write":
			replWrite(drv, args)

		case "rd", "read":
			replRead(drv, args)

		case "live":
			replLive(dev)

		case "clear":
			fmt.Print("\033[H\033[2J")

		case "q", "quit", "exit":
			shouldexit = true

		default:
			fmt.Printf("error: '%s' is not a valid command\n", cmd)
		}
	}
}
