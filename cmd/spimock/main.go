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
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/yarramoo/renode-peripheral-testing/pkg/device"
	"github.com/yarramoo/renode-peripheral-testing/pkg/driver"
	"github.com/yarramoo/renode-peripheral-testing/pkg/monitor"
)

var helpvar bool
var tracevar bool
var shouldexit bool

const usage = "spimock [-trace]"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(
		&tracevar, "trace", false,
		"Logs every transfer and register access to stderr",
	)
	flag.Parse()
}

func spimock() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	if len(flag.Args()) != 0 {
		log.Println(usage)
		return 1
	}

	var dev device.Device
	dev.Reset()

	var mon monitor.Monitor
	mon.Trace = tracevar
	mon.Debug = log.New(os.Stderr, "debug: ", 0)
	mon.Errors = log.New(os.Stderr, "error: ", 0)
	mon.HandleRead = handleRead
	mon.HandleWrite = handleWrite
	dev.Monitor = &mon

	drv := driver.Driver{Bus: &driver.DeviceBus{Device: &dev}}

	monitorREPL(&dev, &mon, &drv)

	return 0
}

func handleRead(addr byte, value byte, mon *monitor.Monitor, dev *device.Device) {
	fmt.Printf(
		"\033[1mwatch:\033[0m register[%#04x] read -> %#04x\n", addr, value,
	)
}

func handleWrite(addr byte, value byte, mon *monitor.Monitor, dev *device.Device) {
	fmt.Printf(
		"\033[1mwatch:\033[0m register[%#04x] write <- %#04x\n", addr, value,
	)
}

func main() {
	os.Exit(spimock())
}
