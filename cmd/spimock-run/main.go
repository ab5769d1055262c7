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
	"io"
	"log"
	"os"

	"github.com/yarramoo/renode-peripheral-testing/pkg/device"
	"github.com/yarramoo/renode-peripheral-testing/pkg/monitor"
	"github.com/yarramoo/renode-peripheral-testing/pkg/script"
)

var helpvar bool
var tracevar bool

const usage = "spimock-run [-trace] filename ..."

func init() {
	log.SetFlags(0)
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

func runScript(name string, reader io.Reader) (failures int) {
	steps, err := script.Parse(reader)

	if err != nil {
		log.Printf("%s:%v\n", name, err)
		return 1
	}

	var dev device.Device
	dev.Reset()

	var mon monitor.Monitor
	mon.Trace = tracevar
	mon.Debug = log.New(os.Stderr, "debug: ", 0)
	mon.Errors = log.New(os.Stderr, "error: ", 0)
	dev.Monitor = &mon

	mismatches := script.Run(steps, &dev)

	for _, mismatch := range mismatches {
		fmt.Printf(
			"[FAIL] %s:%02d: xfer %#04x\n\twant:%#04x\n\thave:%#04x\n",
			name,
			mismatch.Step.Line,
			mismatch.Step.Send,
			mismatch.Step.Want,
			mismatch.Have,
		)
	}

	if len(mismatches) == 0 {
		fmt.Printf(
			"[PASS] %s: %d transfers, %d checked\n",
			name,
			len(steps),
			script.Checks(steps),
		)
	}

	return len(mismatches)
}

func spimock_run() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	args := flag.Args()

	failures := 0

	if stat, _ := os.Stdin.Stat(); stat.Mode()&os.ModeCharDevice == 0 {
		failures += runScript("<stdin>", os.Stdin)
	} else {
		if len(args) == 0 {
			log.Println(usage)
			return 1
		}

		for _, arg := range args {
			file, err := os.Open(arg)

			if err != nil {
				log.Println(err)
				return 1
			}

			failures += runScript(arg, file)

			file.Close()
		}
	}

	if failures > 0 {
		return 1
	}

	return 0
}

func main() {
	os.Exit(spimock_run())
}
