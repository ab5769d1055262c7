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

// Package script parses and runs bus transaction scripts. A script is a line
// oriented text format with ';' comments and one directive per line:
//
//	reset               ; power-on reset
//	xfer 0x01 0x00      ; send 0x01, expect response 0x00
//	xfer 0xAA           ; send 0xAA, response unchecked
//	end                 ; end of transaction (chip-select deassert)
package script

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/yarramoo/renode-peripheral-testing/pkg/device"
	"github.com/yarramoo/renode-peripheral-testing/pkg/encoding"
)

func Parse(reader io.Reader) ([]Step, error) {
	var steps []Step

	scanner := bufio.NewScanner(reader)
	line := 0

	for scanner.Scan() {
		line++

		text := scanner.Text()

		if i := strings.Index(text, ";"); i >= 0 {
			text = text[:i]
		}

		fields := strings.Fields(text)

		if len(fields) == 0 {
			continue
		}

		directive := fields[0]
		args := fields[1:]

		switch strings.ToLower(directive) {
		case "xfer":
			if len(args) < 1 || len(args) > 2 {
				return nil, &InvalidNumArgumentsError{line, 1, len(args)}
			}

			send, err := encoding.DecodeHex(args[0])

			if err != nil {
				return nil, &InvalidByteError{line, args[0]}
			}

			step := Step{Type: STEP_TRANSFER, Line: line, Send: send}

			if len(args) == 2 {
				want, err := encoding.DecodeHex(args[1])

				if err != nil {
					return nil, &InvalidByteError{line, args[1]}
				}

				step.Want = want
				step.Check = true
			}

			steps = append(steps, step)

		case "end":
			if len(args) != 0 {
				return nil, &InvalidNumArgumentsError{line, 0, len(args)}
			}

			steps = append(steps, Step{Type: STEP_END, Line: line})

		case "reset":
			if len(args) != 0 {
				return nil, &InvalidNumArgumentsError{line, 0, len(args)}
			}

			steps = append(steps, Step{Type: STEP_RESET, Line: line})

		default:
			return nil, &UnknownDirectiveError{line, directive}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading script")
	}

	return steps, nil
}

// Run executes steps against dev and collects every checked transfer whose
// response differed from the script's expectation.
func Run(steps []Step, dev *device.Device) []Mismatch {
	var mismatches []Mismatch

	for _, step := range steps {
		switch step.Type {
		case STEP_TRANSFER:
			have := dev.Transfer(step.Send)

			if step.Check && have != step.Want {
				mismatches = append(mismatches, Mismatch{step, have})
			}

		case STEP_END:
			dev.EndTransaction()

		case STEP_RESET:
			dev.Reset()
		}
	}

	return mismatches
}

// Checks returns the number of checked transfers in steps.
func Checks(steps []Step) int {
	count := 0

	for _, step := range steps {
		if step.Type == STEP_TRANSFER && step.Check {
			count++
		}
	}

	return count
}
