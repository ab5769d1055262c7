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

package script

import (
	"fmt"
)

type StepType uint

const (
	STEP_TRANSFER StepType = iota
	STEP_END
	STEP_RESET
)

// A Step is one parsed script directive. Transfer steps carry the byte to
// send and, when Check is set, the response the device must answer with.
type Step struct {
	Type  StepType
	Line  int
	Send  byte
	Want  byte
	Check bool
}

// A Mismatch records a transfer whose response differed from the scripted
// expectation.
type Mismatch struct {
	Step Step
	Have byte
}

type ScriptError interface {
	GetLine() int
}

type UnknownDirectiveError struct {
	Line     int
	Received string
}

func (err *UnknownDirectiveError) GetLine() int {
	return err.Line
}

func (err *UnknownDirectiveError) Error() string {
	return fmt.Sprintf(
		"%02d: Unknown directive '%s'",
		err.Line,
		err.Received,
	)
}

type InvalidNumArgumentsError struct {
	Line     int
	Required int
	Received int
}

func (err *InvalidNumArgumentsError) GetLine() int {
	return err.Line
}

func (err *InvalidNumArgumentsError) Error() string {
	return fmt.Sprintf(
		"%02d: Invalid number of arguments\n\twant:%d\n\thave:%d",
		err.Line,
		err.Required,
		err.Received,
	)
}

type InvalidByteError struct {
	Line     int
	Received string
}

func (err *InvalidByteError) GetLine() int {
	return err.Line
}

func (err *InvalidByteError) Error() string {
	return fmt.Sprintf(
		"%02d: Invalid byte literal '%s'",
		err.Line,
		err.Received,
	)
}
