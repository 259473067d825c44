// This file is part of hwperiph.
//
// hwperiph is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hwperiph is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hwperiph.  If not, see <https://www.gnu.org/licenses/>.

//go:build !windows

package easyterm

import (
	"fmt"
	"io"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/pkg/term"
)

// DefaultDevice is the controlling terminal.
const DefaultDevice = "/dev/tty"

// Terminal reads single key presses from a terminal device.
type Terminal struct {
	input  *term.Term
	output io.Writer
}

// Open the terminal device. Output is written to the io.Writer.
func Open(device string, output io.Writer) (*Terminal, error) {
	if output == nil {
		return nil, curated.Errorf("easyterm: Terminal requires an output writer")
	}

	t, err := term.Open(device)
	if err != nil {
		return nil, curated.Errorf("easyterm: %v", err)
	}

	return &Terminal{
		input:  t,
		output: output,
	}, nil
}

// Print formatted output to the terminal.
func (pt *Terminal) Print(s string, a ...any) {
	fmt.Fprintf(pt.output, s, a...)
}

// WaitKey waits for a single key press. The terminal is put into cbreak mode
// for the duration of the wait and restored afterwards.
func (pt *Terminal) WaitKey() (byte, error) {
	if err := pt.input.SetCbreak(); err != nil {
		return 0, curated.Errorf("easyterm: %v", err)
	}
	defer pt.input.Restore()

	b := make([]byte, 1)
	if _, err := pt.input.Read(b); err != nil {
		return 0, curated.Errorf("easyterm: %v", err)
	}

	return b[0], nil
}

// Close restores the terminal to its original state and closes the device.
func (pt *Terminal) Close() error {
	pt.input.Restore()
	if err := pt.input.Close(); err != nil {
		return curated.Errorf("easyterm: %v", err)
	}
	return nil
}
