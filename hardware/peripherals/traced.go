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

package peripherals

import (
	"fmt"
	"io"
	"strings"
)

// Traced wraps a Peripheral and writes a line to the io.Writer for every read
// and write. For example:
//
//	[USART2] [W] DR         = 0x41 ('A')
//
// The field description is the result of layout.Resolve(). Values written to
// or read from a data register are annotated with the character they
// represent if they are printable.
type Traced struct {
	Peripheral
	w     io.Writer
	label string
}

// NewTraced is the preferred method of initialisation for the Traced type.
func NewTraced(p Peripheral, w io.Writer) *Traced {
	return &Traced{
		Peripheral: p,
		w:          w,
		label:      strings.ToUpper(p.Label()),
	}
}

// Unwrap returns the wrapped Peripheral.
func (t *Traced) Unwrap() Peripheral {
	return t.Peripheral
}

// Read implements the Peripheral interface.
func (t *Traced) Read(offset int, size int) uint64 {
	v := t.Peripheral.Read(offset, size)
	t.trace('R', offset, size, v)
	return v
}

// Write implements the Peripheral interface.
func (t *Traced) Write(offset int, size int, value uint64) {
	t.trace('W', offset, size, value)
	t.Peripheral.Write(offset, size, value)
}

func (t *Traced) trace(dir rune, offset int, size int, value uint64) {
	field := t.Peripheral.Layout().Resolve(offset, size)

	var annotation string
	if strings.HasPrefix(field, "DR") && value >= 0x20 && value < 0x7f {
		annotation = fmt.Sprintf(" (%q)", rune(value))
	}

	fmt.Fprintf(t.w, "[%s] [%c] %-10s = %#x%s\n", t.label, dir, field, value, annotation)
}
