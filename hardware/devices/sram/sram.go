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

// Package sram implements a 23K256 style serial RAM that can be connected to
// an SPI peripheral.
//
// Chip select is modelled by the Start() and Stop() functions, which the SPI
// peripheral calls when the SPE bit is set and cleared. Every transaction
// begins with an instruction byte. READ and WRITE are followed by a sixteen
// bit address, most significant byte first, and then the data. The address
// increments after every data byte and rolls over the entire memory.
package sram

import (
	"fmt"
)

// Instructions.
const (
	WRSR  = 0x01
	WRITE = 0x02
	READ  = 0x03
	RDSR  = 0x05
)

// DefaultSize is the size of the 23K256.
const DefaultSize = 0x8000

type phase int

const (
	deselected phase = iota
	instruction
	addressHi
	addressLo
	data
	status
)

// SRAM implements the peripherals.Device, peripherals.Receiver,
// peripherals.Starter and peripherals.Stopper interfaces.
type SRAM struct {
	Data []uint8

	// the status register. only the mode bits are meaningful
	Status uint8

	phase   phase
	inst    uint8
	pointer uint16

	// the byte returned by the next call to Recv()
	out uint8
}

// NewSRAM is the preferred method of initialisation for the SRAM type. Size
// must be a power of two.
func NewSRAM(size int) *SRAM {
	return &SRAM{
		Data: make([]uint8, size),
	}
}

func (r *SRAM) String() string {
	return fmt.Sprintf("sram: %d bytes, inst=%#02x, address=%04x", len(r.Data), r.inst, r.pointer)
}

// Address implements the peripherals.Device interface. SPI devices are
// selected by connection so the address is not used.
func (r *SRAM) Address() int {
	return 0
}

// Start implements the peripherals.Starter interface.
func (r *SRAM) Start(_ bool) {
	r.phase = instruction
	r.out = 0xff
}

// Stop implements the peripherals.Stopper interface.
func (r *SRAM) Stop() {
	r.phase = deselected
}

// Send implements the peripherals.Device interface.
func (r *SRAM) Send(v byte) {
	r.out = 0xff

	switch r.phase {
	case instruction:
		r.inst = v
		switch v {
		case READ, WRITE:
			r.phase = addressHi
		case RDSR, WRSR:
			r.phase = status
		default:
			// unknown instructions are ignored until the chip is deselected
			r.phase = deselected
		}
	case addressHi:
		r.pointer = uint16(v) << 8
		r.phase = addressLo
	case addressLo:
		r.pointer = (r.pointer | uint16(v)) & r.mask()
		r.phase = data
	case data:
		if r.inst == WRITE {
			r.Data[r.pointer] = v
		} else {
			r.out = r.Data[r.pointer]
		}
		r.pointer = (r.pointer + 1) & r.mask()
	case status:
		if r.inst == WRSR {
			r.Status = v
		} else {
			r.out = r.Status
		}
	}
}

// Recv implements the peripherals.Receiver interface.
func (r *SRAM) Recv() byte {
	return r.out
}

func (r *SRAM) mask() uint16 {
	return uint16(len(r.Data) - 1)
}
