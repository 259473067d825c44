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
	"github.com/jetsetilly/hwperiph/environment"
	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/memory/memorymap"
)

// Peripheral represents a memory mapped register block and the state behind
// it. Offsets are relative to the base address of the peripheral.
type Peripheral interface {
	// String should return information about the state of the peripheral
	String() string

	// the unique label given to the peripheral at creation time. for example,
	// "usart2"
	Label() string

	// the type of peripheral. for example, "usart"
	Type() string

	// the static register layout shared by all peripherals of the same type
	Layout() *layout.Layout

	// the value at offset. accesses outside the region are rejected by the
	// hardware manager before reaching the peripheral
	Read(offset int, size int) uint64

	// update the peripheral. side effects of the write happen before the
	// function returns
	Write(offset int, size int, value uint64)

	// step is called once for every tick of the hardware manager
	Step()

	// the intervals occupied by the peripheral relative to base address zero
	Region() memorymap.Region

	// Plumb a new SystemBus into the Peripheral
	Plumb(SystemBus)

	// reset all registers and internal state
	Reset()
}

// SystemBus is the view of the wider system given to a peripheral. The
// hardware manager implements this interface.
type SystemBus interface {
	// access to the address space. used by bus masters such as DMA
	ReadBus(address uint32, size int) (uint64, error)
	WriteBus(address uint32, size int, value uint64) error

	// raise an interrupt request line. negative numbers are the system
	// exceptions of the Cortex-M core
	Raise(irq int)
}

// Config is used to create a new peripheral.
type Config struct {
	Env   *environment.Environment
	Label string
	Type  string

	// interrupt lines in the order the peripheral type defines them. for
	// example, the DMA controller has one line per stream
	IRQs []int
}

// NewPeripheral defines the function signature for creating a new
// peripheral.
type NewPeripheral func(cfg Config) Peripheral
