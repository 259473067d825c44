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

// Package driver defines what the hardware manager needs from the CPU
// emulation that drives it.
//
// The CPU emulation executes instructions. Loads and stores that land inside
// a memory mapped region are forwarded through the ReadFunc and WriteFunc
// given to MapMMIO(). After every retired instruction the emulation calls the
// functions given to HookTick().
//
// The membus package is an in-process implementation suitable for testing
// and for driving peripherals from a script.
package driver

// ReadFunc services a load from a memory mapped region. The offset is
// relative to the start of the mapping.
type ReadFunc func(offset uint32, size int) (uint64, error)

// WriteFunc services a store to a memory mapped region.
type WriteFunc func(offset uint32, size int, value uint64) error

// MMIO is implemented by the memory system of the CPU emulation.
type MMIO interface {
	MapMMIO(start uint32, size uint32, read ReadFunc, write WriteFunc) error
}

// Unmapper is optionally implemented by a Driver. It removes the mapping that
// begins at the start address. Without it a failed Attach() or Create() may
// leave partial mappings in the driver.
type Unmapper interface {
	UnmapMMIO(start uint32) error
}

// Ticker is implemented by the instruction loop of the CPU emulation. Hooks
// are called once per retired instruction, in the order they were added. An
// error stops the emulation.
type Ticker interface {
	HookTick(hook func() error)
}

// Driver is the minimum a CPU emulation must implement to drive the
// hardware manager.
type Driver interface {
	MMIO
	Ticker
}

// Memory is optionally implemented by a Driver. It gives bus masters, such as
// DMA controllers, access to memory that is not memory mapped I/O.
type Memory interface {
	ReadMemory(address uint32, size int) (uint64, error)
	WriteMemory(address uint32, size int, value uint64) error
}

// Interrupts is optionally implemented by a Driver. Interrupts raised by
// peripherals are forwarded to the CPU emulation for delivery.
type Interrupts interface {
	Raise(irq int)
}
