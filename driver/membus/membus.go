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

// Package membus is a minimal implementation of the driver interfaces. It
// models a flat 32 bit address space of sparse RAM with memory mapped
// regions on top.
//
// There is no CPU. Loads, stores and retired instructions are requested
// explicitly with Load(), Store() and Retire().
package membus

import (
	"fmt"
	"sort"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/driver"
)

// error patterns.
const (
	BusFault       = "membus: bus fault at %08x (%d bytes)"
	OverlappingMap = "membus: mapping at %08x overlaps existing mapping at %08x"
	NoMapping      = "membus: no mapping at %08x"
)

type mapping struct {
	start uint32
	end   uint64
	read  driver.ReadFunc
	write driver.WriteFunc
}

func (mp mapping) String() string {
	return fmt.Sprintf("%08x -> %08x", mp.start, mp.end-1)
}

// Bus implements driver.Driver, driver.Memory and driver.Interrupts.
type Bus struct {
	ram      map[uint32]uint8
	mappings []mapping
	hooks    []func() error

	// number of calls to Retire()
	retired int

	// interrupts raised since the last call to Raised()
	raised []int
}

// NewBus is the preferred method of initialisation for the Bus type.
func NewBus() *Bus {
	return &Bus{
		ram: make(map[uint32]uint8),
	}
}

func (b *Bus) String() string {
	return fmt.Sprintf("%d mappings, %d bytes of RAM, %d retired", len(b.mappings), len(b.ram), b.retired)
}

// MapMMIO implements the driver.MMIO interface.
func (b *Bus) MapMMIO(start uint32, size uint32, read driver.ReadFunc, write driver.WriteFunc) error {
	mp := mapping{
		start: start,
		end:   uint64(start) + uint64(size),
		read:  read,
		write: write,
	}

	for _, o := range b.mappings {
		if uint64(mp.start) < o.end && uint64(o.start) < mp.end {
			return curated.Errorf(OverlappingMap, start, o.start)
		}
	}

	b.mappings = append(b.mappings, mp)
	sort.Slice(b.mappings, func(i, j int) bool {
		return b.mappings[i].start < b.mappings[j].start
	})

	return nil
}

// UnmapMMIO implements the driver.Unmapper interface.
func (b *Bus) UnmapMMIO(start uint32) error {
	for i, mp := range b.mappings {
		if mp.start == start {
			b.mappings = append(b.mappings[:i], b.mappings[i+1:]...)
			return nil
		}
	}
	return curated.Errorf(NoMapping, start)
}

// Mapped returns true if the address is inside a memory mapped region.
func (b *Bus) Mapped(address uint32) bool {
	for _, mp := range b.mappings {
		if uint64(address) >= uint64(mp.start) && uint64(address) < mp.end {
			return true
		}
	}
	return false
}

// HookTick implements the driver.Ticker interface.
func (b *Bus) HookTick(hook func() error) {
	b.hooks = append(b.hooks, hook)
}

// find the mapping that services the access. the boolean is false if the
// access is to RAM. an access that is partly in a mapping is an error.
func (b *Bus) find(address uint32, size int) (mapping, bool, error) {
	end := uint64(address) + uint64(size)
	for _, mp := range b.mappings {
		if uint64(address) >= uint64(mp.start) && uint64(address) < mp.end {
			if end > mp.end {
				return mapping{}, false, curated.Errorf(BusFault, address, size)
			}
			return mp, true, nil
		}
		if uint64(mp.start) > uint64(address) && uint64(mp.start) < end {
			return mapping{}, false, curated.Errorf(BusFault, address, size)
		}
	}
	return mapping{}, false, nil
}

// Load value from the address space, as the CPU would.
func (b *Bus) Load(address uint32, size int) (uint64, error) {
	mp, ok, err := b.find(address, size)
	if err != nil {
		return 0, err
	}
	if ok {
		return mp.read(address-mp.start, size)
	}
	return b.ReadMemory(address, size)
}

// Store value to the address space, as the CPU would.
func (b *Bus) Store(address uint32, size int, value uint64) error {
	mp, ok, err := b.find(address, size)
	if err != nil {
		return err
	}
	if ok {
		return mp.write(address-mp.start, size, value)
	}
	return b.WriteMemory(address, size, value)
}

// ReadMemory implements the driver.Memory interface. Memory is little endian
// and unwritten memory reads as zero.
func (b *Bus) ReadMemory(address uint32, size int) (uint64, error) {
	if size < 0 || size > 8 {
		return 0, curated.Errorf(BusFault, address, size)
	}
	var v uint64
	for i := size - 1; i >= 0; i-- {
		v = v<<8 | uint64(b.ram[address+uint32(i)])
	}
	return v, nil
}

// WriteMemory implements the driver.Memory interface.
func (b *Bus) WriteMemory(address uint32, size int, value uint64) error {
	if size < 0 || size > 8 {
		return curated.Errorf(BusFault, address, size)
	}
	for i := 0; i < size; i++ {
		b.ram[address+uint32(i)] = uint8(value)
		value >>= 8
	}
	return nil
}

// Poke data into RAM, bypassing memory mapped regions.
func (b *Bus) Poke(address uint32, data []byte) {
	for i, v := range data {
		b.ram[address+uint32(i)] = v
	}
}

// Peek data from RAM, bypassing memory mapped regions.
func (b *Bus) Peek(address uint32, n int) []byte {
	d := make([]byte, n)
	for i := range d {
		d[i] = b.ram[address+uint32(i)]
	}
	return d
}

// Retire one instruction. Every tick hook is called in the order they were
// added. The first error stops the remaining hooks.
func (b *Bus) Retire() error {
	b.retired++
	for _, h := range b.hooks {
		if err := h(); err != nil {
			return err
		}
	}
	return nil
}

// Retired returns the number of instructions retired so far.
func (b *Bus) Retired() int {
	return b.retired
}

// Raise implements the driver.Interrupts interface.
func (b *Bus) Raise(irq int) {
	b.raised = append(b.raised, irq)
}

// Raised returns and clears the list of interrupts raised.
func (b *Bus) Raised() []int {
	r := b.raised
	b.raised = nil
	return r
}
