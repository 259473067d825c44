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

// Package regblock implements the byte storage for a register layout.
package regblock

import (
	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
)

// Block is the mutable storage for one instance of a peripheral. Values are
// stored little endian, as they are on the Cortex-M devices being emulated.
type Block struct {
	layout *layout.Layout
	data   []byte
}

// New creates storage sized to the footprint of the layout. Fields are set
// to their reset values.
func New(l *layout.Layout) *Block {
	b := &Block{
		layout: l,
		data:   make([]byte, l.Footprint()),
	}
	b.Reset()
	return b
}

// Layout returns the layout the block was created with.
func (b *Block) Layout() *layout.Layout {
	return b.layout
}

// Reset all fields to their reset value. Bytes not covered by any field are
// zeroed. Where fields overlap, later fields in the layout take priority.
func (b *Block) Reset() {
	clear(b.data)
	for _, f := range b.layout.Fields() {
		b.put(f.Offset, f.Size, f.Reset)
	}
}

// Read size bytes from offset. Bytes outside the block read as zero. Size is
// clamped to eight bytes.
func (b *Block) Read(offset int, size int) uint64 {
	var v uint64
	for i := min(size, 8) - 1; i >= 0; i-- {
		v <<= 8
		if o := offset + i; o >= 0 && o < len(b.data) {
			v |= uint64(b.data[o])
		}
	}
	return v
}

// Write size bytes of value to offset. Bytes outside the block are ignored.
func (b *Block) Write(offset int, size int, value uint64) {
	b.put(offset, size, value)
}

func (b *Block) put(offset int, size int, value uint64) {
	for i := 0; i < min(size, 8); i++ {
		if o := offset + i; o >= 0 && o < len(b.data) {
			b.data[o] = uint8(value)
		}
		value >>= 8
	}
}

// Get the value of the named field. The function panics if the name is not in
// the layout.
func (b *Block) Get(name string) uint64 {
	f := b.layout.MustField(name)
	return b.Read(f.Offset, f.Size)
}

// Set the value of the named field.
func (b *Block) Set(name string, value uint64) {
	f := b.layout.MustField(name)
	b.put(f.Offset, f.Size, value)
}

// SetBits sets the bits of the mask in the named field.
func (b *Block) SetBits(name string, mask uint64) {
	b.Set(name, b.Get(name)|mask)
}

// ClearBits clears the bits of the mask in the named field.
func (b *Block) ClearBits(name string, mask uint64) {
	b.Set(name, b.Get(name)&^mask)
}

// IsSet returns true if any bit of the mask is set in the named field.
func (b *Block) IsSet(name string, mask uint64) bool {
	return b.Get(name)&mask != 0
}

// Bytes returns a copy of the raw storage.
func (b *Block) Bytes() []byte {
	return append([]byte(nil), b.data...)
}
