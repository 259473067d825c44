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

	"github.com/jetsetilly/hwperiph/environment"
	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/memory/memorymap"
	"github.com/jetsetilly/hwperiph/hardware/memory/regblock"
	"github.com/jetsetilly/hwperiph/logger"
)

// Base implements the Peripheral interface with plain register storage. Reads
// return the stored value and writes update it. Step does nothing.
//
// Concrete peripherals embed Base and override the functions that need side
// effects.
type Base struct {
	env   *environment.Environment
	label string
	typ   string
	irqs  []int
	bus   SystemBus

	layout *layout.Layout
	region memorymap.Region

	// register storage. concrete peripherals access fields by name
	Regs *regblock.Block
}

// NewBase is the preferred method of initialisation for the Base type. The
// region defaults to the footprint of the layout.
func NewBase(cfg Config, l *layout.Layout) Base {
	return Base{
		env:    cfg.Env,
		label:  cfg.Label,
		typ:    cfg.Type,
		irqs:   cfg.IRQs,
		layout: l,
		region: memorymap.Single(l.Footprint()),
		Regs:   regblock.New(l),
	}
}

func (b *Base) String() string {
	return fmt.Sprintf("%s (%s)", b.label, b.typ)
}

// Label implements the Peripheral interface.
func (b *Base) Label() string {
	return b.label
}

// Type implements the Peripheral interface.
func (b *Base) Type() string {
	return b.typ
}

// Layout implements the Peripheral interface.
func (b *Base) Layout() *layout.Layout {
	return b.layout
}

// Read implements the Peripheral interface.
func (b *Base) Read(offset int, size int) uint64 {
	return b.Regs.Read(offset, size)
}

// Write implements the Peripheral interface.
func (b *Base) Write(offset int, size int, value uint64) {
	b.Regs.Write(offset, size, value)
}

// Step implements the Peripheral interface.
func (b *Base) Step() {
}

// Region implements the Peripheral interface.
func (b *Base) Region() memorymap.Region {
	return b.region
}

// SetRegion replaces the default region. Used by peripherals that occupy
// disjoint register blocks.
func (b *Base) SetRegion(r memorymap.Region) {
	b.region = r
}

// Plumb implements the Peripheral interface.
func (b *Base) Plumb(bus SystemBus) {
	b.bus = bus
}

// Bus returns the SystemBus plumbed into the peripheral. It may be nil.
func (b *Base) Bus() SystemBus {
	return b.bus
}

// Reset implements the Peripheral interface.
func (b *Base) Reset() {
	b.Regs.Reset()
}

// Env returns the environment the peripheral was created in.
func (b *Base) Env() *environment.Environment {
	return b.env
}

// Raise the numbered interrupt line of the peripheral. Lines that have not
// been configured are ignored.
func (b *Base) Raise(line int) {
	if b.bus == nil || line < 0 || line >= len(b.irqs) {
		return
	}
	b.bus.Raise(b.irqs[line])
}

// Log an event using the label of the peripheral as the tag.
func (b *Base) Log(detail any) {
	logger.Log(b.permission(), b.label, detail)
}

// Logf is like Log but with a format string.
func (b *Base) Logf(detail string, args ...any) {
	logger.Logf(b.permission(), b.label, detail, args...)
}

func (b *Base) permission() logger.Permission {
	if b.env == nil {
		return logger.Allow
	}
	return b.env
}

// Touches returns true if the access overlaps the named field.
func (b *Base) Touches(name string, offset int, size int) bool {
	return b.layout.MustField(name).Overlaps(offset, size)
}

// Peek returns the stored value of the named field without side effects.
func (b *Base) Peek(name string) (uint64, bool) {
	if _, ok := b.layout.Field(name); !ok {
		return 0, false
	}
	return b.Regs.Get(name), true
}
