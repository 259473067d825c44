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

// Package nvic implements the nested vectored interrupt controller of the
// Cortex-M core.
//
// The NVIC occupies several disjoint register blocks. Interrupts raised by
// other peripherals are set as pending through the peripherals.Pender
// interface. Delivery of interrupts to the CPU is the responsibility of the
// CPU emulation.
package nvic

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/memory/memorymap"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
)

// the number of 32 bit registers in each of the enable/pending/active
// groups.
const groupSize = 8

// the number of interrupt priority registers.
const numPriority = 60

// NumIRQ is the number of interrupt lines supported.
const NumIRQ = groupSize * 32

// the origin of each register group relative to the base address.
const (
	originISER = 0x000
	originICER = 0x080
	originISPR = 0x100
	originICPR = 0x180
	originIABR = 0x200
	originIPR  = 0x300
	originSTIR = 0xe00
)

func nvicFields() []layout.Field {
	var f []layout.Field
	for _, g := range []struct {
		name   string
		origin int
	}{
		{"ISER", originISER},
		{"ICER", originICER},
		{"ISPR", originISPR},
		{"ICPR", originICPR},
		{"IABR", originIABR},
	} {
		for i := range groupSize {
			f = append(f, layout.Register(fmt.Sprintf("%s%d", g.name, i), g.origin+i*4, 0))
		}
	}
	for i := range numPriority {
		f = append(f, layout.Register(fmt.Sprintf("IPR%d", i), originIPR+i*4, 0))
	}
	return append(f, layout.Register("STIR", originSTIR, 0))
}

var nvicLayout = layout.New(nvicFields()...)

var nvicRegion = memorymap.Region{
	{Start: originISER, End: originISER + groupSize*4},
	{Start: originICER, End: originICER + groupSize*4},
	{Start: originISPR, End: originISPR + groupSize*4},
	{Start: originICPR, End: originICPR + groupSize*4},
	{Start: originIABR, End: originIABR + groupSize*4},
	{Start: originIPR, End: originIPR + numPriority*4},
	{Start: originSTIR, End: originSTIR + 4},
}

// NVIC is the interrupt controller. It implements the peripherals.Pender
// interface.
type NVIC struct {
	peripherals.Base
}

// New is the preferred method of initialisation for the NVIC type.
func New(cfg peripherals.Config) peripherals.Peripheral {
	n := &NVIC{
		Base: peripherals.NewBase(cfg, nvicLayout),
	}
	n.SetRegion(nvicRegion)
	return n
}

func (n *NVIC) String() string {
	p := n.Pending()
	s := make([]string, len(p))
	for i, irq := range p {
		s[i] = fmt.Sprintf("%d", irq)
	}
	return fmt.Sprintf("%s: pending [%s]", n.Label(), strings.Join(s, ", "))
}

// the clear registers read and write through to the set registers. the
// function returns the offset to use and whether the access clears bits.
func alias(offset int) (int, bool) {
	switch {
	case offset >= originICER && offset < originICER+groupSize*4:
		return offset - originICER + originISER, true
	case offset >= originICPR && offset < originICPR+groupSize*4:
		return offset - originICPR + originISPR, true
	}
	return offset, false
}

func isBitGroup(offset int) bool {
	return offset < originIABR
}

// Read implements the peripherals.Peripheral interface.
func (n *NVIC) Read(offset int, size int) uint64 {
	if n.Touches("STIR", offset, size) {
		return 0
	}
	o, _ := alias(offset)
	return n.Regs.Read(o, size)
}

// Write implements the peripherals.Peripheral interface.
func (n *NVIC) Write(offset int, size int, value uint64) {
	switch {
	case n.Touches("STIR", offset, size):
		n.SetPending(int(value & 0x1ff))
	case offset >= originIABR && offset < originIABR+groupSize*4:
		// active bits are read only
	case isBitGroup(offset):
		o, clearing := alias(offset)
		old := n.Regs.Read(o, size)
		if clearing {
			n.Regs.Write(o, size, old&^value)
		} else {
			n.Regs.Write(o, size, old|value)
		}
	default:
		n.Regs.Write(offset, size, value)
	}
}

func (n *NVIC) bit(origin int, irq int) (string, uint64) {
	name := "ISER"
	if origin == originISPR {
		name = "ISPR"
	}
	return fmt.Sprintf("%s%d", name, irq/32), 1 << (irq % 32)
}

// SetPending implements the peripherals.Pender interface. System exceptions,
// which have negative numbers, are not handled by the NVIC and are ignored.
func (n *NVIC) SetPending(irq int) {
	if irq < 0 || irq >= NumIRQ {
		return
	}
	reg, mask := n.bit(originISPR, irq)
	n.Regs.SetBits(reg, mask)
}

// Pending implements the peripherals.Pender interface. The list is in
// ascending order.
func (n *NVIC) Pending() []int {
	var p []int
	for irq := 0; irq < NumIRQ; irq++ {
		reg, mask := n.bit(originISPR, irq)
		if n.Regs.IsSet(reg, mask) {
			p = append(p, irq)
		}
	}
	return p
}

// Enabled returns true if the interrupt line has been enabled by the
// firmware.
func (n *NVIC) Enabled(irq int) bool {
	if irq < 0 || irq >= NumIRQ {
		return false
	}
	reg, mask := n.bit(originISER, irq)
	return n.Regs.IsSet(reg, mask)
}
