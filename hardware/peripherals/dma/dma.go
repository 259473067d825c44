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

// Package dma implements the direct memory access controller of the STM32F4
// family.
//
// Each of the eight streams moves one data item per step while it is enabled.
// Data is moved through the peripherals.SystemBus so transfers to and from
// other peripherals take the same path as accesses by the CPU.
package dma

import (
	"fmt"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
)

// NumStreams is the number of streams in each controller.
const NumStreams = 8

// the stride between the register groups of each stream.
const (
	streamOrigin = 0x10
	streamStride = 0x18
)

func streamFields() []layout.Field {
	f := []layout.Field{
		layout.Register("LISR", 0x00, 0),
		layout.Register("HISR", 0x04, 0),
		layout.Register("LIFCR", 0x08, 0),
		layout.Register("HIFCR", 0x0c, 0),
	}
	for s := range NumStreams {
		o := streamOrigin + s*streamStride
		f = append(f,
			layout.Register(fmt.Sprintf("S%dCR", s), o, 0),
			layout.Register(fmt.Sprintf("S%dNDTR", s), o+0x04, 0),
			layout.Register(fmt.Sprintf("S%dPAR", s), o+0x08, 0),
			layout.Register(fmt.Sprintf("S%dM0AR", s), o+0x0c, 0),
			layout.Register(fmt.Sprintf("S%dM1AR", s), o+0x10, 0),
			layout.Register(fmt.Sprintf("S%dFCR", s), o+0x14, 0x21),
		)
	}
	return f
}

// the register layout shared by both controllers.
var dmaLayout = layout.New(streamFields()...)

// stream configuration register bits.
const (
	crEN    = 1 << 0
	crTEIE  = 1 << 2
	crHTIE  = 1 << 3
	crTCIE  = 1 << 4
	crCIRC  = 1 << 8
	crPINC  = 1 << 9
	crMINC  = 1 << 10
	crDIR   = 0x3 << 6
	crPSIZE = 0x3 << 11
	crMSIZE = 0x3 << 13
)

// transfer directions in the DIR field.
const (
	peripheralToMemory = 0
	memoryToPeripheral = 1
	memoryToMemory     = 2
)

// interrupt flags of a stream, relative to the stream's position in the
// interrupt status registers.
const (
	flagTEIF = 1 << 3
	flagHTIF = 1 << 4
	flagTCIF = 1 << 5
)

// the position of each stream's flags in LISR/HISR.
var flagShift = [4]int{0, 6, 16, 22}

type stream struct {
	id int

	// register names
	cr   string
	ndtr string
	par  string
	m0ar string

	// the number of items at the start of the transfer. used to reload in
	// circular mode
	items uint64

	// the next addresses to be used
	periph uint32
	mem    uint32
}

// DMA is the DMA controller.
type DMA struct {
	peripherals.Base
	streams [NumStreams]stream
}

// New is the preferred method of initialisation for the DMA type. The
// configured interrupt lines are expected to be in stream order.
func New(cfg peripherals.Config) peripherals.Peripheral {
	d := &DMA{
		Base: peripherals.NewBase(cfg, dmaLayout),
	}
	for i := range d.streams {
		d.streams[i] = stream{
			id:   i,
			cr:   fmt.Sprintf("S%dCR", i),
			ndtr: fmt.Sprintf("S%dNDTR", i),
			par:  fmt.Sprintf("S%dPAR", i),
			m0ar: fmt.Sprintf("S%dM0AR", i),
		}
	}
	return d
}

func (d *DMA) String() string {
	var active int
	for i := range d.streams {
		if d.Regs.IsSet(d.streams[i].cr, crEN) {
			active++
		}
	}
	return fmt.Sprintf("%s: lisr=%08x hisr=%08x active streams=%d", d.Label(), d.Regs.Get("LISR"), d.Regs.Get("HISR"), active)
}

// the status register and bit shift for the stream's flags.
func (s *stream) status() (string, int) {
	if s.id < 4 {
		return "LISR", flagShift[s.id]
	}
	return "HISR", flagShift[s.id-4]
}

// Read implements the peripherals.Peripheral interface.
func (d *DMA) Read(offset int, size int) uint64 {
	// the flag clear registers are write only
	if d.Touches("LIFCR", offset, size) || d.Touches("HIFCR", offset, size) {
		return 0
	}
	return d.Regs.Read(offset, size)
}

// Write implements the peripherals.Peripheral interface.
func (d *DMA) Write(offset int, size int, value uint64) {
	switch {
	case d.Touches("LISR", offset, size) || d.Touches("HISR", offset, size):
		// read only
		return
	case d.Touches("LIFCR", offset, size) || d.Touches("HIFCR", offset, size):
		d.Regs.Write(offset, size, value)
		d.Regs.ClearBits("LISR", d.Regs.Get("LIFCR"))
		d.Regs.ClearBits("HISR", d.Regs.Get("HIFCR"))
		d.Regs.Set("LIFCR", 0)
		d.Regs.Set("HIFCR", 0)
		return
	}

	for i := range d.streams {
		s := &d.streams[i]
		if d.Touches(s.cr, offset, size) {
			was := d.Regs.IsSet(s.cr, crEN)
			d.Regs.Write(offset, size, value)
			if !was && d.Regs.IsSet(s.cr, crEN) {
				d.enable(s)
			}
			return
		}
	}

	d.Regs.Write(offset, size, value)
}

func (d *DMA) enable(s *stream) {
	s.items = d.Regs.Get(s.ndtr) & 0xffff
	s.periph = uint32(d.Regs.Get(s.par))
	s.mem = uint32(d.Regs.Get(s.m0ar))
	d.Logf("stream %d enabled: %d items", s.id, s.items)
}

func (d *DMA) flag(s *stream, f uint64) {
	reg, shift := s.status()
	d.Regs.SetBits(reg, f<<shift)
}

// Step implements the peripherals.Peripheral interface.
func (d *DMA) Step() {
	for i := range d.streams {
		d.transfer(&d.streams[i])
	}
}

func (d *DMA) transfer(s *stream) {
	cr := d.Regs.Get(s.cr)
	if cr&crEN == 0 {
		return
	}

	remaining := d.Regs.Get(s.ndtr) & 0xffff
	if remaining == 0 {
		return
	}

	bus := d.Bus()
	if bus == nil {
		return
	}

	psize := 1 << ((cr & crPSIZE) >> 11)
	msize := 1 << ((cr & crMSIZE) >> 13)

	var src, dst uint32
	var srcSize, dstSize int

	switch (cr & crDIR) >> 6 {
	case peripheralToMemory:
		src, srcSize, dst, dstSize = s.periph, psize, s.mem, msize
	case memoryToPeripheral:
		src, srcSize, dst, dstSize = s.mem, msize, s.periph, psize
	case memoryToMemory:
		src, srcSize, dst, dstSize = s.periph, psize, s.mem, msize
	default:
		d.error(s, cr, curated.Errorf("dma: illegal direction"))
		return
	}

	v, err := bus.ReadBus(src, srcSize)
	if err == nil {
		err = bus.WriteBus(dst, dstSize, v)
	}
	if err != nil {
		d.error(s, cr, err)
		return
	}

	if cr&crPINC != 0 {
		s.periph += uint32(psize)
	}
	if cr&crMINC != 0 {
		s.mem += uint32(msize)
	}

	remaining--
	d.Regs.Set(s.ndtr, remaining)

	if s.items > 1 && remaining == s.items/2 {
		d.flag(s, flagHTIF)
		if cr&crHTIE != 0 {
			d.Raise(s.id)
		}
	}

	if remaining > 0 {
		return
	}

	d.flag(s, flagTCIF)
	d.Logf("stream %d transfer complete", s.id)

	if cr&crCIRC != 0 {
		d.Regs.Set(s.ndtr, s.items)
		s.periph = uint32(d.Regs.Get(s.par))
		s.mem = uint32(d.Regs.Get(s.m0ar))
	} else {
		d.Regs.ClearBits(s.cr, crEN)
	}

	if cr&crTCIE != 0 {
		d.Raise(s.id)
	}
}

func (d *DMA) error(s *stream, cr uint64, err error) {
	d.flag(s, flagTEIF)
	d.Regs.ClearBits(s.cr, crEN)
	d.Logf("stream %d transfer error: %v", s.id, err)
	if cr&crTEIE != 0 {
		d.Raise(s.id)
	}
}
