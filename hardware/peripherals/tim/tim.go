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

// Package tim implements the general purpose timers of the STM32F4 family.
//
// The counter advances once every PSC+1 steps while the counter enable bit
// is set. When it passes the auto-reload value an update event occurs: the
// counter restarts, UIF is set and, if enabled, the update interrupt is
// raised. Capture/compare channels are storage only.
package tim

import (
	"fmt"

	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
)

func timerFields(arrReset uint64) []layout.Field {
	return []layout.Field{
		layout.Register("CR1", 0x00, 0),
		layout.Register("CR2", 0x04, 0),
		layout.Register("SMCR", 0x08, 0),
		layout.Register("DIER", 0x0c, 0),
		layout.Register("SR", 0x10, 0),
		layout.Register("EGR", 0x14, 0),
		layout.Register("CCMR1", 0x18, 0),
		layout.Register("CCMR2", 0x1c, 0),
		layout.Register("CCER", 0x20, 0),
		layout.Register("CNT", 0x24, 0),
		layout.Register("PSC", 0x28, 0),
		layout.Register("ARR", 0x2c, arrReset),
		layout.Register("RCR", 0x30, 0),
		layout.Register("CCR1", 0x34, 0),
		layout.Register("CCR2", 0x38, 0),
		layout.Register("CCR3", 0x3c, 0),
		layout.Register("CCR4", 0x40, 0),
		layout.Register("BDTR", 0x44, 0),
		layout.Register("DCR", 0x48, 0),
		layout.Register("DMAR", 0x4c, 0),
		layout.Register("OR", 0x50, 0),
	}
}

// register layouts for the 16 bit and 32 bit timers. they differ only in the
// reset value of the auto-reload register.
var (
	layout16 = layout.New(timerFields(0xffff)...)
	layout32 = layout.New(timerFields(0xffffffff)...)
)

const (
	cr1CEN = 1 << 0
	cr1DIR = 1 << 4
)

const (
	dierUIE = 1 << 0
	srUIF   = 1 << 0
	egrUG   = 1 << 0
)

// Timer is a general purpose timer.
type Timer struct {
	peripherals.Base

	// counter width mask
	mask uint64

	// steps remaining before the next counter change
	ticksRemaining uint64
}

// New16 creates a timer with a 16 bit counter.
func New16(cfg peripherals.Config) peripherals.Peripheral {
	return &Timer{
		Base: peripherals.NewBase(cfg, layout16),
		mask: 0xffff,
	}
}

// New32 creates a timer with a 32 bit counter.
func New32(cfg peripherals.Config) peripherals.Peripheral {
	return &Timer{
		Base: peripherals.NewBase(cfg, layout32),
		mask: 0xffffffff,
	}
}

func (tm *Timer) String() string {
	return fmt.Sprintf("%s: cnt=%#x psc=%#x arr=%#x remn=%d",
		tm.Label(),
		tm.Regs.Get("CNT"),
		tm.Regs.Get("PSC"),
		tm.Regs.Get("ARR"),
		tm.ticksRemaining,
	)
}

// Read implements the peripherals.Peripheral interface.
func (tm *Timer) Read(offset int, size int) uint64 {
	// EGR is write only
	if tm.Touches("EGR", offset, size) {
		return 0
	}
	return tm.Regs.Read(offset, size)
}

// Write implements the peripherals.Peripheral interface.
func (tm *Timer) Write(offset int, size int, value uint64) {
	switch {
	case tm.Touches("SR", offset, size):
		// status flags are cleared by writing zero
		old := tm.Regs.Get("SR")
		tm.Regs.Write(offset, size, value)
		tm.Regs.Set("SR", old&tm.Regs.Get("SR"))
	case tm.Touches("EGR", offset, size):
		tm.Regs.Write(offset, size, value)
		if tm.Regs.IsSet("EGR", egrUG) {
			tm.update(false)
		}
		tm.Regs.Set("EGR", 0)
	default:
		tm.Regs.Write(offset, size, value)
		tm.Regs.Set("CNT", tm.Regs.Get("CNT")&tm.mask)
		tm.Regs.Set("ARR", tm.Regs.Get("ARR")&tm.mask)
		tm.Regs.Set("PSC", tm.Regs.Get("PSC")&0xffff)
	}
}

// update reinitialises the counter and the prescaler.
func (tm *Timer) update(down bool) {
	if down {
		tm.Regs.Set("CNT", tm.Regs.Get("ARR"))
	} else {
		tm.Regs.Set("CNT", 0)
	}
	tm.ticksRemaining = tm.Regs.Get("PSC")
	tm.Regs.SetBits("SR", srUIF)
	if tm.Regs.IsSet("DIER", dierUIE) {
		tm.Raise(0)
	}
}

// Step implements the peripherals.Peripheral interface.
func (tm *Timer) Step() {
	if !tm.Regs.IsSet("CR1", cr1CEN) {
		return
	}

	if tm.ticksRemaining > 0 {
		tm.ticksRemaining--
		return
	}
	tm.ticksRemaining = tm.Regs.Get("PSC")

	cnt := tm.Regs.Get("CNT")
	arr := tm.Regs.Get("ARR")

	if tm.Regs.IsSet("CR1", cr1DIR) {
		if cnt == 0 {
			tm.update(true)
			return
		}
		tm.Regs.Set("CNT", cnt-1)
		return
	}

	if cnt >= arr {
		tm.update(false)
		return
	}
	tm.Regs.Set("CNT", cnt+1)
}

// Reset implements the peripherals.Peripheral interface.
func (tm *Timer) Reset() {
	tm.Base.Reset()
	tm.ticksRemaining = 0
}
