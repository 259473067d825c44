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

// Package systick implements the system timer of the Cortex-M core.
//
// The counter is decremented by the clock ratio on every step. The ratio
// allows firmware that waits on long SysTick delays to run in a reasonable
// number of emulated instructions.
package systick

import (
	"fmt"

	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
)

// the register layout of the SysTick timer.
var systickLayout = layout.New(
	layout.Register("CTRL", 0x00, 0),
	layout.Register("LOAD", 0x04, 0),
	layout.Register("VAL", 0x08, 0),
	layout.Register("CALIB", 0x0c, 0xc0000000),
)

const (
	ctrlENABLE    = 1 << 0
	ctrlTICKINT   = 1 << 1
	ctrlCOUNTFLAG = 1 << 16
)

// the counter is 24 bits wide.
const counterMask = 0x00ffffff

// SysTick is the system timer. It implements the peripherals.Ratio interface.
type SysTick struct {
	peripherals.Base

	// zero means the ratio has not been set and the preference value is used
	ratio int
}

// New is the preferred method of initialisation for the SysTick type.
func New(cfg peripherals.Config) peripherals.Peripheral {
	return &SysTick{
		Base: peripherals.NewBase(cfg, systickLayout),
	}
}

func (s *SysTick) String() string {
	return fmt.Sprintf("%s: ctrl=%08x load=%06x val=%06x", s.Label(), s.Regs.Get("CTRL"), s.Regs.Get("LOAD"), s.Regs.Get("VAL"))
}

// SetRatio implements the peripherals.Ratio interface.
func (s *SysTick) SetRatio(ratio int) {
	s.ratio = max(ratio, 1)
}

func (s *SysTick) currentRatio() int {
	if s.ratio > 0 {
		return s.ratio
	}
	if env := s.Env(); env != nil {
		return max(env.Prefs.SysTickRatio.Get().(int), 1)
	}
	return 1
}

// Read implements the peripherals.Peripheral interface.
func (s *SysTick) Read(offset int, size int) uint64 {
	v := s.Regs.Read(offset, size)
	if s.Touches("CTRL", offset, size) {
		s.Regs.ClearBits("CTRL", ctrlCOUNTFLAG)
	}
	return v
}

// Write implements the peripherals.Peripheral interface.
func (s *SysTick) Write(offset int, size int, value uint64) {
	switch {
	case s.Touches("VAL", offset, size):
		// any write clears the counter and the count flag
		s.Regs.Set("VAL", 0)
		s.Regs.ClearBits("CTRL", ctrlCOUNTFLAG)
	case s.Touches("CALIB", offset, size):
		// read only
	case s.Touches("CTRL", offset, size):
		flag := s.Regs.Get("CTRL") & ctrlCOUNTFLAG
		s.Regs.Write(offset, size, value)
		s.Regs.Set("CTRL", s.Regs.Get("CTRL")&^ctrlCOUNTFLAG|flag)
	default:
		s.Regs.Write(offset, size, value)
		s.Regs.Set("LOAD", s.Regs.Get("LOAD")&counterMask)
	}
}

// Step implements the peripherals.Peripheral interface.
func (s *SysTick) Step() {
	if !s.Regs.IsSet("CTRL", ctrlENABLE) {
		return
	}

	val := int64(s.Regs.Get("VAL")) - int64(s.currentRatio())
	if val > 0 {
		s.Regs.Set("VAL", uint64(val))
		return
	}

	s.Regs.Set("VAL", s.Regs.Get("LOAD"))
	s.Regs.SetBits("CTRL", ctrlCOUNTFLAG)
	if s.Regs.IsSet("CTRL", ctrlTICKINT) {
		s.Raise(0)
	}
}
