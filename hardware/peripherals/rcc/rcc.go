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

// Package rcc implements the reset and clock control peripheral of the
// STM32F4 family.
//
// Clocks are not modelled. The ready flag of each oscillator and PLL follows
// its enable bit immediately, and the system clock switch status follows the
// switch selection, so that firmware waiting for a clock to settle does not
// wait forever.
package rcc

import (
	"fmt"

	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
)

// the register layout of the RCC.
var rccLayout = layout.New(
	layout.Register("CR", 0x00, 0x00000083),
	layout.Register("PLLCFGR", 0x04, 0x24003010),
	layout.Register("CFGR", 0x08, 0),
	layout.Register("CIR", 0x0c, 0),
	layout.Register("AHB1RSTR", 0x10, 0),
	layout.Register("AHB2RSTR", 0x14, 0),
	layout.Register("APB1RSTR", 0x20, 0),
	layout.Register("APB2RSTR", 0x24, 0),
	layout.Register("AHB1ENR", 0x30, 0),
	layout.Register("AHB2ENR", 0x34, 0),
	layout.Register("APB1ENR", 0x40, 0),
	layout.Register("APB2ENR", 0x44, 0),
	layout.Register("AHB1LPENR", 0x50, 0x0061900f),
	layout.Register("AHB2LPENR", 0x54, 0x00000080),
	layout.Register("APB1LPENR", 0x60, 0x10e2c80f),
	layout.Register("APB2LPENR", 0x64, 0x00077930),
	layout.Register("BDCR", 0x70, 0),
	layout.Register("CSR", 0x74, 0x0e000000),
	layout.Register("SSCGR", 0x80, 0),
	layout.Register("PLLI2SCFGR", 0x84, 0x24003000),
	layout.Register("DCKCFGR", 0x8c, 0),
)

// an enable bit and the ready flag that follows it.
type ready struct {
	register string
	enable   uint64
	flag     uint64
}

var readyFlags = []ready{
	{register: "CR", enable: 1 << 0, flag: 1 << 1},   // HSI
	{register: "CR", enable: 1 << 16, flag: 1 << 17}, // HSE
	{register: "CR", enable: 1 << 24, flag: 1 << 25}, // PLL
	{register: "CR", enable: 1 << 26, flag: 1 << 27}, // PLLI2S
	{register: "BDCR", enable: 1 << 0, flag: 1 << 1}, // LSE
	{register: "CSR", enable: 1 << 0, flag: 1 << 1},  // LSI
}

// system clock switch and switch status in CFGR.
const (
	cfgrSW  = 0x03
	cfgrSWS = 0x0c
)

// RCC is the reset and clock control peripheral.
type RCC struct {
	peripherals.Base
}

// New is the preferred method of initialisation for the RCC type.
func New(cfg peripherals.Config) peripherals.Peripheral {
	return &RCC{
		Base: peripherals.NewBase(cfg, rccLayout),
	}
}

func (r *RCC) String() string {
	return fmt.Sprintf("%s: cr=%08x cfgr=%08x", r.Label(), r.Regs.Get("CR"), r.Regs.Get("CFGR"))
}

// Write implements the peripherals.Peripheral interface.
func (r *RCC) Write(offset int, size int, value uint64) {
	r.Regs.Write(offset, size, value)

	for _, rdy := range readyFlags {
		if r.Regs.IsSet(rdy.register, rdy.enable) {
			r.Regs.SetBits(rdy.register, rdy.flag)
		} else {
			r.Regs.ClearBits(rdy.register, rdy.flag)
		}
	}

	cfgr := r.Regs.Get("CFGR")
	r.Regs.Set("CFGR", cfgr&^cfgrSWS|(cfgr&cfgrSW)<<2)
}
