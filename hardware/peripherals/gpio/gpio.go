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

// Package gpio implements the general purpose input/output ports of the
// STM32F4 family.
//
// The level of a pin configured as an output (or alternate function) follows
// the output data register. The level of any other pin follows the value
// driven from outside the chip with SetPin(). Hooks registered with HookSet()
// are called whenever the level of a pin changes.
package gpio

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/hardware/pins"
)

// NumPins is the number of pins in a port.
const NumPins = 16

// the register layout shared by every GPIO port.
var gpioLayout = layout.New(
	layout.Register("MODER", 0x00, 0),
	layout.Register("OTYPER", 0x04, 0),
	layout.Register("OSPEEDR", 0x08, 0),
	layout.Register("PUPDR", 0x0c, 0),
	layout.Register("IDR", 0x10, 0),
	layout.Register("ODR", 0x14, 0),
	layout.Register("BSRR", 0x18, 0),
	layout.Register("LCKR", 0x1c, 0),
	layout.Register("AFRL", 0x20, 0),
	layout.Register("AFRH", 0x24, 0),
)

// pin modes in the MODER register.
const (
	modeInput     = 0
	modeOutput    = 1
	modeAlternate = 2
	modeAnalog    = 3
)

// InvalidPin is returned when a pin number is out of range.
const InvalidPin = "gpio: %s: invalid pin (%d)"

// GPIO is a general purpose input/output port. It implements the
// peripherals.PinHooker interface.
type GPIO struct {
	peripherals.Base

	// levels driven from outside the chip
	external uint16

	// the current level of every pin
	level uint16

	hooks  [NumPins][]func(high bool)
	traces [NumPins]pins.Trace
}

// New is the preferred method of initialisation for the GPIO type.
func New(cfg peripherals.Config) peripherals.Peripheral {
	g := &GPIO{
		Base: peripherals.NewBase(cfg, gpioLayout),
	}
	g.resetTraces()
	return g
}

func (g *GPIO) resetTraces() {
	for i := range g.traces {
		g.traces[i] = pins.NewTrace(fmt.Sprintf("%s%d", g.Label(), i), false)
	}
}

func (g *GPIO) String() string {
	s := strings.Builder{}
	s.WriteString(g.Label())
	s.WriteString(": ")
	for i := NumPins - 1; i >= 0; i-- {
		if g.level&(1<<i) != 0 {
			s.WriteRune('1')
		} else {
			s.WriteRune('0')
		}
	}
	return s.String()
}

func (g *GPIO) mode(pin int) uint64 {
	return (g.Regs.Get("MODER") >> (pin * 2)) & 0x03
}

// Read implements the peripherals.Peripheral interface.
func (g *GPIO) Read(offset int, size int) uint64 {
	// BSRR is write only
	if g.Touches("BSRR", offset, size) {
		return 0
	}
	return g.Regs.Read(offset, size)
}

// Write implements the peripherals.Peripheral interface.
func (g *GPIO) Write(offset int, size int, value uint64) {
	switch {
	case g.Touches("IDR", offset, size):
		// read only
		return
	case g.Touches("BSRR", offset, size):
		g.Regs.Write(offset, size, value)
		bsrr := g.Regs.Get("BSRR")
		g.Regs.Set("BSRR", 0)

		// set takes priority over reset when both bits are written
		odr := g.Regs.Get("ODR")
		odr &^= bsrr >> 16
		odr |= bsrr & 0xffff
		g.Regs.Set("ODR", odr&0xffff)
	default:
		g.Regs.Write(offset, size, value)
		g.Regs.Set("ODR", g.Regs.Get("ODR")&0xffff)
	}

	g.update()
}

// update recalculates the level of every pin and calls the hooks of the pins
// that have changed.
func (g *GPIO) update() {
	odr := uint16(g.Regs.Get("ODR"))

	var level uint16
	for pin := range NumPins {
		var src uint16
		switch g.mode(pin) {
		case modeOutput, modeAlternate:
			src = odr
		case modeInput:
			src = g.external
		case modeAnalog:
			// analog pins read as zero
		}
		level |= src & (1 << pin)
	}

	g.Regs.Set("IDR", uint64(level))

	changed := level ^ g.level
	g.level = level

	for pin := range NumPins {
		if changed&(1<<pin) == 0 {
			continue
		}
		high := level&(1<<pin) != 0
		for _, h := range g.hooks[pin] {
			h(high)
		}
	}
}

// Step implements the peripherals.Peripheral interface.
func (g *GPIO) Step() {
	for pin := range g.traces {
		g.traces[pin].Tick(g.level&(1<<pin) != 0)
	}
}

// Reset implements the peripherals.Peripheral interface. Hooks are not
// removed.
func (g *GPIO) Reset() {
	g.Base.Reset()
	g.external = 0
	g.update()
	g.resetTraces()
}

func (g *GPIO) checkPin(pin int) error {
	if pin < 0 || pin >= NumPins {
		return curated.Errorf(InvalidPin, g.Label(), pin)
	}
	return nil
}

// HookSet implements the peripherals.PinHooker interface.
func (g *GPIO) HookSet(pin int, hook func(high bool)) error {
	if err := g.checkPin(pin); err != nil {
		return err
	}
	g.hooks[pin] = append(g.hooks[pin], hook)
	return nil
}

// SetPin implements the peripherals.PinHooker interface. Driving a pin that is
// configured as an output has no effect until it is configured as an input.
func (g *GPIO) SetPin(pin int, high bool) error {
	if err := g.checkPin(pin); err != nil {
		return err
	}
	if high {
		g.external |= 1 << pin
	} else {
		g.external &^= 1 << pin
	}
	g.update()
	return nil
}

// Pin implements the peripherals.PinHooker interface.
func (g *GPIO) Pin(pin int) bool {
	if g.checkPin(pin) != nil {
		return false
	}
	return g.level&(1<<pin) != 0
}

// Trace returns the activity trace of the pin. The trace is advanced once per
// step.
func (g *GPIO) Trace(pin int) (*pins.Trace, error) {
	if err := g.checkPin(pin); err != nil {
		return nil, err
	}
	return &g.traces[pin], nil
}
