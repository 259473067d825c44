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

package hardware

import (
	"fmt"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
)

// Handle is returned by Manager.Create() and Manager.Lookup(). It gives access
// to the capabilities of a live peripheral without the caller needing to know
// its concrete type. Using a capability the peripheral doesn't have returns
// an UnsupportedCapability error.
type Handle struct {
	m *Manager
	r *registered
}

func (h *Handle) String() string {
	return fmt.Sprintf("%s @ %08x", h.r.periph, h.r.entry.Base)
}

// Label of the peripheral.
func (h *Handle) Label() string {
	return h.r.entry.Label
}

// Base address of the peripheral.
func (h *Handle) Base() uint32 {
	return h.r.entry.Base
}

// Size is the number of bytes occupied by the peripheral.
func (h *Handle) Size() uint32 {
	return h.r.region.Size()
}

// Peripheral returns the peripheral as it was created.
func (h *Handle) Peripheral() peripherals.Peripheral {
	return h.r.periph
}

func (h *Handle) unsupported(capability string) error {
	return curated.Errorf(UnsupportedCapability, h.r.entry.Label, capability)
}

// Send bytes to a serial peripheral for reception by the firmware.
func (h *Handle) Send(data []byte) error {
	s, ok := h.r.periph.(peripherals.Stream)
	if !ok {
		return h.unsupported("send")
	}
	s.Send(data)
	return nil
}

// Recv returns and clears the bytes transmitted by the firmware through a
// serial peripheral.
func (h *Handle) Recv() ([]byte, error) {
	s, ok := h.r.periph.(peripherals.Stream)
	if !ok {
		return nil, h.unsupported("recv")
	}
	return s.Recv(), nil
}

// HookSet registers a function to be called when the level of a pin changes.
func (h *Handle) HookSet(pin int, hook func(high bool)) error {
	p, ok := h.r.periph.(peripherals.PinHooker)
	if !ok {
		return h.unsupported("pin hooks")
	}
	return p.HookSet(pin, hook)
}

// SetPin drives an input pin from outside the chip.
func (h *Handle) SetPin(pin int, high bool) error {
	p, ok := h.r.periph.(peripherals.PinHooker)
	if !ok {
		return h.unsupported("pins")
	}
	return p.SetPin(pin, high)
}

// Pin returns the current level of a pin.
func (h *Handle) Pin(pin int) (bool, error) {
	p, ok := h.r.periph.(peripherals.PinHooker)
	if !ok {
		return false, h.unsupported("pins")
	}
	return p.Pin(pin), nil
}

// Connect an external device to a bus peripheral.
func (h *Handle) Connect(dev peripherals.Device) error {
	c, ok := h.r.periph.(peripherals.Connector)
	if !ok {
		return h.unsupported("device connection")
	}
	return c.Connect(dev)
}

// SetRatio sets the clock ratio of the peripheral.
func (h *Handle) SetRatio(ratio int) error {
	r, ok := h.r.periph.(peripherals.Ratio)
	if !ok {
		return h.unsupported("clock ratio")
	}
	r.SetRatio(ratio)
	return nil
}
