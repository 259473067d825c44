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
	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/driver"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
)

// ReadBus implements the peripherals.SystemBus interface. Addresses inside the
// region of a live peripheral are dispatched to that peripheral. Addresses
// that touch no peripheral are read from the memory of the driver, if it has
// any. An access that is only partly inside a peripheral's region is an
// UnmappedAccess.
func (m *Manager) ReadBus(address uint32, size int) (uint64, error) {
	r, err := m.master(address, size)
	if err != nil {
		return 0, err
	}
	if r != nil {
		return r.access.Read(int(address-r.entry.Base), size), nil
	}
	if mem, ok := m.drv.(driver.Memory); ok {
		return mem.ReadMemory(address, size)
	}
	return 0, curated.Errorf(UnmappedAccess, address, size)
}

// WriteBus implements the peripherals.SystemBus interface. The same rules as
// ReadBus() apply.
func (m *Manager) WriteBus(address uint32, size int, value uint64) error {
	r, err := m.master(address, size)
	if err != nil {
		return err
	}
	if r != nil {
		r.access.Write(int(address-r.entry.Base), size, value)
		return nil
	}
	if mem, ok := m.drv.(driver.Memory); ok {
		return mem.WriteMemory(address, size, value)
	}
	return curated.Errorf(UnmappedAccess, address, size)
}

// master resolves an access made by a bus master. a nil result with no error
// means the access touches no peripheral.
func (m *Manager) master(address uint32, size int) (*registered, error) {
	if size <= 0 {
		return nil, curated.Errorf(UnmappedAccess, address, size)
	}
	if r, ok := m.find(address, size); ok {
		return r, nil
	}
	for _, r := range m.live {
		if r.region.Touches(address, size) {
			return nil, curated.Errorf(UnmappedAccess, address, size)
		}
	}
	return nil, nil
}

// Raise implements the peripherals.SystemBus interface. The interrupt is set
// pending in the interrupt controller, if one has been created, and passed to
// the driver, if it accepts interrupts.
func (m *Manager) Raise(irq int) {
	for _, r := range m.live {
		if p, ok := r.periph.(peripherals.Pender); ok {
			p.SetPending(irq)
		}
	}
	if ints, ok := m.drv.(driver.Interrupts); ok {
		ints.Raise(irq)
	}
}
