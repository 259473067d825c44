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
	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/memory/memorymap"
)

// the size of the region reserved for peripherals that are not modelled.
const nullFootprint = 0x400

var nullLayout = layout.New()

// Null is a peripheral that has not been modelled. It occupies address space
// so that firmware can touch it without faulting. Reads return zero and writes
// are ignored.
type Null struct {
	Base
}

// NewNull is the preferred method of initialisation for the Null type.
func NewNull(cfg Config) Peripheral {
	n := &Null{
		Base: NewBase(cfg, nullLayout),
	}
	n.SetRegion(memorymap.Single(nullFootprint))
	return n
}

// Read implements the Peripheral interface.
func (n *Null) Read(_ int, _ int) uint64 {
	return 0
}

// Write implements the Peripheral interface.
func (n *Null) Write(_ int, _ int, _ uint64) {
}
