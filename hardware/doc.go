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

// Package hardware is the hardware manager. It creates peripherals by label,
// places them at the base address given by the board profile and dispatches
// memory mapped accesses to them.
//
// A Manager is created for every emulation session:
//
//	m, err := hardware.NewManager(env)
//	usart2, err := m.Create("usart2")
//
// Create() is idempotent. The Handle returned by Create() and Lookup()
// exposes the capabilities of the peripheral, such as Send() and Recv() for
// serial peripherals and HookSet() for GPIO ports.
//
// The Manager does not execute instructions. A CPU emulation is attached with
// Attach() and from then on forwards memory mapped accesses to the Manager and
// calls Tick() once for every retired instruction. Peripherals can also be
// accessed directly with Read() and Write().
//
// The Manager is not safe for concurrent use. All calls are expected to come
// from the goroutine running the CPU emulation.
package hardware
