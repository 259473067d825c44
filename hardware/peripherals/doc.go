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

// Package peripherals defines the contract between the hardware manager and
// the memory mapped peripherals of a microcontroller.
//
// Every peripheral implements the Peripheral interface. Most will do so by
// embedding the Base type, which provides register storage sized to a static
// layout, and then overriding Read(), Write() and Step() to add side effects.
//
// Behaviour that is only meaningful for some peripherals is expressed by
// optional interfaces. For example, a USART implements Stream and a GPIO port
// implements PinHooker. The hardware package exposes these capabilities
// through its Handle type.
//
// The Traced type wraps any Peripheral and writes one line for every access.
// It does not alter the result or the side effects of the wrapped access.
package peripherals
