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

// Package usart implements the universal synchronous asynchronous receiver
// transmitter of the STM32F4 family.
//
// Bytes written by the firmware to the data register are collected and can be
// drained with Recv(). Bytes queued with Send() are moved into the data
// register one at a time as the peripheral is stepped, modelling the delay of
// the receive shift register.
package usart

import (
	"fmt"

	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
)

// the register layout shared by every USART.
var usartLayout = layout.New(
	layout.Register("SR", 0x00, 0xc0),
	layout.Register("DR", 0x04, 0),
	layout.Register("BRR", 0x08, 0),
	layout.Register("CR1", 0x0c, 0),
	layout.Register("CR2", 0x10, 0),
	layout.Register("CR3", 0x14, 0),
	layout.Register("GTPR", 0x18, 0),
)

// status register bits.
const (
	srRXNE = 1 << 5
	srTC   = 1 << 6
	srTXE  = 1 << 7
)

// control register 1 bits.
const (
	cr1RXNEIE = 1 << 5
	cr1TCIE   = 1 << 6
	cr1TXEIE  = 1 << 7
)

// USART is the serial peripheral. It implements the peripherals.Stream
// interface.
type USART struct {
	peripherals.Base

	// bytes transmitted by the firmware
	outbound []byte

	// bytes waiting to be received by the firmware
	inbound []byte

	// number of steps since the last byte was moved into the data register
	shift int
}

// New is the preferred method of initialisation for the USART type.
func New(cfg peripherals.Config) peripherals.Peripheral {
	return &USART{
		Base: peripherals.NewBase(cfg, usartLayout),
	}
}

func (u *USART) String() string {
	return fmt.Sprintf("%s: sr=%02x tx=%d rx=%d", u.Label(), u.Regs.Get("SR"), len(u.outbound), len(u.inbound))
}

// Read implements the peripherals.Peripheral interface.
func (u *USART) Read(offset int, size int) uint64 {
	v := u.Regs.Read(offset, size)
	if u.Touches("DR", offset, size) {
		u.Regs.ClearBits("SR", srRXNE)
	}
	return v
}

// Write implements the peripherals.Peripheral interface.
func (u *USART) Write(offset int, size int, value uint64) {
	switch {
	case u.Touches("SR", offset, size):
		// RXNE and TC are cleared by writing zero. other bits are read only
		old := u.Regs.Get("SR")
		u.Regs.Write(offset, size, value)
		u.Regs.Set("SR", old&(u.Regs.Get("SR")|^uint64(srRXNE|srTC)))
	case u.Touches("DR", offset, size):
		u.Regs.Write(offset, size, value)
		u.outbound = append(u.outbound, uint8(u.Regs.Get("DR")))
		u.Regs.SetBits("SR", srTXE|srTC)
	default:
		u.Regs.Write(offset, size, value)
	}
}

// Step implements the peripherals.Peripheral interface.
func (u *USART) Step() {
	if len(u.inbound) > 0 && !u.Regs.IsSet("SR", srRXNE) {
		u.shift++
		if u.shift >= u.shiftDelay() {
			u.shift = 0
			u.Regs.Set("DR", uint64(u.inbound[0]))
			u.inbound = u.inbound[1:]
			u.Regs.SetBits("SR", srRXNE)
		}
	}

	sr := u.Regs.Get("SR")
	cr1 := u.Regs.Get("CR1")
	if (cr1&cr1RXNEIE != 0 && sr&srRXNE != 0) ||
		(cr1&cr1TXEIE != 0 && sr&srTXE != 0) ||
		(cr1&cr1TCIE != 0 && sr&srTC != 0) {
		u.Raise(0)
	}
}

func (u *USART) shiftDelay() int {
	if env := u.Env(); env != nil {
		return env.Prefs.USARTShiftDelay.Get().(int)
	}
	return 1
}

// Reset implements the peripherals.Peripheral interface.
func (u *USART) Reset() {
	u.Base.Reset()
	u.outbound = u.outbound[:0]
	u.inbound = u.inbound[:0]
	u.shift = 0
}

// Send implements the peripherals.Stream interface.
func (u *USART) Send(data []byte) {
	u.inbound = append(u.inbound, data...)
}

// Recv implements the peripherals.Stream interface.
func (u *USART) Recv() []byte {
	d := u.outbound
	u.outbound = nil
	return d
}
