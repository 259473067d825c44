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

// Package i2c implements the inter-integrated circuit interface of the
// STM32F4 family in master mode.
//
// A transaction begins with the START bit of CR1. The first byte written to
// the data register is the address of the target device, in the eight bit
// form with the read/write bit in bit zero. If a connected device answers to
// the address then the ADDR flag is set, otherwise the acknowledge failure
// flag (AF) is set. Subsequent bytes are routed to and from the device until
// the STOP bit of CR1 is set.
package i2c

import (
	"fmt"

	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
)

// the register layout shared by every I2C.
var i2cLayout = layout.New(
	layout.Register("CR1", 0x00, 0),
	layout.Register("CR2", 0x04, 0),
	layout.Register("OAR1", 0x08, 0),
	layout.Register("OAR2", 0x0c, 0),
	layout.Register("DR", 0x10, 0),
	layout.Register("SR1", 0x14, 0),
	layout.Register("SR2", 0x18, 0),
	layout.Register("CCR", 0x1c, 0),
	layout.Register("TRISE", 0x20, 0x02),
	layout.Register("FLTR", 0x24, 0),
)

const (
	cr1START = 1 << 8
	cr1STOP  = 1 << 9
)

const (
	cr2ITERREN = 1 << 8
	cr2ITEVTEN = 1 << 9
	cr2ITBUFEN = 1 << 10
)

const (
	sr1SB   = 1 << 0
	sr1ADDR = 1 << 1
	sr1BTF  = 1 << 2
	sr1RXNE = 1 << 6
	sr1TXE  = 1 << 7
	sr1AF   = 1 << 10

	// error flags are cleared by writing zero
	sr1Errors = 0xff00
)

const (
	sr2MSL  = 1 << 0
	sr2BUSY = 1 << 1
	sr2TRA  = 1 << 2
)

// the state of the current transaction.
type state int

const (
	idle state = iota
	address
	transmit
	receive
)

func (s state) String() string {
	switch s {
	case idle:
		return "idle"
	case address:
		return "address"
	case transmit:
		return "transmit"
	case receive:
		return "receive"
	}
	return "unknown"
}

// I2C is the I2C bus peripheral. It implements the peripherals.Connector
// interface.
type I2C struct {
	peripherals.Base

	devices []peripherals.Device
	target  peripherals.Device
	state   state
}

// New is the preferred method of initialisation for the I2C type.
func New(cfg peripherals.Config) peripherals.Peripheral {
	return &I2C{
		Base: peripherals.NewBase(cfg, i2cLayout),
	}
}

func (c *I2C) String() string {
	return fmt.Sprintf("%s: %s sr1=%04x sr2=%04x devices=%d", c.Label(), c.state, c.Regs.Get("SR1"), c.Regs.Get("SR2"), len(c.devices))
}

// Read implements the peripherals.Peripheral interface.
func (c *I2C) Read(offset int, size int) uint64 {
	v := c.Regs.Read(offset, size)

	switch {
	case c.Touches("DR", offset, size):
		c.Regs.ClearBits("SR1", sr1RXNE|sr1BTF)
	case c.Touches("SR2", offset, size):
		// reading SR2 after SR1 completes the address phase
		c.Regs.ClearBits("SR1", sr1ADDR)
	}

	return v
}

// Write implements the peripherals.Peripheral interface.
func (c *I2C) Write(offset int, size int, value uint64) {
	switch {
	case c.Touches("SR1", offset, size):
		old := c.Regs.Get("SR1")
		c.Regs.Write(offset, size, value)
		c.Regs.Set("SR1", old&(c.Regs.Get("SR1")|^uint64(sr1Errors)))
	case c.Touches("SR2", offset, size):
		// read only
	case c.Touches("CR1", offset, size):
		c.Regs.Write(offset, size, value)
		cr1 := c.Regs.Get("CR1")
		if cr1&cr1START != 0 {
			c.start()
		}
		if cr1&cr1STOP != 0 {
			c.stop()
		}
	case c.Touches("DR", offset, size):
		c.Regs.Write(offset, size, value)
		c.data(uint8(c.Regs.Get("DR")))
	default:
		c.Regs.Write(offset, size, value)
	}
}

func (c *I2C) start() {
	c.Regs.ClearBits("CR1", cr1START)
	c.Regs.SetBits("SR1", sr1SB)
	c.Regs.SetBits("SR2", sr2MSL|sr2BUSY)
	c.state = address
}

func (c *I2C) stop() {
	c.Regs.ClearBits("CR1", cr1STOP)
	c.Regs.ClearBits("SR2", sr2MSL|sr2BUSY|sr2TRA)
	c.Regs.ClearBits("SR1", sr1TXE|sr1BTF|sr1RXNE)
	if st, ok := c.target.(peripherals.Stopper); ok {
		st.Stop()
	}
	c.target = nil
	c.state = idle
}

func (c *I2C) data(v uint8) {
	switch c.state {
	case address:
		c.Regs.ClearBits("SR1", sr1SB)

		read := v&0x01 == 0x01
		c.target = nil
		for _, d := range c.devices {
			if d.Address()&^0x01 == int(v&^0x01) {
				c.target = d
				break // for loop
			}
		}

		if c.target == nil {
			c.Regs.SetBits("SR1", sr1AF)
			c.state = idle
			c.Logf("no device at address %#02x", v&^0x01)
			return
		}

		c.Regs.SetBits("SR1", sr1ADDR)
		if st, ok := c.target.(peripherals.Starter); ok {
			st.Start(read)
		}

		if read {
			c.Regs.ClearBits("SR2", sr2TRA)
			c.state = receive
		} else {
			c.Regs.SetBits("SR2", sr2TRA)
			c.Regs.SetBits("SR1", sr1TXE)
			c.state = transmit
		}

	case transmit:
		c.target.Send(v)
		c.Regs.SetBits("SR1", sr1TXE|sr1BTF)
	}
}

// Step implements the peripherals.Peripheral interface.
func (c *I2C) Step() {
	// data is received once the address phase has been completed
	if c.state == receive && !c.Regs.IsSet("SR1", sr1ADDR|sr1RXNE) {
		var v uint8 = 0xff
		if r, ok := c.target.(peripherals.Receiver); ok {
			v = r.Recv()
		}
		c.Regs.Set("DR", uint64(v))
		c.Regs.SetBits("SR1", sr1RXNE)
	}

	cr2 := c.Regs.Get("CR2")
	sr1 := c.Regs.Get("SR1")

	// event interrupt
	if cr2&cr2ITEVTEN != 0 {
		if sr1&(sr1SB|sr1ADDR|sr1BTF) != 0 ||
			(cr2&cr2ITBUFEN != 0 && sr1&(sr1TXE|sr1RXNE) != 0) {
			c.Raise(0)
		}
	}

	// error interrupt
	if cr2&cr2ITERREN != 0 && sr1&sr1Errors != 0 {
		c.Raise(1)
	}
}

// Reset implements the peripherals.Peripheral interface.
func (c *I2C) Reset() {
	c.Base.Reset()
	c.target = nil
	c.state = idle
}

// Connect implements the peripherals.Connector interface. More than one
// device can be connected to the bus. Devices are matched by address in the
// order they were connected.
func (c *I2C) Connect(dev peripherals.Device) error {
	c.devices = append(c.devices, dev)
	c.Logf("device connected at address %#02x", dev.Address())
	return nil
}
