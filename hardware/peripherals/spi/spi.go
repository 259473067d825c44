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

// Package spi implements the serial peripheral interface of the STM32F4
// family in master mode.
//
// Every byte written to the data register is exchanged with the connected
// device. If no device is connected the byte is exchanged with the queue of
// bytes given to Send(), or looped back if the queue is empty.
package spi

import (
	"fmt"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
)

// the register layout shared by every SPI.
var spiLayout = layout.New(
	layout.Register("CR1", 0x00, 0),
	layout.Register("CR2", 0x04, 0),
	layout.Register("SR", 0x08, 0x02),
	layout.Register("DR", 0x0c, 0),
	layout.Register("CRCPR", 0x10, 0x07),
	layout.Register("RXCRCR", 0x14, 0),
	layout.Register("TXCRCR", 0x18, 0),
	layout.Register("I2SCFGR", 0x1c, 0),
	layout.Register("I2SPR", 0x20, 0x02),
)

const (
	srRXNE = 1 << 0
	srTXE  = 1 << 1
)

const (
	cr1SPE = 1 << 6
)

const (
	cr2RXNEIE = 1 << 6
	cr2TXEIE  = 1 << 7
)

// SPI is the serial peripheral interface. It implements the
// peripherals.Stream and peripherals.Connector interfaces.
type SPI struct {
	peripherals.Base

	dev peripherals.Device

	outbound []byte
	inbound  []byte
}

// New is the preferred method of initialisation for the SPI type.
func New(cfg peripherals.Config) peripherals.Peripheral {
	return &SPI{
		Base: peripherals.NewBase(cfg, spiLayout),
	}
}

func (s *SPI) String() string {
	return fmt.Sprintf("%s: cr1=%04x sr=%02x tx=%d", s.Label(), s.Regs.Get("CR1"), s.Regs.Get("SR"), len(s.outbound))
}

// Read implements the peripherals.Peripheral interface.
func (s *SPI) Read(offset int, size int) uint64 {
	v := s.Regs.Read(offset, size)
	if s.Touches("DR", offset, size) {
		s.Regs.ClearBits("SR", srRXNE)
	}
	return v
}

// Write implements the peripherals.Peripheral interface.
func (s *SPI) Write(offset int, size int, value uint64) {
	switch {
	case s.Touches("SR", offset, size):
		// status bits are read only
	case s.Touches("CR1", offset, size):
		old := s.Regs.Get("CR1")
		s.Regs.Write(offset, size, value)
		cr1 := s.Regs.Get("CR1")
		if old&cr1SPE == 0 && cr1&cr1SPE != 0 {
			if st, ok := s.dev.(peripherals.Starter); ok {
				st.Start(false)
			}
		} else if old&cr1SPE != 0 && cr1&cr1SPE == 0 {
			if st, ok := s.dev.(peripherals.Stopper); ok {
				st.Stop()
			}
		}
	case s.Touches("DR", offset, size):
		s.Regs.Write(offset, size, value)
		s.exchange(uint8(s.Regs.Get("DR")))
	default:
		s.Regs.Write(offset, size, value)
	}
}

func (s *SPI) exchange(tx uint8) {
	s.outbound = append(s.outbound, tx)

	rx := tx
	if s.dev != nil {
		s.dev.Send(tx)
		rx = 0xff
		if r, ok := s.dev.(peripherals.Receiver); ok {
			rx = r.Recv()
		}
	} else if len(s.inbound) > 0 {
		rx = s.inbound[0]
		s.inbound = s.inbound[1:]
	}

	s.Regs.Set("DR", uint64(rx))
	s.Regs.SetBits("SR", srRXNE|srTXE)
}

// Step implements the peripherals.Peripheral interface.
func (s *SPI) Step() {
	sr := s.Regs.Get("SR")
	cr2 := s.Regs.Get("CR2")
	if (cr2&cr2RXNEIE != 0 && sr&srRXNE != 0) || (cr2&cr2TXEIE != 0 && sr&srTXE != 0) {
		s.Raise(0)
	}
}

// Reset implements the peripherals.Peripheral interface.
func (s *SPI) Reset() {
	s.Base.Reset()
	s.outbound = s.outbound[:0]
	s.inbound = s.inbound[:0]
}

// Send implements the peripherals.Stream interface.
func (s *SPI) Send(data []byte) {
	s.inbound = append(s.inbound, data...)
}

// Recv implements the peripherals.Stream interface.
func (s *SPI) Recv() []byte {
	d := s.outbound
	s.outbound = nil
	return d
}

// Connect implements the peripherals.Connector interface. Only one device can
// be connected to an SPI peripheral.
func (s *SPI) Connect(dev peripherals.Device) error {
	if s.dev != nil {
		return curated.Errorf("spi: %s: device already connected", s.Label())
	}
	s.dev = dev
	s.Logf("device connected")
	return nil
}
