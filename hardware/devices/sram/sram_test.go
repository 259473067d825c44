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

package sram_test

import (
	"testing"

	"github.com/jetsetilly/hwperiph/hardware/devices/sram"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/spi"
	"github.com/jetsetilly/hwperiph/test"
)

// exchange sends each byte and returns the bytes received in reply
func exchange(r *sram.SRAM, data ...byte) []byte {
	var rx []byte
	for _, v := range data {
		r.Send(v)
		rx = append(rx, r.Recv())
	}
	return rx
}

func TestWriteAndRead(t *testing.T) {
	r := sram.NewSRAM(sram.DefaultSize)

	r.Start(false)
	exchange(r, sram.WRITE, 0x10, 0x00, 'a', 'b', 'c')
	r.Stop()
	test.ExpectEquality(t, string(r.Data[0x1000:0x1003]), "abc")

	r.Start(false)
	rx := exchange(r, sram.READ, 0x10, 0x01, 0, 0)
	r.Stop()
	test.ExpectEquality(t, string(rx), "\xff\xff\xffbc")
}

func TestRollover(t *testing.T) {
	r := sram.NewSRAM(0x100)
	r.Data[0] = 0x42

	r.Start(false)
	exchange(r, sram.WRITE, 0x00, 0xff, 0x41)
	r.Stop()
	test.ExpectEquality(t, r.Data[0xff], uint8(0x41))

	r.Start(false)
	rx := exchange(r, sram.READ, 0x00, 0xff, 0, 0)
	r.Stop()
	test.ExpectEquality(t, rx[3], uint8(0x41))
	test.ExpectEquality(t, rx[4], uint8(0x42))
}

func TestStatus(t *testing.T) {
	r := sram.NewSRAM(sram.DefaultSize)

	r.Start(false)
	exchange(r, sram.WRSR, 0x40)
	r.Stop()
	test.ExpectEquality(t, r.Status, uint8(0x40))

	r.Start(false)
	rx := exchange(r, sram.RDSR, 0)
	r.Stop()
	test.ExpectEquality(t, rx[1], uint8(0x40))
}

func TestDeselected(t *testing.T) {
	r := sram.NewSRAM(sram.DefaultSize)

	// bytes sent without chip select are ignored
	exchange(r, sram.WRITE, 0x00, 0x00, 0x99)
	test.ExpectEquality(t, r.Data[0], uint8(0))

	// as are unknown instructions
	r.Start(false)
	exchange(r, 0x9f, sram.WRITE, 0x00, 0x00, 0x99)
	r.Stop()
	test.ExpectEquality(t, r.Data[0], uint8(0))
}

func TestThroughSPI(t *testing.T) {
	const (
		cr1 = 0x00
		dr  = 0x0c
	)

	r := sram.NewSRAM(sram.DefaultSize)
	p := spi.New(peripherals.Config{Label: "spi1", Type: "spi"})
	test.DemandSuccess(t, p.(peripherals.Connector).Connect(r))

	transaction := func(data ...byte) []byte {
		var rx []byte
		p.Write(cr1, 4, 0x40)
		for _, v := range data {
			p.Write(dr, 1, uint64(v))
			rx = append(rx, byte(p.Read(dr, 1)))
		}
		p.Write(cr1, 4, 0)
		return rx
	}

	transaction(sram.WRITE, 0x00, 0x20, 'x', 'y')
	rx := transaction(sram.READ, 0x00, 0x20, 0, 0)
	test.ExpectEquality(t, string(rx[3:]), "xy")

	// a second device cannot be connected
	test.ExpectFailure(t, p.(peripherals.Connector).Connect(sram.NewSRAM(0x100)))
}
