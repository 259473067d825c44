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

package eeprom_test

import (
	"os"
	"testing"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/hardware/devices/eeprom"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/i2c"
	"github.com/jetsetilly/hwperiph/test"
)

func newEEPROM(t *testing.T) *eeprom.EEPROM {
	t.Helper()
	ee, err := eeprom.NewEEPROM(nil, eeprom.DefaultAddress, eeprom.DefaultSize, eeprom.DefaultPageSize, "")
	test.DemandSuccess(t, err)
	return ee
}

func TestErased(t *testing.T) {
	ee := newEEPROM(t)
	test.ExpectEquality(t, ee.Address(), 0xa0)
	test.ExpectEquality(t, len(ee.Data), eeprom.DefaultSize)
	test.ExpectEquality(t, ee.Data[0], uint8(0xff))
	test.ExpectSuccess(t, ee.IsSaved())
}

func TestWriteAndRead(t *testing.T) {
	ee := newEEPROM(t)

	ee.Start(false)
	ee.Send(0x01)
	ee.Send(0x23)
	ee.Send('h')
	ee.Send('i')
	ee.Stop()

	test.ExpectEquality(t, ee.Data[0x123], uint8('h'))
	test.ExpectEquality(t, ee.Data[0x124], uint8('i'))
	test.ExpectFailure(t, ee.IsSaved())

	// set the address without writing
	ee.Start(false)
	ee.Send(0x01)
	ee.Send(0x23)
	ee.Start(true)
	test.ExpectEquality(t, ee.Recv(), uint8('h'))
	test.ExpectEquality(t, ee.Recv(), uint8('i'))
	test.ExpectEquality(t, ee.Recv(), uint8(0xff))
	ee.Stop()

	// no data outside of a read
	test.ExpectEquality(t, ee.Recv(), uint8(0xff))
}

func TestPageWrap(t *testing.T) {
	ee := newEEPROM(t)

	ee.Start(false)
	ee.Send(0x00)
	ee.Send(0x7f)
	ee.Send(0x01)
	ee.Send(0x02)
	ee.Stop()

	// the second byte wraps to the start of the page
	test.ExpectEquality(t, ee.Data[0x7f], uint8(0x01))
	test.ExpectEquality(t, ee.Data[0x40], uint8(0x02))
	test.ExpectEquality(t, ee.Data[0x80], uint8(0xff))
}

func TestReadRollover(t *testing.T) {
	ee := newEEPROM(t)
	ee.Poke(eeprom.DefaultSize-1, 0x11)
	ee.Poke(0, 0x22)

	ee.Start(false)
	ee.Send(0x7f)
	ee.Send(0xff)
	ee.Start(true)
	test.ExpectEquality(t, ee.Recv(), uint8(0x11))
	test.ExpectEquality(t, ee.Recv(), uint8(0x22))
}

func TestThroughI2C(t *testing.T) {
	const (
		cr1 = 0x00
		dr  = 0x10
		sr1 = 0x14
		sr2 = 0x18
	)

	ee := newEEPROM(t)
	p := i2c.New(peripherals.Config{Label: "i2c1", Type: "i2c"})
	test.DemandSuccess(t, p.(peripherals.Connector).Connect(ee))

	// write "ok" to 0x0200
	p.Write(cr1, 4, 0x0100)
	p.Write(dr, 1, eeprom.DefaultAddress)
	p.Read(sr1, 4)
	p.Read(sr2, 4)
	p.Write(dr, 1, 0x02)
	p.Write(dr, 1, 0x00)
	p.Write(dr, 1, 'o')
	p.Write(dr, 1, 'k')
	p.Write(cr1, 4, 0x0200)

	test.ExpectEquality(t, string(ee.Data[0x200:0x202]), "ok")

	// random read with a repeated start
	p.Write(cr1, 4, 0x0100)
	p.Write(dr, 1, eeprom.DefaultAddress)
	p.Read(sr1, 4)
	p.Read(sr2, 4)
	p.Write(dr, 1, 0x02)
	p.Write(dr, 1, 0x00)
	p.Write(cr1, 4, 0x0100)
	p.Write(dr, 1, eeprom.DefaultAddress|0x01)
	p.Read(sr1, 4)
	p.Read(sr2, 4)

	var got []byte
	for range 2 {
		p.Step()
		got = append(got, byte(p.Read(dr, 1)))
	}
	p.Write(cr1, 4, 0x0200)

	test.ExpectEquality(t, string(got), "ok")
}

func TestPersistence(t *testing.T) {
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	ee, err := eeprom.NewEEPROM(nil, eeprom.DefaultAddress, 0x100, 0x10, "test.bin")
	test.DemandSuccess(t, err)
	ee.Poke(0x10, 0x55)
	test.ExpectFailure(t, ee.IsSaved())
	test.DemandSuccess(t, ee.Save())
	test.ExpectSuccess(t, ee.IsSaved())

	ld, err := eeprom.NewEEPROM(nil, eeprom.DefaultAddress, 0x100, 0x10, "test.bin")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, ld.Data[0x10], uint8(0x55))
	test.ExpectEquality(t, ld.Data[0x11], uint8(0xff))

	test.ExpectFailure(t, newEEPROM(t).Save())
}

func TestGeometry(t *testing.T) {
	for _, g := range [][2]int{
		{0x3000, 0x40},
		{0x20000, 0x40},
		{0, 0x40},
		{0x8000, 0x30},
		{0x8000, 0},
		{0x100, 0x200},
	} {
		_, err := eeprom.NewEEPROM(nil, eeprom.DefaultAddress, g[0], g[1], "")
		test.ExpectSuccess(t, curated.Is(err, eeprom.InvalidGeometry), g)
	}

	// the largest size rolls over at the end of the address space
	ee, err := eeprom.NewEEPROM(nil, eeprom.DefaultAddress, 0x10000, 0x80, "")
	test.DemandSuccess(t, err)
	ee.Poke(0x0000, 0x12)
	ee.Poke(0xffff, 0x34)
	ee.Start(false)
	ee.Send(0xff)
	ee.Send(0xff)
	ee.Start(true)
	test.ExpectEquality(t, ee.Recv(), uint8(0x34))
	test.ExpectEquality(t, ee.Recv(), uint8(0x12))
}
