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

package rcc_test

import (
	"testing"

	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/rcc"
	"github.com/jetsetilly/hwperiph/test"
)

const (
	cr   = 0x00
	cfgr = 0x08
	bdcr = 0x70
	csr  = 0x74
)

func TestReadyFlags(t *testing.T) {
	r := rcc.New(peripherals.Config{Label: "rcc", Type: "rcc"})
	test.ExpectEquality(t, r.Read(cr, 4), uint64(0x83))
	test.ExpectEquality(t, r.Region().Size(), uint32(0x90))

	// HSE on
	r.Write(cr, 4, r.Read(cr, 4)|1<<16)
	test.ExpectEquality(t, r.Read(cr, 4)&(1<<17), uint64(1<<17))

	// PLL on
	r.Write(cr, 4, r.Read(cr, 4)|1<<24)
	test.ExpectEquality(t, r.Read(cr, 4)&(1<<25), uint64(1<<25))

	// HSE off
	r.Write(cr, 4, r.Read(cr, 4)&^(1<<16))
	test.ExpectEquality(t, r.Read(cr, 4)&(1<<17), uint64(0))

	r.Write(bdcr, 4, 1)
	test.ExpectEquality(t, r.Read(bdcr, 4), uint64(0x03))
	r.Write(csr, 4, r.Read(csr, 4)|1)
	test.ExpectEquality(t, r.Read(csr, 4), uint64(0x0e000003))
}

func TestClockSwitch(t *testing.T) {
	r := rcc.New(peripherals.Config{Label: "rcc", Type: "rcc"})
	r.Write(cfgr, 4, 0x02)
	test.ExpectEquality(t, r.Read(cfgr, 4), uint64(0x0a))

	// a byte write to the switch field
	r.Write(cfgr, 1, 0x01)
	test.ExpectEquality(t, r.Read(cfgr, 4), uint64(0x05))
}
