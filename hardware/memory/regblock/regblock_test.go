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

package regblock_test

import (
	"testing"

	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/memory/regblock"
	"github.com/jetsetilly/hwperiph/test"
)

var regs = layout.New(
	layout.Register("SR", 0x00, 0xc0),
	layout.Register("DR", 0x04, 0),
	layout.Field{Name: "FLAGS", Offset: 0x08, Size: 1, Reset: 0x21},
)

func TestReset(t *testing.T) {
	b := regblock.New(regs)
	test.ExpectEquality(t, b.Get("SR"), uint64(0xc0))
	test.ExpectEquality(t, b.Get("DR"), uint64(0))
	test.ExpectEquality(t, b.Get("FLAGS"), uint64(0x21))

	b.Set("SR", 0)
	b.Set("DR", 0x1234)
	b.Reset()
	test.ExpectEquality(t, b.Get("SR"), uint64(0xc0))
	test.ExpectEquality(t, b.Get("DR"), uint64(0))
}

func TestLittleEndian(t *testing.T) {
	b := regblock.New(regs)
	b.Write(0x04, 4, 0x11223344)
	test.ExpectEquality(t, b.Read(0x04, 1), uint64(0x44))
	test.ExpectEquality(t, b.Read(0x05, 2), uint64(0x2233))
	test.ExpectEquality(t, b.Read(0x07, 1), uint64(0x11))

	b.Write(0x06, 1, 0xff)
	test.ExpectEquality(t, b.Get("DR"), uint64(0x11ff3344))
}

func TestOutOfBlock(t *testing.T) {
	b := regblock.New(regs)
	b.Write(0x08, 4, 0xaabbccdd)
	test.ExpectEquality(t, b.Read(0x08, 4), uint64(0xdd))
	test.ExpectEquality(t, b.Read(0x40, 4), uint64(0))
	test.ExpectEquality(t, b.Read(0x04, 0), uint64(0))
}

func TestBits(t *testing.T) {
	b := regblock.New(regs)
	b.ClearBits("SR", 0x80)
	test.ExpectEquality(t, b.Get("SR"), uint64(0x40))
	b.SetBits("SR", 0x20)
	test.ExpectEquality(t, b.Get("SR"), uint64(0x60))
	test.ExpectSuccess(t, b.IsSet("SR", 0x20))
	test.ExpectFailure(t, b.IsSet("SR", 0x80))
}
