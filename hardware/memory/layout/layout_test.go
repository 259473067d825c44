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

package layout_test

import (
	"testing"

	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/test"
)

var usartLike = layout.New(
	layout.Register("SR", 0x00, 0xc0),
	layout.Register("DR", 0x04, 0),
	layout.Register("BRR", 0x08, 0),
	layout.Register("CR1", 0x0c, 0),
)

// a register and its two halves
var aliased = layout.New(
	layout.Field{Name: "CR", Offset: 0, Size: 4},
	layout.Field{Name: "CRL", Offset: 0, Size: 2},
	layout.Field{Name: "CRH", Offset: 2, Size: 2},
	layout.Field{Name: "SR", Offset: 4, Size: 1},
)

func TestFootprint(t *testing.T) {
	test.ExpectEquality(t, usartLike.Footprint(), 0x10)
	test.ExpectEquality(t, aliased.Footprint(), 5)
	test.ExpectEquality(t, len(usartLike.Fields()), 4)
}

func TestResolveWholeField(t *testing.T) {
	test.ExpectEquality(t, usartLike.Resolve(0x04, 4), "DR")
	test.ExpectEquality(t, usartLike.Resolve(0x00, 4), "SR")
}

func TestResolvePartialField(t *testing.T) {
	test.ExpectEquality(t, usartLike.Resolve(0x04, 1), "DR[0:1]")
	test.ExpectEquality(t, usartLike.Resolve(0x05, 2), "DR[1:3]")
	test.ExpectEquality(t, usartLike.Resolve(0x0f, 1), "CR1[3:4]")
}

func TestResolveSpanning(t *testing.T) {
	test.ExpectEquality(t, usartLike.Resolve(0x02, 4), "SR[2:4],DR[0:2]")
	test.ExpectEquality(t, usartLike.Resolve(0x04, 8), "DR,BRR")
	test.ExpectEquality(t, usartLike.Resolve(0, usartLike.Footprint()), "SR,DR,BRR,CR1")
}

func TestResolveOverlapping(t *testing.T) {
	test.ExpectEquality(t, aliased.Resolve(0, 4), "CR,CRL,CRH")
	test.ExpectEquality(t, aliased.Resolve(1, 2), "CR[1:3],CRL[1:2],CRH[0:1]")
	test.ExpectEquality(t, aliased.Resolve(3, 2), "CR[3:4],CRH[1:2],SR")
}

func TestResolveEmpty(t *testing.T) {
	test.ExpectEquality(t, usartLike.Resolve(0x04, 0), "")
	test.ExpectEquality(t, usartLike.Resolve(0x04, -1), "")
	test.ExpectEquality(t, usartLike.Resolve(0x10, 4), "")
	test.ExpectEquality(t, usartLike.Resolve(-4, 4), "")
}

// every field that overlaps an access must be named in the resolution.
// partial annotations must lie within the field.
func TestResolveNeverOmits(t *testing.T) {
	for o := 0; o < aliased.Footprint(); o++ {
		for s := 1; o+s <= aliased.Footprint(); s++ {
			r := aliased.Resolve(o, s)
			for _, f := range aliased.Fields() {
				overlap := o < f.End() && f.Offset < o+s
				named := false
				for _, part := range splitResolution(r) {
					if part == f.Name || (len(part) > len(f.Name) && part[:len(f.Name)+1] == f.Name+"[") {
						named = true
					}
				}
				test.ExpectEquality(t, named, overlap, o, s, f.Name)
			}
		}
	}
}

func splitResolution(r string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(r); i++ {
		if r[i] == ',' {
			parts = append(parts, r[start:i])
			start = i + 1
		}
	}
	return append(parts, r[start:])
}

func TestInField(t *testing.T) {
	dr, ok := usartLike.Field("DR")
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, dr.InField(0x04, 4))
	test.ExpectSuccess(t, dr.InField(0x05, 1))
	test.ExpectFailure(t, dr.InField(0x03, 2))
	test.ExpectFailure(t, dr.InField(0x06, 4))

	test.ExpectSuccess(t, dr.Overlaps(0x03, 2))
	test.ExpectSuccess(t, dr.Overlaps(0x07, 4))
	test.ExpectFailure(t, dr.Overlaps(0x08, 4))
	test.ExpectFailure(t, dr.Overlaps(0x04, 0))

	f, ok := usartLike.Containing(0x09, 2)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, f.Name, "BRR")

	_, ok = usartLike.Containing(0x03, 2)
	test.ExpectFailure(t, ok)
}

func TestMalformed(t *testing.T) {
	panics := func(fields ...layout.Field) (p bool) {
		defer func() { p = recover() != nil }()
		layout.New(fields...)
		return false
	}

	test.ExpectSuccess(t, panics(layout.Field{Name: "A", Offset: 0, Size: 0}))
	test.ExpectSuccess(t, panics(layout.Field{Name: "A", Offset: -1, Size: 1}))
	test.ExpectSuccess(t, panics(layout.Field{Name: "A", Offset: 0, Size: 1, Reset: 0x100}))
	test.ExpectSuccess(t, panics(layout.Register("A", 0, 0), layout.Register("A", 4, 0)))
	test.ExpectFailure(t, panics(layout.Register("A", 0, 0), layout.Register("B", 4, 0)))
}
