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

package peripherals_test

import (
	"testing"

	"github.com/jetsetilly/hwperiph/hardware/memory/layout"
	"github.com/jetsetilly/hwperiph/hardware/memory/memorymap"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/test"
)

var simpleLayout = layout.New(
	layout.Register("SR", 0x00, 0xc0),
	layout.Register("DR", 0x04, 0),
	layout.Register("BRR", 0x08, 0),
)

type simple struct {
	peripherals.Base
}

func newSimple(label string) *simple {
	return &simple{
		Base: peripherals.NewBase(peripherals.Config{Label: label, Type: "simple", IRQs: []int{7}}, simpleLayout),
	}
}

type raised struct {
	irqs []int
}

func (r *raised) ReadBus(_ uint32, _ int) (uint64, error) { return 0, nil }
func (r *raised) WriteBus(_ uint32, _ int, _ uint64) error { return nil }
func (r *raised) Raise(irq int) { r.irqs = append(r.irqs, irq) }

func TestBase(t *testing.T) {
	var p peripherals.Peripheral = newSimple("simple1")
	test.ExpectEquality(t, p.Label(), "simple1")
	test.ExpectEquality(t, p.Type(), "simple")
	test.ExpectEquality(t, p.Region().Size(), uint32(12))
	test.ExpectEquality(t, p.Read(0, 4), uint64(0xc0))

	p.Write(0x08, 4, 0x683)
	test.ExpectEquality(t, p.Read(0x08, 4), uint64(0x683))
	test.ExpectEquality(t, p.Read(0x08, 1), uint64(0x83))

	// stepping a peripheral with no time driven behaviour changes nothing
	for range 10 {
		p.Step()
	}
	test.ExpectEquality(t, p.Read(0x08, 4), uint64(0x683))

	p.Reset()
	test.ExpectEquality(t, p.Read(0x08, 4), uint64(0))
	test.ExpectEquality(t, p.String(), "simple1 (simple)")
}

func TestRaise(t *testing.T) {
	s := newSimple("simple1")

	// unplumbed peripherals raise nothing
	s.Raise(0)

	r := &raised{}
	s.Plumb(r)
	s.Raise(0)
	s.Raise(1)
	test.DemandEquality(t, len(r.irqs), 1)
	test.ExpectEquality(t, r.irqs[0], 7)
}

func TestRegion(t *testing.T) {
	s := newSimple("simple1")
	s.SetRegion(memorymap.Region{{Start: 0, End: 4}, {Start: 0x100, End: 0x108}})
	test.ExpectEquality(t, s.Region().Size(), uint32(12))
}

func TestNull(t *testing.T) {
	n := peripherals.NewNull(peripherals.Config{Label: "rtc", Type: "null"})
	test.ExpectEquality(t, n.Region().Size(), uint32(0x400))
	n.Write(0x10, 4, 0xffffffff)
	test.ExpectEquality(t, n.Read(0x10, 4), uint64(0))
	test.ExpectEquality(t, n.Layout().Resolve(0x10, 4), "")
}

func TestTraced(t *testing.T) {
	w := &test.CompareWriter{}
	s := newSimple("usart2")
	tr := peripherals.NewTraced(s, w)

	tr.Write(0x04, 4, 0x41)
	test.ExpectEquality(t, w.String(), "[USART2] [W] DR         = 0x41 ('A')\n")

	// the wrapped value is unchanged
	w.Clear()
	v := tr.Read(0x04, 4)
	test.ExpectEquality(t, v, uint64(0x41))
	test.ExpectEquality(t, w.String(), "[USART2] [R] DR         = 0x41 ('A')\n")

	// no annotation for non-printable values or non-data fields
	w.Clear()
	tr.Write(0x04, 1, 0x0a)
	tr.Read(0x00, 4)
	tr.Read(0x06, 2)
	lines := w.Lines()
	test.DemandEquality(t, len(lines), 3)
	test.ExpectEquality(t, lines[0], "[USART2] [W] DR[0:1]    = 0xa")
	test.ExpectEquality(t, lines[1], "[USART2] [R] SR         = 0xc0")
	test.ExpectEquality(t, lines[2], "[USART2] [R] DR[2:4]    = 0x0")

	test.ExpectEquality(t, tr.Unwrap(), peripherals.Peripheral(s))
}
