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

package tim_test

import (
	"testing"

	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/tim"
	"github.com/jetsetilly/hwperiph/test"
)

const (
	cr1  = 0x00
	dier = 0x0c
	sr   = 0x10
	egr  = 0x14
	cnt  = 0x24
	psc  = 0x28
	arr  = 0x2c
)

type irqs struct {
	raised []int
}

func (r *irqs) ReadBus(_ uint32, _ int) (uint64, error) { return 0, nil }
func (r *irqs) WriteBus(_ uint32, _ int, _ uint64) error { return nil }
func (r *irqs) Raise(irq int) { r.raised = append(r.raised, irq) }

func TestCounter(t *testing.T) {
	tm := tim.New32(peripherals.Config{Label: "tim2", Type: "tim32", IRQs: []int{28}})
	test.ExpectEquality(t, tm.Read(arr, 4), uint64(0xffffffff))

	tm.Write(cr1, 4, 1)

	const N = 1000
	for range N {
		tm.Step()
	}
	test.ExpectEquality(t, tm.Read(cnt, 4), uint64(N))
}

func TestPrescaler(t *testing.T) {
	tm := tim.New16(peripherals.Config{Label: "tim3", Type: "tim", IRQs: []int{29}})
	tm.Write(psc, 4, 3)
	tm.Write(cr1, 4, 1)
	for range 12 {
		tm.Step()
	}
	test.ExpectEquality(t, tm.Read(cnt, 4), uint64(3))
}

func TestUpdateEvent(t *testing.T) {
	tm := tim.New16(peripherals.Config{Label: "tim3", Type: "tim", IRQs: []int{29}})
	r := &irqs{}
	tm.Plumb(r)

	tm.Write(arr, 4, 4)
	tm.Write(dier, 4, 1)
	tm.Write(cr1, 4, 1)

	for range 4 {
		tm.Step()
	}
	test.ExpectEquality(t, tm.Read(cnt, 4), uint64(4))
	test.ExpectEquality(t, len(r.raised), 0)

	tm.Step()
	test.ExpectEquality(t, tm.Read(cnt, 4), uint64(0))
	test.ExpectEquality(t, tm.Read(sr, 4), uint64(1))
	test.DemandEquality(t, len(r.raised), 1)
	test.ExpectEquality(t, r.raised[0], 29)

	tm.Write(sr, 4, 0)
	test.ExpectEquality(t, tm.Read(sr, 4), uint64(0))
}

func TestDownCounter(t *testing.T) {
	tm := tim.New16(peripherals.Config{Label: "tim4", Type: "tim"})
	tm.Write(arr, 4, 2)
	tm.Write(cr1, 4, 1<<4|1)
	tm.Step()
	test.ExpectEquality(t, tm.Read(cnt, 4), uint64(2))
	tm.Step()
	tm.Step()
	test.ExpectEquality(t, tm.Read(cnt, 4), uint64(0))
}

func TestGenerateUpdate(t *testing.T) {
	tm := tim.New16(peripherals.Config{Label: "tim4", Type: "tim"})
	tm.Write(cnt, 4, 0x1234)
	tm.Write(egr, 4, 1)
	test.ExpectEquality(t, tm.Read(cnt, 4), uint64(0))
	test.ExpectEquality(t, tm.Read(egr, 4), uint64(0))
	test.ExpectEquality(t, tm.Read(sr, 4), uint64(1))

	// 16 bit counter
	tm.Write(cnt, 4, 0x12345)
	test.ExpectEquality(t, tm.Read(cnt, 4), uint64(0x2345))
}
