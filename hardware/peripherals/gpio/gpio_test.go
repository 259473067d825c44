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

package gpio_test

import (
	"testing"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/gpio"
	"github.com/jetsetilly/hwperiph/test"
)

const (
	moder = 0x00
	idr   = 0x10
	odr   = 0x14
	bsrr  = 0x18
)

type hookRecord struct {
	calls []bool
}

func (r *hookRecord) hook(high bool) {
	r.calls = append(r.calls, high)
}

func newGPIO() peripherals.Peripheral {
	return gpio.New(peripherals.Config{Label: "gpioa", Type: "gpio"})
}

func TestPinHook(t *testing.T) {
	g := newGPIO()
	r := &hookRecord{}
	test.DemandSuccess(t, g.(peripherals.PinHooker).HookSet(5, r.hook))

	// pin 5 as output
	g.Write(moder, 4, 0x01<<10)
	test.ExpectEquality(t, len(r.calls), 0)

	g.Write(bsrr, 4, 1<<5)
	test.DemandEquality(t, len(r.calls), 1)
	test.ExpectEquality(t, r.calls[0], true)
	test.ExpectSuccess(t, g.(peripherals.PinHooker).Pin(5))

	// setting a pin that is already high does not call the hook
	g.Write(bsrr, 4, 1<<5)
	g.Write(odr, 4, 1<<5)
	test.ExpectEquality(t, len(r.calls), 1)

	g.Write(bsrr, 4, 1<<21)
	test.DemandEquality(t, len(r.calls), 2)
	test.ExpectEquality(t, r.calls[1], false)
}

func TestHookOrder(t *testing.T) {
	g := newGPIO()
	var order []int
	h := g.(peripherals.PinHooker)
	test.DemandSuccess(t, h.HookSet(3, func(_ bool) { order = append(order, 1) }))
	test.DemandSuccess(t, h.HookSet(3, func(_ bool) { order = append(order, 2) }))
	test.DemandSuccess(t, h.HookSet(4, func(_ bool) { order = append(order, 3) }))

	g.Write(moder, 4, 0x01<<6)
	g.Write(odr, 4, 1<<3)
	test.DemandEquality(t, len(order), 2)
	test.ExpectEquality(t, order[0], 1)
	test.ExpectEquality(t, order[1], 2)
}

func TestBSRRPriority(t *testing.T) {
	g := newGPIO()
	g.Write(moder, 4, 0x5555)
	g.Write(bsrr, 4, 1<<16|1)
	test.ExpectEquality(t, g.Read(odr, 4), uint64(1))
	test.ExpectEquality(t, g.Read(bsrr, 4), uint64(0))
	test.ExpectEquality(t, g.Read(idr, 4), uint64(1))
}

func TestInput(t *testing.T) {
	g := newGPIO()
	h := g.(peripherals.PinHooker)
	r := &hookRecord{}
	test.DemandSuccess(t, h.HookSet(0, r.hook))

	test.DemandSuccess(t, h.SetPin(0, true))
	test.ExpectEquality(t, g.Read(idr, 4), uint64(1))
	test.ExpectEquality(t, len(r.calls), 1)

	// an output pin ignores the external level
	g.Write(moder, 4, 0x01)
	test.ExpectEquality(t, g.Read(idr, 4), uint64(0))
	test.ExpectEquality(t, len(r.calls), 2)

	// IDR is read only
	g.Write(idr, 4, 0xffff)
	test.ExpectEquality(t, g.Read(idr, 4), uint64(0))
}

func TestInvalidPin(t *testing.T) {
	g := newGPIO()
	h := g.(peripherals.PinHooker)
	err := h.HookSet(16, func(_ bool) {})
	test.ExpectSuccess(t, curated.Is(err, gpio.InvalidPin))
	test.ExpectFailure(t, h.SetPin(-1, true))
	test.ExpectFailure(t, h.Pin(99))
}

func TestTrace(t *testing.T) {
	g := newGPIO().(*gpio.GPIO)
	g.Write(moder, 4, 0x01<<10)
	g.Step()
	g.Write(bsrr, 4, 1<<5)
	g.Step()

	tr, err := g.Trace(5)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, tr.Rising())
	test.ExpectEquality(t, g.String(), "gpioa: 0000000000100000")
}
