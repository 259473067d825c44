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

package usart_test

import (
	"testing"

	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/usart"
	"github.com/jetsetilly/hwperiph/test"
)

const (
	sr  = 0x00
	dr  = 0x04
	cr1 = 0x0c
)

type irqs struct {
	raised int
}

func (r *irqs) ReadBus(_ uint32, _ int) (uint64, error) { return 0, nil }
func (r *irqs) WriteBus(_ uint32, _ int, _ uint64) error { return nil }
func (r *irqs) Raise(_ int) { r.raised++ }

func newUSART() (peripherals.Peripheral, *irqs) {
	u := usart.New(peripherals.Config{Label: "usart2", Type: "usart", IRQs: []int{38}})
	r := &irqs{}
	u.Plumb(r)
	return u, r
}

func TestTransmit(t *testing.T) {
	u, _ := newUSART()
	test.ExpectEquality(t, u.Read(sr, 4), uint64(0xc0))

	for _, c := range []byte("hello\n") {
		u.Write(dr, 4, uint64(c))
	}
	test.ExpectEquality(t, string(u.(peripherals.Stream).Recv()), "hello\n")

	// recv drains the buffer
	test.ExpectEquality(t, len(u.(peripherals.Stream).Recv()), 0)
}

func TestReceive(t *testing.T) {
	u, _ := newUSART()
	u.(peripherals.Stream).Send([]byte("AB"))

	// nothing is visible until the peripheral has been stepped
	test.ExpectEquality(t, u.Read(sr, 4)&0x20, uint64(0))

	u.Step()
	test.ExpectEquality(t, u.Read(sr, 4)&0x20, uint64(0x20))
	test.ExpectEquality(t, u.Read(dr, 4), uint64('A'))
	test.ExpectEquality(t, u.Read(sr, 4)&0x20, uint64(0))

	u.Step()
	test.ExpectEquality(t, u.Read(dr, 1), uint64('B'))

	u.Step()
	test.ExpectEquality(t, u.Read(sr, 4)&0x20, uint64(0))
}

// a byte is not shifted into the data register until the previous byte has
// been read.
func TestReceiveOverrun(t *testing.T) {
	u, _ := newUSART()
	u.(peripherals.Stream).Send([]byte("XY"))
	u.Step()
	u.Step()
	u.Step()
	test.ExpectEquality(t, u.Read(dr, 4), uint64('X'))
	u.Step()
	test.ExpectEquality(t, u.Read(dr, 4), uint64('Y'))
}

func TestStatusClear(t *testing.T) {
	u, _ := newUSART()
	u.Write(dr, 4, 'a')
	test.ExpectEquality(t, u.Read(sr, 4), uint64(0xc0))

	// writing zero to TC clears it. TXE is read only
	u.Write(sr, 4, 0)
	test.ExpectEquality(t, u.Read(sr, 4), uint64(0x80))
}

func TestInterrupt(t *testing.T) {
	u, r := newUSART()
	u.Write(cr1, 4, 0x2000|0x20)
	u.Step()
	test.ExpectEquality(t, r.raised, 0)

	u.(peripherals.Stream).Send([]byte("z"))
	u.Step()
	test.ExpectEquality(t, r.raised, 1)

	u.Read(dr, 4)
	u.Step()
	test.ExpectEquality(t, r.raised, 1)
}

func TestReset(t *testing.T) {
	u, _ := newUSART()
	u.Write(dr, 4, 'a')
	u.(peripherals.Stream).Send([]byte("b"))
	u.Reset()
	u.Step()
	test.ExpectEquality(t, u.Read(sr, 4), uint64(0xc0))
	test.ExpectEquality(t, len(u.(peripherals.Stream).Recv()), 0)
}
