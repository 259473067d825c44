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

package board_test

import (
	"testing"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/hardware/board"
	"github.com/jetsetilly/hwperiph/test"
)

func TestGet(t *testing.T) {
	p, err := board.Get("STM32F411")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Name, "stm32f411")

	_, err = board.Get("atmega328")
	test.ExpectSuccess(t, curated.Is(err, board.UnknownBoard))

	names := board.Names()
	test.DemandEquality(t, len(names), 2)
	test.ExpectEquality(t, names[0], "stm32f407")
}

func TestEntries(t *testing.T) {
	f411, err := board.Get("stm32f411")
	test.DemandSuccess(t, err)
	f407, err := board.Get("stm32f407")
	test.DemandSuccess(t, err)

	e, ok := f411.Entry("USART2")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, e.Base, uint32(0x40004400))
	test.ExpectEquality(t, e.Type, board.TypeUSART)
	test.ExpectEquality(t, e.IRQs[0], 38)

	_, ok = f411.Entry("usart3")
	test.ExpectFailure(t, ok)
	_, ok = f407.Entry("usart3")
	test.ExpectSuccess(t, ok)
	_, ok = f407.Entry("spi4")
	test.ExpectFailure(t, ok)

	// entries are sorted by address
	entries := f407.Entries()
	for i := 1; i < len(entries); i++ {
		test.ExpectSuccess(t, entries[i-1].Base < entries[i].Base, entries[i].Label)
	}
}
