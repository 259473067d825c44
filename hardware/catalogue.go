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

package hardware

import (
	"github.com/jetsetilly/hwperiph/hardware/board"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/dma"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/gpio"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/i2c"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/nvic"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/rcc"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/spi"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/systick"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/tim"
	"github.com/jetsetilly/hwperiph/hardware/peripherals/usart"
)

// catalogue maps the peripheral types used in board profiles to the function
// that creates them.
var catalogue = map[string]peripherals.NewPeripheral{
	board.TypeUSART:   usart.New,
	board.TypeSPI:     spi.New,
	board.TypeI2C:     i2c.New,
	board.TypeDMA:     dma.New,
	board.TypeGPIO:    gpio.New,
	board.TypeRCC:     rcc.New,
	board.TypeSysTick: systick.New,
	board.TypeTim16:   tim.New16,
	board.TypeTim32:   tim.New32,
	board.TypeNVIC:    nvic.New,
	board.TypeNull:    peripherals.NewNull,
}
