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

package board

// peripheral types understood by the hardware manager.
const (
	TypeUSART   = "usart"
	TypeSPI     = "spi"
	TypeI2C     = "i2c"
	TypeDMA     = "dma"
	TypeGPIO    = "gpio"
	TypeRCC     = "rcc"
	TypeSysTick = "systick"
	TypeTim16   = "tim"
	TypeTim32   = "tim32"
	TypeNVIC    = "nvic"

	// peripherals that occupy address space but are not modelled
	TypeNull = "null"
)

// SysTick is an exception of the core rather than an interrupt line.
const irqSysTick = -1

// the peripherals common to every STM32F4 part used here.
var stm32f4Common = []Entry{
	{Label: "tim2", Type: TypeTim32, Base: 0x40000000, IRQs: []int{28}},
	{Label: "tim3", Type: TypeTim16, Base: 0x40000400, IRQs: []int{29}},
	{Label: "tim4", Type: TypeTim16, Base: 0x40000800, IRQs: []int{30}},
	{Label: "tim5", Type: TypeTim32, Base: 0x40000c00, IRQs: []int{50}},
	{Label: "rtc", Type: TypeNull, Base: 0x40002800},
	{Label: "wwdg", Type: TypeNull, Base: 0x40002c00},
	{Label: "iwdg", Type: TypeNull, Base: 0x40003000},
	{Label: "spi2", Type: TypeSPI, Base: 0x40003800, IRQs: []int{36}},
	{Label: "spi3", Type: TypeSPI, Base: 0x40003c00, IRQs: []int{51}},
	{Label: "usart2", Type: TypeUSART, Base: 0x40004400, IRQs: []int{38}},
	{Label: "i2c1", Type: TypeI2C, Base: 0x40005400, IRQs: []int{31, 32}},
	{Label: "i2c2", Type: TypeI2C, Base: 0x40005800, IRQs: []int{33, 34}},
	{Label: "i2c3", Type: TypeI2C, Base: 0x40005c00, IRQs: []int{72, 73}},
	{Label: "pwr", Type: TypeNull, Base: 0x40007000},
	{Label: "tim1", Type: TypeTim16, Base: 0x40010000, IRQs: []int{25}},
	{Label: "usart1", Type: TypeUSART, Base: 0x40011000, IRQs: []int{37}},
	{Label: "usart6", Type: TypeUSART, Base: 0x40011400, IRQs: []int{71}},
	{Label: "adc1", Type: TypeNull, Base: 0x40012000},
	{Label: "spi1", Type: TypeSPI, Base: 0x40013000, IRQs: []int{35}},
	{Label: "syscfg", Type: TypeNull, Base: 0x40013800},
	{Label: "exti", Type: TypeNull, Base: 0x40013c00},
	{Label: "tim9", Type: TypeTim16, Base: 0x40014000, IRQs: []int{24}},
	{Label: "tim10", Type: TypeTim16, Base: 0x40014400, IRQs: []int{25}},
	{Label: "tim11", Type: TypeTim16, Base: 0x40014800, IRQs: []int{26}},
	{Label: "gpioa", Type: TypeGPIO, Base: 0x40020000},
	{Label: "gpiob", Type: TypeGPIO, Base: 0x40020400},
	{Label: "gpioc", Type: TypeGPIO, Base: 0x40020800},
	{Label: "gpiod", Type: TypeGPIO, Base: 0x40020c00},
	{Label: "gpioe", Type: TypeGPIO, Base: 0x40021000},
	{Label: "gpioh", Type: TypeGPIO, Base: 0x40021c00},
	{Label: "crc", Type: TypeNull, Base: 0x40023000},
	{Label: "rcc", Type: TypeRCC, Base: 0x40023800},
	{Label: "flash", Type: TypeNull, Base: 0x40023c00},
	{Label: "dma1", Type: TypeDMA, Base: 0x40026000, IRQs: []int{11, 12, 13, 14, 15, 16, 17, 47}},
	{Label: "dma2", Type: TypeDMA, Base: 0x40026400, IRQs: []int{56, 57, 58, 59, 60, 68, 69, 70}},
	{Label: "systick", Type: TypeSysTick, Base: 0xe000e010, IRQs: []int{irqSysTick}},
	{Label: "nvic", Type: TypeNVIC, Base: 0xe000e100},
}

func with(common []Entry, extra ...Entry) []Entry {
	return append(append([]Entry(nil), common...), extra...)
}

func init() {
	register(newProfile("stm32f411", "STM32F411 (Cortex-M4, 512K flash, 128K RAM)",
		with(stm32f4Common,
			Entry{Label: "spi4", Type: TypeSPI, Base: 0x40013400, IRQs: []int{84}},
			Entry{Label: "spi5", Type: TypeSPI, Base: 0x40015000, IRQs: []int{85}},
		)...,
	))

	register(newProfile("stm32f407", "STM32F407 (Cortex-M4, 1M flash, 192K RAM)",
		with(stm32f4Common,
			Entry{Label: "tim6", Type: TypeTim16, Base: 0x40001000, IRQs: []int{54}},
			Entry{Label: "tim7", Type: TypeTim16, Base: 0x40001400, IRQs: []int{55}},
			Entry{Label: "usart3", Type: TypeUSART, Base: 0x40004800, IRQs: []int{39}},
			Entry{Label: "uart4", Type: TypeUSART, Base: 0x40004c00, IRQs: []int{52}},
			Entry{Label: "uart5", Type: TypeUSART, Base: 0x40005000, IRQs: []int{53}},
			Entry{Label: "gpiof", Type: TypeGPIO, Base: 0x40021400},
			Entry{Label: "gpiog", Type: TypeGPIO, Base: 0x40021800},
			Entry{Label: "gpioi", Type: TypeGPIO, Base: 0x40022000},
		)...,
	))
}
