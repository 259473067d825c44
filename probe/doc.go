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

// Package probe runs scripts against the emulated peripherals. Scripts drive
// the peripherals through a membus.Bus so that every access takes the same
// memory mapped path a CPU emulator would use.
//
// A script is a list of instructions, one per line. Instructions are case
// insensitive. Lines beginning with -- or # are comments. Numbers can be
// written in decimal, with a 0x or $ prefix for hexadecimal, or as a quoted
// character ('A').
//
// Addresses can be given as a number, as the label of a created peripheral
// (its base address), as a label plus an offset (usart2+0x04) or as a label
// and register name (usart2.DR). In the last case the size of the access
// defaults to the size of the register. Otherwise the default size is four
// bytes.
//
// Data arguments are a list of byte values or quoted strings.
//
//	CREATE <label> ...
//	CONNECT <label> (EEPROM [address] | SRAM)
//	READ <address> [size]
//	WRITE <address> <value> [size]
//	EXPECT <address> <value> [size]
//	TICK [count]
//	SEND <label> <data> ...
//	RECV <label> [expected data ...]
//	PIN <label> <pin> [0|1]
//	HOOK <label> <pin>
//	RATIO <label> <ratio>
//	POKE <address> <data> ...
//	PEEK <address> <count>
//	IRQS
//	RESET
//	SUMMARY
//	DO <count> [name]
//	LOOP
//
// DO and LOOP repeat the enclosed instructions. If the loop is named then
// the current iteration, counting from zero, can be used as a value with the
// form %name.
package probe
