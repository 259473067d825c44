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

// Package memorymap describes the address ranges occupied by peripherals.
//
// A Region is a list of half open intervals. Intervals are relative to the
// base address of a peripheral until translated with Region.Translate(). Most
// peripherals occupy a single interval but some, like an interrupt
// controller, expose several disjoint register blocks.
//
// The Summary() function produces a table of an entire memory map. It is
// useful for reference and is used by the SUMMARY mode of the command line
// tool.
package memorymap
