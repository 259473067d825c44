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

// Package prefs facilitates the storage of preferential values in the
// emulation. Values are typed (Bool, Int and String) and can be collated
// into a Disk instance that will load and save values to a file on disk.
//
// Values can also be overridden from the command line by way of the command
// line stack. The expected format of a command line group is:
//
//	hw.trace::true; hw.board::stm32f407
//
// A value found on the top of the command line stack takes priority over
// the value loaded from disk at the time the preference is added to the
// Disk instance.
package prefs
