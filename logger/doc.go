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

// Package logger is the central log for the emulation session. Entries are
// made up of a tag and a detail string and are kept in a bounded list. An
// entry that repeats the previous entry exactly is folded into that entry.
//
// Every log request is made with a Permission. The Allow value always
// permits logging. Other implementations, notably the Environment type in
// the environment package, can silence an entire emulation session.
//
//	logger.Logf(logger.Allow, "usart2", "received %d bytes", n)
//
// The detail argument to Log() can be a string, an error or a fmt.Stringer.
package logger
