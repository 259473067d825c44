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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern, and not the formatted
// message, identifies the error:
//
//	const UnmappedAccess = "unmapped access: %#08x (%d bytes)"
//
//	e := curated.Errorf(UnmappedAccess, addr, size)
//
//	if curated.Is(e, UnmappedAccess) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("hardware: %v", e)
//
//	if curated.Has(f, UnmappedAccess) {
//		fmt.Println("true")
//	}
//
// The Error() function ensures that the error chain is normalised. That is,
// the chain does not contain duplicate adjacent parts. So wrapping an error
// of "hardware: ..." in another "hardware: %v" pattern does not result in
// the message "hardware: hardware: ...".
//
// For the purposes of this package we think of chains as being composed of
// parts separated by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan).
//
// Curated errors implement Unwrap() so errors.Is() and errors.As() from the
// standard library will find any error values used as placeholder values.
package curated
