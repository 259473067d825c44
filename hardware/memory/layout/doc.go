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

// Package layout describes the addressable register block of a peripheral.
//
// A Layout is a static table of named fields, each with a byte offset and a
// byte size. Tables are built once per peripheral type with New() and are
// shared by pointer between every instance of that type.
//
// Fields may overlap. This is how a register and its sub-fields are aliased:
//
//	var example = layout.New(
//		layout.Field{Name: "CR", Offset: 0, Size: 4},
//		layout.Field{Name: "CRL", Offset: 0, Size: 2},
//	)
//
// The Resolve() function maps a byte range onto the names of the fields it
// touches. The result is for diagnostics only and has no effect on the value
// of any access.
package layout
