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

package layout

import (
	"fmt"
	"strings"
)

// Field describes one named range of bytes in a register block.
type Field struct {
	Name   string
	Offset int
	Size   int

	// value of the field after a reset of the peripheral
	Reset uint64
}

// Register is a convenience function for the common case of a four byte
// register.
func Register(name string, offset int, reset uint64) Field {
	return Field{Name: name, Offset: offset, Size: 4, Reset: reset}
}

func (f Field) String() string {
	return fmt.Sprintf("%s [%#x:%#x]", f.Name, f.Offset, f.Offset+f.Size)
}

// End returns the offset of the first byte after the field.
func (f Field) End() int {
	return f.Offset + f.Size
}

// InField returns true if the access is contained entirely by the field. Note
// that this is stricter than overlap, which is what Resolve() considers.
func (f Field) InField(offset int, size int) bool {
	return f.Offset <= offset && offset+size <= f.End()
}

// Overlaps returns true if any byte of the access lies in the field.
func (f Field) Overlaps(offset int, size int) bool {
	return size > 0 && offset < f.End() && f.Offset < offset+size
}

// Layout is an ordered list of fields. The order of fields is only
// significant for the ordering of names in the output of Resolve().
type Layout struct {
	fields    []Field
	index     map[string]int
	footprint int
}

// New creates a new Layout from a list of fields. The function panics if the
// table is malformed. Tables are static and a malformed table is a
// programming error.
func New(fields ...Field) *Layout {
	l := &Layout{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int),
	}

	for _, f := range fields {
		if f.Name == "" {
			panic(fmt.Sprintf("layout: unnamed field at offset %#x", f.Offset))
		}
		if f.Offset < 0 || f.Size <= 0 {
			panic(fmt.Sprintf("layout: illegal range for field %s", f.Name))
		}
		if f.Size < 8 && f.Reset>>(f.Size*8) != 0 {
			panic(fmt.Sprintf("layout: reset value for field %s is too large", f.Name))
		}
		if _, ok := l.index[f.Name]; ok {
			panic(fmt.Sprintf("layout: duplicate field %s", f.Name))
		}

		l.index[f.Name] = len(l.fields)
		l.fields = append(l.fields, f)
		l.footprint = max(l.footprint, f.End())
	}

	return l
}

// Footprint returns the number of bytes required to store every field.
func (l *Layout) Footprint() int {
	return l.footprint
}

// Fields returns a copy of the fields in the layout.
func (l *Layout) Fields() []Field {
	return append([]Field(nil), l.fields...)
}

// Field returns the named field.
func (l *Layout) Field(name string) (Field, bool) {
	if i, ok := l.index[name]; ok {
		return l.fields[i], true
	}
	return Field{}, false
}

// MustField is like Field() but panics if the name does not exist.
func (l *Layout) MustField(name string) Field {
	f, ok := l.Field(name)
	if !ok {
		panic(fmt.Sprintf("layout: no field named %s", name))
	}
	return f
}

// Containing returns the first field that contains the access entirely.
func (l *Layout) Containing(offset int, size int) (Field, bool) {
	for _, f := range l.fields {
		if f.InField(offset, size) {
			return f, true
		}
	}
	return Field{}, false
}

// Resolve returns a description of the fields touched by an access. Fields
// that are covered by the access entirely are described by their name. Fields
// that are only partly covered are described by their name and the covered
// byte range, relative to the start of the field:
//
//	CR1[1:2]
//
// Descriptions are joined with a comma in layout order. An access of size zero
// or less returns the empty string.
func (l *Layout) Resolve(offset int, size int) string {
	if size <= 0 {
		return ""
	}

	var s strings.Builder

	for _, f := range l.fields {
		lbound := max(0, offset-f.Offset)
		ubound := min(offset+size-f.Offset, f.Size)
		if lbound >= ubound {
			continue
		}

		if s.Len() > 0 {
			s.WriteRune(',')
		}

		if lbound == 0 && ubound == f.Size {
			s.WriteString(f.Name)
		} else {
			fmt.Fprintf(&s, "%s[%d:%d]", f.Name, lbound, ubound)
		}
	}

	return s.String()
}
