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

package memorymap

import (
	"fmt"
	"strings"
)

// Interval is a half open range of addresses.
type Interval struct {
	Start uint32
	End   uint32
}

func (iv Interval) String() string {
	return fmt.Sprintf("%08x -> %08x", iv.Start, iv.End-1)
}

// Size returns the number of bytes in the interval.
func (iv Interval) Size() uint32 {
	if iv.End < iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

// Contains returns true if the access lies entirely inside the interval. An
// access of size zero is contained if its address is inside the interval.
func (iv Interval) Contains(address uint32, size int) bool {
	if size < 0 || address < iv.Start || address >= iv.End {
		return false
	}
	return uint64(address)+uint64(size) <= uint64(iv.End)
}

// Overlaps returns true if the two intervals share at least one address.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// Region is an ordered list of intervals.
type Region []Interval

// Single returns a Region made up of one interval from zero to size.
func Single(size int) Region {
	return Region{{Start: 0, End: uint32(size)}}
}

func (r Region) String() string {
	s := make([]string, len(r))
	for i, iv := range r {
		s[i] = iv.String()
	}
	return strings.Join(s, ", ")
}

// Size returns the sum of the size of every interval.
func (r Region) Size() uint32 {
	var n uint32
	for _, iv := range r {
		n += iv.Size()
	}
	return n
}

// Contains returns the index of the interval that contains the access
// entirely. An access that straddles two intervals is not contained even if
// the intervals are adjacent.
func (r Region) Contains(address uint32, size int) (int, bool) {
	for i, iv := range r {
		if iv.Contains(address, size) {
			return i, true
		}
	}
	return -1, false
}

// Touches returns true if any byte of the access lies in the region.
func (r Region) Touches(address uint32, size int) bool {
	if size <= 0 {
		_, ok := r.Contains(address, 0)
		return ok
	}
	end := uint64(address) + uint64(size)
	for _, iv := range r {
		if uint64(iv.Start) < end && address < iv.End {
			return true
		}
	}
	return false
}

// Overlaps returns true if any interval in the region overlaps any interval
// in the other region.
func (r Region) Overlaps(other Region) bool {
	for _, a := range r {
		for _, b := range other {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// Translate returns a new Region with every interval moved by base.
func (r Region) Translate(base uint32) Region {
	t := make(Region, len(r))
	for i, iv := range r {
		t[i] = Interval{Start: iv.Start + base, End: iv.End + base}
	}
	return t
}
