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
	"sort"
	"strings"
)

// Entry is one named region in the memory map. The region should already be
// translated to absolute addresses.
type Entry struct {
	Label  string
	Type   string
	Region Region
}

// Summary returns a single multiline string detailing every interval in the
// memory map, in address order. Useful for reference.
func Summary(entries []Entry) string {
	type line struct {
		iv    Interval
		label string
		typ   string
	}

	var lines []line
	for _, e := range entries {
		for _, iv := range e.Region {
			lines = append(lines, line{iv: iv, label: e.Label, typ: e.Type})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].iv.Start < lines[j].iv.Start
	})

	s := strings.Builder{}
	for _, l := range lines {
		s.WriteString(fmt.Sprintf("%s\t%-10s %s\n", l.iv, l.label, l.typ))
	}

	return s.String()
}
