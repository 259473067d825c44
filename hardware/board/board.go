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

// Package board contains the static board profiles. A profile maps the label
// of every peripheral on a microcontroller to the type of the peripheral, its
// base address and its interrupt lines.
package board

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jetsetilly/hwperiph/curated"
)

// UnknownBoard is returned by Get() when no profile has the requested name.
const UnknownBoard = "board: unknown board (%s)"

// Entry describes one peripheral in a board profile.
type Entry struct {
	Label string
	Type  string
	Base  uint32

	// interrupt lines in the order expected by the peripheral type
	IRQs []int
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%s) @ %08x", e.Label, e.Type, e.Base)
}

// Profile is the list of peripherals on a board.
type Profile struct {
	Name        string
	Description string

	entries []Entry
	index   map[string]int
}

func newProfile(name string, description string, entries ...Entry) *Profile {
	p := &Profile{
		Name:        name,
		Description: description,
		entries:     entries,
		index:       make(map[string]int),
	}
	for i, e := range entries {
		if _, ok := p.index[e.Label]; ok {
			panic(fmt.Sprintf("board: %s: duplicate label %s", name, e.Label))
		}
		p.index[e.Label] = i
	}
	return p
}

func (p *Profile) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.Description)
}

// Entry returns the profile entry for the label. Labels are case
// insensitive.
func (p *Profile) Entry(label string) (Entry, bool) {
	i, ok := p.index[strings.ToLower(label)]
	if !ok {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Entries returns a copy of every entry in the profile, in address order.
func (p *Profile) Entries() []Entry {
	e := append([]Entry(nil), p.entries...)
	sort.SliceStable(e, func(i, j int) bool {
		return e[i].Base < e[j].Base
	})
	return e
}

var profiles = map[string]*Profile{}

func register(p *Profile) {
	profiles[p.Name] = p
}

// Get returns the named profile. Names are case insensitive.
func Get(name string) (*Profile, error) {
	p, ok := profiles[strings.ToLower(name)]
	if !ok {
		return nil, curated.Errorf(UnknownBoard, name)
	}
	return p, nil
}

// Names returns the name of every profile in alphabetical order.
func Names() []string {
	n := make([]string, 0, len(profiles))
	for k := range profiles {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}
