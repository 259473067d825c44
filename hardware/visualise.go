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

package hardware

import (
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"
)

// the structures passed to memviz. they are plain copies of the manager's
// state so that the graph isn't cluttered with layouts and environment
// pointers.
type registerState struct {
	Name  string
	Value string
}

type peripheralState struct {
	Label     string
	Type      string
	Base      string
	Region    string
	Registers []registerState
}

type managerState struct {
	Board       string
	Ticks       int
	Peripherals []*peripheralState
}

func (m *Manager) snapshot() *managerState {
	s := &managerState{
		Board: m.profile.Name,
		Ticks: m.ticks,
	}

	for _, r := range m.live {
		ps := &peripheralState{
			Label:  r.entry.Label,
			Type:   r.entry.Type,
			Base:   fmt.Sprintf("%08x", r.entry.Base),
			Region: r.region.String(),
		}

		// registers are peeked. Read() may have side effects
		for _, f := range r.periph.Layout().Fields() {
			if v, ok := peek(r, f.Name); ok {
				ps.Registers = append(ps.Registers, registerState{
					Name:  f.Name,
					Value: fmt.Sprintf("%#0*x", f.Size*2+2, v),
				})
			}
		}

		s.Peripherals = append(s.Peripherals, ps)
	}

	return s
}

// peeker is implemented by peripherals that embed peripherals.Base.
type peeker interface {
	Peek(name string) (uint64, bool)
}

func peek(r *registered, name string) (uint64, bool) {
	if p, ok := r.periph.(peeker); ok {
		return p.Peek(name)
	}
	return 0, false
}

// Visualise writes a graphviz description of the live peripherals and their
// register values.
func (m *Manager) Visualise(w io.Writer) {
	memviz.Map(w, m.snapshot())
}
