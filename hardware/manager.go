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
	"strings"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/driver"
	"github.com/jetsetilly/hwperiph/environment"
	"github.com/jetsetilly/hwperiph/hardware/board"
	"github.com/jetsetilly/hwperiph/hardware/memory/memorymap"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/logger"
)

// the tag used for log entries by the manager.
const logTag = "hardware"

// a live peripheral and everything the manager knows about it.
type registered struct {
	entry  board.Entry
	region memorymap.Region

	// the peripheral as created. used for capabilities
	periph peripherals.Peripheral

	// the path for reads, writes and steps. it is the same as periph unless
	// tracing is enabled
	access peripherals.Peripheral

	handle *Handle
}

// Manager is the hardware manager for one emulation session.
type Manager struct {
	env     *environment.Environment
	profile *board.Profile

	// peripherals in creation order
	live    []*registered
	byLabel map[string]*registered

	drv driver.Driver

	// number of calls to Tick(). used with the TickCadence preference
	ticks int
}

// NewManager is the preferred method of initialisation for the Manager type.
// The board profile is taken from the Board preference of the environment.
func NewManager(env *environment.Environment) (*Manager, error) {
	profile, err := board.Get(env.Prefs.Board.String())
	if err != nil {
		return nil, err
	}

	m := &Manager{
		env:     env,
		profile: profile,
		byLabel: make(map[string]*registered),
	}

	logger.Logf(env, logTag, "board profile %s", profile.Name)

	return m, nil
}

func (m *Manager) String() string {
	s := strings.Builder{}
	s.WriteString(m.profile.String())
	for _, r := range m.live {
		s.WriteString("\n")
		s.WriteString(r.periph.String())
	}
	return s.String()
}

// Profile returns the board profile used by the manager.
func (m *Manager) Profile() *board.Profile {
	return m.profile
}

// Create the peripheral with the label. If the peripheral has already been
// created then the existing Handle is returned.
func (m *Manager) Create(label string) (*Handle, error) {
	label = strings.ToLower(label)

	if r, ok := m.byLabel[label]; ok {
		return r.handle, nil
	}

	entry, ok := m.profile.Entry(label)
	if !ok {
		return nil, curated.Errorf(UnknownPeripheral, label)
	}

	create, ok := catalogue[entry.Type]
	if !ok {
		return nil, curated.Errorf(UnknownPeripheral, fmt.Sprintf("%s of type %s", label, entry.Type))
	}

	p := create(peripherals.Config{
		Env:   m.env,
		Label: entry.Label,
		Type:  entry.Type,
		IRQs:  entry.IRQs,
	})

	r := &registered{
		entry:  entry,
		region: p.Region().Translate(entry.Base),
		periph: p,
		access: p,
	}

	for _, o := range m.live {
		if r.region.Overlaps(o.region) {
			return nil, curated.Errorf(OverlappingRegion, label, o.entry.Label)
		}
	}

	if m.env.Tracing() {
		r.access = peripherals.NewTraced(p, m.env.Trace)
	}

	if m.drv != nil {
		if err := m.mapRegion(r); err != nil {
			return nil, err
		}
	}

	p.Plumb(m)
	r.handle = &Handle{m: m, r: r}

	m.live = append(m.live, r)
	m.byLabel[label] = r

	logger.Logf(m.env, logTag, "created %s", entry)

	return r.handle, nil
}

// Lookup returns the Handle of a peripheral that has already been created.
func (m *Manager) Lookup(label string) (*Handle, error) {
	r, ok := m.byLabel[strings.ToLower(label)]
	if !ok {
		return nil, curated.Errorf(NotCreated, label)
	}
	return r.handle, nil
}

// Handles returns the Handle of every peripheral in creation order.
func (m *Manager) Handles() []*Handle {
	h := make([]*Handle, len(m.live))
	for i, r := range m.live {
		h[i] = r.handle
	}
	return h
}

// find the peripheral that contains the access entirely.
func (m *Manager) find(address uint32, size int) (*registered, bool) {
	for _, r := range m.live {
		if _, ok := r.region.Contains(address, size); ok {
			return r, true
		}
	}
	return nil, false
}

// Read the value at the address. The access must be contained entirely by the
// region of one peripheral. An access of size zero always succeeds with a
// value of zero.
func (m *Manager) Read(address uint32, size int) (uint64, error) {
	if size == 0 {
		return 0, nil
	}
	r, ok := m.find(address, size)
	if !ok {
		return 0, curated.Errorf(UnmappedAccess, address, size)
	}
	return r.access.Read(int(address-r.entry.Base), size), nil
}

// Write the value to the address. The same rules as Read() apply.
func (m *Manager) Write(address uint32, size int, value uint64) error {
	if size == 0 {
		return nil
	}
	r, ok := m.find(address, size)
	if !ok {
		return curated.Errorf(UnmappedAccess, address, size)
	}
	r.access.Write(int(address-r.entry.Base), size, value)
	return nil
}

// Tick steps every peripheral in creation order. If the TickCadence
// preference is greater than one then peripherals are only stepped on every
// Nth call.
func (m *Manager) Tick() {
	m.ticks++
	if cadence := m.env.Prefs.TickCadence.Get().(int); cadence > 1 && m.ticks%cadence != 0 {
		return
	}
	for _, r := range m.live {
		r.access.Step()
	}
}

// Reset every live peripheral.
func (m *Manager) Reset() {
	for _, r := range m.live {
		r.periph.Reset()
	}
	m.ticks = 0
}

// Attach the CPU emulation. The regions of every peripheral, those already
// created and those created in the future, are mapped into the address space
// of the driver. Tick() is hooked to the instruction loop of the driver.
//
// If any region cannot be mapped the mappings already made are removed, if
// the driver implements driver.Unmapper, and the driver is not attached.
func (m *Manager) Attach(drv driver.Driver) error {
	if m.drv != nil {
		return curated.Errorf("hardware: driver already attached")
	}

	m.drv = drv
	for i, r := range m.live {
		if err := m.mapRegion(r); err != nil {
			for _, o := range m.live[:i] {
				m.unmapRegion(o.region)
			}
			m.drv = nil
			return err
		}
	}

	drv.HookTick(func() error {
		m.Tick()
		return nil
	})

	logger.Log(m.env, logTag, "driver attached")

	return nil
}

func (m *Manager) mapRegion(r *registered) error {
	for i, iv := range r.region {
		start := iv.Start
		read := func(offset uint32, size int) (uint64, error) {
			return m.Read(start+offset, size)
		}
		write := func(offset uint32, size int, value uint64) error {
			return m.Write(start+offset, size, value)
		}
		if err := m.drv.MapMMIO(start, iv.Size(), read, write); err != nil {
			m.unmapRegion(r.region[:i])
			return curated.Errorf("hardware: %s: %v", r.entry.Label, err)
		}
	}
	return nil
}

// unmapRegion removes the mappings of every interval in the region from the
// driver, if the driver supports it.
func (m *Manager) unmapRegion(region memorymap.Region) {
	u, ok := m.drv.(driver.Unmapper)
	if !ok {
		return
	}
	for _, iv := range region {
		if err := u.UnmapMMIO(iv.Start); err != nil {
			logger.Log(m.env, logTag, err)
		}
	}
}

// Summary returns the memory map of the live peripherals.
func (m *Manager) Summary() string {
	entries := make([]memorymap.Entry, len(m.live))
	for i, r := range m.live {
		entries[i] = memorymap.Entry{
			Label:  r.entry.Label,
			Type:   r.entry.Type,
			Region: r.region,
		}
	}
	return memorymap.Summary(entries)
}

// BoardSummary returns the memory map of every peripheral in a board profile,
// whether it has been created or not.
func BoardSummary(profile *board.Profile) string {
	var entries []memorymap.Entry
	for _, e := range profile.Entries() {
		create, ok := catalogue[e.Type]
		if !ok {
			continue
		}
		p := create(peripherals.Config{Label: e.Label, Type: e.Type})
		entries = append(entries, memorymap.Entry{
			Label:  e.Label,
			Type:   e.Type,
			Region: p.Region().Translate(e.Base),
		})
	}
	return memorymap.Summary(entries)
}
