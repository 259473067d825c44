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

package preferences

import (
	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/paths"
	"github.com/jetsetilly/hwperiph/prefs"
)

// the board used when no preference has been saved.
const defaultBoard = "stm32f411"

// Preferences defines and collates all the preference values used by the
// hardware manager and the peripherals it creates.
type Preferences struct {
	dsk *prefs.Disk

	// name of the board profile used to resolve peripheral labels
	Board prefs.String

	// write a trace line for every peripheral access
	Trace prefs.Bool

	// number of calls to Tick() for every step of the peripherals
	TickCadence prefs.Int

	// number of peripheral steps needed to shift one received byte into a
	// USART data register
	USARTShiftDelay prefs.Int

	// default decrement of the SysTick counter for every step
	SysTickRatio prefs.Int
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	// setup preferences and load from disk
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hw.board", &p.Board)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hw.trace", &p.Trace)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hw.tickcadence", &p.TickCadence)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hw.usart.shiftdelay", &p.USARTShiftDelay)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("hw.systick.ratio", &p.SysTickRatio)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Load()
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.Board.Set(defaultBoard)
	p.Trace.Set(false)
	p.TickCadence.Set(1)
	p.USARTShiftDelay.Set(1)
	p.SysTickRatio.Set(1)
}

// Load current hardware preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
