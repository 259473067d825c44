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

package environment

import (
	"io"

	"github.com/jetsetilly/hwperiph/hardware/preferences"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label used for the main emulation session.
const MainEmulation = Label("")

// Environment is used to provide context for an emulation session. Peripherals
// take their preferences and trace output from the environment rather than
// from package level state so that more than one session can exist at once.
type Environment struct {
	Label Label

	// the emulation preferences
	Prefs *preferences.Preferences

	// destination of the access trace. if nil then no trace is produced even
	// if the Trace preference is true
	Trace io.Writer
}

// NewEnvironment is the preferred method of initialisation for the Environment type.
//
// The prefs argument can be nil, in which case a new Preferences instance will
// be created. Providing a non-nil value allows the preferences of more than
// one session to be synchronised.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in an known default state. Useful for
// testing where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// Tracing returns true if accesses should be written to the Trace writer.
func (env *Environment) Tracing() bool {
	return env.Trace != nil && env.Prefs.Trace.Get().(bool)
}

// AllowLogging implements the logger.Permission interface. Only the main
// emulation is allowed to log.
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}
