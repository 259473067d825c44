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

// Package paths contains functions to prepare paths to hwperiph resources.
//
// The ResourcePath() function modifies the supplied resource string such that
// it is prepended with the appropriate config directory. For example, the
// following will return the path to the EEPROM image of an attached I2C
// device.
//
//	d, err := paths.ResourcePath("eeprom", "i2c1_a0")
//
// The policy of ResourcePath() depends on the build. For development builds
// the base path is ".hwperiph" in the current working directory. For release
// builds (the "release" build tag) the base path is "hwperiph" in the user's
// config directory, as returned by os.UserConfigDir().
//
// In both cases, sub-directories are created as required. The file itself is
// not created.
package paths
