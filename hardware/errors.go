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

// error patterns returned by the hardware manager. test for them with
// curated.Is().
const (
	// the label is not defined for the board profile
	UnknownPeripheral = "hardware: unknown peripheral (%s)"

	// an access is not contained by the region of any one peripheral
	UnmappedAccess = "hardware: unmapped access at %08x (%d bytes)"

	// a peripheral is looked up before it has been created
	NotCreated = "hardware: peripheral not created (%s)"

	// the region of a new peripheral overlaps the region of an existing one
	OverlappingRegion = "hardware: region of %s overlaps region of %s"

	// a capability of a handle is used with a peripheral that doesn't have it
	UnsupportedCapability = "hardware: %s does not support %s"
)
