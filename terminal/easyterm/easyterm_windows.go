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

package easyterm

import (
	"io"

	"github.com/jetsetilly/hwperiph/curated"
)

// DefaultDevice is the controlling terminal.
const DefaultDevice = "CON"

// Terminal is not supported on windows.
type Terminal struct{}

// Open always fails on windows.
func Open(_ string, _ io.Writer) (*Terminal, error) {
	return nil, curated.Errorf("easyterm: not supported on windows")
}

// Print does nothing on windows.
func (pt *Terminal) Print(_ string, _ ...any) {
}

// WaitKey always fails on windows.
func (pt *Terminal) WaitKey() (byte, error) {
	return 0, curated.Errorf("easyterm: not supported on windows")
}

// Close does nothing on windows.
func (pt *Terminal) Close() error {
	return nil
}
