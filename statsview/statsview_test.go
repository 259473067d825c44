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

package statsview_test

import (
	"testing"

	"github.com/jetsetilly/hwperiph/statsview"
	"github.com/jetsetilly/hwperiph/test"
)

func TestStub(t *testing.T) {
	if statsview.Available() {
		t.Skip("statsview build constraint is present")
	}
	w := &test.CompareWriter{}
	stop := statsview.Launch(w, "")
	stop()
	test.ExpectEquality(t, w.String(), "")
}
