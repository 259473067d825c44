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

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/hwperiph/paths"
	"github.com/jetsetilly/hwperiph/test"
)

func TestPaths(t *testing.T) {
	// run inside a temporary directory so that the test doesn't litter the
	// source tree with configuration directories
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	t.Cleanup(func() { os.Chdir(wd) })
	test.DemandSuccess(t, os.Chdir(t.TempDir()))

	pth, err := paths.ResourcePath("foo/bar", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".hwperiph", "foo", "bar", "baz"))

	pth, err = paths.ResourcePath("foo/bar", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".hwperiph", "foo", "bar"))

	pth, err = paths.ResourcePath("", "baz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".hwperiph", "baz"))

	// sub-directories are created
	_, err = os.Stat(filepath.Join(".hwperiph", "foo", "bar"))
	test.ExpectSuccess(t, err)
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("capture", "gpioa")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "capture_gpioa_"))

	fn = paths.UniqueFilename("capture", " ")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "capture_"))
	test.ExpectFailure(t, strings.HasPrefix(fn, "capture__"))
}
