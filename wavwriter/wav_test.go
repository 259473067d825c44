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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/hwperiph/test"
	"github.com/jetsetilly/hwperiph/wavwriter"
)

func TestWrite(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "capture.wav")

	aw, err := wavwriter.NewWavWriter(fn, 8000)
	test.DemandSuccess(t, err)

	levels := []bool{false, true, true, false, true}
	for _, l := range levels {
		aw.Sample(l)
	}
	test.ExpectEquality(t, aw.Len(), len(levels))
	test.DemandSuccess(t, aw.Write())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, dec.SampleRate, uint32(8000))
	test.ExpectEquality(t, dec.NumChans, uint16(1))
	test.ExpectEquality(t, dec.BitDepth, uint16(16))

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(buf.Data), len(levels))
	for i, l := range levels {
		test.ExpectEquality(t, buf.Data[i] != 0, l, i)
	}
}

func TestBadSampleRate(t *testing.T) {
	_, err := wavwriter.NewWavWriter("x.wav", 0)
	test.ExpectFailure(t, err)
}
