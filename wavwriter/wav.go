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

package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/logger"
)

// sample values for the two pin levels
const (
	levelLo = 0
	levelHi = 0x7fff
)

const bitDepth = 16

// WavWriter implements the probe.Sampler interface.
type WavWriter struct {
	filename   string
	sampleRate int
	buffer     []int
}

// NewWavWriter is the preferred method of initialisation for the WavWriter
// type. The sample rate is the number of ticks per second of the recording.
func NewWavWriter(filename string, sampleRate int) (*WavWriter, error) {
	if sampleRate <= 0 {
		return nil, curated.Errorf("wavwriter: sample rate must be positive")
	}

	aw := &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		buffer:     make([]int, 0),
	}

	return aw, nil
}

// Sample implements the probe.Sampler interface.
func (aw *WavWriter) Sample(high bool) {
	if high {
		aw.buffer = append(aw.buffer, levelHi)
	} else {
		aw.buffer = append(aw.buffer, levelLo)
	}
}

// Len returns the number of samples recorded so far.
func (aw *WavWriter) Len() int {
	return len(aw.buffer)
}

// Write the recorded samples to the file.
func (aw *WavWriter) Write() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	// PCM audio format is 1
	enc := wav.NewEncoder(f, aw.sampleRate, bitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: bitDepth,
	}

	err = enc.Write(buf)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	err = enc.Close()
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	logger.Logf(logger.Allow, "wavwriter", "%d samples written to %s", len(aw.buffer), aw.filename)

	return nil
}
