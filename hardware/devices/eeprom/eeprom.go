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

// Package eeprom implements a 24Cxx style serial EEPROM that can be connected
// to an I2C peripheral.
//
// A write transaction begins with two address bytes, most significant byte
// first, followed by any number of data bytes. Data bytes are written to the
// current page and the address wraps at the page boundary. A read transaction
// returns data from the current address and rolls over the entire memory.
//
// Setting up the address with a write transaction and then issuing a repeated
// START with the read bit set is the usual way of reading from a random
// address.
package eeprom

import (
	"os"
	"slices"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/environment"
	"github.com/jetsetilly/hwperiph/logger"
	"github.com/jetsetilly/hwperiph/paths"
)

// the sub-directory of the resource path where EEPROM files are stored
const eepromPath = "eeprom"

// Default values for the 24C256.
const (
	DefaultAddress  = 0xa0
	DefaultSize     = 0x8000
	DefaultPageSize = 0x40
)

// InvalidGeometry is returned by NewEEPROM() when the size or page size is
// not usable.
const InvalidGeometry = "eeprom: invalid geometry: size %#x, page size %#x"

// the largest EEPROM that can be addressed with two address bytes
const maxSize = 0x10000

type phase int

const (
	idle phase = iota
	addressHi
	addressLo
	writing
	reading
)

// EEPROM implements the peripherals.Device, peripherals.Receiver,
// peripherals.Starter and peripherals.Stopper interfaces.
type EEPROM struct {
	env *environment.Environment

	address  int
	pageSize int
	phase    phase

	// the next address a read or write will access
	Pointer uint16

	// amend Data only through put() and Poke()
	Data []uint8

	// the data as it is on disk
	DiskData []uint8

	// the filename used by Load() and Save(). if empty the EEPROM is not
	// persisted
	filename string
}

// NewEEPROM is the preferred method of initialisation for the EEPROM type.
// The address is the eight bit form of the device address. The size and page
// size must be powers of two, the size no larger than 64KB and the page size
// no larger than the size.
//
// If filename is not empty, any existing data is loaded from disk.
func NewEEPROM(env *environment.Environment, address int, size int, pageSize int, filename string) (*EEPROM, error) {
	if !powerOfTwo(size) || size > maxSize || !powerOfTwo(pageSize) || pageSize > size {
		return nil, curated.Errorf(InvalidGeometry, size, pageSize)
	}

	ee := &EEPROM{
		env:      env,
		address:  address &^ 0x01,
		pageSize: pageSize,
		Data:     make([]uint8, size),
		DiskData: make([]uint8, size),
		filename: filename,
	}

	// erased EEPROM reads as 0xff
	for i := range ee.Data {
		ee.Data[i] = 0xff
	}
	copy(ee.DiskData, ee.Data)

	if ee.filename != "" {
		if err := ee.Load(); err != nil {
			logger.Log(ee.permission(), "eeprom", err)
		}
	}

	return ee, nil
}

func powerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func (ee *EEPROM) permission() logger.Permission {
	if ee.env == nil {
		return logger.Allow
	}
	return ee.env
}

// Address implements the peripherals.Device interface.
func (ee *EEPROM) Address() int {
	return ee.address
}

// Start implements the peripherals.Starter interface.
func (ee *EEPROM) Start(read bool) {
	if read {
		ee.phase = reading
	} else {
		ee.phase = addressHi
	}
}

// Stop implements the peripherals.Stopper interface.
func (ee *EEPROM) Stop() {
	ee.phase = idle
}

// Send implements the peripherals.Device interface.
func (ee *EEPROM) Send(data byte) {
	switch ee.phase {
	case addressHi:
		ee.Pointer = uint16(data) << 8
		ee.phase = addressLo
	case addressLo:
		ee.Pointer = (ee.Pointer | uint16(data)) & ee.mask()
		ee.phase = writing
	case writing:
		ee.put(data)
	}
}

// Recv implements the peripherals.Receiver interface.
func (ee *EEPROM) Recv() byte {
	if ee.phase != reading {
		return 0xff
	}
	v := ee.Data[ee.Pointer]
	ee.Pointer = (ee.Pointer + 1) & ee.mask()
	return v
}

func (ee *EEPROM) mask() uint16 {
	return uint16(len(ee.Data) - 1)
}

// put writes to the current address. the address is kept on the same page by
// looping back to the start of the page.
func (ee *EEPROM) put(v uint8) {
	ee.Data[ee.Pointer] = v
	pm := uint16(ee.pageSize - 1)
	ee.Pointer = (ee.Pointer &^ pm) | ((ee.Pointer + 1) & pm)
}

// Poke a value into EEPROM.
func (ee *EEPROM) Poke(address uint16, data uint8) {
	ee.Data[address&ee.mask()] = data
}

// Load EEPROM data from disk.
func (ee *EEPROM) Load() error {
	fn, err := paths.ResourcePath(eepromPath, ee.filename)
	if err != nil {
		return curated.Errorf("eeprom: %v", err)
	}

	d, err := os.ReadFile(fn)
	if err != nil {
		return curated.Errorf("eeprom: %v", err)
	}
	if len(d) != len(ee.Data) {
		logger.Logf(ee.permission(), "eeprom", "file is of incorrect length. %d should be %d", len(d), len(ee.Data))
	}

	copy(ee.Data, d)
	copy(ee.DiskData, ee.Data)

	logger.Logf(ee.permission(), "eeprom", "loaded from %s", fn)

	return nil
}

// Save EEPROM data to disk.
func (ee *EEPROM) Save() error {
	if ee.filename == "" {
		return curated.Errorf("eeprom: no filename")
	}

	fn, err := paths.ResourcePath(eepromPath, ee.filename)
	if err != nil {
		return curated.Errorf("eeprom: %v", err)
	}

	err = os.WriteFile(fn, ee.Data, 0o644)
	if err != nil {
		return curated.Errorf("eeprom: %v", err)
	}

	logger.Logf(ee.permission(), "eeprom", "saved to %s", fn)

	copy(ee.DiskData, ee.Data)

	return nil
}

// IsSaved returns true if disk data is the same as data.
func (ee *EEPROM) IsSaved() bool {
	return slices.Compare(ee.Data, ee.DiskData) == 0
}
