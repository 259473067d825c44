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

package peripherals

// Stream is implemented by serial peripherals that move bytes to and from the
// outside world.
type Stream interface {
	// queue bytes for reception by the firmware. bytes are moved into the
	// data register over subsequent steps
	Send(data []byte)

	// return and clear the bytes transmitted by the firmware
	Recv() []byte
}

// PinHooker is implemented by peripherals with discrete pins.
type PinHooker interface {
	// register a function to be called whenever the logical state of the pin
	// changes. more than one hook can be registered for a pin and they are
	// called in the order they were registered
	HookSet(pin int, hook func(high bool)) error

	// drive an input pin from outside the chip
	SetPin(pin int, high bool) error

	// the current logical state of the pin
	Pin(pin int) bool
}

// Connector is implemented by bus peripherals that external devices can be
// attached to.
type Connector interface {
	Connect(dev Device) error
}

// Ratio is implemented by peripherals with a configurable clock ratio.
type Ratio interface {
	SetRatio(ratio int)
}

// Pender is implemented by the interrupt controller. The hardware manager
// sets raised interrupts as pending in the controller if one has been
// created.
type Pender interface {
	SetPending(irq int)
	Pending() []int
}

// Device is an external device attached to a bus peripheral. For I2C devices
// the address is the eight bit form with the read/write bit clear. SPI
// devices are selected by connection and the address is ignored.
type Device interface {
	Address() int

	// a byte written to the device by the bus
	Send(data byte)
}

// Receiver is implemented by devices that return data to the bus.
type Receiver interface {
	Recv() byte
}

// Starter is implemented by devices that want to be told about the start of
// a transaction. read is true if the bus master intends to read from the
// device.
type Starter interface {
	Start(read bool)
}

// Stopper is implemented by devices that want to be told about the end of a
// transaction.
type Stopper interface {
	Stop()
}
