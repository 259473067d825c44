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

package probe

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/driver/membus"
	"github.com/jetsetilly/hwperiph/environment"
	"github.com/jetsetilly/hwperiph/hardware"
	"github.com/jetsetilly/hwperiph/hardware/devices/eeprom"
	"github.com/jetsetilly/hwperiph/hardware/devices/sram"
	"github.com/jetsetilly/hwperiph/hardware/peripherals"
	"github.com/jetsetilly/hwperiph/logger"
)

// Sentinal error patterns.
const (
	ScriptError       = "probe: %s: %d: %v"
	UnknownCommand    = "unrecognised command: %s"
	ArgumentError     = "%s: %v"
	ExpectationFailed = "expected %#x at %08x but read %#x"
	RecvMismatch      = "expected %q from %s but received %q"
)

// the largest number of bytes a PEEK instruction will show
const maxPeek = 0x1000

// Sampler receives the level of a captured pin once every tick.
type Sampler interface {
	Sample(high bool)
}

// Probe runs scripts against a hardware.Manager attached to a membus.Bus.
type Probe struct {
	env *environment.Environment
	hw  *hardware.Manager
	bus *membus.Bus
	out io.Writer

	// Step is called before every instruction with the instruction being
	// run. Returning an error stops the script
	Step func(instruction string) error

	// named loop counters
	variables map[string]int
}

// NewProbe is the preferred method of initialisation for the Probe type.
// Output from READ, RECV and the like is written to out.
func NewProbe(env *environment.Environment, out io.Writer) (*Probe, error) {
	hw, err := hardware.NewManager(env)
	if err != nil {
		return nil, curated.Errorf("probe: %v", err)
	}

	bus := membus.NewBus()
	err = hw.Attach(bus)
	if err != nil {
		return nil, curated.Errorf("probe: %v", err)
	}

	return &Probe{
		env:       env,
		hw:        hw,
		bus:       bus,
		out:       out,
		variables: make(map[string]int),
	}, nil
}

// Manager returns the hardware manager used by the probe.
func (p *Probe) Manager() *hardware.Manager {
	return p.hw
}

// Bus returns the system bus used by the probe.
func (p *Probe) Bus() *membus.Bus {
	return p.bus
}

// Capture the level of a pin every tick. The peripheral is created if
// necessary.
func (p *Probe) Capture(label string, pin int, s Sampler) error {
	h, err := p.hw.Create(label)
	if err != nil {
		return curated.Errorf("probe: %v", err)
	}

	// check that the pin can be read before adding the hook
	_, err = h.Pin(pin)
	if err != nil {
		return curated.Errorf("probe: %v", err)
	}

	p.bus.HookTick(func() error {
		high, err := h.Pin(pin)
		if err != nil {
			return err
		}
		s.Sample(high)
		return nil
	})

	return nil
}

// RunFile loads and runs the named script.
func (p *Probe) RunFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return curated.Errorf("probe: %v", err)
	}
	defer f.Close()
	return p.Run(filename, f)
}

// Run the script read from r. The name is used in error messages.
func (p *Probe) Run(name string, r io.Reader) error {
	buffer, err := io.ReadAll(r)
	if err != nil {
		return curated.Errorf("probe: %v", err)
	}

	// convert script to an array of lines
	instructions := strings.Split(string(buffer), "\n")

	type loop struct {
		line int

		// loop counters count upwards
		count    int
		countEnd int

		// if the loop counter has been named then the entry in the variables
		// table is updated on every iteration
		countName string
	}

	var loops []loop

	for ln := 0; ln < len(instructions); ln++ {
		toks := TokeniseInput(instructions[ln])

		cmd, ok := toks.Get()
		if !ok || strings.HasPrefix(cmd, "--") || strings.HasPrefix(cmd, "#") {
			continue // for loop
		}
		cmd = strings.ToUpper(cmd)

		if p.Step != nil {
			err = p.Step(toks.String())
			if err != nil {
				return curated.Errorf(ScriptError, name, ln+1, err)
			}
		}

		switch cmd {
		case "DO":
			var ct int
			ct, err = p.integer(cmd, toks)
			if err != nil {
				break // switch
			}
			if ct < 1 {
				err = curated.Errorf(ArgumentError, cmd, "count must be positive")
				break // switch
			}
			lp := loop{
				line:     ln,
				countEnd: ct,
			}
			if n, ok := toks.Get(); ok {
				lp.countName = n
				p.variables[lp.countName] = lp.count
			}
			err = p.noMoreArgs(cmd, toks)
			loops = append(loops, lp)

		case "LOOP":
			err = p.noMoreArgs(cmd, toks)
			if err != nil {
				break // switch
			}

			idx := len(loops) - 1
			if idx == -1 {
				err = curated.Errorf("LOOP without a DO")
				break // switch
			}

			lp := &loops[idx]
			lp.count++
			if lp.countName != "" {
				p.variables[lp.countName] = lp.count
			}

			if lp.count < lp.countEnd {
				ln = lp.line
			} else {
				if lp.countName != "" {
					delete(p.variables, lp.countName)
				}
				loops = loops[:idx]
			}

		default:
			err = p.exec(cmd, toks)
		}

		if err != nil {
			return curated.Errorf(ScriptError, name, ln+1, err)
		}
	}

	if len(loops) > 0 {
		return curated.Errorf(ScriptError, name, loops[len(loops)-1].line+1, "DO without a LOOP")
	}

	return nil
}

func (p *Probe) exec(cmd string, toks *Tokens) error {
	switch cmd {
	default:
		return curated.Errorf(UnknownCommand, cmd)

	case "CREATE":
		if toks.IsEnd() {
			return curated.Errorf(ArgumentError, cmd, "too few arguments")
		}
		for !toks.IsEnd() {
			label, _ := toks.Get()
			if _, err := p.hw.Create(label); err != nil {
				return err
			}
		}

	case "CONNECT":
		h, err := p.handle(cmd, toks)
		if err != nil {
			return err
		}
		dev, ok := toks.Get()
		if !ok {
			return curated.Errorf(ArgumentError, cmd, "no device specified")
		}

		var d peripherals.Device
		switch strings.ToUpper(dev) {
		case "EEPROM":
			address := eeprom.DefaultAddress
			if !toks.IsEnd() {
				address, err = p.integer(cmd, toks)
				if err != nil {
					return err
				}
			}
			d, err = eeprom.NewEEPROM(p.env, address, eeprom.DefaultSize, eeprom.DefaultPageSize, "")
			if err != nil {
				return err
			}
		case "SRAM":
			d = sram.NewSRAM(sram.DefaultSize)
		default:
			return curated.Errorf(ArgumentError, cmd, fmt.Sprintf("unknown device %s", dev))
		}

		if err := p.noMoreArgs(cmd, toks); err != nil {
			return err
		}
		return h.Connect(d)

	case "READ":
		address, size, err := p.address(cmd, toks)
		if err != nil {
			return err
		}
		if size, err = p.size(cmd, toks, size); err != nil {
			return err
		}
		v, err := p.bus.Load(address, size)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "%08x = %#x\n", address, v)

	case "WRITE", "EXPECT":
		address, size, err := p.address(cmd, toks)
		if err != nil {
			return err
		}
		value, err := p.value(cmd, toks)
		if err != nil {
			return err
		}
		if size, err = p.size(cmd, toks, size); err != nil {
			return err
		}

		if cmd == "WRITE" {
			return p.bus.Store(address, size, value)
		}

		v, err := p.bus.Load(address, size)
		if err != nil {
			return err
		}
		if v != value {
			return curated.Errorf(ExpectationFailed, value, address, v)
		}

	case "TICK":
		n := 1
		if !toks.IsEnd() {
			var err error
			n, err = p.integer(cmd, toks)
			if err != nil {
				return err
			}
		}
		if err := p.noMoreArgs(cmd, toks); err != nil {
			return err
		}
		for range n {
			if err := p.bus.Retire(); err != nil {
				return err
			}
		}

	case "SEND":
		h, err := p.handle(cmd, toks)
		if err != nil {
			return err
		}
		d, err := p.data(cmd, toks)
		if err != nil {
			return err
		}
		return h.Send(d)

	case "RECV":
		h, err := p.handle(cmd, toks)
		if err != nil {
			return err
		}
		var expected []byte
		if !toks.IsEnd() {
			expected, err = p.data(cmd, toks)
			if err != nil {
				return err
			}
		}
		d, err := h.Recv()
		if err != nil {
			return err
		}
		if expected == nil {
			fmt.Fprintf(p.out, "%s: %q\n", h.Label(), d)
		} else if string(d) != string(expected) {
			return curated.Errorf(RecvMismatch, expected, h.Label(), d)
		}

	case "PIN":
		h, err := p.handle(cmd, toks)
		if err != nil {
			return err
		}
		pin, err := p.integer(cmd, toks)
		if err != nil {
			return err
		}
		if toks.IsEnd() {
			high, err := h.Pin(pin)
			if err != nil {
				return err
			}
			fmt.Fprintf(p.out, "%s pin %d = %d\n", h.Label(), pin, level(high))
			return nil
		}
		l, err := p.integer(cmd, toks)
		if err != nil {
			return err
		}
		if err := p.noMoreArgs(cmd, toks); err != nil {
			return err
		}
		return h.SetPin(pin, l != 0)

	case "HOOK":
		h, err := p.handle(cmd, toks)
		if err != nil {
			return err
		}
		pin, err := p.integer(cmd, toks)
		if err != nil {
			return err
		}
		if err := p.noMoreArgs(cmd, toks); err != nil {
			return err
		}
		return h.HookSet(pin, func(high bool) {
			fmt.Fprintf(p.out, "%s pin %d -> %d\n", h.Label(), pin, level(high))
		})

	case "RATIO":
		h, err := p.handle(cmd, toks)
		if err != nil {
			return err
		}
		ratio, err := p.integer(cmd, toks)
		if err != nil {
			return err
		}
		if err := p.noMoreArgs(cmd, toks); err != nil {
			return err
		}
		return h.SetRatio(ratio)

	case "POKE":
		address, _, err := p.address(cmd, toks)
		if err != nil {
			return err
		}
		d, err := p.data(cmd, toks)
		if err != nil {
			return err
		}
		p.bus.Poke(address, d)

	case "PEEK":
		address, _, err := p.address(cmd, toks)
		if err != nil {
			return err
		}
		n, err := p.integer(cmd, toks)
		if err != nil {
			return err
		}
		if n < 1 || n > maxPeek {
			return curated.Errorf(ArgumentError, cmd, fmt.Sprintf("count must be between 1 and %d", maxPeek))
		}
		if err := p.noMoreArgs(cmd, toks); err != nil {
			return err
		}
		fmt.Fprintf(p.out, "%08x: % x\n", address, p.bus.Peek(address, n))

	case "IRQS":
		if err := p.noMoreArgs(cmd, toks); err != nil {
			return err
		}
		fmt.Fprintf(p.out, "irqs: %v\n", p.bus.Raised())

	case "RESET":
		if err := p.noMoreArgs(cmd, toks); err != nil {
			return err
		}
		p.hw.Reset()
		logger.Log(p.env, "probe", "peripherals reset")

	case "SUMMARY":
		if err := p.noMoreArgs(cmd, toks); err != nil {
			return err
		}
		fmt.Fprint(p.out, p.hw.Summary())
	}

	return nil
}

func level(high bool) int {
	if high {
		return 1
	}
	return 0
}

func (p *Probe) noMoreArgs(cmd string, toks *Tokens) error {
	if !toks.IsEnd() {
		return curated.Errorf(ArgumentError, cmd, fmt.Sprintf("unexpected arguments: %s", toks.Remainder()))
	}
	return nil
}

func (p *Probe) handle(cmd string, toks *Tokens) (*hardware.Handle, error) {
	label, ok := toks.Get()
	if !ok {
		return nil, curated.Errorf(ArgumentError, cmd, "no peripheral specified")
	}
	return p.hw.Lookup(label)
}

// address returns the address indicated by the next token and the natural
// size of an access to that address.
func (p *Probe) address(cmd string, toks *Tokens) (uint32, int, error) {
	s, ok := toks.Get()
	if !ok {
		return 0, 0, curated.Errorf(ArgumentError, cmd, "no address specified")
	}

	if v, err := strconv.ParseUint(s, 0, 32); err == nil {
		return uint32(v), 4, nil
	}

	if label, reg, ok := strings.Cut(s, "."); ok {
		h, err := p.hw.Lookup(label)
		if err != nil {
			return 0, 0, err
		}
		f, ok := h.Peripheral().Layout().Field(strings.ToUpper(reg))
		if !ok {
			return 0, 0, curated.Errorf(ArgumentError, cmd, fmt.Sprintf("%s has no register %s", h.Label(), reg))
		}
		return h.Base() + uint32(f.Offset), f.Size, nil
	}

	label, offset, hasOffset := strings.Cut(s, "+")
	h, err := p.hw.Lookup(label)
	if err != nil {
		return 0, 0, err
	}
	if !hasOffset {
		return h.Base(), 4, nil
	}
	o, err := strconv.ParseUint(offset, 0, 32)
	if err != nil {
		return 0, 0, curated.Errorf(ArgumentError, cmd, err)
	}
	return h.Base() + uint32(o), 4, nil
}

// size returns the optional size argument or the default size if there is
// no argument.
func (p *Probe) size(cmd string, toks *Tokens, def int) (int, error) {
	if toks.IsEnd() {
		return def, nil
	}
	size, err := p.integer(cmd, toks)
	if err != nil {
		return 0, err
	}
	if size < 1 || size > 8 {
		return 0, curated.Errorf(ArgumentError, cmd, fmt.Sprintf("size of %d is not allowed", size))
	}
	return size, p.noMoreArgs(cmd, toks)
}

func (p *Probe) value(cmd string, toks *Tokens) (uint64, error) {
	s, ok := toks.Get()
	if !ok {
		return 0, curated.Errorf(ArgumentError, cmd, "too few arguments")
	}
	return p.convert(cmd, s)
}

func (p *Probe) integer(cmd string, toks *Tokens) (int, error) {
	v, err := p.value(cmd, toks)
	return int(v), err
}

func (p *Probe) convert(cmd string, s string) (uint64, error) {
	switch s[0] {
	case '%':
		v, ok := p.variables[s[1:]]
		if !ok {
			return 0, curated.Errorf(ArgumentError, cmd, fmt.Sprintf("variable %s does not exist", s[1:]))
		}
		return uint64(v), nil
	case '\'':
		c, err := strconv.Unquote(s)
		if err != nil || len(c) != 1 {
			return 0, curated.Errorf(ArgumentError, cmd, fmt.Sprintf("bad character %s", s))
		}
		return uint64(c[0]), nil
	}

	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, curated.Errorf(ArgumentError, cmd, err)
	}
	return v, nil
}

// data consumes the remaining tokens as a sequence of bytes.
func (p *Probe) data(cmd string, toks *Tokens) ([]byte, error) {
	if toks.IsEnd() {
		return nil, curated.Errorf(ArgumentError, cmd, "no data specified")
	}

	d := []byte{}
	for !toks.IsEnd() {
		s, _ := toks.Get()
		if s[0] == '"' {
			u, err := strconv.Unquote(s)
			if err != nil {
				return nil, curated.Errorf(ArgumentError, cmd, err)
			}
			d = append(d, u...)
			continue // for loop
		}

		v, err := p.convert(cmd, s)
		if err != nil {
			return nil, err
		}
		if v > 0xff {
			return nil, curated.Errorf(ArgumentError, cmd, fmt.Sprintf("%#x is not a byte", v))
		}
		d = append(d, byte(v))
	}

	return d, nil
}
