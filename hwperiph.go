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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/jetsetilly/hwperiph/curated"
	"github.com/jetsetilly/hwperiph/environment"
	"github.com/jetsetilly/hwperiph/hardware"
	"github.com/jetsetilly/hwperiph/hardware/board"
	"github.com/jetsetilly/hwperiph/logger"
	"github.com/jetsetilly/hwperiph/modalflag"
	"github.com/jetsetilly/hwperiph/paths"
	"github.com/jetsetilly/hwperiph/prefs"
	"github.com/jetsetilly/hwperiph/probe"
	"github.com/jetsetilly/hwperiph/statsview"
	"github.com/jetsetilly/hwperiph/terminal/easyterm"
	"github.com/jetsetilly/hwperiph/version"
	"github.com/jetsetilly/hwperiph/wavwriter"
)

// error returned by the step function when the user quits
const userQuit = "user quit"

func main() {
	// ctrl-c ends the program immediately
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		fmt.Println("\r")
		os.Exit(0)
	}()

	os.Exit(launch(os.Args[1:], os.Stdout))
}

// launch returns the value to be used with os.Exit()
func launch(args []string, output io.Writer) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("SUMMARY", "PROBE", "DUMP", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0

	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return 10
	}

	switch md.Mode() {
	case "SUMMARY":
		err = summary(md)

	case "PROBE":
		err = runProbe(md)

	case "DUMP":
		err = dump(md)

	case "VERSION":
		fmt.Fprintln(output, version.String())
	}

	if err != nil {
		if curated.Has(err, userQuit) {
			return 0
		}
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return 20
	}

	return 0
}

// newEnvironment creates the emulation environment. The prefs argument is
// pushed onto the command line stack for the duration of the preferences
// creation. The board argument overrides the board preference if it is not
// empty.
func newEnvironment(prefsArg string, boardArg string) (*environment.Environment, error) {
	prefs.PushCommandLineStack(prefsArg)
	env, err := environment.NewEnvironment(environment.MainEmulation, nil)
	if unused := prefs.PopCommandLineStack(); unused != "" {
		logger.Logf(logger.Allow, "hwperiph", "unused preferences: %s", unused)
	}
	if err != nil {
		return nil, err
	}

	if boardArg != "" {
		err = env.Prefs.Board.Set(boardArg)
		if err != nil {
			return nil, err
		}
	}

	return env, nil
}

func summary(md *modalflag.Modes) error {
	md.NewMode()

	name := md.AddString("board", "", "board profile. all profiles listed if not specified")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	names := board.Names()
	if *name != "" {
		names = []string{*name}
	}

	for i, n := range names {
		profile, err := board.Get(n)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(md.Output)
		}
		fmt.Fprintf(md.Output, "%s\n", profile)
		fmt.Fprint(md.Output, hardware.BoardSummary(profile))
	}

	return nil
}

func runProbe(md *modalflag.Modes) error {
	md.NewMode()

	boardArg := md.AddString("board", "", "board profile (overrides the hw.board preference)")
	prefsArg := md.AddString("prefs", "", "preferences to apply. eg. \"hw.tickcadence::4; hw.usart.shiftdelay::10\"")
	trace := md.AddBool("trace", false, "trace every register access to stdout")
	step := md.AddBool("step", false, "wait for a key press before every instruction")
	wav := md.AddString("wav", "", "wav file for the captured pin. a unique name is generated if not specified")
	capture := md.AddString("capture", "", "pin to capture in the form label:pin. eg. gpioa:5")
	rate := md.AddInt("rate", 44100, "sample rate of the wav file in ticks per second")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	log := md.AddBool("log", false, "echo log to stdout")

	md.AdditionalHelp("Probe scripts are line oriented. See the probe package documentation for the instruction set.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(md.Output)
	} else {
		logger.SetEcho(nil)
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("probe script required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *wav != "" && *capture == "" {
		return fmt.Errorf("-wav requires -capture")
	}

	env, err := newEnvironment(*prefsArg, *boardArg)
	if err != nil {
		return err
	}

	if *trace {
		env.Trace = md.Output
		err = env.Prefs.Trace.Set(true)
		if err != nil {
			return err
		}
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview not available in this build")
		}
		stop := statsview.Launch(md.Output, "")
		defer stop()
	}

	prb, err := probe.NewProbe(env, md.Output)
	if err != nil {
		return err
	}

	if *capture != "" {
		label, pin, err := parseCapture(*capture)
		if err != nil {
			return err
		}

		if *wav == "" {
			*wav = fmt.Sprintf("%s.wav", paths.UniqueFilename("capture", strings.ReplaceAll(*capture, ":", "")))
		}

		aw, err := wavwriter.NewWavWriter(*wav, *rate)
		if err != nil {
			return err
		}

		err = prb.Capture(label, pin, aw)
		if err != nil {
			return err
		}

		// the wav file is written even if the script fails
		defer func() {
			if err := aw.Write(); err != nil {
				logger.Log(env, "hwperiph", err)
			}
		}()
	}

	if *step {
		term, err := easyterm.Open(easyterm.DefaultDevice, md.Output)
		if err != nil {
			return err
		}
		defer term.Close()

		prb.Step = func(instruction string) error {
			term.Print("> %s ", instruction)
			k, err := term.WaitKey()
			term.Print("\n")
			if err != nil {
				return err
			}
			switch k {
			case 'q', 'Q', easyterm.KeyCtrlC, easyterm.KeyCtrlD, easyterm.KeyEsc:
				return curated.Errorf(userQuit)
			case 'c', 'C':
				prb.Step = nil
			}
			return nil
		}
	}

	err = prb.RunFile(md.GetArg(0))
	if err != nil && !*log {
		logger.Tail(md.Output, 5)
	}
	return err
}

func parseCapture(s string) (string, int, error) {
	label, pin, ok := strings.Cut(s, ":")
	if !ok {
		return "", 0, fmt.Errorf("capture should be in the form label:pin")
	}
	n, err := strconv.Atoi(pin)
	if err != nil {
		return "", 0, fmt.Errorf("capture pin: %w", err)
	}
	return label, n, nil
}

func dump(md *modalflag.Modes) error {
	md.NewMode()

	boardArg := md.AddString("board", "", "board profile (overrides the hw.board preference)")
	summary := md.AddBool("summary", false, "print memory map summary instead of graphviz output")

	md.AdditionalHelp("Peripherals named on the command line are created before the dump.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	env, err := newEnvironment("", *boardArg)
	if err != nil {
		return err
	}

	hw, err := hardware.NewManager(env)
	if err != nil {
		return err
	}

	for _, label := range md.RemainingArgs() {
		_, err := hw.Create(label)
		if err != nil {
			return err
		}
	}

	if *summary {
		fmt.Fprint(md.Output, hw.Summary())
		return nil
	}

	hw.Visualise(md.Output)

	return nil
}
