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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("SUMMARY", "PROBE", "DUMP")
//	_, _ = md.Parse()
//
// The first sub-mode is the default mode. Sub-mode comparisons are case
// insensitive. After Parse() the Mode() function returns the selected mode and
// RemainingArgs() returns the arguments after the flags AND the mode selector.
//
// Each mode can then call NewMode(), add its own flags and call Parse() again.
// The chain of modes so far is returned by Path(), joined with a slash.
//
//	func probe(md *modalflag.Modes) error {
//		md.NewMode()
//		trace := md.AddBool("trace", false, "trace peripheral accesses")
//		p, err := md.Parse()
//		if err != nil || p != modalflag.ParseContinue {
//			return err
//		}
//		...
//	}
//
// Help messages (-help or -h) are printed to the Output field automatically.
package modalflag
