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

// Package test bundles a bunch of useful functions useful for testing
// purposes, particularly useful in conjunction with the standard go test
// harness.
//
// The Expect*() functions test for a condition and report an error if the
// condition is not met. The Demand*() functions are the same except that
// failure is fatal to the test.
//
// It is worth describing how success and failure values are interpreted
// because it is not obvious. The nil type is considered a success. This may
// not be how we want to interpret nil in all situations but because of how
// errors usually work (nil to indicate no error) we *need* to interpret nil
// in this way.
//
// The CompareWriter and RingWriter types implement the io.Writer interface
// and should be used to capture output.
package test
