// This file is part of Samclk.
//
// Samclk is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Samclk is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Samclk.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors are used by the front-end packages (preferences, scripting,
// the command line) to report expected failures. The clock tree itself never
// returns errors: reserved register encodings have a defined effect and
// wiring bugs panic.
//
// Curated errors are created with the Errorf() function. The pattern string is
// remembered and is used to identify the error with the Is() and Has()
// functions:
//
//	const UnknownOscillator = "script: unknown oscillator (%s)"
//
//	e := curated.Errorf(UnknownOscillator, "XOSC48")
//
//	if curated.Is(e, UnknownOscillator) {
//		fmt.Println("true")
//	}
//
// Has() is similar but checks whether the pattern occurs anywhere in the
// chain of wrapped curated errors:
//
//	f := curated.Errorf("script: %v", e)
//
//	if curated.Has(f, UnknownOscillator) {
//		fmt.Println("true")
//	}
//
// IsAny() answers whether the error was created by Errorf() at all. We can
// think of the difference as being 'expected' and 'unexpected' errors.
//
// The Error() implementation normalises the message so that adjacent
// duplicate parts are removed. Parts are separated by the sub-string ': ' so
// that wrapping with the same prefix twice does not produce messages like
// "script: script: unknown oscillator".
//
// Sentinel patterns should be declared as const strings next to the code
// that produces them.
package curated
