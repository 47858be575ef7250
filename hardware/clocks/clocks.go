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

// Package clocks defines the constant values of the SAM L22 clock hardware:
// the nominal frequencies of the oscillators, the size of the generator and
// peripheral channel banks and the startup lookup tables of the crystal
// oscillators.
//
// Values taken from the SAM L22 family datasheet (Microchip DS60001465).
package clocks

// Size of the generator and peripheral channel banks.
const (
	NumGenerators = 5
	NumChannels   = 29
)

// Nominal frequencies of the oscillators in Hz.
const (
	XOSC      = 12000000
	OSCULP32K = 32768
	XOSC32K   = 32768
	OSC16M    = 4000000
	DFLL48M   = 48000000
	FDPLL96M  = 96000000
)

// OSC16MFrequencies are the frequencies selectable with the FSEL field of the
// OSC16MCTRL register, indexed by the field value.
var OSC16MFrequencies = [...]int{4000000, 8000000, 12000000, 16000000}

// MinimumStartupCycles is the fallback number of startup cycles for a startup
// code that has no entry in a lookup table.
const MinimumStartupCycles = 1

// XOSCStartupCycles returns the number of oscillator cycles before the XOSC is
// ready for the STARTUP field value of the XOSCCTRL register. Valid codes are
// 0 to 15.
func XOSCStartupCycles(code int) int {
	if code < 0 || code > 15 {
		return MinimumStartupCycles
	}
	return 1 << code
}

// the XOSC32K startup table. the number of cycles is a multiple of 2048
var xosc32kStartup = [...]int{1, 2, 8, 16, 32, 64, 128}

// XOSC32KStartupCycles returns the number of oscillator cycles before the
// XOSC32K is ready for the STARTUP field value of the XOSC32K register. Valid
// codes are 0 to 6. Unrecognised codes return the value for code 0.
func XOSC32KStartupCycles(code int) int {
	if code < 0 || code >= len(xosc32kStartup) {
		return 2048 * xosc32kStartup[0]
	}
	return 2048 * xosc32kStartup[code]
}
