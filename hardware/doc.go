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

// Package hardware is the base package for the SAM L22 clock hardware. The
// MCU type collects the clock tree, the main clock controller, the CPU clock
// domain and the timeline on which oscillator startup events are scheduled.
//
// Time passes with the Step() function. One call advances the timeline by the
// number of cycles and the CPU executes the same number of cycles, provided
// its clock is running:
//
//	mcu, _ := hardware.NewMCU(nil, nil)
//	mcu.Tree.Oscillator(clocktree.XOSC).SetEnabled(true)
//	mcu.Step(100)
//
// The Run() function calls Step() repeatedly until the supplied continue
// check returns false.
package hardware
