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

// Package mclk is the main clock controller. It connects the output of the
// main generator (GCLK_MAIN, generator 0 of the clock tree) to the CPU clock
// domain. The frequency is divided by the CPUDIV value before it reaches the
// CPU.
//
// The controller also models the performance level configuration of the power
// manager. Every write of the performance level raises the performance level
// ready interrupt flag. The IRQ line is asserted when the flag is raised and
// the interrupt is enabled. A CPU frequency above the limit of the current
// performance level is logged and raised as a notification.
//
// Reset() is the global reset of the clock system. The controller restores
// its own state and then resets the clock tree. The reset of the clock tree
// calls every handler, including the one that feeds the CPU domain, so the CPU
// domain is always resynchronised by a reset.
package mclk
