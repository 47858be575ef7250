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

// Package script drives the clock hardware from a Lua script. The script has
// access to a set of global functions that mirror the register interface of
// the clock tree:
//
//	osc_enable(osc, bool)       osc_freq(osc [, hz])     osc_startup(osc, code)
//	osc_ready(osc)
//	gen_source(gen, src)        gen_enable(gen, bool)    gen_div(gen, div)
//	gen_divsel(gen, bool)       gen_idc(gen, bool)       gen_freq(gen)
//	pch_write(ch, value)        pch_read(ch)             pch_freq(ch)
//	pch_locked(ch)
//	on_channel(ch, consumer, fn)
//	on_generator(gen, consumer, fn)
//	step(cycles)                now()                    reset()
//	cpu_freq()                  cpudiv(div)              perf_level(pl)
//	log(tag, detail)            snapshot()
//
// Oscillators and clock sources are named as they are in the snapshot output,
// for example "OSC16M" or "GCLK_GEN1". Channels can be given by index or by
// name, for example 20 or "TCC0".
//
// The functions given to on_channel() and on_generator() are called with the
// new frequency whenever the frequency changes. Passing nil instead of a
// function removes the handler.
//
// Output from the print() function is sent to the io.Writer given to
// NewScript().
package script
