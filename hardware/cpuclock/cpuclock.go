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

// Package cpuclock is the execution clock domain of the CPU. The instruction
// timing model counts CPU cycles and the domain converts between cycles and
// simulated time using the frequency pushed to it by the main clock
// controller.
package cpuclock

import (
	"fmt"
	"math"
	"math/bits"
	"time"
)

// picoseconds in one second
const psPerSecond = 1_000_000_000_000

// Domain is the CPU clock domain. The zero value is a stopped clock.
type Domain struct {
	freq int

	// number of CPU cycles that have been executed
	cycles int64

	// simulated time in whole seconds and the picoseconds remaining. the
	// remainder is always less than one second
	seconds int64
	ps      int64

	// number of times the frequency has been pushed to the domain
	updates int
}

// NewDomain is the preferred method of initialisation for the Domain type.
func NewDomain() *Domain {
	return &Domain{}
}

func (d *Domain) String() string {
	if d.freq == 0 {
		return "CPU: stopped"
	}
	return fmt.Sprintf("CPU: %.3fMHz", float64(d.freq)/1000000)
}

// SetFrequency is called whenever the frequency of the domain changes. The
// call is counted even if the frequency is the same as the current frequency.
func (d *Domain) SetFrequency(hz int) {
	d.freq = max(hz, 0)
	d.updates++
}

// Frequency returns the current frequency in Hz.
func (d *Domain) Frequency() int {
	return d.freq
}

// Updates returns the number of calls to SetFrequency().
func (d *Domain) Updates() int {
	return d.updates
}

// Running returns true if the domain has a non-zero frequency.
func (d *Domain) Running() bool {
	return d.freq > 0
}

// Period returns the duration of one cycle. Zero if the clock is stopped.
func (d *Domain) Period() time.Duration {
	if d.freq == 0 {
		return 0
	}
	return time.Second / time.Duration(d.freq)
}

// saturating addition of two non-negative values
func addSat(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Execute runs the number of CPU cycles. Returns false and executes nothing if
// the clock is stopped.
//
// The cycle count and the simulated time stop at their maximum values rather
// than wrap.
func (d *Domain) Execute(cycles int64) bool {
	if d.freq == 0 || cycles <= 0 {
		return false
	}
	d.cycles = addSat(d.cycles, cycles)

	// whole seconds and the remaining cycles are converted separately. the
	// product of the remainder and psPerSecond can exceed 64 bits
	f := uint64(d.freq)
	q, r := uint64(cycles)/f, uint64(cycles)%f
	hi, lo := bits.Mul64(r, psPerSecond)
	ps, _ := bits.Div64(hi, lo, f)

	d.ps += int64(ps)
	if d.ps >= psPerSecond {
		d.ps -= psPerSecond
		q++
	}
	d.seconds = addSat(d.seconds, int64(q))

	return true
}

// Cycles returns the number of CPU cycles executed.
func (d *Domain) Cycles() int64 {
	return d.cycles
}

// Elapsed returns the simulated time taken by the executed cycles. Each call
// to Execute() is timed at the frequency in effect at the time of the call.
// The maximum Duration is returned if the simulated time is too long to be
// represented.
func (d *Domain) Elapsed() time.Duration {
	const maxSeconds = math.MaxInt64 / int64(time.Second)
	if d.seconds > maxSeconds {
		return math.MaxInt64
	}
	return time.Duration(addSat(d.seconds*int64(time.Second), d.ps/1000))
}

// CyclesIn returns the number of cycles in the duration at the current
// frequency. The result is limited to the largest int64.
func (d *Domain) CyclesIn(dur time.Duration) int64 {
	if dur <= 0 || d.freq == 0 {
		return 0
	}
	f := uint64(d.freq)

	hi, whole := bits.Mul64(uint64(dur/time.Second), f)
	if hi != 0 || whole > math.MaxInt64 {
		return math.MaxInt64
	}

	// the remainder is less than a second so the quotient always fits
	hi, lo := bits.Mul64(uint64(dur%time.Second), f)
	part, _ := bits.Div64(hi, lo, uint64(time.Second))

	return addSat(int64(whole), int64(part))
}
