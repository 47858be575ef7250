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

package clocktree

import (
	"fmt"

	"github.com/jetsetilly/samclk/hardware/clocks"
	"github.com/jetsetilly/samclk/logger"
	"github.com/jetsetilly/samclk/notifications"
)

// OscillatorID identifies one of the oscillators of the clock tree.
type OscillatorID int

// List of oscillators. The order is the order in the arena.
const (
	XOSC OscillatorID = iota
	GCLKIN
	OSCULP32K
	XOSC32K
	OSC16M
	DFLL48M
	FDPLL96M
	NumOscillators
)

func (id OscillatorID) String() string {
	if id < 0 || id >= NumOscillators {
		return fmt.Sprintf("oscillator(%d)", int(id))
	}
	return oscillatorSpecs[id].name
}

// the fixed properties of an oscillator
type oscillatorSpec struct {
	name string

	// state after reset
	enabled   bool
	frequency int

	// the frequency can be changed with SetFrequency()
	tunable bool

	// the oscillator can not be disabled
	alwaysOn bool

	// converts a startup code to a number of cycles. nil if the oscillator
	// has no startup code
	startup func(code int) int
}

var oscillatorSpecs = [NumOscillators]oscillatorSpec{
	XOSC:      {name: "XOSC", frequency: clocks.XOSC, tunable: true, startup: clocks.XOSCStartupCycles},
	GCLKIN:    {name: "GCLKIN", tunable: true},
	OSCULP32K: {name: "OSCULP32K", enabled: true, frequency: clocks.OSCULP32K, alwaysOn: true},
	XOSC32K:   {name: "XOSC32K", frequency: clocks.XOSC32K, startup: clocks.XOSC32KStartupCycles},
	OSC16M:    {name: "OSC16M", enabled: true, frequency: clocks.OSC16M, tunable: true},
	DFLL48M:   {name: "DFLL48M", frequency: clocks.DFLL48M, tunable: true},
	FDPLL96M:  {name: "FDPLL96M", frequency: clocks.FDPLL96M, tunable: true},
}

// Oscillator is a clock source of the clock tree. The output of the
// oscillator is zero until it is both enabled and ready.
type Oscillator struct {
	tree *Tree
	id   NodeID
	spec oscillatorSpec
	osc  OscillatorID

	enabled bool
	ready   bool

	nominal       int
	resetNominal  int
	startupCycles int

	// increased on every enable edge and every reset. a startup event only
	// has an effect if the generation has not changed since it was scheduled
	generation uint64
}

func newOscillator(t *Tree, osc OscillatorID) *Oscillator {
	o := &Oscillator{
		tree:         t,
		osc:          osc,
		spec:         oscillatorSpecs[osc],
		resetNominal: oscillatorSpecs[osc].frequency,
	}
	if o.spec.startup != nil {
		o.startupCycles = o.spec.startup(0)
	}
	o.id = t.addNode(o.spec.name, o.output)
	return o
}

func (o *Oscillator) String() string {
	switch {
	case o.ready:
		return fmt.Sprintf("%s: %dHz ready", o.spec.name, o.nominal)
	case o.enabled:
		return fmt.Sprintf("%s: %dHz starting", o.spec.name, o.nominal)
	}
	return fmt.Sprintf("%s: disabled", o.spec.name)
}

// the value pushed to subscribers
func (o *Oscillator) output() int {
	if o.ready {
		return o.nominal
	}
	return 0
}

func (o *Oscillator) reset() {
	o.generation++
	o.enabled = o.spec.enabled
	o.ready = o.spec.enabled
	o.nominal = o.resetNominal
}

// ID returns the oscillator ID.
func (o *Oscillator) ID() OscillatorID {
	return o.osc
}

// Name returns the name of the oscillator.
func (o *Oscillator) Name() string {
	return o.spec.name
}

// Node returns the arena ID of the oscillator.
func (o *Oscillator) Node() NodeID {
	return o.id
}

// Enabled returns true if the oscillator has been enabled.
func (o *Oscillator) Enabled() bool {
	return o.enabled
}

// Ready returns true once the startup period of an enabled oscillator has
// elapsed.
func (o *Oscillator) Ready() bool {
	return o.ready
}

// Frequency returns the nominal frequency if the oscillator is enabled and
// zero otherwise. Note that an enabled oscillator may not be ready.
func (o *Oscillator) Frequency() int {
	if o.enabled {
		return o.nominal
	}
	return 0
}

// Output returns the frequency seen by subscribers of the oscillator. This is
// zero until the oscillator is ready.
func (o *Oscillator) Output() int {
	return o.tree.output(o.id)
}

// NominalFrequency returns the configured frequency regardless of whether the
// oscillator is enabled.
func (o *Oscillator) NominalFrequency() int {
	return o.nominal
}

// StartupCycles returns the number of timeline cycles between an enable edge
// and the oscillator becoming ready.
func (o *Oscillator) StartupCycles() int {
	return o.startupCycles
}

// Tunable returns true if the frequency of the oscillator can be changed.
func (o *Oscillator) Tunable() bool {
	return o.spec.tunable
}

// SetEnabled starts or stops the oscillator. Enabling the oscillator
// schedules the end of the startup period. The oscillator is never ready as a
// direct result of the call to SetEnabled().
//
// Disabling the oscillator clears the ready flag immediately and any
// subscribers are notified of the zero output. OSCULP32K can not be disabled.
func (o *Oscillator) SetEnabled(enabled bool) {
	if enabled == o.enabled {
		return
	}
	if !enabled && o.spec.alwaysOn {
		return
	}

	o.generation++
	o.enabled = enabled
	o.ready = false

	if enabled {
		gen := o.generation
		o.tree.sched.Schedule(int64(o.startupCycles), fmt.Sprintf("%s startup", o.spec.name), func() {
			o.startupComplete(gen)
		})
		return
	}

	logger.Logf(o.tree, logTag, "%s stopped", o.spec.name)
	o.tree.refresh(o.id)
	o.tree.raise(notifications.NotifyOscillatorStopped, o.spec.name)
}

func (o *Oscillator) startupComplete(generation uint64) {
	if generation != o.generation || !o.enabled {
		return
	}
	o.ready = true
	logger.Logf(o.tree, logTag, "%s ready at %dHz", o.spec.name, o.nominal)
	o.tree.refresh(o.id)
	o.tree.raise(notifications.NotifyOscillatorReady, o.spec.name)
}

// SetFrequency changes the nominal frequency of a tunable oscillator. The
// call is ignored for oscillators with a fixed frequency. Subscribers are
// notified only if the oscillator is ready.
func (o *Oscillator) SetFrequency(freq int) {
	if !o.spec.tunable {
		return
	}
	o.nominal = max(freq, 0)
	o.tree.refresh(o.id)
}

// SetResetFrequency changes the frequency of a tunable oscillator and the
// frequency that the oscillator returns to on reset. Used to describe the
// crystals and external clocks fitted to a board.
func (o *Oscillator) SetResetFrequency(freq int) {
	if !o.spec.tunable {
		return
	}
	o.resetNominal = max(freq, 0)
	o.SetFrequency(freq)
}

// SetStartupCode sets the number of startup cycles using the startup lookup
// table of the oscillator. Unrecognised codes use the fallback value of the
// table. The call is ignored for oscillators without a startup field.
//
// The startup period is not changed by a reset.
func (o *Oscillator) SetStartupCode(code int) {
	if o.spec.startup == nil {
		return
	}
	o.startupCycles = o.spec.startup(code)
}

// SetStartupCycles sets the number of startup cycles directly. Negative values
// are treated as zero. Takes effect from the next enable edge.
func (o *Oscillator) SetStartupCycles(cycles int) {
	o.startupCycles = max(cycles, 0)
}
