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
)

// ClockSource is the value of the SRC field of the GENCTRL register.
type ClockSource int

// List of clock sources. Values from 8 to 31 are reserved.
const (
	SourceXOSC ClockSource = iota
	SourceGCLKIN
	SourceGCLKGen1
	SourceOSCULP32K
	SourceXOSC32K
	SourceOSC16M
	SourceDFLL48M
	SourceFDPLL96M
)

var sourceOscillators = map[ClockSource]OscillatorID{
	SourceXOSC:      XOSC,
	SourceGCLKIN:    GCLKIN,
	SourceOSCULP32K: OSCULP32K,
	SourceXOSC32K:   XOSC32K,
	SourceOSC16M:    OSC16M,
	SourceDFLL48M:   DFLL48M,
	SourceFDPLL96M:  FDPLL96M,
}

func (src ClockSource) String() string {
	if src == SourceGCLKGen1 {
		return "GCLK_GEN1"
	}
	if osc, ok := sourceOscillators[src]; ok {
		return osc.String()
	}
	return fmt.Sprintf("reserved(%d)", int(src))
}

// Oscillator returns the oscillator selected by the clock source. Returns
// false if the source is not an oscillator.
func (src ClockSource) Oscillator() (OscillatorID, bool) {
	osc, ok := sourceOscillators[src]
	return osc, ok
}

// ParseClockSource returns the clock source for the name used by String().
func ParseClockSource(name string) (ClockSource, bool) {
	if name == "GCLK_GEN1" {
		return SourceGCLKGen1, true
	}
	for src, osc := range sourceOscillators {
		if osc.String() == name {
			return src, true
		}
	}
	return 0, false
}

// Generator divides the frequency of its clock source.
type Generator struct {
	tree  *Tree
	id    NodeID
	index int

	source           ClockSource
	enabled          bool
	improveDutyCycle bool
	divideSelect     bool
	divisionFactor   int
}

func newGenerator(t *Tree, index int) *Generator {
	g := &Generator{
		tree:  t,
		index: index,
	}
	g.id = t.addNode(fmt.Sprintf("GCLK%d", index), g.compute)
	return g
}

func (g *Generator) String() string {
	if !g.enabled {
		return fmt.Sprintf("GCLK%d: disabled", g.index)
	}
	return fmt.Sprintf("GCLK%d: %dHz from %s", g.index, g.Frequency(), g.source)
}

func (g *Generator) reset() {
	src := SourceXOSC
	if g.index == GCLKMain {
		src = SourceOSC16M
	}
	g.tree.rebind(g.id, g.producer(), g.tree.sourceNode(g.index, src))
	g.source = src
	g.enabled = g.index == GCLKMain
	g.improveDutyCycle = false
	g.divideSelect = false
	g.divisionFactor = 1
}

// sourceNode returns the node selected by the clock source for the generator
// with the index.
func (t *Tree) sourceNode(index int, src ClockSource) NodeID {
	if src == SourceGCLKGen1 {
		// generator 1 can not be its own source
		if index == 1 {
			return noNode
		}
		return t.generators[1].id
	}
	if osc, ok := src.Oscillator(); ok {
		return t.oscillators[osc].id
	}
	return noNode
}

func (g *Generator) producer() NodeID {
	return g.tree.sourceNode(g.index, g.source)
}

func (g *Generator) compute() int {
	if !g.enabled {
		return 0
	}
	f := g.tree.output(g.producer())
	d := max(g.divisionFactor, 1)
	if g.divideSelect {
		return f / (d * d)
	}
	return f / d
}

// Index returns the position of the generator in the bank.
func (g *Generator) Index() int {
	return g.index
}

// Node returns the arena ID of the generator.
func (g *Generator) Node() NodeID {
	return g.id
}

// Frequency returns the output frequency of the generator.
func (g *Generator) Frequency() int {
	return g.tree.output(g.id)
}

// Source returns the selected clock source.
func (g *Generator) Source() ClockSource {
	return g.source
}

// Enabled returns true if the generator is enabled.
func (g *Generator) Enabled() bool {
	return g.enabled
}

// DivisionFactor returns the division factor as it was set. A value of zero
// is used as one.
func (g *Generator) DivisionFactor() int {
	return g.divisionFactor
}

// DivideSelect returns true if the source is divided by the square of the
// division factor.
func (g *Generator) DivideSelect() bool {
	return g.divideSelect
}

// ImproveDutyCycle returns the state of the IDC flag.
func (g *Generator) ImproveDutyCycle() bool {
	return g.improveDutyCycle
}

// SetSource selects a new clock source. The generator is unsubscribed from
// the old source and subscribed to the new source before the output is
// recomputed. Reserved sources produce no output.
func (g *Generator) SetSource(src ClockSource) {
	if src == g.source {
		return
	}
	old := g.producer()
	g.source = src
	g.tree.rebind(g.id, old, g.producer())
	g.tree.refresh(g.id)
}

// SetEnabled enables or disables the generator. A disabled generator has an
// output of zero.
func (g *Generator) SetEnabled(enabled bool) {
	g.enabled = enabled
	g.tree.refresh(g.id)
}

// SetDivisionFactor sets the divider. Values less than one are used as one.
func (g *Generator) SetDivisionFactor(div int) {
	g.divisionFactor = div
	g.tree.refresh(g.id)
}

// SetDivideSelect chooses between division by the division factor (false) and
// division by the square of the division factor (true).
func (g *Generator) SetDivideSelect(divideSelect bool) {
	g.divideSelect = divideSelect
	g.tree.refresh(g.id)
}

// SetImproveDutyCycle sets the IDC flag. The flag has no effect on the output
// frequency.
func (g *Generator) SetImproveDutyCycle(idc bool) {
	g.improveDutyCycle = idc
}

// RegisterFrequencyChangeHandler registers a handler that is called whenever
// the output of the generator changes. There is at most one handler for each
// consumer key and a second registration replaces the first. A nil handler
// removes the registration. The handler is not called by the registration.
func (g *Generator) RegisterFrequencyChangeHandler(consumer string, handler FrequencyHandler) {
	g.tree.registerExternal(g.id, consumer, handler)
}

// UnregisterFrequencyChangeHandler removes the handler registered under the
// consumer key.
func (g *Generator) UnregisterFrequencyChangeHandler(consumer string) {
	g.tree.unsubscribe(g.id, noNode, consumer)
}
