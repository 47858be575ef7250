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
	"strings"
)

// OscillatorState is the state of an oscillator at the time of a snapshot.
type OscillatorState struct {
	Name          string
	Enabled       bool
	Ready         bool
	Nominal       int
	Output        int
	StartupCycles int
	Subscribers   []string
}

// GeneratorState is the state of a generator at the time of a snapshot.
type GeneratorState struct {
	Index            int
	Source           string
	Enabled          bool
	ImproveDutyCycle bool
	DivideSelect     bool
	DivisionFactor   int
	Frequency        int
	Subscribers      []string
}

// ChannelState is the state of a peripheral channel at the time of a
// snapshot.
type ChannelState struct {
	Index       int
	Name        string
	Generator   int
	Enabled     bool
	Locked      bool
	Config      uint32
	Frequency   int
	Subscribers []string
}

// Snapshot is a copy of the state of the clock tree. It contains no
// references to the tree and is safe to keep, print or send to another
// goroutine.
type Snapshot struct {
	Cycle       int64
	Oscillators []OscillatorState
	Generators  []GeneratorState
	Channels    []ChannelState
}

// Snapshot returns a copy of the current state of the clock tree.
func (t *Tree) Snapshot() Snapshot {
	s := Snapshot{
		Cycle:       t.sched.Now(),
		Oscillators: make([]OscillatorState, 0, len(t.oscillators)),
		Generators:  make([]GeneratorState, 0, len(t.generators)),
		Channels:    make([]ChannelState, 0, len(t.channels)),
	}

	for _, o := range t.oscillators {
		s.Oscillators = append(s.Oscillators, OscillatorState{
			Name:          o.Name(),
			Enabled:       o.enabled,
			Ready:         o.ready,
			Nominal:       o.nominal,
			Output:        o.Output(),
			StartupCycles: o.startupCycles,
			Subscribers:   t.subscriberNames(o.id),
		})
	}

	for _, g := range t.generators {
		s.Generators = append(s.Generators, GeneratorState{
			Index:            g.index,
			Source:           g.source.String(),
			Enabled:          g.enabled,
			ImproveDutyCycle: g.improveDutyCycle,
			DivideSelect:     g.divideSelect,
			DivisionFactor:   g.divisionFactor,
			Frequency:        g.Frequency(),
			Subscribers:      t.subscriberNames(g.id),
		})
	}

	for _, c := range t.channels {
		s.Channels = append(s.Channels, ChannelState{
			Index:       c.index,
			Name:        c.Name(),
			Generator:   c.gen,
			Enabled:     c.enabled,
			Locked:      c.Locked(),
			Config:      c.ReadConfig(),
			Frequency:   c.Frequency(),
			Subscribers: t.subscriberNames(c.id),
		})
	}

	return s
}

// subscriberNames returns the names of the subscribers of a node in
// notification order. external handlers are named by their consumer key.
func (t *Tree) subscriberNames(id NodeID) []string {
	n := t.nodes[id]
	names := make([]string, 0, len(n.subs))
	for _, s := range n.subs {
		if s.external() {
			names = append(names, s.key)
		} else {
			names = append(names, t.nodes[s.consumer].name)
		}
	}
	return names
}

// String returns a summary of the snapshot. Channels that are disabled and
// have no subscribers are not shown.
func (s Snapshot) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "cycle %d\n", s.Cycle)

	for _, o := range s.Oscillators {
		state := "disabled"
		if o.Ready {
			state = "ready"
		} else if o.Enabled {
			state = "starting"
		}
		fmt.Fprintf(&b, "%-10s %-9s %10dHz\n", o.Name, state, o.Output)
	}

	for _, g := range s.Generators {
		if !g.Enabled {
			fmt.Fprintf(&b, "GCLK%d      disabled\n", g.Index)
			continue
		}
		div := fmt.Sprintf("/%d", max(g.DivisionFactor, 1))
		if g.DivideSelect {
			div = fmt.Sprintf("/%d^2", max(g.DivisionFactor, 1))
		}
		fmt.Fprintf(&b, "GCLK%d      %-9s %10dHz %s %s\n", g.Index, "enabled", g.Frequency, g.Source, div)
	}

	for _, c := range s.Channels {
		if !c.Enabled && len(c.Subscribers) == 0 {
			continue
		}
		state := "disabled"
		if c.Enabled {
			state = "enabled"
		}
		lock := ""
		if c.Locked {
			lock = " locked"
		}
		fmt.Fprintf(&b, "%-12s %-9s %10dHz GCLK%d%s\n", c.Name, state, c.Frequency, c.Generator, lock)
	}

	return b.String()
}
