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

package clocktree_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/jetsetilly/samclk/hardware/clocks"
	"github.com/jetsetilly/samclk/hardware/clocktree"
	"github.com/jetsetilly/samclk/test"
)

func TestDefaults(t *testing.T) {
	tr, _, _ := newTree(t)

	osc := tr.Oscillator(clocktree.OSC16M)
	test.ExpectSuccess(t, osc.Enabled())
	test.ExpectSuccess(t, osc.Ready())
	test.ExpectEquality(t, osc.Frequency(), clocks.OSC16M)

	test.ExpectSuccess(t, tr.Oscillator(clocktree.OSCULP32K).Ready())
	test.ExpectFailure(t, tr.Oscillator(clocktree.XOSC).Enabled())
	test.ExpectEquality(t, tr.Oscillator(clocktree.XOSC).Frequency(), 0)

	gen := tr.Generator(clocktree.GCLKMain)
	test.ExpectSuccess(t, gen.Enabled())
	test.ExpectEquality(t, gen.Source(), clocktree.SourceOSC16M)
	test.ExpectEquality(t, gen.Frequency(), clocks.OSC16M)

	for i := 1; i < clocks.NumGenerators; i++ {
		test.ExpectFailure(t, tr.Generator(i).Enabled(), i)
		test.ExpectEquality(t, tr.Generator(i).Frequency(), 0, i)
	}

	for i := 0; i < clocks.NumChannels; i++ {
		ch := tr.Channel(i)
		test.ExpectEquality(t, ch.ReadConfig(), uint32(0), ch.Name())
		test.ExpectEquality(t, ch.Frequency(), 0, ch.Name())
	}
}

func TestScenario(t *testing.T) {
	tr, _, _ := newTree(t)

	tr.Oscillator(clocktree.OSC16M).SetFrequency(16000000)
	tr.Channel(clocktree.ChannelEIC).WriteConfig(clocktree.PCHCTRLChen)

	gen := tr.Generator(0)
	ch := tr.Channel(clocktree.ChannelEIC)
	test.ExpectEquality(t, gen.Frequency(), 16000000)
	test.ExpectEquality(t, ch.Frequency(), 16000000)

	r := &recorder{}
	tr.RegisterFrequencyChangeHandler(clocktree.ChannelEIC, "eic", r.handler)

	gen.SetDivisionFactor(4)
	test.ExpectEquality(t, ch.Frequency(), 4000000)
	test.DemandEquality(t, len(r.values), 1)
	test.ExpectEquality(t, r.values[0], 4000000)

	// no notification if the value does not change
	gen.SetDivisionFactor(4)
	gen.SetImproveDutyCycle(true)
	test.ExpectEquality(t, len(r.values), 1)
}

func TestPropagation(t *testing.T) {
	tr, tl, _ := newTree(t)

	xosc := tr.Oscillator(clocktree.XOSC)
	xosc.SetEnabled(true)
	tl.Advance(int64(xosc.StartupCycles()))
	test.DemandSuccess(t, xosc.Ready())

	gen := tr.Generator(2)
	gen.SetSource(clocktree.SourceXOSC)
	gen.SetDivisionFactor(3)
	gen.SetEnabled(true)
	test.ExpectEquality(t, gen.Frequency(), 4000000)

	tr.Channel(clocktree.ChannelTCC0).WriteConfig(clocktree.PCHCTRLChen | 2)
	r := &recorder{}
	tr.RegisterFrequencyChangeHandler(clocktree.ChannelTCC0, "tcc0", r.handler)

	xosc.SetFrequency(10000000)
	test.ExpectEquality(t, gen.Frequency(), 3333333)
	test.ExpectEquality(t, tr.Channel(clocktree.ChannelTCC0).Frequency(), 3333333)
	test.ExpectEquality(t, r.last(), 3333333)
	test.ExpectEquality(t, len(r.values), 1)
}

func TestDivideSelect(t *testing.T) {
	tr, _, _ := newTree(t)
	tr.Oscillator(clocktree.OSC16M).SetFrequency(16000000)

	gen := tr.Generator(0)
	gen.SetDivisionFactor(4)
	gen.SetDivideSelect(true)
	test.ExpectEquality(t, gen.Frequency(), 1000000)

	gen.SetDivideSelect(false)
	gen.SetDivisionFactor(3)
	test.ExpectEquality(t, gen.Frequency(), 5333333)

	// zero is clamped to one
	gen.SetDivisionFactor(0)
	test.ExpectEquality(t, gen.Frequency(), 16000000)
	test.ExpectEquality(t, gen.DivisionFactor(), 0)
	gen.SetDivideSelect(true)
	test.ExpectEquality(t, gen.Frequency(), 16000000)

	gen.SetEnabled(false)
	test.ExpectEquality(t, gen.Frequency(), 0)
}

func TestGeneratorChain(t *testing.T) {
	tr, _, _ := newTree(t)
	tr.Oscillator(clocktree.OSC16M).SetFrequency(16000000)

	gen1 := tr.Generator(1)
	gen1.SetSource(clocktree.SourceOSC16M)
	gen1.SetDivisionFactor(2)
	gen1.SetEnabled(true)

	gen2 := tr.Generator(2)
	gen2.SetSource(clocktree.SourceGCLKGen1)
	gen2.SetDivisionFactor(2)
	gen2.SetEnabled(true)
	test.ExpectEquality(t, gen1.Frequency(), 8000000)
	test.ExpectEquality(t, gen2.Frequency(), 4000000)

	r := &recorder{}
	tr.Channel(clocktree.ChannelSERCOMSlow).WriteConfig(clocktree.PCHCTRLChen | 2)
	tr.RegisterFrequencyChangeHandler(clocktree.ChannelSERCOMSlow, "sercom", r.handler)

	tr.Oscillator(clocktree.OSC16M).SetFrequency(8000000)
	test.ExpectEquality(t, gen2.Frequency(), 2000000)
	test.ExpectEquality(t, r.last(), 2000000)

	// generator 1 can not select itself
	gen1.SetSource(clocktree.SourceGCLKGen1)
	test.ExpectEquality(t, gen1.Frequency(), 0)
	test.ExpectEquality(t, gen2.Frequency(), 0)
	test.ExpectEquality(t, r.last(), 0)
	test.ExpectEquality(t, len(r.values), 2)

	// reserved source
	gen1.SetSource(clocktree.ClockSource(12))
	test.ExpectEquality(t, gen1.Frequency(), 0)
	test.ExpectEquality(t, len(r.values), 2)
	gen1.SetSource(clocktree.SourceOSC16M)
	test.ExpectEquality(t, r.last(), 2000000)
}

func TestSourceChangeUnsubscribes(t *testing.T) {
	tr, tl, _ := newTree(t)

	xosc := tr.Oscillator(clocktree.XOSC)
	xosc.SetEnabled(true)
	tl.Advance(1)

	gen := tr.Generator(3)
	gen.SetEnabled(true)
	test.ExpectEquality(t, gen.Frequency(), clocks.XOSC)

	r := &recorder{}
	gen.RegisterFrequencyChangeHandler("watch", r.handler)

	gen.SetSource(clocktree.SourceOSC16M)
	test.ExpectEquality(t, gen.Frequency(), clocks.OSC16M)
	test.ExpectEquality(t, len(r.values), 1)

	// the old source no longer has any effect on the generator
	xosc.SetFrequency(1000000)
	xosc.SetEnabled(false)
	test.ExpectEquality(t, len(r.values), 1)

	snap := tr.Snapshot()
	test.ExpectFailure(t, slices.Contains(snap.Oscillators[clocktree.XOSC].Subscribers, "GCLK3"))
	test.ExpectSuccess(t, slices.Contains(snap.Oscillators[clocktree.OSC16M].Subscribers, "GCLK3"))
}

func TestHandlerReplacement(t *testing.T) {
	tr, _, _ := newTree(t)
	ch := tr.Channel(clocktree.ChannelADC)
	ch.WriteConfig(clocktree.PCHCTRLChen)

	var order []string
	a := &recorder{}
	b := &recorder{}
	ch.RegisterFrequencyChangeHandler("adc", func(f int) {
		order = append(order, "first")
	})
	ch.RegisterFrequencyChangeHandler("adc", func(f int) {
		order = append(order, "adc")
		a.handler(f)
	})
	ch.RegisterFrequencyChangeHandler("rtc", func(f int) {
		order = append(order, "rtc")
		b.handler(f)
	})

	tr.Generator(0).SetDivisionFactor(2)
	test.DemandEquality(t, len(order), 2)
	test.ExpectEquality(t, order[0], "adc")
	test.ExpectEquality(t, order[1], "rtc")
	test.ExpectEquality(t, a.last(), 2000000)
	test.ExpectEquality(t, b.last(), 2000000)

	ch.UnregisterFrequencyChangeHandler("adc")
	ch.RegisterFrequencyChangeHandler("rtc", nil)
	tr.Generator(0).SetDivisionFactor(1)
	test.ExpectEquality(t, len(order), 2)
}

func TestUnregisterDuringNotify(t *testing.T) {
	tr, _, _ := newTree(t)
	ch := tr.Channel(clocktree.ChannelAC)
	ch.WriteConfig(clocktree.PCHCTRLChen)

	b := &recorder{}
	ch.RegisterFrequencyChangeHandler("a", func(_ int) {
		ch.UnregisterFrequencyChangeHandler("b")
	})
	ch.RegisterFrequencyChangeHandler("b", b.handler)

	// b is still called during the pass in which it was removed
	tr.Generator(0).SetDivisionFactor(2)
	test.ExpectEquality(t, len(b.values), 1)

	tr.Generator(0).SetDivisionFactor(4)
	test.ExpectEquality(t, len(b.values), 1)
}

func TestReentrantWrite(t *testing.T) {
	tr, _, _ := newTree(t)
	tr.Channel(3).WriteConfig(clocktree.PCHCTRLChen)
	tr.Channel(4).WriteConfig(clocktree.PCHCTRLChen)

	// a handler that responds to a change by changing the divider again. the
	// second handler must only ever see the final value
	tr.RegisterFrequencyChangeHandler(3, "fix", func(f int) {
		if f == 2000000 {
			tr.Generator(0).SetDivisionFactor(4)
		}
	})
	r := &recorder{}
	tr.RegisterFrequencyChangeHandler(4, "watch", r.handler)

	// subscriber of the same channel, after the handler that changes the
	// divider
	same := &recorder{}
	tr.RegisterFrequencyChangeHandler(3, "watch", same.handler)

	tr.Generator(0).SetDivisionFactor(2)
	test.ExpectEquality(t, tr.Channel(4).Frequency(), 1000000)
	test.ExpectEquality(t, r.last(), 1000000)
	test.ExpectEquality(t, len(r.values), 1)
	test.ExpectEquality(t, same.last(), 1000000)
	test.ExpectEquality(t, len(same.values), 1)

	// channel 3 changes and is corrected again. only the corrected value is
	// delivered. channel 4 never leaves 1MHz
	tr.Generator(0).SetDivisionFactor(2)
	test.ExpectEquality(t, len(same.values), 2)
	test.ExpectEquality(t, same.last(), 1000000)
	test.ExpectEquality(t, len(r.values), 1)
}

func TestPanics(t *testing.T) {
	tr, _, _ := newTree(t)

	test.ExpectPanic(t, func() { tr.Generator(clocks.NumGenerators) })
	test.ExpectPanic(t, func() { tr.Generator(-1) })
	test.ExpectPanic(t, func() { tr.Channel(clocks.NumChannels) })
	test.ExpectPanic(t, func() { tr.Oscillator(clocktree.NumOscillators) })
	test.ExpectPanic(t, func() { tr.Channel(0).SetGenerator(clocks.NumGenerators) })
	test.ExpectPanic(t, func() {
		tr.RegisterFrequencyChangeHandler(clocks.NumChannels, "none", func(int) {})
	})
}

// expectedGenerator computes the output of a generator from the current
// output of its source
func expectedGenerator(tr *clocktree.Tree, g *clocktree.Generator) int {
	if !g.Enabled() {
		return 0
	}

	var f int
	if g.Source() == clocktree.SourceGCLKGen1 {
		if g.Index() != 1 {
			f = tr.Generator(1).Frequency()
		}
	} else if osc, ok := g.Source().Oscillator(); ok {
		if tr.Oscillator(osc).Ready() {
			f = tr.Oscillator(osc).NominalFrequency()
		}
	}

	d := max(g.DivisionFactor(), 1)
	if g.DivideSelect() {
		return f / (d * d)
	}
	return f / d
}

// a long sequence of random configuration writes. after every write the
// output of every node must match its current configuration
func TestConsistency(t *testing.T) {
	tr, tl, _ := newTree(t)
	rnd := rand.New(rand.NewPCG(22, 48))

	for _, o := range []clocktree.OscillatorID{clocktree.XOSC, clocktree.XOSC32K} {
		tr.Oscillator(o).SetStartupCycles(3)
	}

	for i := range 5000 {
		switch rnd.IntN(9) {
		case 0:
			tr.Generator(rnd.IntN(clocks.NumGenerators)).SetEnabled(rnd.IntN(2) == 0)
		case 1:
			tr.Generator(rnd.IntN(clocks.NumGenerators)).SetSource(clocktree.ClockSource(rnd.IntN(10)))
		case 2:
			tr.Generator(rnd.IntN(clocks.NumGenerators)).SetDivisionFactor(rnd.IntN(6))
		case 3:
			tr.Generator(rnd.IntN(clocks.NumGenerators)).SetDivideSelect(rnd.IntN(2) == 0)
		case 4:
			// avoid the lock bit most of the time
			v := rnd.Uint32() & 0xff
			if rnd.IntN(20) != 0 {
				v &^= clocktree.PCHCTRLWrtLock
			}
			tr.Channel(rnd.IntN(clocks.NumChannels)).WriteConfig(v)
		case 5:
			tr.Oscillator(clocktree.OscillatorID(rnd.IntN(int(clocktree.NumOscillators)))).SetEnabled(rnd.IntN(3) != 0)
		case 6:
			tr.Oscillator(clocktree.OscillatorID(rnd.IntN(int(clocktree.NumOscillators)))).SetFrequency(rnd.IntN(48) * 1000000)
		case 7:
			tl.Advance(int64(rnd.IntN(3)))
		case 8:
			if rnd.IntN(50) == 0 {
				tr.Reset()
			}
		}

		for g := range clocks.NumGenerators {
			gen := tr.Generator(g)
			if !test.ExpectEquality(t, gen.Frequency(), expectedGenerator(tr, gen), "step", i, "GCLK", g) {
				return
			}
		}

		for c := range clocks.NumChannels {
			ch := tr.Channel(c)
			expected := 0
			if ch.Enabled() && ch.Generator() < clocks.NumGenerators {
				expected = tr.Generator(ch.Generator()).Frequency()
			}
			if !test.ExpectEquality(t, ch.Frequency(), expected, "step", i, ch.Name()) {
				return
			}
		}

		for o := range clocktree.NumOscillators {
			osc := tr.Oscillator(o)
			if !osc.Enabled() {
				test.ExpectFailure(t, osc.Ready(), "step", i, osc.Name())
			}
		}
	}
}
