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
	"testing"

	"github.com/jetsetilly/samclk/hardware/clocks"
	"github.com/jetsetilly/samclk/hardware/clocktree"
	"github.com/jetsetilly/samclk/test"
)

func TestStartupTiming(t *testing.T) {
	tr, tl, n := newTree(t)

	xosc := tr.Oscillator(clocktree.XOSC)
	xosc.SetStartupCode(4)
	test.DemandEquality(t, xosc.StartupCycles(), 16)

	gen := tr.Generator(1)
	gen.SetEnabled(true)
	r := &recorder{}
	gen.RegisterFrequencyChangeHandler("watch", r.handler)

	xosc.SetEnabled(true)
	test.ExpectSuccess(t, xosc.Enabled())
	test.ExpectFailure(t, xosc.Ready())

	// an enabled oscillator reports its nominal frequency even though
	// subscribers see nothing until it is ready
	test.ExpectEquality(t, xosc.Frequency(), clocks.XOSC)
	test.ExpectEquality(t, xosc.Output(), 0)
	test.ExpectEquality(t, gen.Frequency(), 0)

	tl.Advance(15)
	test.ExpectFailure(t, xosc.Ready())
	test.ExpectEquality(t, len(r.values), 0)

	tl.Advance(1)
	test.ExpectSuccess(t, xosc.Ready())
	test.ExpectEquality(t, gen.Frequency(), clocks.XOSC)
	test.DemandEquality(t, len(r.values), 1)
	test.ExpectEquality(t, r.values[0], clocks.XOSC)

	test.DemandEquality(t, len(n.list), 1)
	test.ExpectEquality(t, n.list[0], "NotifyOscillatorReady XOSC")

	tl.Advance(100)
	test.ExpectSuccess(t, xosc.Ready())
	test.ExpectEquality(t, len(r.values), 1)
}

func TestStartupCancelled(t *testing.T) {
	tr, tl, _ := newTree(t)

	xosc := tr.Oscillator(clocktree.XOSC)
	xosc.SetStartupCycles(16)

	xosc.SetEnabled(true)
	tl.Advance(10)
	xosc.SetEnabled(false)
	tl.Advance(100)
	test.ExpectFailure(t, xosc.Ready())

	// the startup event of the first enable period must not complete the
	// startup of the second enable period
	xosc.SetEnabled(true)
	tl.Advance(10)
	xosc.SetEnabled(false)
	xosc.SetEnabled(true)
	tl.Advance(6)
	test.ExpectFailure(t, xosc.Ready())
	tl.Advance(9)
	test.ExpectFailure(t, xosc.Ready())
	tl.Advance(1)
	test.ExpectSuccess(t, xosc.Ready())
}

func TestZeroStartup(t *testing.T) {
	tr, tl, _ := newTree(t)

	osc := tr.Oscillator(clocktree.OSC16M)
	test.DemandEquality(t, osc.StartupCycles(), 0)

	osc.SetEnabled(false)
	test.ExpectEquality(t, tr.Generator(0).Frequency(), 0)

	// never ready from inside the call to SetEnabled()
	osc.SetEnabled(true)
	test.ExpectFailure(t, osc.Ready())
	test.ExpectEquality(t, tr.Generator(0).Frequency(), 0)

	tl.Advance(0)
	test.ExpectSuccess(t, osc.Ready())
	test.ExpectEquality(t, tr.Generator(0).Frequency(), clocks.OSC16M)
}

func TestXOSC32KStartupCode(t *testing.T) {
	tr, _, _ := newTree(t)

	osc := tr.Oscillator(clocktree.XOSC32K)
	test.ExpectEquality(t, osc.StartupCycles(), 2048)
	osc.SetStartupCode(3)
	test.ExpectEquality(t, osc.StartupCycles(), 32768)
	osc.SetStartupCode(99)
	test.ExpectEquality(t, osc.StartupCycles(), 2048)

	// oscillators without a startup field ignore the code
	osc = tr.Oscillator(clocktree.DFLL48M)
	osc.SetStartupCode(5)
	test.ExpectEquality(t, osc.StartupCycles(), 0)
}

func TestDisableNotifies(t *testing.T) {
	tr, _, n := newTree(t)

	r := &recorder{}
	tr.RegisterGeneratorHandler(0, "cpu", r.handler)

	tr.Oscillator(clocktree.OSC16M).SetEnabled(false)
	test.ExpectFailure(t, tr.Oscillator(clocktree.OSC16M).Ready())
	test.DemandEquality(t, len(r.values), 1)
	test.ExpectEquality(t, r.values[0], 0)
	test.DemandEquality(t, len(n.list), 1)
	test.ExpectEquality(t, n.list[0], "NotifyOscillatorStopped OSC16M")
}

func TestFixedOscillators(t *testing.T) {
	tr, _, _ := newTree(t)

	ulp := tr.Oscillator(clocktree.OSCULP32K)
	ulp.SetEnabled(false)
	test.ExpectSuccess(t, ulp.Ready())
	ulp.SetFrequency(1000)
	test.ExpectEquality(t, ulp.Frequency(), clocks.OSCULP32K)

	xosc32k := tr.Oscillator(clocktree.XOSC32K)
	test.ExpectFailure(t, xosc32k.Tunable())
	xosc32k.SetFrequency(1000)
	test.ExpectEquality(t, xosc32k.NominalFrequency(), clocks.XOSC32K)
}

func TestFrequencyWhileStarting(t *testing.T) {
	tr, tl, _ := newTree(t)

	xosc := tr.Oscillator(clocktree.XOSC)
	gen := tr.Generator(4)
	gen.SetEnabled(true)

	r := &recorder{}
	gen.RegisterFrequencyChangeHandler("watch", r.handler)

	// changing the frequency of an oscillator that is not ready has no
	// visible effect on subscribers
	xosc.SetEnabled(true)
	xosc.SetFrequency(8000000)
	test.ExpectEquality(t, len(r.values), 0)

	tl.Advance(int64(xosc.StartupCycles()))
	test.ExpectEquality(t, r.last(), 8000000)

	// but an oscillator that is ready pushes the change immediately
	xosc.SetFrequency(16000000)
	test.ExpectEquality(t, gen.Frequency(), 16000000)
	test.ExpectEquality(t, r.last(), 16000000)
}

func TestOscillatorNames(t *testing.T) {
	test.ExpectEquality(t, clocktree.OSC16M.String(), "OSC16M")
	test.ExpectEquality(t, clocktree.SourceGCLKGen1.String(), "GCLK_GEN1")
	test.ExpectEquality(t, clocktree.SourceFDPLL96M.String(), "FDPLL96M")
	test.ExpectEquality(t, clocktree.ClockSource(9).String(), "reserved(9)")

	src, ok := clocktree.ParseClockSource("XOSC32K")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, src, clocktree.SourceXOSC32K)
	_, ok = clocktree.ParseClockSource("OSC48M")
	test.ExpectFailure(t, ok)
}
