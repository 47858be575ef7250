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

func TestConfigRoundTrip(t *testing.T) {
	tr, _, _ := newTree(t)

	for c := range clocks.NumChannels {
		ch := tr.Channel(c)
		for v := uint32(0); v < clocktree.PCHCTRLWrtLock; v++ {
			if v&^clocktree.PCHCTRLMask != 0 {
				continue
			}
			ch.WriteConfig(v)
			if !test.ExpectEquality(t, ch.ReadConfig(), v, ch.Name()) {
				return
			}
		}
	}
}

func TestReservedBits(t *testing.T) {
	tr, _, _ := newTree(t)

	ch := tr.Channel(clocktree.ChannelEIC)
	ch.WriteConfig(0x3f)
	test.ExpectEquality(t, ch.ReadConfig(), uint32(0x0f))
	ch.WriteConfig(0xffffff7f)
	test.ExpectEquality(t, ch.ReadConfig(), uint32(0x4f))
}

func TestChannelFrequency(t *testing.T) {
	tr, _, _ := newTree(t)

	ch := tr.Channel(clocktree.ChannelUSB)
	ch.WriteConfig(0)
	test.ExpectEquality(t, ch.Frequency(), 0)

	ch.SetEnabled(true)
	test.ExpectEquality(t, ch.Frequency(), clocks.OSC16M)

	// a generator select that does not reference a generator
	ch.WriteConfig(clocktree.PCHCTRLChen | 7)
	test.ExpectEquality(t, ch.Frequency(), 0)
	test.ExpectEquality(t, ch.ReadConfig(), uint32(0x47))
	test.ExpectEquality(t, ch.Generator(), 7)

	ch.SetGenerator(0)
	test.ExpectEquality(t, ch.Frequency(), clocks.OSC16M)

	// disabled generator
	ch.SetGenerator(3)
	test.ExpectEquality(t, ch.Frequency(), 0)
	tr.Generator(3).SetSource(clocktree.SourceOSCULP32K)
	tr.Generator(3).SetEnabled(true)
	test.ExpectEquality(t, ch.Frequency(), clocks.OSCULP32K)

	ch.SetEnabled(false)
	test.ExpectEquality(t, ch.Frequency(), 0)
}

func TestWriteLock(t *testing.T) {
	tr, _, _ := newTree(t)

	ch := tr.Channel(clocktree.ChannelSLCD)
	r := &recorder{}
	ch.RegisterFrequencyChangeHandler("slcd", r.handler)

	// the write that sets the lock also applies the other fields
	ch.WriteConfig(clocktree.PCHCTRLWrtLock | clocktree.PCHCTRLChen | 0)
	test.ExpectSuccess(t, ch.Locked())
	test.ExpectEquality(t, ch.ReadConfig(), uint32(0xc0))
	test.ExpectEquality(t, len(r.values), 1)

	for _, v := range []uint32{0x00, 0x01, 0x41, 0x7f, 0x80, 0xff} {
		ch.WriteConfig(v)
		test.ExpectEquality(t, ch.ReadConfig(), uint32(0xc0), v)
	}
	ch.SetGenerator(2)
	ch.SetEnabled(false)
	test.ExpectEquality(t, ch.ReadConfig(), uint32(0xc0))
	test.ExpectEquality(t, len(r.values), 1)

	// the locked channel still follows its generator
	tr.Generator(0).SetDivisionFactor(2)
	test.ExpectEquality(t, ch.Frequency(), clocks.OSC16M/2)
	test.ExpectEquality(t, len(r.values), 2)

	tr.Reset()
	test.ExpectFailure(t, ch.Locked())
	test.ExpectEquality(t, ch.ReadConfig(), uint32(0))
	ch.WriteConfig(clocktree.PCHCTRLChen | 1)
	test.ExpectEquality(t, ch.ReadConfig(), uint32(0x41))
}

func TestChannelNames(t *testing.T) {
	test.ExpectEquality(t, clocktree.ChannelName(clocktree.ChannelDFLL48MRef), "DFLL48M_REF")
	test.ExpectEquality(t, clocktree.ChannelName(clocktree.ChannelSLCD), "SLCD")
	test.ExpectEquality(t, clocktree.ChannelName(14), "SERCOM0_CORE")
	test.ExpectEquality(t, clocktree.ChannelName(clocks.NumChannels), "")

	idx, ok := clocktree.ChannelIndex("TC2")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, idx, 23)
	_, ok = clocktree.ChannelIndex("TC9")
	test.ExpectFailure(t, ok)
}
