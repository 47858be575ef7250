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
)

// Bits of the PCHCTRL register.
const (
	PCHCTRLGenMask = 0x0f
	PCHCTRLChen    = 0x40
	PCHCTRLWrtLock = 0x80

	// the bits that are stored by WriteConfig()
	PCHCTRLMask = PCHCTRLGenMask | PCHCTRLChen | PCHCTRLWrtLock
)

// the write lock of a channel can only move from unlocked to locked. only a
// reset returns the channel to the unlocked state
type lockState int

const (
	unlocked lockState = iota
	locked
)

// Channel is a peripheral channel. It routes the output of a generator to a
// consumer slot.
type Channel struct {
	tree  *Tree
	id    NodeID
	index int

	// the value of the GEN field. it is possible for the value to not
	// reference an existing generator, in which case the channel has no
	// producer
	gen     int
	enabled bool
	lock    lockState
}

func newChannel(t *Tree, index int) *Channel {
	c := &Channel{
		tree:  t,
		index: index,
	}
	c.id = t.addNode(channelNames[index], c.compute)
	return c
}

func (c *Channel) String() string {
	var s string
	if c.enabled {
		s = fmt.Sprintf("%s: %dHz from GCLK%d", channelNames[c.index], c.Frequency(), c.gen)
	} else {
		s = fmt.Sprintf("%s: disabled", channelNames[c.index])
	}
	if c.lock == locked {
		s = fmt.Sprintf("%s (locked)", s)
	}
	return s
}

func (c *Channel) reset() {
	c.tree.rebind(c.id, c.producer(), c.tree.generators[0].id)
	c.gen = 0
	c.enabled = false
	c.lock = unlocked
}

func (c *Channel) producer() NodeID {
	if c.gen < 0 || c.gen >= clocks.NumGenerators {
		return noNode
	}
	return c.tree.generators[c.gen].id
}

func (c *Channel) compute() int {
	if !c.enabled {
		return 0
	}
	return c.tree.output(c.producer())
}

// Index returns the position of the channel in the bank.
func (c *Channel) Index() int {
	return c.index
}

// Name returns the name of the consumer slot driven by the channel.
func (c *Channel) Name() string {
	return channelNames[c.index]
}

// Node returns the arena ID of the channel.
func (c *Channel) Node() NodeID {
	return c.id
}

// Frequency returns the frequency of the generator if the channel is enabled
// and zero otherwise.
func (c *Channel) Frequency() int {
	return c.tree.output(c.id)
}

// Generator returns the value of the generator select field.
func (c *Channel) Generator() int {
	return c.gen
}

// Enabled returns true if the channel is enabled.
func (c *Channel) Enabled() bool {
	return c.enabled
}

// Locked returns true if the channel has been write-locked.
func (c *Channel) Locked() bool {
	return c.lock == locked
}

// WriteConfig writes the PCHCTRL register. If the channel is locked the write
// is ignored. Otherwise the generator select and channel enable fields are
// applied and the channel is locked if the WRTLOCK bit is set.
//
// A generator select value that does not reference a generator is stored
// and can be read back but the channel has no output.
func (c *Channel) WriteConfig(v uint32) {
	if c.lock == locked {
		return
	}
	c.apply(int(v&PCHCTRLGenMask), v&PCHCTRLChen == PCHCTRLChen)
	if v&PCHCTRLWrtLock == PCHCTRLWrtLock {
		c.lock = locked
		logger.Logf(c.tree, logTag, "%s write-locked", channelNames[c.index])
	}
}

// ReadConfig returns the value of the PCHCTRL register. Bits not defined by
// PCHCTRLMask read as zero.
func (c *Channel) ReadConfig() uint32 {
	v := uint32(c.gen) & PCHCTRLGenMask
	if c.enabled {
		v |= PCHCTRLChen
	}
	if c.lock == locked {
		v |= PCHCTRLWrtLock
	}
	return v
}

// SetGenerator selects the generator. Panics if the generator does not
// exist. Ignored if the channel is locked.
func (c *Channel) SetGenerator(gen int) {
	if gen < 0 || gen >= clocks.NumGenerators {
		panic(fmt.Sprintf("clocktree: generator %d does not exist", gen))
	}
	if c.lock == locked {
		return
	}
	c.apply(gen, c.enabled)
}

// SetEnabled enables or disables the channel. Ignored if the channel is
// locked.
func (c *Channel) SetEnabled(enabled bool) {
	if c.lock == locked {
		return
	}
	c.apply(c.gen, enabled)
}

func (c *Channel) apply(gen int, enabled bool) {
	if gen != c.gen {
		old := c.producer()
		c.gen = gen
		c.tree.rebind(c.id, old, c.producer())
	}
	c.enabled = enabled
	c.tree.refresh(c.id)
}

// RegisterFrequencyChangeHandler registers a handler that is called whenever
// the frequency of the channel changes. There is at most one handler for each
// consumer key and a second registration replaces the first. A nil handler
// removes the registration. The handler is not called by the registration.
func (c *Channel) RegisterFrequencyChangeHandler(consumer string, handler FrequencyHandler) {
	c.tree.registerExternal(c.id, consumer, handler)
}

// UnregisterFrequencyChangeHandler removes the handler registered under the
// consumer key.
func (c *Channel) UnregisterFrequencyChangeHandler(consumer string) {
	c.tree.unsubscribe(c.id, noNode, consumer)
}
