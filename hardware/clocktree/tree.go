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
	"slices"

	"github.com/jetsetilly/samclk/hardware/clocks"
	"github.com/jetsetilly/samclk/hardware/future"
	"github.com/jetsetilly/samclk/logger"
	"github.com/jetsetilly/samclk/notifications"
)

// tag used for all log entries made by the package.
const logTag = "clocktree"

// NodeID is the index of a node in the arena of a Tree.
type NodeID int

// the node ID of a producer that does not exist. for example, the producer of
// a generator that has selected a reserved clock source.
const noNode NodeID = -1

// FrequencyHandler is called with the new output frequency of a node.
type FrequencyHandler func(freq int)

// subscriber is an entry in the subscriber list of a node. if consumer is
// noNode then the subscriber is an external handler identified by key.
type subscriber struct {
	consumer NodeID
	key      string
	handler  FrequencyHandler
}

func (s subscriber) external() bool {
	return s.consumer == noNode
}

type node struct {
	name   string
	output int
	subs   []subscriber

	// incremented at the start of every propagation pass. a pass that sees
	// the value change has been overtaken by a newer pass
	pass uint64

	// compute returns the output of the node from its current configuration
	// and the output of its producer
	compute func() int
}

// Tree is the clock distribution network. It should be created with NewTree().
type Tree struct {
	sched  future.Scheduler
	notify notifications.Notify

	nodes []*node

	oscillators [NumOscillators]*Oscillator
	generators  [clocks.NumGenerators]*Generator
	channels    [clocks.NumChannels]*Channel

	// true while Reset() is running
	resetting bool
}

// NewTree creates the clock tree in its reset state. Oscillator startup events
// are scheduled with sched. The notify argument can be nil.
func NewTree(sched future.Scheduler, notify notifications.Notify) *Tree {
	t := &Tree{
		sched:  sched,
		notify: notify,
		nodes:  make([]*node, 0, int(NumOscillators)+clocks.NumGenerators+clocks.NumChannels),
	}

	for i := range t.oscillators {
		t.oscillators[i] = newOscillator(t, OscillatorID(i))
	}
	for i := range t.generators {
		t.generators[i] = newGenerator(t, i)
	}
	for i := range t.channels {
		t.channels[i] = newChannel(t, i)
	}

	t.reset()

	return t
}

// AllowLogging implements the logger.Permission interface. Logging by the
// clock tree and by the handlers of the tree is suppressed during a reset.
func (t *Tree) AllowLogging() bool {
	return !t.resetting
}

// Oscillator returns the oscillator with the ID. Panics if the ID does not
// exist.
func (t *Tree) Oscillator(id OscillatorID) *Oscillator {
	if id < 0 || id >= NumOscillators {
		panic(fmt.Sprintf("clocktree: oscillator %d does not exist", id))
	}
	return t.oscillators[id]
}

// Generator returns the generator with the index. Panics if the index does
// not exist.
func (t *Tree) Generator(idx int) *Generator {
	if idx < 0 || idx >= len(t.generators) {
		panic(fmt.Sprintf("clocktree: generator %d does not exist", idx))
	}
	return t.generators[idx]
}

// Channel returns the peripheral channel with the index. Panics if the index
// does not exist.
func (t *Tree) Channel(idx int) *Channel {
	if idx < 0 || idx >= len(t.channels) {
		panic(fmt.Sprintf("clocktree: peripheral channel %d does not exist", idx))
	}
	return t.channels[idx]
}

// RegisterFrequencyChangeHandler registers the handler with the peripheral
// channel. See Channel.RegisterFrequencyChangeHandler().
func (t *Tree) RegisterFrequencyChangeHandler(channel int, consumer string, handler FrequencyHandler) {
	t.Channel(channel).RegisterFrequencyChangeHandler(consumer, handler)
}

// UnregisterFrequencyChangeHandler removes the handler registered with the
// peripheral channel under the consumer key.
func (t *Tree) UnregisterFrequencyChangeHandler(channel int, consumer string) {
	t.Channel(channel).UnregisterFrequencyChangeHandler(consumer)
}

// RegisterGeneratorHandler registers the handler with the generator. See
// Generator.RegisterFrequencyChangeHandler().
func (t *Tree) RegisterGeneratorHandler(generator int, consumer string, handler FrequencyHandler) {
	t.Generator(generator).RegisterFrequencyChangeHandler(consumer, handler)
}

// Reset returns every oscillator, generator and peripheral channel to its
// default state. Pending oscillator startups are abandoned.
//
// Once the defaults have been restored, every external handler is called
// with the current frequency of the node it is registered with, whether or
// not the frequency has changed. Handlers are called in arena order:
// oscillators, then generators, then peripheral channels.
//
// Handlers are not removed by a reset.
func (t *Tree) Reset() {
	logger.Log(logger.Allow, logTag, "reset")
	t.reset()
	t.raise(notifications.NotifyReset, "")
}

func (t *Tree) reset() {
	t.resetting = true
	defer func() {
		t.resetting = false
	}()

	for _, o := range t.oscillators {
		o.reset()
	}
	for _, g := range t.generators {
		g.reset()
	}
	for _, c := range t.channels {
		c.reset()
	}

	// recompute without notification in dependency order. generator 1 is
	// the only generator that can be the source of another generator
	for _, o := range t.oscillators {
		t.recompute(o.id)
	}
	t.recompute(t.generators[1].id)
	for i, g := range t.generators {
		if i != 1 {
			t.recompute(g.id)
		}
	}
	for _, c := range t.channels {
		t.recompute(c.id)
	}

	for id := range t.nodes {
		n := t.nodes[id]
		for _, s := range slices.Clone(n.subs) {
			if s.external() {
				s.handler(n.output)
			}
		}
	}
}

// addNode adds a new node to the arena and returns its ID.
func (t *Tree) addNode(name string, compute func() int) NodeID {
	t.nodes = append(t.nodes, &node{name: name, compute: compute})
	return NodeID(len(t.nodes) - 1)
}

func (t *Tree) recompute(id NodeID) {
	n := t.nodes[id]
	n.output = n.compute()
}

// output returns the current output of the node. returns zero for noNode.
func (t *Tree) output(id NodeID) int {
	if id == noNode {
		return 0
	}
	return t.nodes[id].output
}

// refresh recomputes the output of a node and propagates the new value to
// the subscribers of the node if it has changed.
func (t *Tree) refresh(id NodeID) {
	n := t.nodes[id]
	f := n.compute()
	if f == n.output {
		return
	}
	n.output = f
	t.propagate(id)
}

// propagate the output of the node to its subscribers, in registration order.
// the subscriber list is copied so that handlers can change subscriptions
// without affecting the current pass.
//
// a handler that writes to the tree can start a new pass for the same node.
// the new pass delivers the newer output to every subscriber so the older
// pass stops at that point.
func (t *Tree) propagate(id NodeID) {
	n := t.nodes[id]
	n.pass++
	pass := n.pass
	for _, s := range slices.Clone(n.subs) {
		if n.pass != pass {
			return
		}
		if s.external() {
			s.handler(n.output)
		} else {
			t.refresh(s.consumer)
		}
	}
}

// subscribe adds the subscriber to the producer. an existing subscription
// for the same consumer is replaced in place.
func (t *Tree) subscribe(producer NodeID, s subscriber) {
	if producer == noNode {
		return
	}
	n := t.nodes[producer]
	for i := range n.subs {
		if n.subs[i].consumer == s.consumer && (!s.external() || n.subs[i].key == s.key) {
			n.subs[i] = s
			return
		}
	}
	n.subs = append(n.subs, s)
}

// unsubscribe removes the consumer from the producer. the key is only used
// if the consumer is noNode.
func (t *Tree) unsubscribe(producer NodeID, consumer NodeID, key string) {
	if producer == noNode {
		return
	}
	n := t.nodes[producer]
	n.subs = slices.DeleteFunc(n.subs, func(s subscriber) bool {
		return s.consumer == consumer && (consumer != noNode || s.key == key)
	})
}

// rebind moves the consumer node from the old producer to the new producer.
// every change of producer must go through this function. if the producers
// are the same the existing subscription is kept in place.
func (t *Tree) rebind(consumer NodeID, oldProducer NodeID, newProducer NodeID) {
	if oldProducer != newProducer {
		t.unsubscribe(oldProducer, consumer, "")
	}
	t.subscribe(newProducer, subscriber{consumer: consumer})
}

// raise a notification if a notify instance has been supplied
func (t *Tree) raise(notice notifications.Notice, detail string) {
	if t.notify == nil {
		return
	}
	if err := t.notify.Notify(notice, detail); err != nil {
		logger.Log(logger.Allow, logTag, err)
	}
}

// registerExternal is used by the handler registration functions of the
// individual node types.
func (t *Tree) registerExternal(producer NodeID, consumer string, handler FrequencyHandler) {
	if handler == nil {
		t.unsubscribe(producer, noNode, consumer)
		return
	}
	t.subscribe(producer, subscriber{consumer: noNode, key: consumer, handler: handler})
}
