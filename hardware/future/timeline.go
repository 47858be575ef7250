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

package future

import (
	"container/heap"
	"sort"
	"strings"
)

// Scheduler exposes only the functions of a Timeline that are required to
// schedule an event.
type Scheduler interface {
	Schedule(delay int64, label string, payload func()) *Event
	Now() int64
}

// Timeline is the discrete-event queue of the clock hardware. The zero value
// is not usable, use NewTimeline().
type Timeline struct {
	// label is prepended to every line of the String() output
	Label string

	now    int64
	seq    uint64
	events queue
}

// NewTimeline is the preferred method of initialisation for the Timeline type.
func NewTimeline(label string) *Timeline {
	return &Timeline{
		Label:  label,
		events: make(queue, 0, 8),
	}
}

func (tl *Timeline) String() string {
	s := strings.Builder{}
	for _, ev := range tl.Pending() {
		if tl.Label != "" {
			s.WriteString(tl.Label)
			s.WriteString(": ")
		}
		s.WriteString(ev.String())
		s.WriteString("\n")
	}
	return s.String()
}

// Now returns the current cycle of the timeline.
func (tl *Timeline) Now() int64 {
	return tl.now
}

// Schedule the payload to run after delay cycles have elapsed. A negative
// delay is treated as zero.
func (tl *Timeline) Schedule(delay int64, label string, payload func()) *Event {
	if delay < 0 {
		delay = 0
	}
	tl.seq++
	ev := &Event{
		tl:      tl,
		label:   label,
		due:     tl.now + delay,
		seq:     tl.seq,
		payload: payload,
	}
	heap.Push(&tl.events, ev)
	return ev
}

// Advance the timeline by the number of cycles, running the payload of every
// event that falls due. The current cycle is set to the due cycle of each event
// before its payload is run. Events scheduled by a payload are run in the same
// call if they fall due within the advanced period.
//
// Advance(0) runs any events that are due on the current cycle.
func (tl *Timeline) Advance(cycles int64) {
	if cycles < 0 {
		cycles = 0
	}
	target := tl.now + cycles

	for len(tl.events) > 0 && tl.events[0].due <= target {
		ev := heap.Pop(&tl.events).(*Event)
		tl.now = ev.due
		ev.payload()
	}

	tl.now = target
}

// Pending returns the pending events in the order they will run.
func (tl *Timeline) Pending() []*Event {
	evs := make(queue, len(tl.events))
	copy(evs, tl.events)
	sort.SliceStable(evs, func(i, j int) bool {
		return evs.Less(i, j)
	})
	return evs
}

// Clear drops every pending event. The current cycle is not changed.
func (tl *Timeline) Clear() {
	for _, ev := range tl.events {
		ev.index = -1
	}
	tl.events = tl.events[:0]
}

func (tl *Timeline) drop(ev *Event) {
	heap.Remove(&tl.events, ev.index)
	ev.index = -1
}
