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
	"fmt"
	"strings"
)

// Event represents a future payload that has been scheduled with a Timeline.
type Event struct {
	tl *Timeline

	label string

	// the timeline cycle on which the payload will run
	due int64

	// order of scheduling. used to order events due on the same cycle
	seq uint64

	// index in the timeline heap. -1 once the event is no longer pending
	index int

	payload func()
}

func (ev *Event) String() string {
	label := strings.TrimSpace(ev.label)
	if label == "" {
		label = "[unlabelled event]"
	}
	return fmt.Sprintf("%s -> %d", label, ev.RemainingCycles())
}

// Label returns the label given to the event when it was scheduled.
func (ev *Event) Label() string {
	return ev.label
}

// Pending returns true if the payload has not yet been run or dropped.
func (ev *Event) Pending() bool {
	return ev.index >= 0
}

// RemainingCycles reports the number of cycles remaining before the payload
// is run. Returns -1 if the event is no longer pending.
func (ev *Event) RemainingCycles() int64 {
	if !ev.Pending() {
		return -1
	}
	return ev.due - ev.tl.now
}

// Drop removes the event from the timeline without running the payload. Has
// no effect if the event is no longer pending.
func (ev *Event) Drop() {
	if !ev.Pending() {
		return
	}
	ev.tl.drop(ev)
}
