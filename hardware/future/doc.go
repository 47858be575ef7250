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

// Package future conceptualises delays in the clock hardware. The most
// important example is the startup time of an oscillator. When an oscillator
// is enabled its output is not valid straight away. Instead there is a delay,
// measured in cycles, before the oscillator is ready.
//
// The Timeline type coordinates these delayed events. Events are created with
// the Schedule() function, which takes the delay, a label (useful for
// identifying the event when the timeline is printed) and a payload function.
// The payload is called once the delay has elapsed.
//
// Time only passes when the Advance() function is called. It is up to the
// owner of the Timeline to decide how often and by how much. A payload is
// never run from inside Schedule(), even for a delay of zero. Events that are
// due on the same cycle run in the order they were scheduled.
//
// The Scheduler interface exposes only the functions required to schedule an
// event. It is used in those places where an event is only ever scheduled.
package future
