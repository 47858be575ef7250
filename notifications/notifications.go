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

package notifications

// Notice describes events that happen in the clock hardware that the user may
// be interested in but which are not part of the frequency propagation
// between clock nodes.
type Notice string

// List of defined notifications.
const (
	// an oscillator has completed its startup period and its output is valid
	NotifyOscillatorReady Notice = "NotifyOscillatorReady"

	// an oscillator has been disabled and its output is no longer valid
	NotifyOscillatorStopped Notice = "NotifyOscillatorStopped"

	// the performance level of the power manager has been changed. the PM
	// interrupt flag will have been raised
	NotifyPerformanceLevel Notice = "NotifyPerformanceLevel"

	// the CPU clock is running faster than the current performance level
	// allows
	NotifyPerformanceLevelExceeded Notice = "NotifyPerformanceLevelExceeded"

	// the clock tree has been returned to its power-on state
	NotifyReset Notice = "NotifyReset"
)

// Notify is used for direct communication between the hardware and the
// program. The detail argument is the name of the component raising the
// notice, for example "XOSC32K".
type Notify interface {
	Notify(notice Notice, detail string) error
}
