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

package hardware

import (
	"github.com/jetsetilly/samclk/hardware/clocktree"
	"github.com/jetsetilly/samclk/hardware/cpuclock"
	"github.com/jetsetilly/samclk/hardware/future"
	"github.com/jetsetilly/samclk/hardware/instance"
	"github.com/jetsetilly/samclk/hardware/mclk"
	"github.com/jetsetilly/samclk/hardware/preferences"
	"github.com/jetsetilly/samclk/logger"
	"github.com/jetsetilly/samclk/notifications"
)

// MCU is the main container for the clock hardware.
type MCU struct {
	Instance *instance.Instance

	Timeline *future.Timeline
	Tree     *clocktree.Tree
	CPU      *cpuclock.Domain
	MCLK     *mclk.Controller
}

// NewMCU creates a new MCU and everything associated with the clock hardware.
// If ins is nil a new instance is created with preferences loaded from the
// default preferences file. The notify argument can be nil.
func NewMCU(ins *instance.Instance, notify notifications.Notify) (*MCU, error) {
	var err error

	if ins == nil {
		ins, err = instance.NewInstance(instance.Main, nil)
		if err != nil {
			return nil, err
		}
	}

	mcu := &MCU{
		Instance: ins,
		Timeline: future.NewTimeline("timeline"),
		CPU:      cpuclock.NewDomain(),
	}

	mcu.Tree = clocktree.NewTree(mcu.Timeline, notify)
	ins.Prefs.Attach(mcu.Tree)
	mcu.MCLK = mclk.NewController(mcu.Tree, mcu.CPU, notify)

	logger.Logf(logger.Allow, "hardware", "MCU created: %s", mcu.MCLK)

	return mcu, nil
}

// Prefs returns the preferences of the MCU instance.
func (mcu *MCU) Prefs() *preferences.Preferences {
	return mcu.Instance.Prefs
}

// Reset the clock hardware to its power-on state. Oscillator frequencies set
// by the preferences are kept.
func (mcu *MCU) Reset() {
	mcu.MCLK.Reset()
}

// Step the hardware by the number of timeline cycles. Pending startup events
// that fall due are run and the CPU executes the cycles if its clock is
// running. Returns the number of cycles executed by the CPU.
func (mcu *MCU) Step(cycles int64) int64 {
	if cycles <= 0 {
		mcu.Timeline.Advance(0)
		return 0
	}

	// startup events run before the CPU executes so that an oscillator that
	// becomes ready during the step is seen by the CPU in the same step
	mcu.Timeline.Advance(cycles)
	if mcu.CPU.Execute(cycles) {
		return cycles
	}
	return 0
}

// Snapshot returns a copy of the state of the clock tree.
func (mcu *MCU) Snapshot() clocktree.Snapshot {
	return mcu.Tree.Snapshot()
}
