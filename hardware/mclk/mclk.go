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

package mclk

import (
	"fmt"
	"math/bits"

	"github.com/jetsetilly/samclk/hardware/clocktree"
	"github.com/jetsetilly/samclk/hardware/cpuclock"
	"github.com/jetsetilly/samclk/logger"
	"github.com/jetsetilly/samclk/notifications"
)

// the consumer key used when registering with the main generator
const consumerKey = "MCLK"

// tag used for log entries
const logTag = "mclk"

// List of performance levels.
const (
	PL0 = iota
	PL1
	PL2
	NumPerformanceLevels
)

// PerformanceLevelLimits is the maximum CPU frequency for each performance
// level.
var PerformanceLevelLimits = [NumPerformanceLevels]int{
	PL0: 12000000,
	PL1: 32000000,
	PL2: 32000000,
}

// MaxCPUDivider is the largest value of the CPUDIV register.
const MaxCPUDivider = 128

// Controller is the main clock controller.
type Controller struct {
	tree   *clocktree.Tree
	cpu    *cpuclock.Domain
	notify notifications.Notify

	// the most recent frequency of the main generator
	gclkMain int

	cpuDiv int

	performanceLevel int
	intEnabled       bool
	intFlag          bool

	// limit was exceeded on the most recent update. prevents repeated
	// notifications for the same condition
	exceeded bool
}

// NewController creates the controller and subscribes it to the main generator
// of the tree. The CPU domain is set to the current frequency of the main
// generator straight away. The notify argument can be nil.
func NewController(tree *clocktree.Tree, cpu *cpuclock.Domain, notify notifications.Notify) *Controller {
	ctrl := &Controller{
		tree:   tree,
		cpu:    cpu,
		notify: notify,
	}
	ctrl.resetRegisters()

	gen := tree.Generator(clocktree.GCLKMain)
	gen.RegisterFrequencyChangeHandler(consumerKey, ctrl.mainChanged)
	ctrl.mainChanged(gen.Frequency())

	return ctrl
}

func (ctrl *Controller) String() string {
	return fmt.Sprintf("GCLK_MAIN %dHz / %d -> %s [PL%d]", ctrl.gclkMain, ctrl.cpuDiv, ctrl.cpu, ctrl.performanceLevel)
}

func (ctrl *Controller) resetRegisters() {
	ctrl.cpuDiv = 1
	ctrl.performanceLevel = PL0
	ctrl.intEnabled = false
	ctrl.intFlag = false
	ctrl.exceeded = false
}

// Reset the controller and the clock tree.
func (ctrl *Controller) Reset() {
	ctrl.resetRegisters()
	ctrl.tree.Reset()
}

func (ctrl *Controller) mainChanged(freq int) {
	ctrl.gclkMain = freq
	ctrl.update()
}

// update pushes the CPU frequency to the CPU domain
func (ctrl *Controller) update() {
	f := ctrl.CPUFrequency()
	ctrl.cpu.SetFrequency(f)

	limit := PerformanceLevelLimits[ctrl.performanceLevel]
	if f <= limit {
		ctrl.exceeded = false
		return
	}
	if ctrl.exceeded {
		return
	}
	ctrl.exceeded = true

	logger.Logf(ctrl.tree, logTag, "CPU frequency of %dHz exceeds the %dHz limit of PL%d", f, limit, ctrl.performanceLevel)
	ctrl.raise(notifications.NotifyPerformanceLevelExceeded, fmt.Sprintf("PL%d", ctrl.performanceLevel))
}

func (ctrl *Controller) raise(notice notifications.Notice, detail string) {
	if ctrl.notify == nil {
		return
	}
	if err := ctrl.notify.Notify(notice, detail); err != nil {
		logger.Log(logger.Allow, logTag, err)
	}
}

// MainFrequency returns the frequency of GCLK_MAIN.
func (ctrl *Controller) MainFrequency() int {
	return ctrl.gclkMain
}

// CPUFrequency returns the frequency of the CPU clock.
func (ctrl *Controller) CPUFrequency() int {
	return ctrl.gclkMain / ctrl.cpuDiv
}

// CPUDivider returns the current CPU divider.
func (ctrl *Controller) CPUDivider() int {
	return ctrl.cpuDiv
}

// SetCPUDivider sets the CPU divider. Valid values are the powers of two from
// one to MaxCPUDivider. Other values are ignored and the function returns
// false.
func (ctrl *Controller) SetCPUDivider(div int) bool {
	if div < 1 || div > MaxCPUDivider || bits.OnesCount(uint(div)) != 1 {
		return false
	}
	ctrl.cpuDiv = div
	ctrl.update()
	return true
}

// PerformanceLevel returns the selected performance level.
func (ctrl *Controller) PerformanceLevel() int {
	return ctrl.performanceLevel
}

// SetPerformanceLevel selects the performance level and raises the
// performance level ready interrupt flag. Values outside the range of
// performance levels are ignored and the function returns false.
func (ctrl *Controller) SetPerformanceLevel(pl int) bool {
	if pl < 0 || pl >= NumPerformanceLevels {
		return false
	}
	ctrl.performanceLevel = pl
	ctrl.intFlag = true
	ctrl.exceeded = false

	logger.Logf(ctrl.tree, logTag, "performance level PL%d", pl)
	ctrl.raise(notifications.NotifyPerformanceLevel, fmt.Sprintf("PL%d", pl))
	ctrl.update()

	return true
}

// SetInterruptEnabled enables or disables the performance level ready
// interrupt.
func (ctrl *Controller) SetInterruptEnabled(enabled bool) {
	ctrl.intEnabled = enabled
}

// InterruptFlag returns the state of the performance level ready interrupt
// flag, regardless of whether the interrupt is enabled.
func (ctrl *Controller) InterruptFlag() bool {
	return ctrl.intFlag
}

// ClearInterruptFlag clears the performance level ready interrupt flag.
func (ctrl *Controller) ClearInterruptFlag() {
	ctrl.intFlag = false
}

// IRQ returns true if the interrupt line of the power manager is asserted.
func (ctrl *Controller) IRQ() bool {
	return ctrl.intFlag && ctrl.intEnabled
}
